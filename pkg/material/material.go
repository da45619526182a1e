// Package material implements BSDF shading: given a hit, produce an
// emitted radiance and a scattered ray with a PDF-divided weight.
package material

import "github.com/fathomrender/pathtracer/pkg/core"

// HitRecord describes a ray-object intersection.
type HitRecord struct {
	Point     core.Vec3
	Normal    core.Vec3
	UV        core.Vec2
	T         float64
	FrontFace bool
	Material  Material
}

// SetFaceNormal orients Normal to face the incoming ray and records
// which side of the surface was hit.
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// ScatterResult is what a material hands back to the integrator:
// a new outgoing ray and a weight already divided by the sampling PDF,
// so the integrator never needs to know how the material sampled its
// direction.
type ScatterResult struct {
	Scattered core.Ray
	Weight    core.Vec3
}

// Material is the capability every shape delegates shading to. Scatter
// returning ok=false means the ray was absorbed: the integrator must
// stop there and return only the emitted radiance.
type Material interface {
	Scatter(rayIn core.Ray, hit HitRecord, rng *core.Rng) (ScatterResult, bool)
}

// Emitter is implemented by materials that emit radiance. A material
// may be both an Emitter and scatter (e.g. a glowing diffuse surface);
// the integrator checks for this interface rather than requiring every
// material to carry a zero emission field.
type Emitter interface {
	Emit() core.Vec3
}
