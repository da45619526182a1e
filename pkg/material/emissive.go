package material

import "github.com/fathomrender/pathtracer/pkg/core"

// Emissive is a light source material. It never scatters, so the
// integrator stops recursion at the first emissive hit and returns
// only its emitted radiance.
type Emissive struct {
	Emission core.Vec3
}

func NewEmissive(emission core.Vec3) *Emissive {
	return &Emissive{Emission: emission}
}

func (e *Emissive) Scatter(rayIn core.Ray, hit HitRecord, rng *core.Rng) (ScatterResult, bool) {
	return ScatterResult{}, false
}

func (e *Emissive) Emit() core.Vec3 { return e.Emission }
