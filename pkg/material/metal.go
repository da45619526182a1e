package material

import "github.com/fathomrender/pathtracer/pkg/core"

// Metal is a specular reflector with an optional fuzz radius; fuzz=0
// is a perfect mirror.
type Metal struct {
	Albedo core.Vec3
	Fuzz   float64
}

func NewMetal(albedo core.Vec3, fuzz float64) *Metal {
	if fuzz < 0 {
		fuzz = 0
	}
	if fuzz > 1 {
		fuzz = 1
	}
	return &Metal{Albedo: albedo, Fuzz: fuzz}
}

func (m *Metal) Scatter(rayIn core.Ray, hit HitRecord, rng *core.Rng) (ScatterResult, bool) {
	reflected := core.Reflect(rayIn.Direction.Normalize(), hit.Normal)
	if m.Fuzz > 0 {
		perturb := core.SampleUnitSphere(rng.Get2D(), rng.Get1D()).Multiply(m.Fuzz)
		reflected = reflected.Add(perturb).Normalize()
	}
	// A fuzzed reflection can dip below the surface; absorb it rather
	// than scatter light back into the object.
	if reflected.Dot(hit.Normal) <= 0 {
		return ScatterResult{}, false
	}
	return ScatterResult{
		Scattered: core.NewRay(hit.Point, reflected),
		Weight:    m.Albedo,
	}, true
}
