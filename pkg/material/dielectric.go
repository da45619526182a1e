package material

import (
	"math"

	"github.com/fathomrender/pathtracer/pkg/core"
)

// Dielectric is a clear refractive material (glass, water) that either
// reflects or refracts each ray, chosen stochastically by Fresnel
// reflectance -- never both, which keeps the weight a plain 1.0 without
// needing to split the path.
type Dielectric struct {
	RefractiveIndex float64
}

func NewDielectric(ior float64) *Dielectric {
	return &Dielectric{RefractiveIndex: ior}
}

func (d *Dielectric) Scatter(rayIn core.Ray, hit HitRecord, rng *core.Rng) (ScatterResult, bool) {
	ratio := d.RefractiveIndex
	if hit.FrontFace {
		ratio = 1.0 / d.RefractiveIndex
	}

	unitDir := rayIn.Direction.Normalize()
	cosTheta := math.Min(-unitDir.Dot(hit.Normal), 1.0)
	sinTheta := math.Sqrt(1 - cosTheta*cosTheta)

	cannotRefract := ratio*sinTheta > 1.0
	var dir core.Vec3
	if cannotRefract || reflectance(cosTheta, ratio) > rng.Get1D() {
		dir = core.Reflect(unitDir, hit.Normal)
	} else {
		dir = refract(unitDir, hit.Normal, ratio)
	}

	return ScatterResult{
		Scattered: core.NewRay(hit.Point, dir),
		Weight:    core.NewVec3(1, 1, 1),
	}, true
}

func refract(uv, n core.Vec3, etaiOverEtat float64) core.Vec3 {
	cosTheta := math.Min(-uv.Dot(n), 1.0)
	rOutPerp := uv.Add(n.Multiply(cosTheta)).Multiply(etaiOverEtat)
	rOutParallel := n.Multiply(-math.Sqrt(math.Abs(1 - rOutPerp.LengthSquared())))
	return rOutPerp.Add(rOutParallel)
}

// reflectance computes Fresnel reflectance via Schlick's approximation.
func reflectance(cosine, refractionRatio float64) float64 {
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 *= r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
