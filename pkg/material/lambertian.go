package material

import "github.com/fathomrender/pathtracer/pkg/core"

// Lambertian is a perfectly diffuse surface. Scattering draws a
// cosine-weighted direction, which makes the albedo/pi BRDF and the
// cos(theta)/pi PDF cancel exactly, leaving the weight equal to the
// albedo -- the classic importance-sampled Lambertian shortcut.
type Lambertian struct {
	Albedo core.Vec3
}

func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

func (l *Lambertian) Scatter(rayIn core.Ray, hit HitRecord, rng *core.Rng) (ScatterResult, bool) {
	dir := core.CosineSampleHemisphere(hit.Normal, rng.Get2D())
	return ScatterResult{
		Scattered: core.NewRay(hit.Point, dir),
		Weight:    l.Albedo,
	}, true
}

// TexturedLambertian is a diffuse surface whose albedo is looked up
// from a decoded image by the hit's UV coordinate instead of being a
// single constant color.
type TexturedLambertian struct {
	Texture *Texture
}

func NewTexturedLambertian(texture *Texture) *TexturedLambertian {
	return &TexturedLambertian{Texture: texture}
}

func (l *TexturedLambertian) Scatter(rayIn core.Ray, hit HitRecord, rng *core.Rng) (ScatterResult, bool) {
	dir := core.CosineSampleHemisphere(hit.Normal, rng.Get2D())
	return ScatterResult{
		Scattered: core.NewRay(hit.Point, dir),
		Weight:    l.Texture.Sample(hit.UV.X, hit.UV.Y),
	}, true
}
