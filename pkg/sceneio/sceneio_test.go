package sceneio

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"
)

func writeCheckerTexture(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	img.Set(1, 1, color.RGBA{B: 255, A: 255})
	dir := t.TempDir()
	path := dir + "/albedo.png"
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

const minimalScene = `
camera:
  lookFrom: [0, 0, -5]
  lookAt: [0, 0, 0]
  up: [0, 1, 0]
  vfov: 40
  aperture: 0
  focalDistance: 5
materials:
  - name: red
    type: lambertian
    albedo: [1, 0, 0]
shapes:
  - type: sphere
    material: red
    center: [0, 0, 0]
    radius: 1
environment:
  type: constant
  color: [0.1, 0.2, 0.3]
prefs:
  imageWidth: 64
  imageHeight: 64
  samplesPerPixel: 4
  maxDepth: 4
  tileWidth: 16
  tileHeight: 16
  workerCount: 2
  antialias: true
`

func TestLoadAssemblesSceneFromYAML(t *testing.T) {
	sc, err := Load([]byte(minimalScene))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sc.Prefs.ImageWidth != 64 || sc.Prefs.ImageHeight != 64 {
		t.Errorf("prefs dims = %dx%d, want 64x64", sc.Prefs.ImageWidth, sc.Prefs.ImageHeight)
	}
	if sc.Camera == nil {
		t.Fatal("expected a non-nil camera")
	}
}

func TestLoadBuildsTexturedLambertianFromAlbedoMap(t *testing.T) {
	path := writeCheckerTexture(t)
	doc := `
camera: {lookFrom: [0,0,-5], lookAt: [0,0,0], up: [0,1,0], vfov: 40, focalDistance: 5}
materials:
  - name: checker
    type: lambertian
    albedoMap: ` + path + `
shapes:
  - type: sphere
    material: checker
    center: [0,0,0]
    radius: 1
prefs: {imageWidth: 4, imageHeight: 4, samplesPerPixel: 1, maxDepth: 1}
`
	sc, err := Load([]byte(doc))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sc.Camera == nil {
		t.Fatal("expected a non-nil camera")
	}
}

func TestLoadRejectsMissingAlbedoMapFile(t *testing.T) {
	doc := `
camera: {lookFrom: [0,0,-5], lookAt: [0,0,0], up: [0,1,0], vfov: 40, focalDistance: 5}
materials:
  - name: checker
    type: lambertian
    albedoMap: /nonexistent/path/albedo.png
prefs: {imageWidth: 4, imageHeight: 4, samplesPerPixel: 1, maxDepth: 1}
`
	if _, err := Load([]byte(doc)); err == nil {
		t.Error("expected error for a material referencing a missing albedo map file")
	}
}

func TestLoadRejectsUnknownMaterialReference(t *testing.T) {
	doc := `
camera: {lookFrom: [0,0,-5], lookAt: [0,0,0], up: [0,1,0], vfov: 40, focalDistance: 5}
shapes:
  - type: sphere
    material: missing
    center: [0,0,0]
    radius: 1
prefs: {imageWidth: 4, imageHeight: 4, samplesPerPixel: 1, maxDepth: 1}
`
	if _, err := Load([]byte(doc)); err == nil {
		t.Error("expected error for shape referencing an undefined material")
	}
}

func TestLoadRejectsUnsupportedMaterialType(t *testing.T) {
	doc := `
camera: {lookFrom: [0,0,-5], lookAt: [0,0,0], up: [0,1,0], vfov: 40, focalDistance: 5}
materials:
  - name: odd
    type: holographic
prefs: {imageWidth: 4, imageHeight: 4, samplesPerPixel: 1, maxDepth: 1}
`
	if _, err := Load([]byte(doc)); err == nil {
		t.Error("expected error for an unsupported material type")
	}
}

func TestLoadRejectsInvalidYAML(t *testing.T) {
	if _, err := Load([]byte("not: valid: yaml: at: all:")); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestLoadDefaultsMissingEnvironmentToConstantBlack(t *testing.T) {
	doc := `
camera: {lookFrom: [0,0,-5], lookAt: [0,0,0], up: [0,1,0], vfov: 40, focalDistance: 5}
prefs: {imageWidth: 4, imageHeight: 4, samplesPerPixel: 1, maxDepth: 1}
`
	sc, err := Load([]byte(doc))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sc.Environment == nil {
		t.Fatal("expected a non-nil default environment")
	}
}

func TestLoadRejectsMeshShapeWithoutPath(t *testing.T) {
	doc := `
camera: {lookFrom: [0,0,-5], lookAt: [0,0,0], up: [0,1,0], vfov: 40, focalDistance: 5}
materials:
  - name: red
    type: lambertian
    albedo: [1,0,0]
shapes:
  - type: mesh
    material: red
prefs: {imageWidth: 4, imageHeight: 4, samplesPerPixel: 1, maxDepth: 1}
`
	if _, err := Load([]byte(doc)); err == nil {
		t.Error("expected error for a mesh shape missing a path")
	}
}
