// Package sceneio reads a scene description from a YAML document and
// assembles it into a scene.Scene, resolving shapes, materials, the
// environment, the camera, and render preferences. The YAML is kept
// string-based so it stays easy to hand-author and diff.
package sceneio

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/fathomrender/pathtracer/pkg/camera"
	"github.com/fathomrender/pathtracer/pkg/core"
	"github.com/fathomrender/pathtracer/pkg/geometry"
	"github.com/fathomrender/pathtracer/pkg/material"
	"github.com/fathomrender/pathtracer/pkg/meshio"
	"github.com/fathomrender/pathtracer/pkg/scene"
	"github.com/fathomrender/pathtracer/pkg/teximg"
)

// vec3Doc is a YAML-friendly [x,y,z] triple.
type vec3Doc [3]float64

func (v vec3Doc) toVec3() core.Vec3 { return core.NewVec3(v[0], v[1], v[2]) }

type cameraDoc struct {
	LookFrom      vec3Doc `yaml:"lookFrom"`
	LookAt        vec3Doc `yaml:"lookAt"`
	Up            vec3Doc `yaml:"up"`
	VFov          float64 `yaml:"vfov"`
	Aperture      float64 `yaml:"aperture"`
	FocalDistance float64 `yaml:"focalDistance"`
}

type materialDoc struct {
	Name      string  `yaml:"name"`
	Type      string  `yaml:"type"` // lambertian, metal, dielectric, emissive
	Albedo    vec3Doc `yaml:"albedo"`
	AlbedoMap string  `yaml:"albedoMap"` // image file; overrides Albedo for type: lambertian
	Fuzz      float64 `yaml:"fuzz"`
	IOR       float64 `yaml:"ior"`
	Emission  vec3Doc `yaml:"emission"`
}

type shapeDoc struct {
	Type     string  `yaml:"type"` // sphere, mesh
	Material string  `yaml:"material"`
	Center   vec3Doc `yaml:"center"`
	Radius   float64 `yaml:"radius"`
	Path     string  `yaml:"path"` // glTF file, for type: mesh
}

type environmentDoc struct {
	Type    string  `yaml:"type"` // constant, gradient, image
	Color   vec3Doc `yaml:"color"`
	Horizon vec3Doc `yaml:"horizon"`
	Zenith  vec3Doc `yaml:"zenith"`
	Path    string  `yaml:"path"`
}

type prefsDoc struct {
	ImageWidth      int   `yaml:"imageWidth"`
	ImageHeight     int   `yaml:"imageHeight"`
	SamplesPerPixel int   `yaml:"samplesPerPixel"`
	MaxDepth        int   `yaml:"maxDepth"`
	TileWidth       int   `yaml:"tileWidth"`
	TileHeight      int   `yaml:"tileHeight"`
	WorkerCount     int   `yaml:"workerCount"`
	Antialias       bool  `yaml:"antialias"`
	RussianRoulette bool  `yaml:"russianRoulette"`
	RouletteDepth   int   `yaml:"rouletteDepth"`
	SeedBase        int64 `yaml:"seedBase"`
}

// sceneDoc is the top-level YAML scene description.
type sceneDoc struct {
	Camera      cameraDoc      `yaml:"camera"`
	Materials   []materialDoc  `yaml:"materials"`
	Shapes      []shapeDoc     `yaml:"shapes"`
	Environment environmentDoc `yaml:"environment"`
	Prefs       prefsDoc       `yaml:"prefs"`
}

// Load parses YAML scene description bytes and assembles a ready to
// render scene.Scene. Texture and mesh paths are resolved relative to
// the caller's working directory.
func Load(data []byte) (*scene.Scene, error) {
	var doc sceneDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("sceneio: yaml: %w", err)
	}

	materials, err := buildMaterials(doc.Materials)
	if err != nil {
		return nil, err
	}

	shapes, err := buildShapes(doc.Shapes, materials)
	if err != nil {
		return nil, err
	}

	env, err := buildEnvironment(doc.Environment)
	if err != nil {
		return nil, err
	}

	cam := camera.New(
		doc.Camera.LookFrom.toVec3(),
		doc.Camera.LookAt.toVec3(),
		doc.Camera.Up.toVec3(),
		doc.Camera.VFov,
		doc.Prefs.ImageWidth,
		doc.Prefs.ImageHeight,
		doc.Camera.Aperture,
		doc.Camera.FocalDistance,
	)

	prefs := scene.Prefs{
		ImageWidth:      doc.Prefs.ImageWidth,
		ImageHeight:     doc.Prefs.ImageHeight,
		SamplesPerPixel: doc.Prefs.SamplesPerPixel,
		MaxDepth:        doc.Prefs.MaxDepth,
		TileWidth:       doc.Prefs.TileWidth,
		TileHeight:      doc.Prefs.TileHeight,
		WorkerCount:     doc.Prefs.WorkerCount,
		Antialias:       doc.Prefs.Antialias,
		RussianRoulette: doc.Prefs.RussianRoulette,
		RouletteDepth:   doc.Prefs.RouletteDepth,
		SeedBase:        doc.Prefs.SeedBase,
	}

	return scene.New(cam, shapes, env, prefs)
}

func buildMaterials(docs []materialDoc) (map[string]material.Material, error) {
	materials := make(map[string]material.Material, len(docs))
	for _, m := range docs {
		if m.Name == "" {
			return nil, fmt.Errorf("sceneio: material missing name")
		}
		switch m.Type {
		case "lambertian":
			if m.AlbedoMap == "" {
				materials[m.Name] = material.NewLambertian(m.Albedo.toVec3())
				continue
			}
			tex, err := teximg.Load(m.AlbedoMap)
			if err != nil {
				return nil, fmt.Errorf("sceneio: material %q: %w", m.Name, err)
			}
			materials[m.Name] = material.NewTexturedLambertian(tex)
		case "metal":
			materials[m.Name] = material.NewMetal(m.Albedo.toVec3(), m.Fuzz)
		case "dielectric":
			materials[m.Name] = material.NewDielectric(m.IOR)
		case "emissive":
			materials[m.Name] = material.NewEmissive(m.Emission.toVec3())
		default:
			return nil, fmt.Errorf("sceneio: unsupported material type %q for %q", m.Type, m.Name)
		}
	}
	return materials, nil
}

func buildShapes(docs []shapeDoc, materials map[string]material.Material) ([]geometry.Shape, error) {
	shapes := make([]geometry.Shape, 0, len(docs))
	for i, s := range docs {
		mat, ok := materials[s.Material]
		if !ok {
			return nil, fmt.Errorf("sceneio: shape %d references unknown material %q", i, s.Material)
		}
		switch s.Type {
		case "sphere":
			shapes = append(shapes, geometry.NewSphere(s.Center.toVec3(), s.Radius, mat))
		case "mesh":
			if s.Path == "" {
				return nil, fmt.Errorf("sceneio: mesh shape %d missing path", i)
			}
			mesh, err := meshio.LoadFirstMesh(s.Path, mat)
			if err != nil {
				return nil, fmt.Errorf("sceneio: shape %d: %w", i, err)
			}
			shapes = append(shapes, mesh)
		default:
			return nil, fmt.Errorf("sceneio: unsupported shape type %q", s.Type)
		}
	}
	return shapes, nil
}

func buildEnvironment(doc environmentDoc) (scene.Environment, error) {
	switch doc.Type {
	case "", "constant":
		return scene.ConstantEnvironment{Color: doc.Color.toVec3()}, nil
	case "gradient":
		return scene.GradientEnvironment{Horizon: doc.Horizon.toVec3(), Zenith: doc.Zenith.toVec3()}, nil
	case "image":
		if doc.Path == "" {
			return nil, fmt.Errorf("sceneio: image environment missing path")
		}
		env, err := teximg.LoadEnvironment(doc.Path)
		if err != nil {
			return nil, fmt.Errorf("sceneio: environment: %w", err)
		}
		return env, nil
	default:
		return nil, fmt.Errorf("sceneio: unsupported environment type %q", doc.Type)
	}
}
