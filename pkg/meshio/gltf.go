// Package meshio loads triangle meshes from glTF/GLB files into the
// renderer's own geometry types. It is the scene loader's mesh
// collaborator, kept separate from scene assembly so it can be tested
// against fixture files independent of the rest of the pipeline.
package meshio

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/fathomrender/pathtracer/pkg/core"
	"github.com/fathomrender/pathtracer/pkg/geometry"
	"github.com/fathomrender/pathtracer/pkg/material"
)

// LoadFirstMesh opens a .gltf/.glb file and builds a TriangleMesh from
// the first primitive of its first mesh; it returns an error if that
// primitive has no POSITION attribute, without trying later ones. Scene
// files with more elaborate node graphs are out of scope: this
// renderer only needs flat geometry, not skinning or animation.
func LoadFirstMesh(path string, mat material.Material) (*geometry.TriangleMesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("meshio: open %q: %w", path, err)
	}
	return MeshFromDocument(doc, mat)
}

// MeshFromDocument builds a TriangleMesh from the first primitive of
// the first mesh in an already-parsed glTF document.
func MeshFromDocument(doc *gltf.Document, mat material.Material) (*geometry.TriangleMesh, error) {
	if len(doc.Meshes) == 0 || len(doc.Meshes[0].Primitives) == 0 {
		return nil, fmt.Errorf("meshio: document has no mesh primitives")
	}
	prim := doc.Meshes[0].Primitives[0]

	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, fmt.Errorf("meshio: primitive has no POSITION attribute")
	}
	rawPositions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("meshio: read positions: %w", err)
	}
	positions := make([]core.Vec3, len(rawPositions))
	for i, p := range rawPositions {
		positions[i] = core.NewVec3(float64(p[0]), float64(p[1]), float64(p[2]))
	}

	var normals []core.Vec3
	if idx, ok := prim.Attributes["NORMAL"]; ok {
		rawNormals, err := modeler.ReadNormal(doc, doc.Accessors[idx], nil)
		if err == nil {
			normals = make([]core.Vec3, len(rawNormals))
			for i, n := range rawNormals {
				normals[i] = core.NewVec3(float64(n[0]), float64(n[1]), float64(n[2]))
			}
		}
	}

	var uvs []core.Vec2
	if idx, ok := prim.Attributes["TEXCOORD_0"]; ok {
		rawUVs, err := modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
		if err == nil {
			uvs = make([]core.Vec2, len(rawUVs))
			for i, uv := range rawUVs {
				uvs[i] = core.NewVec2(float64(uv[0]), float64(uv[1]))
			}
		}
	}

	var indices []int
	if prim.Indices != nil {
		rawIndices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("meshio: read indices: %w", err)
		}
		indices = make([]int, len(rawIndices))
		for i, idx := range rawIndices {
			indices[i] = int(idx)
		}
	} else {
		indices = make([]int, len(positions))
		for i := range indices {
			indices[i] = i
		}
	}

	return geometry.NewTriangleMesh(positions, indices, normals, uvs, mat)
}
