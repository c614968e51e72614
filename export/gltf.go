package export

import (
	"bytes"
	"encoding/binary"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"

	"skymesh/mesh"
)

// SaveGLTF writes the mesh as a single-primitive glTF 2.0 document.
// A path ending in .glb produces the binary container. Degenerate
// faces are dropped, same as the OBJ path.
func SaveGLTF(path string, decoded *mesh.DecodedMesh, opts Options) error {
	doc := &gltf.Document{}
	doc.Asset.Version = "2.0"
	sceneIndex := uint32(0)
	doc.Scene = &sceneIndex
	doc.Scenes = append(doc.Scenes, &gltf.Scene{})

	withUV := !opts.NoUV &&
		len(decoded.UVs) == len(decoded.Vertices) &&
		len(decoded.UVs) > 0

	var indices []uint32
	for _, face := range decoded.Faces {
		if face[0] == face[1] || face[1] == face[2] || face[0] == face[2] {
			continue
		}
		indices = append(indices, face[0], face[1], face[2])
	}

	buf := bytes.NewBuffer(nil)
	indexView := &gltf.BufferView{Buffer: 0}
	binary.Write(buf, binary.LittleEndian, indices)
	indexView.ByteLength = uint32(buf.Len())
	doc.BufferViews = append(doc.BufferViews, indexView)

	positionView := &gltf.BufferView{Buffer: 0, ByteOffset: uint32(buf.Len())}
	binary.Write(buf, binary.LittleEndian, decoded.Vertices)
	positionView.ByteLength = uint32(buf.Len()) - positionView.ByteOffset
	positionViewIndex := uint32(len(doc.BufferViews))
	doc.BufferViews = append(doc.BufferViews, positionView)

	var uvViewIndex uint32
	if withUV {
		uvView := &gltf.BufferView{Buffer: 0, ByteOffset: uint32(buf.Len())}
		binary.Write(buf, binary.LittleEndian, decoded.UVs)
		uvView.ByteLength = uint32(buf.Len()) - uvView.ByteOffset
		uvViewIndex = uint32(len(doc.BufferViews))
		doc.BufferViews = append(doc.BufferViews, uvView)
	}
	doc.Buffers = append(doc.Buffers, &gltf.Buffer{
		ByteLength: uint32(buf.Len()),
		Data:       buf.Bytes(),
	})

	indexViewIndex := uint32(0)
	doc.Accessors = append(doc.Accessors, &gltf.Accessor{
		BufferView:    &indexViewIndex,
		ComponentType: gltf.ComponentUint,
		Type:          gltf.AccessorScalar,
		Count:         uint32(len(indices)),
	})
	min, max := bounds(decoded.Vertices)
	doc.Accessors = append(doc.Accessors, &gltf.Accessor{
		BufferView:    &positionViewIndex,
		ComponentType: gltf.ComponentFloat,
		Type:          gltf.AccessorVec3,
		Count:         uint32(len(decoded.Vertices)),
		Min:           min,
		Max:           max,
	})
	if withUV {
		doc.Accessors = append(doc.Accessors, &gltf.Accessor{
			BufferView:    &uvViewIndex,
			ComponentType: gltf.ComponentFloat,
			Type:          gltf.AccessorVec2,
			Count:         uint32(len(decoded.UVs)),
		})
	}

	indexAccessor := uint32(0)
	attributes := gltf.Attribute{"POSITION": 1}
	if withUV {
		attributes["TEXCOORD_0"] = 2
	}
	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Primitives: []*gltf.Primitive{{
			Indices:    &indexAccessor,
			Attributes: attributes,
			Mode:       gltf.PrimitiveTriangles,
		}},
	})
	meshIndex := uint32(0)
	doc.Nodes = append(doc.Nodes, &gltf.Node{Mesh: &meshIndex})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	if strings.EqualFold(filepath.Ext(path), ".glb") {
		return errors.Wrap(gltf.SaveBinary(doc, path), "SaveGLTF binary")
	}
	// text documents carry the buffer inline as a data URI
	doc.Buffers[0].EmbeddedResource()
	return errors.Wrap(gltf.Save(doc, path), "SaveGLTF")
}

func bounds(vertices []mesh.Vertex) ([]float32, []float32) {
	if len(vertices) == 0 {
		return nil, nil
	}
	min := []float32{vertices[0][0], vertices[0][1], vertices[0][2]}
	max := []float32{vertices[0][0], vertices[0][1], vertices[0][2]}
	for _, vertex := range vertices {
		for axis := 0; axis < 3; axis++ {
			if vertex[axis] < min[axis] {
				min[axis] = vertex[axis]
			}
			if vertex[axis] > max[axis] {
				max[axis] = vertex[axis]
			}
		}
	}
	return min, max
}
