package export

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skymesh/mesh"
)

func sampleMesh() *mesh.DecodedMesh {
	return &mesh.DecodedMesh{
		Vertices: []mesh.Vertex{
			{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1},
		},
		UVs: []mesh.UV{
			{0, 0}, {1, 0}, {0, 1}, {0.5, 0.5},
		},
		Faces: []mesh.Face{
			{0, 1, 2},
			{1, 2, 3},
			{2, 2, 3}, // degenerate, must not be exported
		},
	}
}

func TestWriteOBJ(t *testing.T) {
	buffer := bytes.Buffer{}
	err := WriteOBJ(&buffer, sampleMesh(), Options{})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buffer.String()), "\n")
	require.Len(t, lines, 10)
	assert.Equal(t, "v 0.000000 0.000000 0.000000", lines[0])
	assert.Equal(t, "v 1.000000 0.000000 0.000000", lines[1])
	assert.Equal(t, "vt 0.500000 0.500000", lines[7])
	// indices are 1-based and share the UV index
	assert.Equal(t, "f 1/1 2/2 3/3", lines[8])
	assert.Equal(t, "f 2/2 3/3 4/4", lines[9])
}

func TestWriteOBJNoUV(t *testing.T) {
	buffer := bytes.Buffer{}
	err := WriteOBJ(&buffer, sampleMesh(), Options{NoUV: true})
	require.NoError(t, err)

	content := buffer.String()
	assert.NotContains(t, content, "vt ")
	assert.Contains(t, content, "f 1 2 3\n")
}

func TestWriteOBJWithoutUVData(t *testing.T) {
	decoded := sampleMesh()
	decoded.UVs = nil
	buffer := bytes.Buffer{}
	err := WriteOBJ(&buffer, decoded, Options{})
	require.NoError(t, err)

	assert.NotContains(t, buffer.String(), "vt ")
	assert.Contains(t, buffer.String(), "f 1 2 3\n")
}

func TestSaveOBJ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.obj")
	require.NoError(t, SaveOBJ(path, sampleMesh(), Options{}))

	assert.FileExists(t, path)
}

func TestSaveGLTFRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.gltf")
	require.NoError(t, SaveGLTF(path, sampleMesh(), Options{}))

	doc, err := gltf.Open(path)
	require.NoError(t, err)
	require.Len(t, doc.Meshes, 1)
	require.Len(t, doc.Meshes[0].Primitives, 1)
	primitive := doc.Meshes[0].Primitives[0]
	assert.Contains(t, primitive.Attributes, "POSITION")
	assert.Contains(t, primitive.Attributes, "TEXCOORD_0")
	// two faces survive: the degenerate third one is dropped
	assert.Equal(t, uint32(6), doc.Accessors[0].Count)
	assert.Equal(t, uint32(4), doc.Accessors[1].Count)
}
