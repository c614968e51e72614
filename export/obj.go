// Package export serializes decoded meshes into interchange formats.
package export

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"skymesh/mesh"
)

// Options control what the exporters write.
type Options struct {
	// NoUV drops texture coordinates even when the mesh has them.
	NoUV bool
}

// WriteOBJ writes the mesh in Wavefront OBJ form: one v line per
// vertex, optional vt lines, and 1-based f triples. Degenerate faces
// (two indices equal) are dropped here rather than during decoding,
// so the decoded face list stays a faithful reading of the file.
func WriteOBJ(w io.Writer, decoded *mesh.DecodedMesh, opts Options) error {
	buffered := bufio.NewWriter(w)
	withUV := !opts.NoUV &&
		len(decoded.UVs) == len(decoded.Vertices) &&
		len(decoded.UVs) > 0

	for _, vertex := range decoded.Vertices {
		if _, err := fmt.Fprintf(
			buffered, "v %.6f %.6f %.6f\n",
			vertex[0], vertex[1], vertex[2],
		); err != nil {
			return errors.Wrap(err, "WriteOBJ write vertex")
		}
	}
	if withUV {
		for _, uv := range decoded.UVs {
			if _, err := fmt.Fprintf(buffered, "vt %.6f %.6f\n", uv[0], uv[1]); err != nil {
				return errors.Wrap(err, "WriteOBJ write UV")
			}
		}
	}
	for _, face := range decoded.Faces {
		if face[0] == face[1] || face[1] == face[2] || face[0] == face[2] {
			continue
		}
		a, b, c := face[0]+1, face[1]+1, face[2]+1
		var err error
		if withUV {
			_, err = fmt.Fprintf(buffered, "f %d/%d %d/%d %d/%d\n", a, a, b, b, c, c)
		} else {
			_, err = fmt.Fprintf(buffered, "f %d %d %d\n", a, b, c)
		}
		if err != nil {
			return errors.Wrap(err, "WriteOBJ write face")
		}
	}
	return errors.Wrap(buffered.Flush(), "WriteOBJ flush")
}

// SaveOBJ writes the mesh to a new OBJ file at path.
func SaveOBJ(path string, decoded *mesh.DecodedMesh, opts Options) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "SaveOBJ create file")
	}
	defer file.Close()
	if err := WriteOBJ(file, decoded, opts); err != nil {
		return err
	}
	return errors.Wrap(file.Close(), "SaveOBJ close file")
}
