package mesh

import (
	"math"

	"github.com/samber/lo"

	"skymesh/ds"
	"skymesh/mesh/mfield"
	"skymesh/mesh/mlayout"
)

// scanMaxCoordinate rejects vertex interpretations whose coordinates
// leave any sane model space. Real assets stay well under this.
const scanMaxCoordinate = 10_000

var (
	scanVertexStarts = []int{0xB3, 0x60, 0x70, 0x80, 0x90}
	scanStrides      = []int{12, 16, 20, 24, 8}
)

// decodeScan is the last-resort brute force for files whose header no
// candidate explains: it treats the raw file as the payload, probes
// every plausible count-pair offset, and tries each known vertex start
// and stride until some interpretation survives the coordinate and
// index checks.
func decodeScan(data []byte, opts DecodeOptions) (*DecodedMesh, error) {
	payload := data
	if stripped, ok := mlayout.StripNamePrefix(data); ok {
		payload = stripped
	}
	var lastErr error = ErrMalformedHeader{Reason: "no count-pair offset matched"}
	for _, countOff := range mlayout.ProbeOffsets() {
		vertexCount, ok := readInt32At(payload, countOff)
		if !ok {
			break
		}
		indexCount, _ := readInt32At(payload, countOff+4)
		if vertexCount < 5 || vertexCount > 200_000 ||
			indexCount < 5 || indexCount > 600_000 || indexCount%3 != 0 {
			continue
		}
		for _, vertexStart := range scanVertexStarts {
			for _, stride := range scanStrides {
				vertices, offset, err := mfield.ReadDirectVertices(
					payload, vertexStart, vertexCount, stride,
				)
				if err != nil {
					continue
				}
				if !coordinatesSane(vertices) {
					continue
				}
				anchors := []int{0}
				uvs, uvEnd, err := mfield.ReadHalfUVs(payload, offset, vertexCount, 16, false)
				if err != nil {
					// UV block truncated or absent; keep the vertices
					uvs = ds.Repeat(vertexCount, UV{})
				} else {
					anchors = []int{uvEnd, 0}
				}
				locator := locatorFor(opts)
				run, err := locator.Find(payload, vertexCount, indexCount/3, anchors)
				if err != nil {
					lastErr = err
					continue
				}
				return &DecodedMesh{
					Vertices: vertices,
					UVs:      uvs,
					Faces:    run.Faces,
				}, nil
			}
		}
	}
	return nil, lastErr
}

func coordinatesSane(vertices [][3]float32) bool {
	return lo.EveryBy(vertices, func(v [3]float32) bool {
		for _, coordinate := range v {
			f := float64(coordinate)
			if math.IsNaN(f) || math.Abs(f) > scanMaxCoordinate {
				return false
			}
		}
		return true
	})
}
