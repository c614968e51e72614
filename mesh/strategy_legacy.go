package mesh

import (
	"skymesh/mesh/mcodec"
	"skymesh/mesh/mfield"
	"skymesh/mesh/mindex"
	"skymesh/mesh/mlayout"
	"skymesh/mesh/mvalid"
)

// decodeLegacy handles the oldest export generation, which carries no
// reliable count fields: the counts are probed at a short list of
// historical offsets and the UV block may or may not be preceded by a
// per-vertex attribute table. Indices sit contiguously after the UVs
// with a four-byte gap.
func decodeLegacy(data []byte, opts DecodeOptions) (*DecodedMesh, error) {
	var lastErr error = ErrMalformedHeader{Reason: "no legacy layout matched"}
	for _, candidate := range mlayout.LegacyCandidates() {
		block, uncompressedSize, err := candidate.ExtractBlock(data)
		if err != nil {
			continue
		}
		payload, err := mcodec.Decompress(block, uncompressedSize)
		if err != nil {
			lastErr = err
			continue
		}
		if decoded := legacyFromPayload(payload); decoded != nil {
			return decoded, nil
		}
	}
	return nil, lastErr
}

func legacyFromPayload(payload []byte) *DecodedMesh {
	for _, countOff := range mlayout.VertexCountOffsets() {
		vertexCount, ok := readInt32At(payload, countOff)
		if !ok {
			continue
		}
		indexCount, _ := readInt32At(payload, countOff+4)
		if vertexCount < 5 || vertexCount >= 100_000 ||
			indexCount < 5 || indexCount >= 300_000 || indexCount%3 != 0 {
			continue
		}
		vertices, offset, err := mfield.ReadDirectVertices(
			payload, mlayout.DirectVertexOff, vertexCount, 16,
		)
		if err != nil {
			continue
		}
		// newer files interleave a per-vertex attribute table before
		// the UV block; older ones do not, so both skips are tried
		for _, attributeSkip := range []int{vertexCount*4 - 4, 0} {
			uvs, uvEnd, err := mfield.ReadHalfUVs(
				payload, offset+attributeSkip, vertexCount, 16, false,
			)
			if err != nil {
				continue
			}
			faces, err := mindex.ReadRun(payload, uvEnd+4, indexCount/3, mindex.Width16)
			if err != nil {
				continue
			}
			if !mvalid.IsPlausible(vertexCount, faces) {
				continue
			}
			return &DecodedMesh{
				Vertices: vertices,
				UVs:      uvs,
				Faces:    faces,
			}
		}
	}
	return nil
}
