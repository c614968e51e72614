package mesh

import (
	"fmt"

	"skymesh/mesh/mcodec"
	"skymesh/mesh/mfield"
	"skymesh/mesh/mlayout"
)

// packedCounts reports whether the count pair at 0x74/0x78 cannot be a
// quantized vertex/index pair, which is exactly when the payload uses
// the packed-byte tail encoding instead.
func packedCounts(vertexCount, indexCount int) bool {
	return vertexCount > 100_000 ||
		vertexCount <= 0 ||
		indexCount%3 != 0 ||
		indexCount > 1_000_000
}

// decodeQuantized walks the layout candidate table, decompresses the
// first block that passes the structural gate, and reads 16-bit
// quantized vertices through the dequantization header at 0x60.
func decodeQuantized(data []byte, opts DecodeOptions) (*DecodedMesh, error) {
	var lastErr error = ErrMalformedHeader{Reason: "no layout candidate matched"}
	for _, candidate := range mlayout.ProbeCandidates() {
		block, uncompressedSize, err := candidate.ExtractBlock(data)
		if err != nil {
			continue
		}
		payload, err := mcodec.Decompress(block, uncompressedSize)
		if err != nil {
			lastErr = err
			continue
		}
		decoded, err := quantizedFromPayload(payload, opts)
		if err != nil {
			lastErr = err
			continue
		}
		return decoded, nil
	}
	return nil, lastErr
}

func quantizedFromPayload(payload []byte, opts DecodeOptions) (*DecodedMesh, error) {
	vertexCount, ok := readInt32At(payload, mlayout.SharedCountOff)
	if !ok {
		return nil, ErrMalformedHeader{Reason: "payload too short for count fields"}
	}
	indexCount, _ := readInt32At(payload, mlayout.TotalIndexOff)
	if packedCounts(vertexCount, indexCount) {
		return nil, ErrMalformedHeader{
			Reason: fmt.Sprintf("counts %d/%d describe a packed payload", vertexCount, indexCount),
		}
	}
	if indexCount <= 0 {
		return nil, ErrMalformedHeader{
			Reason: fmt.Sprintf("index count %d out of range", indexCount),
		}
	}
	quantHeader, err := mfield.ReadQuantHeader(payload, mlayout.QuantHeaderOff)
	if err != nil {
		return nil, err
	}
	vertices, offset, err := mfield.ReadQuantVertices(
		payload, mlayout.QuantVertexOff, vertexCount, quantHeader,
	)
	if err != nil {
		return nil, err
	}
	uvs, uvEnd := mfield.ReadNormalizedUVs(payload, offset, vertexCount)

	locator := locatorFor(opts)
	run, err := locator.Find(
		payload, vertexCount, indexCount/3,
		[]int{uvEnd, mlayout.QuantVertexOff},
	)
	if err != nil {
		return nil, err
	}
	return &DecodedMesh{
		Vertices: vertices,
		UVs:      uvs,
		Faces:    run.Faces,
	}, nil
}
