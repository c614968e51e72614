package mesh

import (
	"bytes"
	"fmt"

	"skymesh/ds"
	"skymesh/mesh/mcodec"
	"skymesh/mesh/mfield"
	"skymesh/mesh/mlayout"
)

// decodePacked handles payloads whose vertex block is byte-packed and
// appended at the tail. The count pair still lives at 0x74/0x78; the
// encoding is recognized either by counts the quantized layout could
// not carry or by an external metadata hint (PreferPacked).
func decodePacked(data []byte, opts DecodeOptions) (*DecodedMesh, error) {
	var lastErr error = ErrMalformedHeader{Reason: "no packed payload found"}
	for _, payload := range packedPayloads(data) {
		vertexCount, ok := readInt32At(payload, mlayout.SharedCountOff)
		if !ok {
			continue
		}
		indexCount, _ := readInt32At(payload, mlayout.TotalIndexOff)
		if !opts.PreferPacked && !packedCounts(vertexCount, indexCount) {
			// counts describe a quantized payload; not ours
			continue
		}
		if vertexCount <= 0 || vertexCount > len(payload)/4 || indexCount < 3 {
			lastErr = ErrMalformedHeader{
				Reason: fmt.Sprintf("counts %d/%d out of range", vertexCount, indexCount),
			}
			continue
		}
		vertices, vertexStart, err := mfield.ReadPackedVertices(payload, vertexCount)
		if err != nil {
			lastErr = err
			continue
		}
		// the index run always precedes the tail-anchored vertex block
		locator := locatorFor(opts)
		run, err := locator.Find(
			payload[:vertexStart], vertexCount, indexCount/3,
			[]int{mlayout.DirectVertexOff, mlayout.QuantVertexOff},
		)
		if err != nil {
			lastErr = err
			continue
		}
		return &DecodedMesh{
			Vertices: vertices,
			UVs:      ds.Repeat(vertexCount, UV{}),
			Faces:    run.Faces,
		}, nil
	}
	return nil, lastErr
}

// packedPayloads decompresses every block hypothesis worth trying: the
// direct-float container when its magic is present, then the probe
// candidate table.
func packedPayloads(data []byte) [][]byte {
	var payloads [][]byte
	if bytes.HasPrefix(data, directMagic) && len(data) >= directPayloadOff {
		compressedSize, _ := readInt32At(data, directCompressedSizeOff)
		uncompressedSize, _ := readInt32At(data, directUncompressedSizeOff)
		if compressedSize > 0 && compressedSize <= mlayout.MaxCompressedSize &&
			uncompressedSize > 0 && uncompressedSize <= mlayout.MaxUncompressedSize &&
			directPayloadOff+compressedSize <= len(data) {
			payload, err := mcodec.Decompress(
				data[directPayloadOff:directPayloadOff+compressedSize],
				uncompressedSize,
			)
			if err == nil {
				payloads = append(payloads, payload)
			}
		}
	}
	for _, candidate := range mlayout.ProbeCandidates() {
		block, uncompressedSize, err := candidate.ExtractBlock(data)
		if err != nil {
			continue
		}
		payload, err := mcodec.Decompress(block, uncompressedSize)
		if err != nil {
			continue
		}
		payloads = append(payloads, payload)
	}
	return payloads
}
