package mindex

import (
	"encoding/binary"
	"fmt"
)

type (
	// Width is the stored size of a single triangle index.
	Width int

	// Run is a located triangle index region.
	Run struct {
		Offset int
		Width  Width
		Faces  [][3]uint32
	}

	// Locator scans a payload for a run of index triples whose start
	// offset is not reliably known. The tunables carry empirically
	// found values; they trade success rate against scan latency.
	Locator struct {
		// Step is the byte distance between candidate start offsets.
		Step int
		// MaxIterations caps the number of candidate starts examined
		// before the search gives up.
		MaxIterations int
		// PrefixFaces is how many leading triples are examined before
		// committing to a full decode of the run.
		PrefixFaces int
		// ZeroRatioLimit rejects a candidate whose prefix contains a
		// larger share of zero-valued indices. Real index data is
		// rarely mostly zero; long zero runs mean padding.
		ZeroRatioLimit float64
	}

	ErrNotFound struct {
		Iterations int
	}
)

const (
	Width16 Width = 16
	Width32 Width = 32
)

const (
	DefaultStep           = 4
	DefaultMaxIterations  = 5000
	DefaultPrefixFaces    = 5
	DefaultZeroRatioLimit = 0.1
)

func (e ErrNotFound) Error() string {
	return fmt.Sprintf("index region not found after %d scan attempts", e.Iterations)
}

func (w Width) faceBytes() int {
	if w == Width32 {
		return 12
	}
	return 6
}

func NewLocator() Locator {
	return Locator{
		Step:           DefaultStep,
		MaxIterations:  DefaultMaxIterations,
		PrefixFaces:    DefaultPrefixFaces,
		ZeroRatioLimit: DefaultZeroRatioLimit,
	}
}

// Find scans for faceCount consecutive index triples with every index
// below vertexCount. The scan starts at each anchor in turn and walks
// forward Step bytes at a time; at every candidate start the 16-bit
// reading is tried before the 32-bit one. The total number of starts
// examined is bounded by MaxIterations so that pathological inputs
// terminate.
func (l Locator) Find(payload []byte, vertexCount, faceCount int, anchors []int) (Run, error) {
	if vertexCount <= 0 || faceCount <= 0 {
		return Run{}, ErrNotFound{}
	}
	if len(anchors) == 0 {
		anchors = []int{0}
	}

	iterations := 0
	for _, anchor := range anchors {
		if anchor < 0 {
			anchor = 0
		}
		for start := anchor; start+Width16.faceBytes() <= len(payload); start += l.Step {
			iterations++
			if iterations > l.MaxIterations {
				return Run{}, ErrNotFound{Iterations: iterations - 1}
			}
			if run, ok := l.tryStart(payload, start, vertexCount, faceCount, Width16); ok {
				return run, nil
			}
			if run, ok := l.tryStart(payload, start, vertexCount, faceCount, Width32); ok {
				return run, nil
			}
		}
	}
	return Run{}, ErrNotFound{Iterations: iterations}
}

func (l Locator) tryStart(payload []byte, start, vertexCount, faceCount int, width Width) (Run, bool) {
	prefix := l.PrefixFaces
	if faceCount < prefix {
		prefix = faceCount
	}

	zeroes := 0
	off := start
	for i := 0; i < prefix; i++ {
		face, ok := readTriple(payload, off, width)
		if !ok {
			return Run{}, false
		}
		for _, index := range face {
			if index >= uint32(vertexCount) {
				return Run{}, false
			}
			if index == 0 {
				zeroes++
			}
		}
		off += width.faceBytes()
	}
	if float64(zeroes)/float64(prefix*3) > l.ZeroRatioLimit {
		return Run{}, false
	}

	faces, ok := readRunBounded(payload, start, faceCount, vertexCount, width)
	if !ok {
		return Run{}, false
	}
	return Run{Offset: start, Width: width, Faces: faces}, true
}

func readTriple(payload []byte, off int, width Width) ([3]uint32, bool) {
	if off < 0 || off+width.faceBytes() > len(payload) {
		return [3]uint32{}, false
	}
	var face [3]uint32
	if width == Width32 {
		for i := 0; i < 3; i++ {
			face[i] = binary.LittleEndian.Uint32(payload[off+i*4:])
		}
	} else {
		for i := 0; i < 3; i++ {
			face[i] = uint32(binary.LittleEndian.Uint16(payload[off+i*2:]))
		}
	}
	return face, true
}

func readRunBounded(payload []byte, off, faceCount, vertexCount int, width Width) ([][3]uint32, bool) {
	faces := make([][3]uint32, 0, faceCount)
	for i := 0; i < faceCount; i++ {
		face, ok := readTriple(payload, off, width)
		if !ok {
			return nil, false
		}
		for _, index := range face {
			if index >= uint32(vertexCount) {
				return nil, false
			}
		}
		faces = append(faces, face)
		off += width.faceBytes()
	}
	return faces, true
}

// ReadRun decodes faceCount triples at a known offset without bounding
// the index values; the layouts with fixed index positions use it and
// leave plausibility to the caller.
func ReadRun(payload []byte, off, faceCount int, width Width) ([][3]uint32, error) {
	need := off + faceCount*width.faceBytes()
	if off < 0 || faceCount < 0 || need > len(payload) {
		return nil, fmt.Errorf("index run at 0x%X: need %d bytes, have %d", off, need, len(payload))
	}
	faces := make([][3]uint32, faceCount)
	for i := range faces {
		faces[i], _ = readTriple(payload, off, width)
		off += width.faceBytes()
	}
	return faces, nil
}
