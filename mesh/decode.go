package mesh

import (
	"encoding/binary"
	"log"

	"github.com/pkg/errors"

	"skymesh/mesh/mindex"
	"skymesh/mesh/mvalid"
)

// DefaultMaxIterations bounds the index-region scan of one strategy
// attempt. Raising it helps truncated files at the cost of decode time.
const DefaultMaxIterations = 5000

// Strategy names as reported in ParseOutcome and batch reports.
const (
	StrategyStructured = "structured-header"
	StrategyDirect     = "direct-float"
	StrategyQuantized  = "quantized"
	StrategyPacked     = "packed-tail"
	StrategyScan       = "exhaustive-scan"
	StrategyLegacy     = "legacy-heuristic"
)

type strategy struct {
	name   string
	decode func(data []byte, opts DecodeOptions) (*DecodedMesh, error)
}

func strategyChain(opts DecodeOptions) []strategy {
	chain := []strategy{
		{StrategyStructured, decodeStructured},
		{StrategyDirect, decodeDirect},
		{StrategyQuantized, decodeQuantized},
		{StrategyPacked, decodePacked},
		{StrategyScan, decodeScan},
		{StrategyLegacy, decodeLegacy},
	}
	if opts.PreferPacked {
		chain = []strategy{
			{StrategyPacked, decodePacked},
			{StrategyQuantized, decodeQuantized},
			{StrategyStructured, decodeStructured},
			{StrategyDirect, decodeDirect},
			{StrategyScan, decodeScan},
			{StrategyLegacy, decodeLegacy},
		}
	}
	return chain
}

// DecodeMesh runs the strategy chain over one raw file image and
// returns the first plausible mesh. Strategy failures never escape
// individually; a fully exhausted chain yields ErrAllStrategiesFailed
// wrapping the last failure. The input slice is never mutated.
func DecodeMesh(data []byte, opts DecodeOptions) ParseOutcome {
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultMaxIterations
	}
	var lastErr error
	for _, s := range strategyChain(opts) {
		decoded, err := s.decode(data, opts)
		if err != nil {
			if opts.Trace {
				log.Printf(`DecodeMesh: strategy %q: %v`, s.name, err)
			}
			lastErr = errors.Wrap(err, s.name)
			continue
		}
		if !mvalid.IsPlausible(len(decoded.Vertices), decoded.Faces) {
			err := ErrImplausibleResult{
				VertexCount: len(decoded.Vertices),
				FaceCount:   len(decoded.Faces),
			}
			if opts.Trace {
				log.Printf(`DecodeMesh: strategy %q: %v`, s.name, err)
			}
			lastErr = errors.Wrap(err, s.name)
			continue
		}
		return ParseOutcome{
			Mesh:     decoded,
			Strategy: s.name,
		}
	}
	return ParseOutcome{
		Err: ErrAllStrategiesFailed{Last: lastErr},
	}
}

func locatorFor(opts DecodeOptions) mindex.Locator {
	locator := mindex.NewLocator()
	if opts.MaxIterations > 0 {
		locator.MaxIterations = opts.MaxIterations
	}
	return locator
}

func readInt32At(data []byte, offset int) (int, bool) {
	if offset < 0 || offset+4 > len(data) {
		return 0, false
	}
	return int(int32(binary.LittleEndian.Uint32(data[offset:]))), true
}
