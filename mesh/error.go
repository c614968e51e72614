package mesh

import "fmt"

type (
	// ErrMalformedHeader means a size field, count, or offset failed
	// a structural check before any payload work happened.
	ErrMalformedHeader struct {
		Reason string
	}
	// ErrImplausibleResult means a strategy decoded cleanly but the
	// mesh failed the plausibility gate, so the decode kept going.
	ErrImplausibleResult struct {
		VertexCount int
		FaceCount   int
	}
	// ErrAllStrategiesFailed is the only error that escapes a decode:
	// every strategy in the chain was tried and none produced an
	// acceptable mesh. Last carries the final strategy's failure.
	ErrAllStrategiesFailed struct {
		Last error
	}
)

func (e ErrMalformedHeader) Error() string {
	return fmt.Sprintf(`malformed header: %s`, e.Reason)
}

func (e ErrImplausibleResult) Error() string {
	return fmt.Sprintf(
		`implausible mesh: %d vertices and %d faces`,
		e.VertexCount, e.FaceCount,
	)
}

func (e ErrAllStrategiesFailed) Error() string {
	if e.Last == nil {
		return `all decoding strategies failed`
	}
	return fmt.Sprintf(`all decoding strategies failed; last: %s`, e.Last)
}

func (e ErrAllStrategiesFailed) Unwrap() error {
	return e.Last
}
