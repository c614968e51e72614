package mesh

type (
	// Vertex is a position in model space, already dequantized.
	Vertex = [3]float32
	// UV is a texture coordinate pair.
	UV = [2]float32
	// Face is an ordered triple of zero-based vertex indices. Both
	// 16- and 32-bit source indices widen into it. Degenerate faces
	// survive decoding and are filtered at export time.
	Face = [3]uint32

	// DecodedMesh is the canonical result of one successful decode.
	// When accepted, UVs is either empty or exactly as long as
	// Vertices, Faces is non-empty, and every index is in bounds.
	DecodedMesh struct {
		Vertices []Vertex
		UVs      []UV
		Faces    []Face
	}

	// ParseOutcome is the terminal result of one decode call: either
	// a mesh plus the name of the strategy that produced it, or the
	// error that exhausted the strategy chain.
	ParseOutcome struct {
		Mesh     *DecodedMesh
		Strategy string
		Err      error
	}

	// DecodeOptions is the explicit per-call configuration. The
	// zero value gets sensible defaults.
	DecodeOptions struct {
		// MaxIterations caps the index-region scan; <= 0 means the
		// default. This is the only long-running loop in a decode,
		// so it is also the only cancellation budget.
		MaxIterations int
		// PreferPacked moves the packed/quantized strategies to the
		// front of the chain. Set from the auxiliary metadata table
		// or filename keywords; never required for correctness.
		PreferPacked bool
		// Trace logs every strategy failure.
		Trace bool
	}
)

func (o ParseOutcome) Success() bool {
	return o.Err == nil && o.Mesh != nil
}
