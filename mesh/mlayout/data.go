package mlayout

type (
	// IndexPolicy declares how a layout expects triangle indices to be
	// found once the payload is decompressed.
	IndexPolicy int

	// Candidate is one hypothesis about where the compressed-size,
	// uncompressed-size, and payload fields live in a file header.
	// Candidates are pure configuration data; the ordered table below
	// reflects observed variance across asset export versions.
	Candidate struct {
		CompressedSizeOff   int
		UncompressedSizeOff int
		PayloadOff          int
		// SizeFieldWidth is 4 or 2: some exports store the block
		// sizes as 16-bit fields.
		SizeFieldWidth int
		// LODCountOff is the LOD-count field of the oldest layout
		// generation; 0 when the layout has no such field.
		LODCountOff int
		IndexPolicy IndexPolicy
	}
)

const (
	// IndexFixed16 means 16-bit index triples sit contiguously after
	// the UV block.
	IndexFixed16 IndexPolicy = iota
	// IndexProbe means the index region has no reliable offset and
	// must be located by scanning.
	IndexProbe
)

const (
	MaxCompressedSize   = 10 << 20
	MaxUncompressedSize = 50 << 20
)

// Offsets shared by every known layout generation of the structured
// header. See ParseFileHeader.
const (
	FileLODCountOff         = 0x44
	FileCompressedSizeOff   = 0x4E
	FileUncompressedSizeOff = 0x52
	FilePayloadOff          = 0x56
)

// Payload-level offsets shared by the decompressed layout families.
// The count pair at 0x74/0x78 holds for both the quantized/packed
// generation and the direct-float container.
const (
	QuantHeaderOff  = 0x60
	SharedCountOff  = 0x74
	TotalIndexOff   = 0x78
	QuantVertexOff  = 0x7C
	DirectVertexOff = 0xB3
)
