package mlayout

import (
	"bytes"

	"skymesh/ds"
)

const maxNameLength = 200

// StripNamePrefix removes the length-prefixed asset name that some
// exports prepend to the file: a uint32 name length, the name itself,
// then padding up to the next 4-byte boundary. Returns the original
// slice and false when no such prefix is present.
func StripNamePrefix(data []byte) ([]byte, bool) {
	if len(data) < 4 {
		return data, false
	}
	nameLen := int(uint32(data[0]) | uint32(data[1])<<8 | uint32(data[2])<<16 | uint32(data[3])<<24)
	if nameLen < 4 || nameLen > maxNameLength || 4+nameLen > len(data) {
		return data, false
	}
	name := data[4 : 4+nameLen]
	if end := bytes.IndexByte(name, 0); end >= 0 {
		name = name[:end]
	}
	if len(name) == 0 || !printableASCII(name) {
		return data, false
	}
	headerSize := ds.NearestDivisibleByM(4+nameLen, 4)
	if headerSize >= len(data) {
		return data, false
	}
	return data[headerSize:], true
}

func printableASCII(bs []byte) bool {
	for _, b := range bs {
		if b < 0x20 || b >= 0x7F {
			return false
		}
	}
	return true
}
