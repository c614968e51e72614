package mfield

import (
	"math"
)

// HalfToFloat converts an IEEE 754 binary16 value to float32 bit by
// bit: sign 1, exponent 5 (bias 15), mantissa 10. Subnormals are
// normalized before the exponent is re-biased to 127, so the
// conversion is exact for every finite input.
func HalfToFloat(h uint16) float32 {
	sign := uint32(h>>15) & 1
	exp := int32(h>>10) & 0x1F
	frac := uint32(h) & 0x3FF

	switch {
	case exp == 0:
		if frac == 0 {
			// preserve signed zero
			return math.Float32frombits(sign << 31)
		}
		for frac&0x400 == 0 {
			frac <<= 1
			exp--
		}
		exp++
		frac &^= 0x400
	case exp == 31:
		if frac == 0 {
			return math.Float32frombits(sign<<31 | 0x7F80_0000)
		}
		return float32(math.NaN())
	}

	bits := sign<<31 | uint32(exp-15+127)<<23 | frac<<13
	return math.Float32frombits(bits)
}
