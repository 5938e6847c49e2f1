// Package fixed provides the 8/16-bit integer arithmetic primitives the
// drum engine is built on. All multiplies widen internally and shift back
// down, so no operation can overflow beyond its stated result width.
package fixed

// MulU8U8Shift8 scales a by the 8-bit gain b: (a*b)>>8.
func MulU8U8Shift8(a, b uint8) uint8 {
	return uint8(uint16(a) * uint16(b) >> 8)
}

// MulS8U8Shift8 scales the signed sample a by the 8-bit gain b: (a*b)>>8.
func MulS8U8Shift8(a int8, b uint8) int8 {
	return int8(int16(a) * int16(b) >> 8)
}

// MulU8U8 returns the widened product a*b.
func MulU8U8(a, b uint8) uint16 {
	return uint16(a) * uint16(b)
}

// Mix8 blends a toward b by the 8-bit weight w: a + ((b-a)*w)>>8.
// w=0 returns a exactly.
func Mix8(a, b, w uint8) uint8 {
	return uint8(int(a) + ((int(b)-int(a))*int(w))>>8)
}

// AddWrap16 adds inc to phase and reports whether the 16-bit sum wrapped.
// The wrap test is sum < inc, not sum == 0, so an increment that lands
// exactly on zero still counts as a wrap.
func AddWrap16(phase, inc uint16) (uint16, bool) {
	sum := phase + inc
	return sum, sum < inc
}

// InterpS8 linearly interpolates a 257-entry signed waveform table.
// The upper byte of phase selects the entry, the lower byte is the
// interpolation fraction. The delta between adjacent entries is assumed
// to fit in a signed byte; for the shipped sine table it always does.
func InterpS8(table *[257]int8, phase uint16) int8 {
	i := phase >> 8
	a := table[i]
	return a + MulS8U8Shift8(table[i+1]-a, uint8(phase))
}

// InterpU8 linearly interpolates a 257-entry unsigned shape table.
func InterpU8(table *[257]uint8, phase uint16) uint8 {
	i := phase >> 8
	return Mix8(table[i], table[i+1], uint8(phase))
}

// InterpU16 linearly interpolates a 257-entry monotonically increasing
// 16-bit table. The table must be non-decreasing so the entry delta is a
// valid unsigned quantity.
func InterpU16(table *[257]uint16, index uint16) uint16 {
	i := index >> 8
	a := table[i]
	return a + uint16(uint32(table[i+1]-a)*uint32(uint8(index))>>8)
}
