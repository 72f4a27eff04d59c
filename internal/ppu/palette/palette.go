// Package palette implements the BGP/OBP0/OBP1 four-shade palette
// registers (§4.7): four 2-bit slots packed LSB-first.
package palette

// Palette is a 4-entry lookup table mapping a tile's 2-bit color index
// to a DMG shade (0 = lightest, 3 = darkest).
type Palette [4]uint8

// Decode unpacks a palette register's byte into its four slots,
// slot 0 occupying bits 1-0.
func Decode(reg uint8) Palette {
	return Palette{
		reg & 0b11,
		(reg >> 2) & 0b11,
		(reg >> 4) & 0b11,
		(reg >> 6) & 0b11,
	}
}

// Encode repacks a Palette into its register byte, in the same slot
// order Decode used.
func (p Palette) Encode() uint8 {
	return p[0] | p[1]<<2 | p[2]<<4 | p[3]<<6
}

// Apply maps a 2-bit tile pixel through the palette.
func (p Palette) Apply(pixel uint8) uint8 {
	return p[pixel&0b11]
}
