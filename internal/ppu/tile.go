package ppu

// decodeTile unpacks one 8x8 tile from its packed 16-byte representation
// (§4.7). Indexed [row][col], each entry a 2-bit color index.
func decodeTile(data [16]byte, flipX, flipY bool) (out [8][8]uint8) {
	for r := 0; r < 8; r++ {
		low, high := data[2*r], data[2*r+1]
		for c := 0; c < 8; c++ {
			pixel := ((high>>(7-c))&1)<<1 | (low>>(7-c))&1
			out[r][c] = pixel
		}
	}
	if flipX {
		out[0], out[7] = out[7], out[0]
		out[1], out[6] = out[6], out[1]
		out[2], out[5] = out[5], out[2]
		out[3], out[4] = out[4], out[3]
	}
	if flipY {
		for r := 0; r < 8; r++ {
			row := out[r]
			out[r] = [8]uint8{row[7], row[6], row[5], row[4], row[3], row[2], row[1], row[0]}
		}
	}
	return out
}
