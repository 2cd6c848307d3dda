package conv

const hexLower = "0123456789abcdef"

// HexReversed writes src as lowercase hex into dst, last byte first, and
// returns the used slice. dst must hold 2*len(src) bytes; a short dst yields
// dst[:0].
func HexReversed(dst, src []byte) []byte {
	n := 2 * len(src)
	if len(dst) < n {
		return dst[:0]
	}
	j := 0
	for i := len(src) - 1; i >= 0; i-- {
		b := src[i]
		dst[j] = hexLower[b>>4]
		dst[j+1] = hexLower[b&0x0F]
		j += 2
	}
	return dst[:n]
}
