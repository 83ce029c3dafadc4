package hal

// RGB565 packs an 8-bit-per-channel color into the framebuffer format.
func RGB565(r, g, b uint8) uint16 {
	rr := uint16(r>>3) & 0x1F
	gg := uint16(g>>2) & 0x3F
	bb := uint16(b>>3) & 0x1F
	return (rr << 11) | (gg << 5) | bb
}

func rgb888From565(p uint16) (r, g, b uint8) {
	rr := (p >> 11) & 0x1F
	gg := (p >> 5) & 0x3F
	bb := p & 0x1F

	r = uint8((rr * 255) / 31)
	g = uint8((gg * 255) / 63)
	b = uint8((bb * 255) / 31)
	return r, g, b
}

// expandRGB565 converts little-endian RGB565 pixels in src to opaque RGBA
// in dst, stopping at whichever runs out first.
func expandRGB565(dst, src []byte) {
	for i, j := 0, 0; i+1 < len(src) && j+3 < len(dst); i, j = i+2, j+4 {
		dst[j], dst[j+1], dst[j+2] = rgb888From565(uint16(src[i]) | uint16(src[i+1])<<8)
		dst[j+3] = 0xFF
	}
}
