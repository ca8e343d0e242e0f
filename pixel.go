package mandelbrot

import "fmt"

// PixelBuffer holds one packed pixel per point of a frame in row-major
// order. Each value is laid out as 0x00RRGGBB: the top byte is always zero,
// the low three bytes carry an 8-bit grayscale value replicated across the
// red, green, and blue channels.
type PixelBuffer []uint32

// NewPixelBuffer allocates a zeroed buffer sized for one frame at the given
// resolution.
func NewPixelBuffer(res Resolution) PixelBuffer {
	return make(PixelBuffer, res.PixelCount())
}

// PackEscape converts an escape-time result to a packed grayscale pixel.
// Escaped points map their iteration count to a gray level; bounded points
// are black.
func PackEscape(r EscapeResult) uint32 {
	if !r.Escaped {
		return 0
	}
	c := uint32(r.Iterations)
	return c<<16 | c<<8 | c
}

// RepackRGBA converts tightly packed RGBA8 texture bytes into packed pixels.
// Each channel byte is shifted into place individually, so the result is
// independent of host byte order. Reinterpreting the byte slice as []uint32
// would flip the channels on big-endian hosts.
//
// src must hold at least 4 bytes per destination pixel; the alpha byte is
// discarded.
func RepackRGBA(src []byte, dst PixelBuffer) {
	if len(src) < len(dst)*4 {
		panic(fmt.Sprintf("mandelbrot: RGBA source %d bytes, need %d", len(src), len(dst)*4))
	}
	for i := range dst {
		r := uint32(src[i*4])
		g := uint32(src[i*4+1])
		b := uint32(src[i*4+2])
		dst[i] = r<<16 | g<<8 | b
	}
}
