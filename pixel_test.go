package mandelbrot

import "testing"

func TestPackEscape(t *testing.T) {
	tests := []struct {
		name string
		in   EscapeResult
		want uint32
	}{
		{"bounded is black", EscapeResult{}, 0},
		{"bounded ignores stale index", EscapeResult{Iterations: 200}, 0},
		{"index zero", EscapeResult{Iterations: 0, Escaped: true}, 0x000000},
		{"index one", EscapeResult{Iterations: 1, Escaped: true}, 0x010101},
		{"mid gray", EscapeResult{Iterations: 0x80, Escaped: true}, 0x808080},
		{"max index", EscapeResult{Iterations: 255, Escaped: true}, 0xFFFFFF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PackEscape(tt.in)
			if got != tt.want {
				t.Errorf("PackEscape(%+v) = %#08x, want %#08x", tt.in, got, tt.want)
			}
			if got&0xFF000000 != 0 {
				t.Errorf("PackEscape(%+v) = %#08x has non-zero top byte", tt.in, got)
			}
		})
	}
}

func TestPackEscape_GrayChannelsEqual(t *testing.T) {
	for i := 0; i < 256; i++ {
		p := PackEscape(EscapeResult{Iterations: uint8(i), Escaped: true})
		r, g, b := p>>16&0xFF, p>>8&0xFF, p&0xFF
		if r != g || g != b || r != uint32(i) {
			t.Fatalf("index %d packed to %#08x, channels unequal", i, p)
		}
	}
}

func TestRepackRGBA(t *testing.T) {
	// Two pixels of RGBA bytes with distinct channel values: the packed
	// result must place R in bits 16-23 regardless of host byte order.
	src := []byte{
		0x11, 0x22, 0x33, 0xFF,
		0xAA, 0xBB, 0xCC, 0x00,
	}
	dst := make(PixelBuffer, 2)
	RepackRGBA(src, dst)

	if dst[0] != 0x112233 {
		t.Errorf("dst[0] = %#08x, want 0x112233", dst[0])
	}
	if dst[1] != 0xAABBCC {
		t.Errorf("dst[1] = %#08x, want 0xAABBCC", dst[1])
	}
}

func TestRepackRGBA_DropsAlpha(t *testing.T) {
	src := []byte{0, 0, 0, 0xFF}
	dst := make(PixelBuffer, 1)
	RepackRGBA(src, dst)
	if dst[0] != 0 {
		t.Errorf("dst[0] = %#08x, alpha leaked into packed pixel", dst[0])
	}
}

func TestRepackRGBA_ShortSourcePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	RepackRGBA(make([]byte, 7), make(PixelBuffer, 2))
}

func TestNewPixelBuffer(t *testing.T) {
	res := Resolution{Width: 64, Height: 48}
	pix := NewPixelBuffer(res)

	if uint64(len(pix)) != res.PixelCount() {
		t.Fatalf("len = %d, want %d", len(pix), res.PixelCount())
	}
	for i, p := range pix {
		if p != 0 {
			t.Fatalf("pixel %d = %#08x, want zeroed buffer", i, p)
		}
	}
}
