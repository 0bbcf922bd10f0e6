package renderer

import "testing"

func TestColorFormat(t *testing.T) {
	tests := []struct {
		in       string
		want     ColorFormat
		channels int
	}{
		{"alpha8", Alpha8, 1},
		{"", Alpha8, 1},
		{"RGB32", RGB32, 4},
	}
	for _, tt := range tests {
		f, err := ParseColorFormat(tt.in)
		if err != nil {
			t.Fatalf("ParseColorFormat(%q) error: %v", tt.in, err)
		}
		if f != tt.want || f.Channels() != tt.channels {
			t.Fatalf("ParseColorFormat(%q) = %v (%d channels)", tt.in, f, f.Channels())
		}
	}
	if _, err := ParseColorFormat("bgr24"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
	if Alpha8.SelfColored() || !RGB32.SelfColored() {
		t.Fatalf("unexpected tint responsibility")
	}
}

func TestPixelBufferRelease(t *testing.T) {
	b := &PixelBuffer{Width: 1, Height: 1, Stride: 1, Pix: []byte{0xFF}}
	if b.Released() {
		t.Fatalf("fresh buffer reported released")
	}
	b.Release()
	if !b.Released() {
		t.Fatalf("buffer not released")
	}
	var nilBuf *PixelBuffer
	nilBuf.Release()
}

func TestAlpha8ImageUsesTint(t *testing.T) {
	buf := &PixelBuffer{
		Width:  2,
		Height: 1,
		Stride: 2,
		Format: Alpha8,
		Tint:   0x80FF0000,
		Pix:    []byte{0, 255},
	}
	img := buf.Image()
	_, _, _, a0 := img.At(0, 0).RGBA()
	if a0 != 0 {
		t.Fatalf("expected transparent pixel, alpha %d", a0)
	}
	r, g, b, a := img.At(1, 0).RGBA()
	if a>>8 != 0x80 || r == 0 || g != 0 || b != 0 {
		t.Fatalf("unexpected tinted pixel r=%d g=%d b=%d a=%d", r, g, b, a)
	}
}

func TestRGB32ImageSharesPixels(t *testing.T) {
	buf := &PixelBuffer{Width: 1, Height: 1, Stride: 4, Format: RGB32, Pix: []byte{1, 2, 3, 255}}
	r, g, b, a := buf.Image().At(0, 0).RGBA()
	if r>>8 != 1 || g>>8 != 2 || b>>8 != 3 || a>>8 != 255 {
		t.Fatalf("unexpected pixel %d %d %d %d", r, g, b, a)
	}
}
