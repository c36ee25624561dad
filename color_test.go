package stage

import (
	"errors"
	"image/color"
	"testing"
)

func TestHex(t *testing.T) {
	tests := []struct {
		in     string
		expect string
	}{
		{"#FFF", "#ffffffff"},
		{"fff8", "#ffffff88"},
		{"#ff8000", "#ff8000ff"},
		{"FF800080", "#ff800080"},
		{"#12", "#000000ff"},
		{"#zzz", "#000000ff"},
		{"", "#000000ff"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Hex(tt.in).String(); got != tt.expect {
				t.Errorf("Hex(%q) = %s, want %s", tt.in, got, tt.expect)
			}
		})
	}
}

func TestParseHex_Errors(t *testing.T) {
	for _, in := range []string{"", "#1", "#12345", "#ggg", "#123456789"} {
		if _, err := ParseHex(in); !errors.Is(err, ErrInvalidHex) {
			t.Errorf("ParseHex(%q) err = %v, want ErrInvalidHex", in, err)
		}
	}
}

func TestColor_PackUint32(t *testing.T) {
	tests := []struct {
		name   string
		c      Color
		expect uint32
	}{
		{"white", White, 0xffffffff},
		{"red", Red, 0xff0000ff},
		{"blue", Blue, 0xffff0000},
		{"transparent", Transparent, 0},
		{"clamped", RGBA(2, -1, 0, 1), 0xff0000ff},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.PackUint32(); got != tt.expect {
				t.Errorf("PackUint32() = %#08x, want %#08x", got, tt.expect)
			}
		})
	}
}

func TestColor_Conversions(t *testing.T) {
	c := FromColor(color.NRGBA{R: 255, G: 0, B: 255, A: 255})
	if c != RGB(1, 0, 1) {
		t.Errorf("FromColor = %v", c)
	}
	if n := RGB(1, 0, 1).NRGBA(); n != (color.NRGBA{R: 255, B: 255, A: 255}) {
		t.Errorf("NRGBA = %v", n)
	}
}

func TestColor_Ops(t *testing.T) {
	if got := White.MulAlpha(0.5); got.A != 0.5 || got.R != 1 {
		t.Errorf("MulAlpha = %v", got)
	}
	if got := RGBA(1, 0, 0, 0.5).MulAlpha(0.5); got != RGBA(1, 0, 0, 0.25) {
		t.Errorf("MulAlpha on translucent = %v, want alpha 0.25", got)
	}
	if got := RGB(1, 0.5, 0).Multiply(RGBA(0.5, 1, 1, 0.5)); got != RGBA(0.5, 0.5, 0, 0.5) {
		t.Errorf("Multiply = %v", got)
	}
	if got := RGBA(1, 1, 1, 0.5).Premultiply(); got != RGBA(0.5, 0.5, 0.5, 0.5) {
		t.Errorf("Premultiply = %v", got)
	}
	if got := Black.Lerp(White, 0.5); got != RGB(0.5, 0.5, 0.5) {
		t.Errorf("Lerp = %v", got)
	}
}
