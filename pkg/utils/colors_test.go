package utils

import (
	"image/color"
	"math"
	"testing"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    color.RGBA
		wantErr bool
	}{
		{
			name:  "red with hash",
			input: "#FF0000",
			want:  color.RGBA{R: 0xff, A: 0xff},
		},
		{
			name:  "gold without hash",
			input: "FFD700",
			want:  color.RGBA{R: 0xff, G: 0xd7, A: 0xff},
		},
		{
			name:  "lowercase",
			input: "#00ff88",
			want:  color.RGBA{G: 0xff, B: 0x88, A: 0xff},
		},
		{
			name:    "too short",
			input:   "#FFF",
			wantErr: true,
		},
		{
			name:    "not hex",
			input:   "#GG0000",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHexColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHexColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseHexColor(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestColorDistance(t *testing.T) {
	red := color.RGBA{R: 0xff, A: 0xff}
	green := color.RGBA{G: 0xff, A: 0xff}

	if d := ColorDistance(red, red); d != 0 {
		t.Errorf("distance to self = %f, want 0", d)
	}

	want := math.Sqrt(2) * 255
	if d := ColorDistance(red, green); math.Abs(d-want) > 1e-9 {
		t.Errorf("red/green distance = %f, want %f", d, want)
	}

	// 色彩冲刺的默认容差为 30：接近的颜色应落在容差内
	near := color.RGBA{R: 0xf0, G: 0x08, A: 0xff}
	if d := ColorDistance(red, near); d > 30 {
		t.Errorf("near-red distance = %f, want <= 30", d)
	}
}

func TestContrastTextColor(t *testing.T) {
	white := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	black := color.RGBA{A: 0xff}

	if got := ContrastTextColor(color.RGBA{R: 0xff, G: 0xd7, A: 0xff}); got != black {
		t.Errorf("gold background should use black text, got %v", got)
	}
	if got := ContrastTextColor(color.RGBA{R: 0x20, G: 0x20, B: 0x60, A: 0xff}); got != white {
		t.Errorf("dark background should use white text, got %v", got)
	}
}

func TestWithOpacityClamps(t *testing.T) {
	c := color.RGBA{R: 200, G: 100, B: 50, A: 0xff}

	if got := WithOpacity(c, 2.0); got != c {
		t.Errorf("opacity > 1 should clamp to full color, got %v", got)
	}
	if got := WithOpacity(c, -1.0); got != (color.RGBA{}) {
		t.Errorf("opacity < 0 should clamp to transparent, got %v", got)
	}

	half := WithOpacity(c, 0.5)
	if half.A != 127 || half.R != 100 {
		t.Errorf("half opacity = %v, want premultiplied half", half)
	}
}
