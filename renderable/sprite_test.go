package renderable

import (
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/stage"
	"github.com/gogpu/stage/render"
)

// twoTone returns a 4x2 image: red on the left half, blue on the right.
func twoTone() *render.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			c := color.RGBA{255, 0, 0, 255}
			if x >= 2 {
				c = color.RGBA{0, 0, 255, 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return render.NewImageFromRGBA(img)
}

func TestSpriteDraw(t *testing.T) {
	tests := []struct {
		name  string
		flipX bool
		left  color.RGBA
		right color.RGBA
	}{
		{"plain", false, color.RGBA{255, 0, 0, 255}, color.RGBA{0, 0, 255, 255}},
		{"flipped", true, color.RGBA{0, 0, 255, 255}, color.RGBA{255, 0, 0, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := render.NewCanvasRenderer(render.NewPixmapTarget(8, 4))
			defer r.Close()

			s := NewSprite(4, 2, twoTone())
			s.FlipX = tt.flipX
			if err := s.Draw(r); err != nil {
				t.Fatal(err)
			}
			if got := r.Target().Pixel(2, 2); got != tt.left {
				t.Errorf("left = %v, want %v", got, tt.left)
			}
			if got := r.Target().Pixel(5, 2); got != tt.right {
				t.Errorf("right = %v, want %v", got, tt.right)
			}
			if got := r.Target().Pixel(0, 0); got.A != 0 {
				t.Errorf("outside = %v", got)
			}
		})
	}
}

func TestSpriteRegionAndAlpha(t *testing.T) {
	s := NewSprite(0, 0, twoTone())
	s.SetRegion(image.Rect(2, 0, 4, 2))
	if s.Width != 2 || s.Height != 2 {
		t.Fatalf("size after SetRegion = %gx%g", s.Width, s.Height)
	}
	s.Anchor = stage.V2(0, 0)
	s.Alpha = 0.5

	r := render.NewCanvasRenderer(render.NewPixmapTarget(4, 4))
	defer r.Close()
	if err := s.Draw(r); err != nil {
		t.Fatal(err)
	}
	got := r.Target().Pixel(1, 1)
	if got.B < 120 || got.B > 130 || got.R != 0 {
		t.Errorf("half-transparent blue region = %v", got)
	}
	if r.CurrentColor().A != 1 {
		t.Error("sprite alpha leaked into the renderer")
	}
}
