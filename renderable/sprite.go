package renderable

import (
	"image"

	"github.com/gogpu/stage"
	"github.com/gogpu/stage/render"
)

// Sprite draws a region of an image.
type Sprite struct {
	Renderable

	Image *render.Image
	// Region is the source rectangle in image pixels.
	Region image.Rectangle
	// Tint multiplies the image colors. Opaque white draws it unchanged.
	Tint         stage.Color
	FlipX, FlipY bool
}

// NewSprite returns a sprite showing all of img, centred on (x, y).
func NewSprite(x, y float64, img *render.Image) *Sprite {
	s := &Sprite{
		Image:  img,
		Region: image.Rect(0, 0, img.Width(), img.Height()),
		Tint:   stage.White,
	}
	s.init(x, y, float64(img.Width()), float64(img.Height()))
	return s
}

// SetRegion selects the source rectangle and resizes the sprite to it.
func (s *Sprite) SetRegion(r image.Rectangle) {
	s.Region = r
	s.Resize(float64(r.Dx()), float64(r.Dy()))
}

// Draw implements Drawable.
func (s *Sprite) Draw(r render.Renderer) error {
	if s.Image == nil || s.Region.Empty() || !s.preDraw(r) {
		return nil
	}
	defer s.postDraw(r)

	b := s.Bounds()
	r.SetColor(s.Tint)
	r.Translate(b.Min.X, b.Min.Y)
	if s.FlipX || s.FlipY {
		sx, sy := 1.0, 1.0
		if s.FlipX {
			sx = -1
		}
		if s.FlipY {
			sy = -1
		}
		r.Translate(s.Width/2, s.Height/2)
		r.Scale(sx, sy)
		r.Translate(-s.Width/2, -s.Height/2)
	}
	rg := s.Region
	return r.DrawImage(s.Image,
		float64(rg.Min.X), float64(rg.Min.Y), float64(rg.Dx()), float64(rg.Dy()),
		0, 0, s.Width, s.Height)
}
