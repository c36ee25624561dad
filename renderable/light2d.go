package renderable

import (
	"image"
	"image/color"
	"math"

	"github.com/chewxy/math32"

	"github.com/gogpu/stage"
	"github.com/gogpu/stage/render"
)

// DefaultLightIntensity is the intensity of a light created without
// WithIntensity.
const DefaultLightIntensity = 0.7

// DefaultLightColor is the color of a light created without WithColor.
var DefaultLightColor = stage.Hex("#FFF")

// LightOption configures a Light2d.
type LightOption func(*lightOptions)

type lightOptions struct {
	radiusY   float64
	color     stage.Color
	intensity float32
}

// WithRadiusY sets the vertical radius. It defaults to the horizontal one.
func WithRadiusY(r float64) LightOption {
	return func(o *lightOptions) { o.radiusY = r }
}

// WithColor sets the light color.
func WithColor(c stage.Color) LightOption {
	return func(o *lightOptions) { o.color = c }
}

// WithIntensity sets the alpha at the centre of the light, in [0, 1].
func WithIntensity(i float32) LightOption {
	return func(o *lightOptions) { o.intensity = i }
}

// Light2d is a 2D point light: a radial gradient from Color at Intensity in
// the centre to transparent at the edge of an ellipse.
//
// The gradient texture is generated once, at construction. Changing the
// radii or color afterwards affects VisibleArea but not the texture.
type Light2d struct {
	Renderable

	Color            stage.Color
	RadiusX, RadiusY float64
	Intensity        float32

	visibleArea stage.Ellipse
	texture     *render.Image
	drawnOn     map[render.Renderer]struct{}
	destroyed   bool
}

// NewLight2d creates a light centred on (x, y) with horizontal radius
// radiusX.
func NewLight2d(x, y, radiusX float64, opts ...LightOption) *Light2d {
	o := lightOptions{
		radiusY:   radiusX,
		color:     DefaultLightColor,
		intensity: DefaultLightIntensity,
	}
	for _, opt := range opts {
		opt(&o)
	}

	l := &Light2d{
		Color:     o.color,
		RadiusX:   radiusX,
		RadiusY:   o.radiusY,
		Intensity: min(max(o.intensity, 0), 1),
		drawnOn:   make(map[render.Renderer]struct{}),
	}
	l.init(x, y, radiusX*2, o.radiusY*2)
	l.visibleArea = stage.NewEllipse(x, y, l.RadiusX, l.RadiusY)
	l.Pos.OnUpdate(l.onMove)
	l.texture = render.NewImageFromRGBA(radialGradient(l.Width, l.Height, l.Color, l.Intensity))
	return l
}

func (l *Light2d) onMove(x, y, _, _ float64) (stage.Vec2, bool) {
	l.visibleArea.Pos = stage.V2(x, y)
	return stage.Vec2{}, false
}

// VisibleArea returns the ellipse lit by the light.
func (l *Light2d) VisibleArea() stage.Ellipse {
	l.visibleArea.RadiusX, l.visibleArea.RadiusY = l.RadiusX, l.RadiusY
	return l.visibleArea
}

// Texture returns the gradient image, or nil after Destroy.
func (l *Light2d) Texture() *render.Image { return l.texture }

// Draw implements Drawable. The light is drawn with an opaque white tint so
// the gradient keeps its own color.
func (l *Light2d) Draw(r render.Renderer) error {
	if l.destroyed {
		return ErrDestroyed
	}
	if !l.preDraw(r) {
		return nil
	}
	defer l.postDraw(r)

	b := l.Bounds()
	r.SetColor(stage.White)
	tw, th := float64(l.texture.Width()), float64(l.texture.Height())
	l.drawnOn[r] = struct{}{}
	return r.DrawImage(l.texture, 0, 0, tw, th, b.Min.X, b.Min.Y, l.Width, l.Height)
}

// Destroy releases the texture from every renderer that drew the light and
// detaches the position callback. Destroy is idempotent.
func (l *Light2d) Destroy() {
	if l.destroyed {
		return
	}
	l.destroyed = true
	for r := range l.drawnOn {
		r.ReleaseImage(l.texture)
	}
	clear(l.drawnOn)
	l.Pos.OnUpdate(nil)
	l.texture = nil
	slogger().Debug("renderable: light destroyed", "x", l.Pos.X(), "y", l.Pos.Y())
}

// radialGradient renders a w x h premultiplied gradient: c at alpha
// intensity in the centre, fading linearly to transparent at the inscribed
// ellipse.
func radialGradient(w, h float64, c stage.Color, intensity float32) *image.RGBA {
	iw, ih := max(int(math.Ceil(w)), 1), max(int(math.Ceil(h)), 1)
	img := image.NewRGBA(image.Rect(0, 0, iw, ih))
	rx, ry := float32(iw)/2, float32(ih)/2
	for y := 0; y < ih; y++ {
		dy := (float32(y) + 0.5 - ry) / ry
		for x := 0; x < iw; x++ {
			dx := (float32(x) + 0.5 - rx) / rx
			d := math32.Sqrt(dx*dx + dy*dy)
			if d >= 1 {
				continue
			}
			a := intensity * c.A * (1 - d)
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(c.R*a*255 + 0.5),
				G: uint8(c.G*a*255 + 0.5),
				B: uint8(c.B*a*255 + 0.5),
				A: uint8(a*255 + 0.5),
			})
		}
	}
	return img
}
