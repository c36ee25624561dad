package main

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/stage"
	"github.com/gogpu/stage/render"
	"github.com/gogpu/stage/renderable"
)

// Scene is the YAML description of what the demo draws.
type Scene struct {
	Width      int      `yaml:"width"`
	Height     int      `yaml:"height"`
	Background string   `yaml:"background"`
	Shapes     []Shape  `yaml:"shapes"`
	Sprites    []Sprite `yaml:"sprites"`
	Lights     []Light  `yaml:"lights"`
}

// Shape is a filled or stroked primitive. Kind is one of rect, strokeRect,
// ellipse, strokeEllipse or line. For ellipses X/Y is the centre and W/H
// the radii; for lines X/Y and X2/Y2 are the end points.
type Shape struct {
	Kind   string   `yaml:"kind"`
	X      float64  `yaml:"x"`
	Y      float64  `yaml:"y"`
	W      float64  `yaml:"w"`
	H      float64  `yaml:"h"`
	X2     float64  `yaml:"x2"`
	Y2     float64  `yaml:"y2"`
	Color  string   `yaml:"color"`
	Alpha  *float32 `yaml:"alpha"`
	Rotate float64  `yaml:"rotate"` // degrees, around X/Y
}

// Sprite is a checkerboard sprite; the demo has no asset loading.
type Sprite struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Size  int     `yaml:"size"`
	Tile  int     `yaml:"tile"`
	Tint  string  `yaml:"tint"`
	FlipX bool    `yaml:"flipX"`
}

// Light is a Light2d.
type Light struct {
	X         float64  `yaml:"x"`
	Y         float64  `yaml:"y"`
	Radius    float64  `yaml:"radius"`
	RadiusY   float64  `yaml:"radiusY"`
	Color     string   `yaml:"color"`
	Intensity *float32 `yaml:"intensity"`
}

const defaultScene = `
width: 480
height: 320
background: "#1b1d2b"
shapes:
  - {kind: rect, x: 40, y: 40, w: 120, h: 80, color: "#e94f37"}
  - {kind: rect, x: 100, y: 80, w: 120, h: 80, color: "#3f88c5", alpha: 0.7}
  - {kind: strokeRect, x: 40, y: 40, w: 180, h: 120, color: "#ffffff"}
  - {kind: ellipse, x: 340, y: 100, w: 70, h: 40, color: "#f6ae2d"}
  - {kind: strokeEllipse, x: 340, y: 100, w: 80, h: 50, color: "#ffffff"}
  - {kind: rect, x: 360, y: 240, w: 50, h: 50, color: "#44bba4", rotate: 30}
  - {kind: line, x: 20, y: 300, x2: 460, y2: 200, color: "#ffffff"}
sprites:
  - {x: 120, y: 240, size: 64, tile: 8, tint: "#ffffff"}
  - {x: 220, y: 240, size: 64, tile: 16, tint: "#ffaa88", flipX: true}
lights:
  - {x: 240, y: 160, radius: 140, radiusY: 100, color: "#ffe8b0", intensity: 0.5}
`

// LoadScene reads a scene from path. An empty path returns the built-in
// scene.
func LoadScene(path string) (*Scene, error) {
	data := []byte(defaultScene)
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, err
		}
	}
	return ParseScene(data)
}

// ParseScene decodes and validates a YAML scene.
func ParseScene(data []byte) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	if s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("scene: invalid size %dx%d", s.Width, s.Height)
	}
	for i, sh := range s.Shapes {
		if _, ok := shapeKinds[sh.Kind]; !ok {
			return nil, fmt.Errorf("scene: shape %d: unknown kind %q", i, sh.Kind)
		}
	}
	return &s, nil
}

var shapeKinds = map[string]func(r render.Renderer, s Shape) error{
	"rect":          func(r render.Renderer, s Shape) error { return r.FillRect(0, 0, s.W, s.H) },
	"strokeRect":    func(r render.Renderer, s Shape) error { return r.StrokeRect(0, 0, s.W, s.H) },
	"ellipse":       func(r render.Renderer, s Shape) error { return r.FillEllipse(0, 0, s.W, s.H) },
	"strokeEllipse": func(r render.Renderer, s Shape) error { return r.StrokeEllipse(0, 0, s.W, s.H) },
	"line":          func(r render.Renderer, s Shape) error { return r.StrokeLine(0, 0, s.X2-s.X, s.Y2-s.Y) },
}

func parseColor(s string) (stage.Color, error) {
	if s == "" {
		return stage.White, nil
	}
	return stage.ParseHex(s)
}

// Draw renders the scene and flushes. Drawables are destroyed before
// Draw returns.
func (s *Scene) Draw(r render.Renderer) error {
	bg, err := parseColor(s.Background)
	if err != nil {
		return fmt.Errorf("background: %w", err)
	}
	if err := r.ClearColor(bg); err != nil {
		return err
	}

	for i, sh := range s.Shapes {
		if err := drawShape(r, sh); err != nil {
			return fmt.Errorf("shape %d: %w", i, err)
		}
	}

	var lights []*renderable.Light2d
	defer func() {
		for _, l := range lights {
			l.Destroy()
		}
	}()

	var drawables []renderable.Drawable
	for i, sp := range s.Sprites {
		d, err := newSprite(sp)
		if err != nil {
			return fmt.Errorf("sprite %d: %w", i, err)
		}
		drawables = append(drawables, d)
	}
	for i, l := range s.Lights {
		c, err := parseColor(l.Color)
		if err != nil {
			return fmt.Errorf("light %d: %w", i, err)
		}
		opts := []renderable.LightOption{renderable.WithColor(c)}
		if l.RadiusY > 0 {
			opts = append(opts, renderable.WithRadiusY(l.RadiusY))
		}
		if l.Intensity != nil {
			opts = append(opts, renderable.WithIntensity(*l.Intensity))
		}
		light := renderable.NewLight2d(l.X, l.Y, l.Radius, opts...)
		lights = append(lights, light)
		drawables = append(drawables, light)
	}
	for _, d := range drawables {
		if err := d.Draw(r); err != nil {
			return err
		}
	}
	return r.Flush()
}

func drawShape(r render.Renderer, sh Shape) error {
	c, err := parseColor(sh.Color)
	if err != nil {
		return err
	}
	r.Save()
	defer func() { _ = r.Restore() }()
	r.SetColor(c)
	if sh.Alpha != nil {
		r.SetGlobalAlpha(*sh.Alpha)
	}
	r.Translate(sh.X, sh.Y)
	if sh.Rotate != 0 {
		r.Rotate(sh.Rotate * math.Pi / 180)
	}
	return shapeKinds[sh.Kind](r, sh)
}

func newSprite(sp Sprite) (*renderable.Sprite, error) {
	tint, err := parseColor(sp.Tint)
	if err != nil {
		return nil, err
	}
	size, tile := max(sp.Size, 1), max(sp.Tile, 1)
	s := renderable.NewSprite(sp.X, sp.Y, render.NewImageFromRGBA(checkerboard(size, tile)))
	s.Tint = tint
	s.FlipX = sp.FlipX
	return s, nil
}

func checkerboard(size, tile int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	light := color.RGBA{230, 230, 230, 255}
	dark := color.RGBA{60, 60, 70, 255}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := dark
			if (x/tile+y/tile)%2 == 0 {
				c = light
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}
