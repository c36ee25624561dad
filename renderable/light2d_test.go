package renderable

import (
	"errors"
	"testing"

	"github.com/gogpu/stage"
	"github.com/gogpu/stage/recording"
	"github.com/gogpu/stage/render"
)

func TestLight2dDefaults(t *testing.T) {
	l := NewLight2d(50, 40, 20)
	defer l.Destroy()

	if l.RadiusY != 20 {
		t.Errorf("RadiusY = %g, want radiusX", l.RadiusY)
	}
	if l.Color != stage.White {
		t.Errorf("Color = %v, want #FFF", l.Color)
	}
	if l.Intensity != DefaultLightIntensity {
		t.Errorf("Intensity = %g, want %g", l.Intensity, DefaultLightIntensity)
	}
	if l.Width != 40 || l.Height != 40 {
		t.Errorf("size = %gx%g, want 40x40", l.Width, l.Height)
	}
	b := l.Bounds()
	if b.Min != stage.V2(30, 20) || b.Max != stage.V2(70, 60) {
		t.Errorf("Bounds() = %+v", b)
	}
}

func TestLight2dOptions(t *testing.T) {
	l := NewLight2d(0, 0, 10,
		WithRadiusY(5),
		WithColor(stage.Red),
		WithIntensity(2))
	defer l.Destroy()

	if l.RadiusY != 5 || l.Height != 10 {
		t.Errorf("RadiusY = %g Height = %g", l.RadiusY, l.Height)
	}
	if l.Intensity != 1 {
		t.Errorf("Intensity = %g, want clamped to 1", l.Intensity)
	}
	if tex := l.Texture(); tex.Width() != 20 || tex.Height() != 10 {
		t.Errorf("texture = %dx%d, want 20x10", tex.Width(), tex.Height())
	}
}

func TestLight2dVisibleAreaFollowsPosition(t *testing.T) {
	l := NewLight2d(10, 10, 8, WithRadiusY(4))
	defer l.Destroy()

	tests := []struct {
		name string
		move func()
		want stage.Vec2
	}{
		{"set", func() { l.Pos.Set(100, 50) }, stage.V2(100, 50)},
		{"setX", func() { l.Pos.SetX(0) }, stage.V2(0, 50)},
		{"add", func() { l.Pos.Add(stage.V2(5, 5)) }, stage.V2(5, 55)},
		{"muted", func() { l.Pos.SetMuted(1, 1) }, stage.V2(5, 55)},
	}
	for _, tt := range tests {
		tt.move()
		area := l.VisibleArea()
		if area.Pos != tt.want {
			t.Errorf("%s: VisibleArea().Pos = %v, want %v", tt.name, area.Pos, tt.want)
		}
		if area.RadiusX != 8 || area.RadiusY != 4 {
			t.Errorf("%s: radii = %g,%g", tt.name, area.RadiusX, area.RadiusY)
		}
	}
	if !l.VisibleArea().Contains(stage.V2(5, 57)) {
		t.Error("visible area does not contain a point inside the light")
	}
}

func TestRadialGradient(t *testing.T) {
	img := radialGradient(20, 20, stage.White, 0.5)
	center := img.RGBAAt(10, 10)
	if center.A < 110 || center.A > 128 {
		t.Errorf("center alpha = %d, want about 0.5", center.A)
	}
	if center.R != center.A {
		t.Errorf("center not premultiplied white: %v", center)
	}
	if corner := img.RGBAAt(0, 0); corner.A != 0 {
		t.Errorf("corner = %v, want transparent", corner)
	}
	if mid, edge := img.RGBAAt(15, 10).A, img.RGBAAt(18, 10).A; mid <= edge {
		t.Errorf("alpha does not fall off: %d then %d", mid, edge)
	}
}

func TestLight2dDrawCanvas(t *testing.T) {
	r := render.NewCanvasRenderer(render.NewPixmapTarget(64, 64))
	defer r.Close()

	l := NewLight2d(32, 32, 16, WithColor(stage.Red), WithIntensity(1))
	defer l.Destroy()
	if err := l.Draw(r); err != nil {
		t.Fatal(err)
	}
	if got := r.Target().Pixel(32, 32); got.R < 200 || got.G != 0 {
		t.Errorf("center = %v, want bright red", got)
	}
	if got := r.Target().Pixel(2, 2); got.A != 0 {
		t.Errorf("outside = %v, want untouched", got)
	}
	if r.CurrentColor() != stage.White || r.CurrentTransform() != stage.Identity() {
		t.Error("Draw leaked renderer state")
	}

	l.Visible = false
	if err := r.Clear(); err != nil {
		t.Fatal(err)
	}
	if err := l.Draw(r); err != nil {
		t.Fatal(err)
	}
	if got := r.Target().Pixel(32, 32); got.A != 0 {
		t.Errorf("invisible light drew %v", got)
	}
}

func TestLight2dDestroyReleasesTexture(t *testing.T) {
	gl := recording.NewContext()
	r, err := render.NewGPURenderer(gl, 64, 64)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	l := NewLight2d(10, 10, 5)
	for range 2 {
		if err := l.Draw(r); err != nil {
			t.Fatal(err)
		}
	}
	if err := r.Flush(); err != nil {
		t.Fatal(err)
	}
	if n := gl.Count(recording.CmdCreateTexture); n != 1 {
		t.Errorf("texture uploaded %d times, want 1", n)
	}

	l.Destroy()
	if n := gl.Count(recording.CmdDeleteTexture); n != 1 {
		t.Errorf("Destroy deleted %d textures, want 1", n)
	}
	if err := l.Draw(r); !errors.Is(err, ErrDestroyed) {
		t.Errorf("Draw after Destroy = %v, want ErrDestroyed", err)
	}
	l.Destroy()

	// The callback is detached: moving no longer updates the area.
	l.Pos.Set(99, 99)
	if l.VisibleArea().Pos == stage.V2(99, 99) {
		t.Error("visible area still follows the position after Destroy")
	}
}
