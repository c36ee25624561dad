package wgpu_test

import (
	"image"
	"testing"

	"github.com/gogpu/stage"
	"github.com/gogpu/stage/backend/wgpu"
	"github.com/gogpu/stage/compositor"
	"github.com/gogpu/stage/event"
)

type renderer struct {
	gl   *wgpu.Context
	w, h int
}

func (r *renderer) GL() compositor.Context           { return r.gl }
func (r *renderer) CurrentColor() stage.Color        { return stage.Red }
func (r *renderer) CurrentTransform() stage.Matrix   { return stage.Identity() }
func (r *renderer) ProjectionMatrix() stage.Matrix3D { return stage.Ortho(0, float32(r.w), float32(r.h), 0, -1, 1) }
func (r *renderer) CanvasSize() (int, int)           { return r.w, r.h }
func (r *renderer) GLVersion() int                   { return 2 }

func setup(t *testing.T) (*renderer, *event.Channel[event.Size]) {
	t.Helper()
	dev, err := wgpu.OpenNoop()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(dev.Close)
	ctx, err := wgpu.NewContext(dev.Device, dev.Queue, 200, 100)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(ctx.Destroy)
	return &renderer{gl: ctx, w: 200, h: 100}, new(event.Channel[event.Size])
}

func TestPrimitiveCompositorOnDevice(t *testing.T) {
	r, ch := setup(t)
	p, err := compositor.NewPrimitiveCompositor(r, compositor.WithResizeChannel(ch))
	if err != nil {
		t.Fatalf("NewPrimitiveCompositor() = %v", err)
	}
	defer p.Close()

	if err := p.FillRect(10, 10, 50, 20); err != nil {
		t.Fatal(err)
	}
	if err := p.FillRect(70, 10, 50, 20); err != nil {
		t.Fatal(err)
	}
	if err := p.Flush(); err != nil {
		t.Fatal(err)
	}
	st := r.gl.Stats()
	if st.Draws != 1 || st.Vertices != 12 {
		t.Errorf("stats = %+v, want 1 draw of 12 vertices", st)
	}
	if got := len(r.gl.Uploaded()); got != 12*12 {
		t.Errorf("uploaded %d bytes, want %d", got, 12*12)
	}

	proj, ok := r.gl.BoundShader().Uniform(compositor.UniformProjection)
	if !ok || len(proj) != 64 {
		t.Fatalf("projection uniform = %d bytes, %v", len(proj), ok)
	}
	want := r.ProjectionMatrix().AppendBytes(nil)
	if string(proj) != string(want) {
		t.Error("projection uniform does not match the renderer")
	}

	if err := p.StrokeRect(0, 0, 10, 10); err != nil {
		t.Fatal(err)
	}
	// The line loop is flushed by the call and drawn as a closed strip.
	if got := r.gl.Stats().Vertices; got != 12+5 {
		t.Errorf("Vertices = %d, want 17", got)
	}
}

func TestResizeOnDevice(t *testing.T) {
	r, ch := setup(t)
	p, err := compositor.NewPrimitiveCompositor(r, compositor.WithResizeChannel(ch))
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	if err := p.FillRect(0, 0, 5, 5); err != nil {
		t.Fatal(err)
	}
	if err := r.gl.Resize(400, 300); err != nil {
		t.Fatal(err)
	}
	r.w, r.h = 400, 300
	ch.Publish(event.Size{Width: 400, Height: 300})

	if got := r.gl.Stats().Draws; got != 1 {
		t.Errorf("pending batch not drawn on resize, Draws = %d", got)
	}
	if x, y, w, h := r.gl.ViewportRect(); x != 0 || y != 0 || w != 400 || h != 300 {
		t.Errorf("viewport = %d,%d,%d,%d", x, y, w, h)
	}
}

func TestQuadCompositorOnDevice(t *testing.T) {
	r, ch := setup(t)
	q, err := compositor.NewQuadCompositor(r, compositor.WithResizeChannel(ch))
	if err != nil {
		t.Fatalf("NewQuadCompositor() = %v", err)
	}
	defer q.Close()

	a, err := q.CreateTexture(image.NewRGBA(image.Rect(0, 0, 8, 8)))
	if err != nil {
		t.Fatal(err)
	}
	b, err := q.CreateTexture(image.NewRGBA(image.Rect(0, 0, 4, 4)))
	if err != nil {
		t.Fatal(err)
	}
	for _, tex := range []compositor.Texture{a, a, b} {
		if err := q.AddQuad(tex, 0, 0, 8, 8, 0, 0, 1, 1, stage.White); err != nil {
			t.Fatal(err)
		}
	}
	if err := q.Flush(); err != nil {
		t.Fatal(err)
	}
	// One draw per texture run.
	st := r.gl.Stats()
	if st.Draws != 2 || st.Vertices != 18 {
		t.Errorf("stats = %+v, want 2 draws of 18 vertices", st)
	}
	if r.gl.BoundTexture() == nil {
		t.Error("no texture bound after drawing")
	}
}
