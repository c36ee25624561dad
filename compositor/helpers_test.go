package compositor_test

import (
	"testing"

	"github.com/gogpu/stage"
	"github.com/gogpu/stage/compositor"
	"github.com/gogpu/stage/event"
	"github.com/gogpu/stage/recording"
)

// testRenderer is a minimal compositor.Renderer.
type testRenderer struct {
	gl        compositor.Context
	color     stage.Color
	transform stage.Matrix
	proj      stage.Matrix3D
	w, h      int
	version   int
}

func (r *testRenderer) GL() compositor.Context           { return r.gl }
func (r *testRenderer) CurrentColor() stage.Color        { return r.color }
func (r *testRenderer) CurrentTransform() stage.Matrix   { return r.transform }
func (r *testRenderer) ProjectionMatrix() stage.Matrix3D { return r.proj }
func (r *testRenderer) CanvasSize() (int, int)           { return r.w, r.h }
func (r *testRenderer) GLVersion() int                   { return r.version }

func newTestRenderer(gl compositor.Context) *testRenderer {
	return &testRenderer{
		gl:        gl,
		color:     stage.White,
		transform: stage.Identity(),
		proj:      stage.Ortho(0, 640, 480, 0, -1, 1),
		w:         640,
		h:         480,
		version:   2,
	}
}

// newTestCompositor returns a compositor with a 3-float layout (x, y, packed
// color) on a private resize channel, and its recording context.
func newTestCompositor(t *testing.T, opts ...compositor.Option) (*compositor.Compositor, *recording.Context, *event.Channel[event.Size]) {
	t.Helper()
	ctx := recording.NewContext()
	ch := new(event.Channel[event.Size])
	opts = append([]compositor.Option{compositor.WithResizeChannel(ch)}, opts...)
	c, err := compositor.New(newTestRenderer(ctx), opts...)
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	if err := c.AddAttribute("aVertex", 2, compositor.Float32, false, 0); err != nil {
		t.Fatalf("AddAttribute(aVertex) = %v", err)
	}
	if err := c.AddAttribute("aColor", 4, compositor.Uint8, true, 8); err != nil {
		t.Fatalf("AddAttribute(aColor) = %v", err)
	}
	return c, ctx, ch
}

func pushN(t *testing.T, c *compositor.Compositor, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := c.Push(float32(i), float32(i*2), 0); err != nil {
			t.Fatalf("Push(%d) = %v", i, err)
		}
	}
}

func typesEqual(got, want []recording.CommandType) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
