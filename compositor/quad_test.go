package compositor_test

import (
	"errors"
	"image"
	"testing"

	"github.com/gogpu/stage"
	"github.com/gogpu/stage/compositor"
	"github.com/gogpu/stage/event"
	"github.com/gogpu/stage/recording"
)

func newTestQuad(t *testing.T) (*compositor.QuadCompositor, *recording.Context, *testRenderer) {
	t.Helper()
	ctx := recording.NewContext()
	r := newTestRenderer(ctx)
	q, err := compositor.NewQuadCompositor(r, compositor.WithResizeChannel(new(event.Channel[event.Size])))
	if err != nil {
		t.Fatalf("NewQuadCompositor() = %v", err)
	}
	t.Cleanup(func() { _ = q.Close() })
	return q, ctx, r
}

func TestQuadCompositor_Layout(t *testing.T) {
	q, ctx, _ := newTestQuad(t)
	if q.ByteStride() != 20 || q.FloatStride() != 5 {
		t.Errorf("stride = %d / %d, want 20 / 5", q.ByteStride(), q.FloatStride())
	}
	cmd, _ := ctx.Last(recording.CmdCompileShader)
	if !cmd.(recording.CompileShaderCommand).Textured {
		t.Error("quad shader not compiled as textured")
	}
}

func TestQuadCompositor_TexturesUnsupported(t *testing.T) {
	ctx := recording.NewContext()
	_, err := compositor.NewQuadCompositor(newTestRenderer(ctx.Basic()),
		compositor.WithResizeChannel(new(event.Channel[event.Size])))
	if !errors.Is(err, compositor.ErrTexturesUnsupported) {
		t.Errorf("err = %v, want ErrTexturesUnsupported", err)
	}
}

func TestQuadCompositor_AddQuad(t *testing.T) {
	q, _, r := newTestQuad(t)
	r.transform = stage.Scaling(2, 2)
	tex, err := q.CreateTexture(image.NewRGBA(image.Rect(0, 0, 8, 8)))
	if err != nil {
		t.Fatal(err)
	}

	if err := q.AddQuad(tex, 1, 1, 4, 4, 0, 0, 1, 1, stage.White); err != nil {
		t.Fatal(err)
	}
	data := q.PendingVertices()
	if len(data) != 6*5 {
		t.Fatalf("pending = %d floats, want 30", len(data))
	}
	// last vertex: bottom-right corner (5,5) scaled to (10,10), uv (1,1)
	last := data[25:30]
	if last[0] != 10 || last[1] != 10 || last[2] != 1 || last[3] != 1 {
		t.Errorf("bottom-right vertex = %v", last)
	}
	if compositor.UnpackColor(last[4]) != stage.White {
		t.Errorf("tint = %v", compositor.UnpackColor(last[4]))
	}
	if q.BoundTexture() != tex {
		t.Error("texture not bound")
	}
}

func TestQuadCompositor_TextureChangeFlushes(t *testing.T) {
	q, ctx, _ := newTestQuad(t)
	a, _ := q.CreateTexture(image.NewRGBA(image.Rect(0, 0, 4, 4)))
	b, _ := q.CreateTexture(image.NewRGBA(image.Rect(0, 0, 4, 4)))
	ctx.ResetCommands()

	_ = q.AddQuad(a, 0, 0, 1, 1, 0, 0, 1, 1, stage.White)
	_ = q.AddQuad(a, 2, 0, 1, 1, 0, 0, 1, 1, stage.White)
	if n := ctx.Count(recording.CmdBindTexture); n != 1 {
		t.Errorf("texture bound %d times for one texture", n)
	}
	_ = q.AddQuad(b, 4, 0, 1, 1, 0, 0, 1, 1, stage.White)
	_ = q.Flush()

	want := []recording.CommandType{
		recording.CmdBindTexture,
		recording.CmdBufferData, recording.CmdDrawArrays,
		recording.CmdBindTexture,
		recording.CmdBufferData, recording.CmdDrawArrays,
	}
	if !typesEqual(ctx.Types(), want) {
		t.Errorf("commands = %v, want %v", ctx.Types(), want)
	}
	cmds := ctx.Commands()
	if d := cmds[2].(recording.DrawArraysCommand); d.Count != 12 {
		t.Errorf("first batch = %d vertices, want 12", d.Count)
	}
}

func TestQuadCompositor_DeleteBoundTexture(t *testing.T) {
	q, ctx, _ := newTestQuad(t)
	tex, _ := q.CreateTexture(image.NewRGBA(image.Rect(0, 0, 2, 2)))
	_ = q.AddQuad(tex, 0, 0, 1, 1, 0, 0, 1, 1, stage.White)

	if err := q.DeleteTexture(tex); err != nil {
		t.Fatal(err)
	}
	if q.VertexCount() != 0 || q.BoundTexture() != nil {
		t.Error("deleting the bound texture did not flush and unbind")
	}
	if ctx.Count(recording.CmdDeleteTexture) != 1 {
		t.Error("texture not deleted on the context")
	}
}

func TestQuadCompositor_NilTexture(t *testing.T) {
	q, _, _ := newTestQuad(t)
	if err := q.AddQuad(nil, 0, 0, 1, 1, 0, 0, 1, 1, stage.White); !errors.Is(err, compositor.ErrNilTexture) {
		t.Errorf("AddQuad(nil) = %v, want ErrNilTexture", err)
	}
	if n := q.VertexCount(); n != 0 {
		t.Errorf("VertexCount() = %d after rejected quad", n)
	}
}
