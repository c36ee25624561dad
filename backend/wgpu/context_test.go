package wgpu

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/stage"
	"github.com/gogpu/stage/compositor"
)

func newNoopContext(t *testing.T, w, h int) *Context {
	t.Helper()
	dev, err := OpenNoop()
	if err != nil {
		t.Fatalf("OpenNoop() = %v", err)
	}
	t.Cleanup(dev.Close)
	ctx, err := NewContext(dev.Device, dev.Queue, w, h)
	if err != nil {
		t.Fatalf("NewContext() = %v", err)
	}
	t.Cleanup(ctx.Destroy)
	return ctx
}

// primitiveLayout is the 12-byte aVertex + aColor record.
var primitiveLayout = []compositor.Attribute{
	{Name: "aVertex", Components: 2, Type: compositor.Float32, Offset: 0},
	{Name: "aColor", Components: 4, Type: compositor.Uint8, Normalized: true, Offset: 8},
}

func compilePrimitive(t *testing.T, ctx *Context) *Shader {
	t.Helper()
	s, err := ctx.CompileShader(compositor.PrimitiveShaderDescriptor())
	if err != nil {
		t.Fatalf("CompileShader(primitive) = %v", err)
	}
	if err := s.SetVertexAttributes(ctx, primitiveLayout, 12); err != nil {
		t.Fatalf("SetVertexAttributes() = %v", err)
	}
	return s.(*Shader)
}

func TestNewContextInvalidSize(t *testing.T) {
	dev, err := OpenNoop()
	if err != nil {
		t.Fatalf("OpenNoop() = %v", err)
	}
	defer dev.Close()

	for _, sz := range [][2]int{{0, 10}, {10, 0}, {-1, 5}} {
		if _, err := NewContext(dev.Device, dev.Queue, sz[0], sz[1]); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("NewContext(%d, %d) = %v, want ErrInvalidSize", sz[0], sz[1], err)
		}
	}
}

func TestContextResize(t *testing.T) {
	ctx := newNoopContext(t, 320, 240)
	if w, h := ctx.Size(); w != 320 || h != 240 {
		t.Fatalf("Size() = %dx%d", w, h)
	}
	before := ctx.ColorTexture()
	if err := ctx.Resize(320, 240); err != nil {
		t.Fatal(err)
	}
	if ctx.ColorTexture() != before {
		t.Error("same-size Resize recreated the color target")
	}
	if err := ctx.Resize(640, 480); err != nil {
		t.Fatal(err)
	}
	if w, h := ctx.Size(); w != 640 || h != 480 {
		t.Errorf("Size() after resize = %dx%d", w, h)
	}
	if x, y, w, h := ctx.ViewportRect(); x != 0 || y != 0 || w != 320 || h != 240 {
		t.Errorf("viewport changed by Resize: %d,%d,%d,%d", x, y, w, h)
	}
	if err := ctx.Resize(0, 1); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("Resize(0, 1) = %v", err)
	}
}

func TestBufferDataEncoding(t *testing.T) {
	ctx := newNoopContext(t, 8, 8)
	if err := ctx.BufferData([]float32{1, -2}, compositor.StreamDraw); err != nil {
		t.Fatal(err)
	}
	want := []byte{0x00, 0x00, 0x80, 0x3f, 0x00, 0x00, 0x00, 0xc0}
	if got := ctx.Uploaded(); string(got) != string(want) {
		t.Errorf("Uploaded() = % x, want % x", got, want)
	}
	st := ctx.Stats()
	if st.Uploads != 1 || st.BytesUploaded != 8 {
		t.Errorf("stats = %+v", st)
	}
}

func TestBufferDataRange(t *testing.T) {
	ctx := newNoopContext(t, 8, 8)
	data := []float32{0, 1, 2, 3}
	if err := ctx.BufferDataRange(data, compositor.StreamDraw, 1, 2); err != nil {
		t.Fatal(err)
	}
	if got := len(ctx.Uploaded()); got != 8 {
		t.Errorf("uploaded %d bytes, want 8", got)
	}
	if err := ctx.BufferDataRange(data, compositor.StreamDraw, 3, 2); !errors.Is(err, ErrUploadRange) {
		t.Errorf("out of range = %v, want ErrUploadRange", err)
	}
}

func TestVertexBufferGrowth(t *testing.T) {
	ctx := newNoopContext(t, 8, 8)
	if err := ctx.BufferData(make([]float32, 16), compositor.StreamDraw); err != nil {
		t.Fatal(err)
	}
	if ctx.vertexCap != minVertexBufferSize {
		t.Fatalf("initial capacity = %d", ctx.vertexCap)
	}
	big := make([]float32, minVertexBufferSize/4+1)
	if err := ctx.BufferData(big, compositor.StreamDraw); err != nil {
		t.Fatal(err)
	}
	if ctx.vertexCap != 2*minVertexBufferSize {
		t.Errorf("grown capacity = %d, want %d", ctx.vertexCap, 2*minVertexBufferSize)
	}
}

func TestDrawArraysErrors(t *testing.T) {
	ctx := newNoopContext(t, 8, 8)
	if err := ctx.DrawArrays(compositor.Triangles, 0, 3); !errors.Is(err, ErrNoShader) {
		t.Errorf("no shader = %v", err)
	}

	s, err := ctx.CompileShader(compositor.PrimitiveShaderDescriptor())
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Bind(); err != nil {
		t.Fatal(err)
	}
	if err := ctx.DrawArrays(compositor.Triangles, 0, 3); !errors.Is(err, ErrNoLayout) {
		t.Errorf("no layout = %v", err)
	}

	if err := s.SetVertexAttributes(ctx, primitiveLayout, 12); err != nil {
		t.Fatal(err)
	}
	if err := ctx.BufferData(make([]float32, 6), compositor.StreamDraw); err != nil {
		t.Fatal(err)
	}
	if err := ctx.DrawArrays(compositor.Triangles, 0, 3); !errors.Is(err, ErrDrawRange) {
		t.Errorf("past upload = %v", err)
	}
	if err := ctx.DrawArrays(compositor.Triangles, 0, 0); err != nil {
		t.Errorf("empty draw = %v", err)
	}
	if got := ctx.Stats().Draws; got != 0 {
		t.Errorf("Draws = %d, want 0", got)
	}
}

func TestDrawArraysExpansion(t *testing.T) {
	tests := []struct {
		mode      compositor.DrawMode
		count     int
		wantVerts int
	}{
		{compositor.Triangles, 6, 6},
		{compositor.TriangleStrip, 4, 4},
		{compositor.LineLoop, 4, 5},
		{compositor.TriangleFan, 5, 9},
		{compositor.TriangleFan, 2, 0},
		{compositor.Points, 3, 3},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			ctx := newNoopContext(t, 16, 16)
			s := compilePrimitive(t, ctx)
			if err := s.Bind(); err != nil {
				t.Fatal(err)
			}
			if err := ctx.BufferData(make([]float32, 3*tt.count), compositor.StreamDraw); err != nil {
				t.Fatal(err)
			}
			if err := ctx.DrawArrays(tt.mode, 0, tt.count); err != nil {
				t.Fatalf("DrawArrays(%s) = %v", tt.mode, err)
			}
			if got := ctx.Stats().Vertices; got != tt.wantVerts {
				t.Errorf("Vertices = %d, want %d", got, tt.wantVerts)
			}
		})
	}
}

func TestPipelineCache(t *testing.T) {
	ctx := newNoopContext(t, 16, 16)
	s := compilePrimitive(t, ctx)
	if err := s.Bind(); err != nil {
		t.Fatal(err)
	}
	if err := ctx.BufferData(make([]float32, 3*6), compositor.StreamDraw); err != nil {
		t.Fatal(err)
	}
	for _, mode := range []compositor.DrawMode{compositor.Triangles, compositor.Triangles, compositor.TriangleFan, compositor.Lines} {
		if err := ctx.DrawArrays(mode, 0, 6); err != nil {
			t.Fatal(err)
		}
	}
	// Triangles and TriangleFan share the triangle-list pipeline.
	if got := ctx.Stats().Pipelines; got != 2 {
		t.Errorf("Pipelines = %d, want 2", got)
	}

	// A new layout drops the cache.
	layout := append([]compositor.Attribute(nil), primitiveLayout...)
	layout[1].Type = compositor.Uint16
	if err := s.SetVertexAttributes(ctx, layout, 16); err != nil {
		t.Fatal(err)
	}
	if len(s.pipelines) != 0 {
		t.Errorf("%d pipelines survived a layout change", len(s.pipelines))
	}
}

func TestClear(t *testing.T) {
	ctx := newNoopContext(t, 16, 16)
	ctx.ClearColor(0.25, 0.5, 0.75, 1)
	if err := ctx.Clear(compositor.ColorBuffer | compositor.StencilBuffer); err != nil {
		t.Fatal(err)
	}
	if err := ctx.Clear(0); err != nil {
		t.Fatal(err)
	}
	st := ctx.Stats()
	if st.Clears != 1 || st.Passes != 1 {
		t.Errorf("stats = %+v, want one clear pass", st)
	}
	if ctx.clearColor.B != 0.75 {
		t.Errorf("clear color = %+v", ctx.clearColor)
	}
}

func TestDeviceViewport(t *testing.T) {
	tests := []struct {
		name       string
		vp         [4]int
		x, y, w, h float32
		ok         bool
	}{
		{"full", [4]int{0, 0, 100, 50}, 0, 0, 100, 50, true},
		{"bottom left", [4]int{0, 0, 10, 10}, 0, 40, 10, 10, true},
		{"clipped", [4]int{90, 40, 20, 20}, 90, 0, 10, 10, true},
		{"outside", [4]int{200, 0, 10, 10}, 0, 0, 0, 0, false},
		{"empty", [4]int{0, 0, 0, 0}, 0, 0, 0, 0, false},
	}
	ctx := newNoopContext(t, 100, 50)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx.Viewport(tt.vp[0], tt.vp[1], tt.vp[2], tt.vp[3])
			x, y, w, h, ok := ctx.deviceViewport()
			if ok != tt.ok || x != tt.x || y != tt.y || w != tt.w || h != tt.h {
				t.Errorf("deviceViewport() = %v,%v,%v,%v,%v want %v,%v,%v,%v,%v",
					x, y, w, h, ok, tt.x, tt.y, tt.w, tt.h, tt.ok)
			}
		})
	}
}

func TestTextures(t *testing.T) {
	ctx := newNoopContext(t, 16, 16)
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 128})

	tex, err := ctx.CreateTexture(img)
	if err != nil {
		t.Fatal(err)
	}
	if tex.Width() != 4 || tex.Height() != 2 {
		t.Errorf("texture size = %dx%d", tex.Width(), tex.Height())
	}
	if err := ctx.BindTexture(1, tex); !errors.Is(err, ErrTextureUnit) {
		t.Errorf("BindTexture(1) = %v", err)
	}
	if err := ctx.BindTexture(0, tex); err != nil {
		t.Fatal(err)
	}
	if ctx.BoundTexture() != tex {
		t.Error("texture not bound")
	}
	ctx.DeleteTexture(tex)
	if ctx.BoundTexture() != nil {
		t.Error("deleted texture still bound")
	}
	if err := ctx.BindTexture(0, tex); err == nil {
		t.Error("binding a deleted texture succeeded")
	}
	ctx.DeleteTexture(tex)

	other := newNoopContext(t, 4, 4)
	foreign, err := other.CreateTexture(img)
	if err != nil {
		t.Fatal(err)
	}
	if err := ctx.BindTexture(0, foreign); !errors.Is(err, ErrForeignContext) {
		t.Errorf("foreign texture = %v", err)
	}
	if _, err := ctx.CreateTexture(image.NewRGBA(image.Rect(0, 0, 0, 3))); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("empty image = %v", err)
	}
}

func TestTexturedShaderNeedsTexture(t *testing.T) {
	ctx := newNoopContext(t, 16, 16)
	s, err := ctx.CompileShader(compositor.QuadShaderDescriptor())
	if err != nil {
		t.Fatal(err)
	}
	layout := []compositor.Attribute{
		{Name: "aVertex", Components: 2, Type: compositor.Float32, Offset: 0},
		{Name: "aRegion", Components: 2, Type: compositor.Float32, Offset: 8},
		{Name: "aColor", Components: 4, Type: compositor.Uint8, Normalized: true, Offset: 16},
	}
	if err := s.SetVertexAttributes(ctx, layout, 20); err != nil {
		t.Fatal(err)
	}
	if err := s.Bind(); err != nil {
		t.Fatal(err)
	}
	if err := ctx.BufferData(make([]float32, 5*6), compositor.StreamDraw); err != nil {
		t.Fatal(err)
	}
	if err := ctx.DrawArrays(compositor.Triangles, 0, 6); !errors.Is(err, ErrNoTexture) {
		t.Fatalf("draw without texture = %v", err)
	}
	tex, err := ctx.CreateTexture(image.NewRGBA(image.Rect(0, 0, 2, 2)))
	if err != nil {
		t.Fatal(err)
	}
	if err := ctx.BindTexture(0, tex); err != nil {
		t.Fatal(err)
	}
	if err := ctx.DrawArrays(compositor.Triangles, 0, 6); err != nil {
		t.Fatalf("draw with texture = %v", err)
	}
}

func TestDestroy(t *testing.T) {
	ctx := newNoopContext(t, 16, 16)
	s := compilePrimitive(t, ctx)
	ctx.Destroy()
	ctx.Destroy()

	if err := s.Bind(); !errors.Is(err, ErrDestroyed) {
		t.Errorf("Bind after Destroy = %v", err)
	}
	if err := ctx.BufferData([]float32{1}, compositor.StreamDraw); !errors.Is(err, ErrDestroyed) {
		t.Errorf("BufferData after Destroy = %v", err)
	}
	if err := ctx.Clear(compositor.ColorBuffer); !errors.Is(err, ErrDestroyed) {
		t.Errorf("Clear after Destroy = %v", err)
	}
	if _, err := ctx.CompileShader(compositor.PrimitiveShaderDescriptor()); !errors.Is(err, ErrDestroyed) {
		t.Errorf("CompileShader after Destroy = %v", err)
	}
}

func TestDeviceContextOwnsDevice(t *testing.T) {
	dev, err := OpenNoop()
	if err != nil {
		t.Fatalf("OpenNoop() = %v", err)
	}
	ctx, err := NewDeviceContext(dev, 16, 8)
	if err != nil {
		t.Fatalf("NewDeviceContext() = %v", err)
	}
	// The shader must accept the context it was compiled on.
	compilePrimitive(t, ctx)
	if w, h := ctx.Size(); w != 16 || h != 8 {
		t.Errorf("Size() = %dx%d, want 16x8", w, h)
	}
	ctx.Destroy()
	if dev.Device != nil || dev.Queue != nil {
		t.Error("Destroy left the owned device open")
	}
	ctx.Destroy()
}

// Ensure the packed color helpers and this backend agree on byte order:
// red packs into the lowest byte, which Unorm8x4 reads as the x component.
func TestPackedColorByteOrder(t *testing.T) {
	ctx := newNoopContext(t, 4, 4)
	if err := ctx.BufferData([]float32{compositor.PackColor(stage.Red)}, compositor.StreamDraw); err != nil {
		t.Fatal(err)
	}
	if got := ctx.Uploaded(); got[0] != 0xff || got[1] != 0 || got[2] != 0 || got[3] != 0xff {
		t.Errorf("packed red = % x, want ff 00 00 ff", got)
	}
}
