package compositor

import (
	"fmt"
	"image"
)

// DrawMode is the primitive topology used to interpret a batch.
type DrawMode uint8

// Draw modes.
const (
	Points DrawMode = iota
	LineStrip
	LineLoop
	Lines
	TriangleStrip
	TriangleFan
	Triangles
)

var drawModeNames = [...]string{
	Points:        "points",
	LineStrip:     "lineStrip",
	LineLoop:      "lineLoop",
	Lines:         "lines",
	TriangleStrip: "triangleStrip",
	TriangleFan:   "triangleFan",
	Triangles:     "triangles",
}

func (m DrawMode) String() string {
	if int(m) < len(drawModeNames) {
		return drawModeNames[m]
	}
	return fmt.Sprintf("DrawMode(%d)", uint8(m))
}

// Connected reports whether consecutive draws in this mode would join into
// one primitive, so separate submissions cannot share a batch.
func (m DrawMode) Connected() bool {
	switch m {
	case LineStrip, LineLoop, TriangleStrip, TriangleFan:
		return true
	}
	return false
}

// BufferUsage hints how often uploaded data changes.
type BufferUsage uint8

// Buffer usages.
const (
	StaticDraw BufferUsage = iota
	DynamicDraw
	StreamDraw
)

func (u BufferUsage) String() string {
	switch u {
	case StaticDraw:
		return "static"
	case DynamicDraw:
		return "dynamic"
	case StreamDraw:
		return "stream"
	}
	return fmt.Sprintf("BufferUsage(%d)", uint8(u))
}

// ClearMask selects the buffers cleared by Context.Clear.
type ClearMask uint8

// Clear mask bits.
const (
	ColorBuffer ClearMask = 1 << iota
	DepthBuffer
	StencilBuffer
)

// Context is the GPU device a Compositor draws through. It mirrors the small
// subset of a GL-style immediate API the compositor needs.
type Context interface {
	// Viewport sets the viewport rectangle in pixels.
	Viewport(x, y, w, h int)
	// ClearColor sets the color used by subsequent clears of ColorBuffer.
	ClearColor(r, g, b, a float32)
	// Clear clears the selected buffers.
	Clear(mask ClearMask) error
	// BufferData uploads data into the vertex stream buffer.
	BufferData(data []float32, usage BufferUsage) error
	// DrawArrays draws count vertices starting at first with the bound shader.
	DrawArrays(mode DrawMode, first, count int) error
}

// RangeUploader is implemented by contexts that can upload a sub-range of a
// larger array without the caller slicing it first.
type RangeUploader interface {
	BufferDataRange(data []float32, usage BufferUsage, offset, length int) error
}

// Texture is an image resident on the GPU. Implementations must be
// comparable.
type Texture interface {
	Width() int
	Height() int
}

// TextureContext is implemented by contexts that can sample textures.
type TextureContext interface {
	CreateTexture(img image.Image) (Texture, error)
	BindTexture(unit int, tex Texture) error
	DeleteTexture(tex Texture)
}
