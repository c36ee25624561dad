package compositor

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/gogpu/stage"
)

// PrimitiveCompositor draws flat colored geometry. Its vertex record is
// aVertex (float32x2) followed by aColor (normalized uint8x4), three float32
// slots in total. Positions are transformed by the renderer's current
// transform and colored with its current color.
type PrimitiveCompositor struct {
	*Compositor

	shader  Shader
	scratch []float32
	points  []stage.Vec2
}

// NewPrimitiveCompositor creates a primitive compositor. Without WithShader
// the built-in shader is compiled by the context, which must then implement
// ShaderCompiler.
func NewPrimitiveCompositor(r Renderer, opts ...Option) (*PrimitiveCompositor, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	c, err := newCompositor(r, o)
	if err != nil {
		return nil, err
	}
	p := &PrimitiveCompositor{Compositor: c}
	if err := p.init(o.shader); err != nil {
		_ = c.Close()
		return nil, err
	}
	return p, nil
}

func (p *PrimitiveCompositor) init(shader Shader) error {
	if err := p.AddAttribute("aVertex", 2, Float32, false, 0); err != nil {
		return err
	}
	if err := p.AddAttribute("aColor", 4, Uint8, true, 8); err != nil {
		return err
	}
	s, err := resolveShader(p.gl, shader, PrimitiveShaderDescriptor())
	if err != nil {
		return err
	}
	p.shader = s
	return p.UseShader(s)
}

// resolveShader returns the supplied shader or compiles desc.
func resolveShader(gl Context, s Shader, desc ShaderDescriptor) (Shader, error) {
	if s != nil {
		return s, nil
	}
	sc, ok := gl.(ShaderCompiler)
	if !ok {
		return nil, ErrShaderUnavailable
	}
	s, err := sc.CompileShader(desc)
	if err != nil {
		return nil, fmt.Errorf("compositor: compile %s: %w", desc.Label, err)
	}
	return s, nil
}

// DefaultShader returns the shader the compositor draws with.
func (p *PrimitiveCompositor) DefaultShader() Shader { return p.shader }

// DrawVertices draws points in the given mode. List modes (Points, Lines,
// Triangles) keep batching with earlier calls; connected modes are flushed
// at the end of the call so that separate calls stay separate primitives.
func (p *PrimitiveCompositor) DrawVertices(mode DrawMode, points []stage.Vec2) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	return p.drawLocked(mode, points)
}

func (p *PrimitiveCompositor) drawLocked(mode DrawMode, points []stage.Vec2) error {
	if len(points) == 0 {
		return nil
	}
	if err := p.useShaderLocked(p.shader); err != nil {
		return err
	}
	if err := p.setModeLocked(mode); err != nil {
		return err
	}

	m := p.renderer.CurrentTransform()
	color := PackColor(p.renderer.CurrentColor())
	p.scratch = p.scratch[:0]
	for _, pt := range points {
		q := m.Apply(pt)
		p.scratch = append(p.scratch, float32(q.X), float32(q.Y), color)
	}
	if err := p.pushLocked(len(points), p.scratch); err != nil {
		return err
	}
	if mode.Connected() {
		return p.flushLocked(mode)
	}
	return nil
}

// FillRect fills an axis-aligned rectangle in local coordinates.
func (p *PrimitiveCompositor) FillRect(x, y, w, h float64) error {
	x1, y1 := x+w, y+h
	return p.DrawVertices(Triangles, []stage.Vec2{
		{X: x, Y: y}, {X: x1, Y: y}, {X: x, Y: y1},
		{X: x, Y: y1}, {X: x1, Y: y}, {X: x1, Y: y1},
	})
}

// StrokeRect outlines a rectangle with a line loop.
func (p *PrimitiveCompositor) StrokeRect(x, y, w, h float64) error {
	return p.DrawVertices(LineLoop, []stage.Vec2{
		{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h},
	})
}

// StrokeLine draws a single line segment.
func (p *PrimitiveCompositor) StrokeLine(x0, y0, x1, y1 float64) error {
	return p.DrawVertices(Lines, []stage.Vec2{{X: x0, Y: y0}, {X: x1, Y: y1}})
}

// FillEllipse fills an ellipse centred on (cx, cy) as a triangle list.
func (p *PrimitiveCompositor) FillEllipse(cx, cy, rx, ry float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	p.points = EllipseTriangles(p.points[:0], cx, cy, rx, ry)
	return p.drawLocked(Triangles, p.points)
}

// StrokeEllipse outlines an ellipse with a line loop.
func (p *PrimitiveCompositor) StrokeEllipse(cx, cy, rx, ry float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	p.points = EllipseOutline(p.points[:0], cx, cy, rx, ry)
	return p.drawLocked(LineLoop, p.points)
}

// EllipseSegments returns the number of outline segments used for an
// ellipse with the given radii.
func EllipseSegments(rx, ry float64) int {
	r := math32.Max(math32.Abs(float32(rx)), math32.Abs(float32(ry)))
	n := int(math32.Ceil(math32.Sqrt(r) * 4))
	return min(max(n, 12), 96)
}

// EllipseOutline appends the outline vertices of an ellipse to dst.
func EllipseOutline(dst []stage.Vec2, cx, cy, rx, ry float64) []stage.Vec2 {
	n := EllipseSegments(rx, ry)
	step := 2 * math32.Pi / float32(n)
	for i := 0; i < n; i++ {
		sin, cos := math32.Sincos(step * float32(i))
		dst = append(dst, stage.Vec2{
			X: cx + rx*float64(cos),
			Y: cy + ry*float64(sin),
		})
	}
	return dst
}

// EllipseTriangles appends a triangle list covering an ellipse to dst.
func EllipseTriangles(dst []stage.Vec2, cx, cy, rx, ry float64) []stage.Vec2 {
	start := len(dst)
	dst = EllipseOutline(dst, cx, cy, rx, ry)
	n := len(dst) - start
	ring := append([]stage.Vec2(nil), dst[start:]...)
	dst = dst[:start]
	c := stage.V2(cx, cy)
	for i := 0; i < n; i++ {
		dst = append(dst, c, ring[i], ring[(i+1)%n])
	}
	return dst
}
