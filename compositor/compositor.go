package compositor

import (
	"fmt"
	"sync"

	"github.com/gogpu/stage"
	"github.com/gogpu/stage/event"
)

// Stats counts compositor activity since creation.
type Stats struct {
	Flushes        uint64 // flushes that had vertices to draw
	DrawCalls      uint64 // successful DrawArrays calls
	Vertices       uint64 // vertices drawn
	ShaderSwitches uint64
	Errors         uint64 // flushes that failed on the GPU
}

// Compositor batches vertex records and flushes them to the GPU.
//
// Create one with New; release it with Close, which also ends its resize
// subscription.
type Compositor struct {
	mu sync.Mutex

	renderer Renderer
	gl       Context

	layout Layout
	vb     *VertexBuffer
	shader Shader
	mode   DrawMode

	maxVertices int
	resize      *event.Channel[event.Size]
	token       event.Token
	onError     func(error)

	stats  Stats
	closed bool
}

// New creates a compositor drawing through r's context and subscribes it to
// the resize channel.
func New(r Renderer, opts ...Option) (*Compositor, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return newCompositor(r, o)
}

func newCompositor(r Renderer, o options) (*Compositor, error) {
	if r == nil || r.GL() == nil {
		return nil, ErrNoContext
	}
	c := &Compositor{
		renderer:    r,
		gl:          r.GL(),
		vb:          NewVertexBuffer(0, o.maxVertices),
		mode:        o.mode,
		maxVertices: o.maxVertices,
		resize:      o.resize,
		onError:     o.onError,
	}
	c.token = c.resize.Subscribe(c.onResize)
	return c, nil
}

// onResize flushes the pending batch and then moves the viewport, atomically
// with respect to other compositor calls.
func (c *Compositor) onResize(s event.Size) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if err := c.flushLocked(c.mode); err != nil {
		// Vertices that could not be drawn at the old size are dropped;
		// they must not reach the new viewport.
		if n := c.vb.VertexCount(); n > 0 {
			slogger().Warn("compositor: dropped batch on resize", "vertices", n, "error", err)
			c.vb.Clear()
		}
		c.onError(err)
	}
	c.gl.Viewport(0, 0, s.Width, s.Height)
	slogger().Debug("compositor: resized", "width", s.Width, "height", s.Height)
}

// Close revokes the resize subscription. Further calls return ErrClosed.
// Pending vertices are discarded. Close is idempotent.
func (c *Compositor) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	c.resize.Revoke(c.token)
	c.vb.Clear()
	return nil
}

// AddAttribute appends an attribute to the vertex layout. It fails if
// vertices are pending, since they were written with the old stride.
func (c *Compositor) AddAttribute(name string, components int, typ ScalarType, normalized bool, offset int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if !c.vb.IsEmpty() {
		return ErrBufferNotEmpty
	}
	if err := c.layout.Add(name, components, typ, normalized, offset); err != nil {
		return err
	}
	if err := c.vb.SetStride(c.layout.FloatStride()); err != nil {
		return err
	}
	if c.shader != nil {
		return c.shader.SetVertexAttributes(c.gl, c.layout.Attributes(), c.layout.ByteStride())
	}
	return nil
}

// Layout returns a copy of the vertex attributes.
func (c *Compositor) Layout() []Attribute {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.layout.Attributes()
}

// ByteStride returns the vertex record size in bytes.
func (c *Compositor) ByteStride() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.layout.ByteStride()
}

// FloatStride returns the vertex record size in float32 values.
func (c *Compositor) FloatStride() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.layout.FloatStride()
}

// VertexCount returns the number of pending vertices.
func (c *Compositor) VertexCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.vb.VertexCount()
}

// PendingVertices returns a copy of the pending batch.
func (c *Compositor) PendingVertices() []float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]float32(nil), c.vb.ToFloat32()...)
}

// SetViewport sets the GPU viewport immediately, without flushing. It does
// nothing once the compositor is closed.
func (c *Compositor) SetViewport(x, y, w, h int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		slogger().Debug("compositor: SetViewport after Close ignored")
		return
	}
	c.gl.Viewport(x, y, w, h)
}

// SetProjection flushes the pending batch and sets the projection uniform of
// the active shader.
func (c *Compositor) SetProjection(m stage.Matrix3D) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if c.shader == nil {
		return ErrNoActiveShader
	}
	if err := c.flushLocked(c.mode); err != nil {
		return err
	}
	return c.shader.SetUniform(UniformProjection, m)
}

// UseShader makes s the active shader. Binding the active shader again does
// nothing. Otherwise the pending batch is flushed with the old shader, s is
// bound, its projection is set from the renderer and the vertex layout is
// bound to it.
//
// Vertices pushed while no shader was bound are drawn with the first shader.
func (c *Compositor) UseShader(s Shader) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	return c.useShaderLocked(s)
}

func (c *Compositor) useShaderLocked(s Shader) error {
	if s == nil {
		return ErrNilShader
	}
	if s == c.shader {
		return nil
	}
	if c.shader != nil {
		if err := c.flushLocked(c.mode); err != nil {
			return err
		}
	}
	if err := s.Bind(); err != nil {
		return fmt.Errorf("compositor: bind shader: %w", err)
	}
	c.shader = s
	c.stats.ShaderSwitches++
	if err := s.SetUniform(UniformProjection, c.renderer.ProjectionMatrix()); err != nil {
		return fmt.Errorf("compositor: set projection: %w", err)
	}
	if err := s.SetVertexAttributes(c.gl, c.layout.Attributes(), c.layout.ByteStride()); err != nil {
		return fmt.Errorf("compositor: set vertex attributes: %w", err)
	}
	return nil
}

// Rebind binds the active shader again with its projection and vertex
// layout, even though the compositor already considers it bound. A renderer
// calls it when switching back to this compositor after another one used the
// same context.
func (c *Compositor) Rebind() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	s := c.shader
	if s == nil {
		return nil
	}
	c.shader = nil
	return c.useShaderLocked(s)
}

// ActiveShader returns the bound shader, or nil while Unbound.
func (c *Compositor) ActiveShader() Shader {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.shader
}

// DrawMode returns the current draw mode.
func (c *Compositor) DrawMode() DrawMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// SetDrawMode changes the draw mode, flushing vertices batched in the old one.
func (c *Compositor) SetDrawMode(m DrawMode) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	return c.setModeLocked(m)
}

func (c *Compositor) setModeLocked(m DrawMode) error {
	if m == c.mode {
		return nil
	}
	if err := c.flushLocked(c.mode); err != nil {
		return err
	}
	c.mode = m
	return nil
}

// Push appends one vertex record. The batch is flushed first when it already
// holds the maximum number of vertices.
func (c *Compositor) Push(record ...float32) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	return c.pushLocked(1, record)
}

// PushVertices appends n records stored back to back. The records are never
// split across two batches.
func (c *Compositor) PushVertices(n int, records []float32) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	return c.pushLocked(n, records)
}

func (c *Compositor) pushLocked(n int, records []float32) error {
	switch {
	case c.layout.Len() == 0:
		return ErrNoAttributes
	case !c.layout.Aligned():
		return fmt.Errorf("%w: %d bytes", ErrUnalignedLayout, c.layout.ByteStride())
	}
	if c.vb.VertexCount() > 0 && c.vb.VertexCount()+n > c.maxVertices {
		if err := c.flushLocked(c.mode); err != nil {
			return err
		}
	}
	if n == 1 {
		return c.vb.Push(records...)
	}
	return c.vb.PushN(n, records)
}

// Flush draws the pending batch with one draw call and empties the buffer.
// An empty buffer is a no-op. The draw mode defaults to the compositor's.
func (c *Compositor) Flush(opts ...FlushOption) error {
	var fo flushOptions
	for _, opt := range opts {
		opt(&fo)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	mode := c.mode
	if fo.modeSet {
		mode = fo.mode
	}
	return c.flushLocked(mode)
}

func (c *Compositor) flushLocked(mode DrawMode) error {
	count := c.vb.VertexCount()
	if count == 0 {
		return nil
	}
	if c.shader == nil {
		return ErrNoActiveShader
	}
	defer c.vb.Clear()
	c.stats.Flushes++

	var err error
	if ru, ok := c.gl.(RangeUploader); ok && c.renderer.GLVersion() > 1 {
		err = ru.BufferDataRange(c.vb.Backing(), StreamDraw, 0, c.vb.Len())
	} else {
		err = c.gl.BufferData(c.vb.ToFloat32(), StreamDraw)
	}
	if err == nil {
		err = c.gl.DrawArrays(mode, 0, count)
	}
	if err != nil {
		c.stats.Errors++
		slogger().Error("compositor: flush failed", "mode", mode, "vertices", count, "error", err)
		return fmt.Errorf("%w: %w", ErrGPU, err)
	}
	c.stats.DrawCalls++
	c.stats.Vertices += uint64(count)
	slogger().Debug("compositor: flush", "mode", mode, "vertices", count)
	return nil
}

// Clear clears the color buffer to (0, 0, 0, alpha) and the stencil buffer.
// Alpha defaults to 0.
func (c *Compositor) Clear(opts ...ClearOption) error {
	var co clearOptions
	for _, opt := range opts {
		opt(&co)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	c.gl.ClearColor(0, 0, 0, co.alpha)
	return c.gl.Clear(ColorBuffer | StencilBuffer)
}

// ClearColor clears only the color buffer to the given color.
func (c *Compositor) ClearColor(r, g, b, a float32) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	return c.clearColorLocked(r, g, b, a)
}

func (c *Compositor) clearColorLocked(r, g, b, a float32) error {
	c.gl.ClearColor(r, g, b, a)
	return c.gl.Clear(ColorBuffer)
}

// Reset re-reads the context from the renderer, flushes, resets the viewport
// to the whole canvas and clears to transparent black. Use it after context
// loss or when the renderer is reinitialized.
func (c *Compositor) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	gl := c.renderer.GL()
	if gl == nil {
		return ErrNoContext
	}
	c.gl = gl
	if err := c.flushLocked(c.mode); err != nil {
		return err
	}
	w, h := c.renderer.CanvasSize()
	c.gl.Viewport(0, 0, w, h)
	return c.clearColorLocked(0, 0, 0, 0)
}

// Renderer returns the renderer the compositor draws for.
func (c *Compositor) Renderer() Renderer { return c.renderer }

// Stats returns a snapshot of the activity counters.
func (c *Compositor) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}
