package wgpu

import (
	"encoding/binary"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/stage/compositor"
)

// minVertexBufferSize is the initial vertex buffer allocation in bytes.
const minVertexBufferSize = 64 << 10

// Stats counts GPU work submitted through a Context.
type Stats struct {
	Passes        int
	Draws         int
	Clears        int
	Vertices      int
	Uploads       int
	BytesUploaded int
	Pipelines     int
}

// Context is a compositor.Context that renders into an offscreen target on
// a hal device. It is not safe for concurrent use; the compositor that
// drives it serializes access.
type Context struct {
	device  hal.Device
	queue   hal.Queue
	targets targets

	vertexBuf hal.Buffer
	vertexCap uint64
	staging   []byte // bytes of the last upload
	scratch   []byte

	viewport   [4]int
	clearColor gputypes.Color

	shader   *Shader
	texture  *Texture
	shaders  map[*Shader]struct{}
	textures map[*Texture]struct{}

	stats     Stats
	owner     *Device // closed by Destroy when set
	destroyed bool
}

var (
	_ compositor.Context        = (*Context)(nil)
	_ compositor.RangeUploader  = (*Context)(nil)
	_ compositor.ShaderCompiler = (*Context)(nil)
	_ compositor.TextureContext = (*Context)(nil)
)

// NewContext creates a context with width x height render targets. The
// viewport starts at the full target.
func NewContext(device hal.Device, queue hal.Queue, width, height int) (*Context, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	c := &Context{
		device:   device,
		queue:    queue,
		viewport: [4]int{0, 0, width, height},
		shaders:  make(map[*Shader]struct{}),
		textures: make(map[*Texture]struct{}),
	}
	if err := c.targets.ensure(device, uint32(width), uint32(height)); err != nil {
		return nil, err
	}
	return c, nil
}

// NewDeviceContext is NewContext on d's device and queue. The context owns
// d: Destroy closes it after releasing the context's resources.
func NewDeviceContext(d *Device, width, height int) (*Context, error) {
	c, err := NewContext(d.Device, d.Queue, width, height)
	if err != nil {
		return nil, err
	}
	c.owner = d
	return c, nil
}

// Resize recreates the render targets at the new size. The viewport is
// left alone; the compositor resets it when it sees the resize.
func (c *Context) Resize(width, height int) error {
	if c.destroyed {
		return ErrDestroyed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return c.targets.ensure(c.device, uint32(width), uint32(height))
}

// Size returns the render target size.
func (c *Context) Size() (width, height int) {
	return int(c.targets.width), int(c.targets.height)
}

// ColorTexture returns the color attachment, for readback or presentation.
func (c *Context) ColorTexture() hal.Texture { return c.targets.colorTex }

// Stats returns the counters accumulated so far.
func (c *Context) Stats() Stats { return c.stats }

// BoundShader returns the shader selected by the last Bind, or nil.
func (c *Context) BoundShader() *Shader { return c.shader }

// Viewport sets the viewport in GL convention, with y measured from the
// bottom of the target.
func (c *Context) Viewport(x, y, w, h int) {
	c.viewport = [4]int{x, y, w, h}
}

// ViewportRect returns the last viewport set, in GL convention.
func (c *Context) ViewportRect() (x, y, w, h int) {
	return c.viewport[0], c.viewport[1], c.viewport[2], c.viewport[3]
}

// ClearColor sets the value color clears write.
func (c *Context) ClearColor(r, g, b, a float32) {
	c.clearColor = gputypes.Color{R: float64(r), G: float64(g), B: float64(b), A: float64(a)}
}

// Clear encodes an empty render pass whose load ops clear the selected
// attachments. Depth clears to 1 and stencil to 0.
func (c *Context) Clear(mask compositor.ClearMask) error {
	if c.destroyed {
		return ErrDestroyed
	}
	if mask&(compositor.ColorBuffer|compositor.DepthBuffer|compositor.StencilBuffer) == 0 {
		return nil
	}
	err := c.pass("stage_clear", mask, func(hal.RenderPassEncoder) {})
	if err != nil {
		return err
	}
	c.stats.Clears++
	return nil
}

// BufferData uploads data to the start of the vertex buffer.
func (c *Context) BufferData(data []float32, _ compositor.BufferUsage) error {
	if c.destroyed {
		return ErrDestroyed
	}
	c.staging = c.staging[:0]
	for _, f := range data {
		c.staging = binary.LittleEndian.AppendUint32(c.staging, math32.Float32bits(f))
	}
	if _, err := c.ensureVertexBuffer(uint64(len(c.staging))); err != nil {
		return err
	}
	if err := c.queue.WriteBuffer(c.vertexBuf, 0, c.staging); err != nil {
		return fmt.Errorf("write vertex buffer: %w", err)
	}
	c.stats.Uploads++
	c.stats.BytesUploaded += len(c.staging)
	return nil
}

// BufferDataRange uploads data[offset:offset+length].
func (c *Context) BufferDataRange(data []float32, usage compositor.BufferUsage, offset, length int) error {
	if offset < 0 || length < 0 || offset+length > len(data) {
		return fmt.Errorf("%w: [%d:%d] of %d", ErrUploadRange, offset, offset+length, len(data))
	}
	return c.BufferData(data[offset:offset+length], usage)
}

// Uploaded returns the bytes of the last upload.
func (c *Context) Uploaded() []byte { return c.staging }

// ensureVertexBuffer grows the vertex buffer to hold size bytes. It reports
// whether a new buffer was created, which loses its previous contents.
func (c *Context) ensureVertexBuffer(size uint64) (bool, error) {
	if c.vertexBuf != nil && size <= c.vertexCap {
		return false, nil
	}
	capacity := max(c.vertexCap*2, size, minVertexBufferSize)
	capacity = (capacity + 3) &^ 3
	buf, err := c.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "stage_vertices",
		Size:  capacity,
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return false, fmt.Errorf("create vertex buffer: %w", err)
	}
	if c.vertexBuf != nil {
		c.device.DestroyBuffer(c.vertexBuf)
	}
	c.vertexBuf = buf
	c.vertexCap = capacity
	slogger().Debug("wgpu: vertex buffer grown", "bytes", capacity)
	return true, nil
}

// DrawArrays draws count vertices of the last upload starting at first
// with the bound shader and, for textured shaders, the texture on unit 0.
func (c *Context) DrawArrays(mode compositor.DrawMode, first, count int) error {
	if c.destroyed {
		return ErrDestroyed
	}
	s := c.shader
	if s == nil {
		return ErrNoShader
	}
	if len(s.attrs) == 0 || s.stride == 0 {
		return fmt.Errorf("%w: %q", ErrNoLayout, s.desc.Label)
	}
	if count <= 0 {
		return nil
	}
	if first < 0 || (first+count)*s.stride > len(c.staging) {
		return fmt.Errorf("%w: vertices [%d:%d] with %d bytes uploaded",
			ErrDrawRange, first, first+count, len(c.staging))
	}

	var offset uint64
	if needsExpansion(mode) {
		var n int
		c.scratch, n = expand(c.scratch[:0], c.staging, s.stride, mode, first, count)
		if n == 0 {
			return nil
		}
		offset = (uint64(len(c.staging)) + 3) &^ 3
		grown, err := c.ensureVertexBuffer(offset + uint64(len(c.scratch)))
		if err != nil {
			return err
		}
		if grown {
			if err := c.queue.WriteBuffer(c.vertexBuf, 0, c.staging); err != nil {
				return fmt.Errorf("write vertex buffer: %w", err)
			}
		}
		if err := c.queue.WriteBuffer(c.vertexBuf, offset, c.scratch); err != nil {
			return fmt.Errorf("write expanded vertices: %w", err)
		}
		first, count = 0, n
	}

	pipeline, err := s.pipeline(Topology(mode))
	if err != nil {
		return err
	}
	group, err := s.bindGroup(c.texture)
	if err != nil {
		return err
	}
	err = c.pass("stage_draw", 0, func(rp hal.RenderPassEncoder) {
		rp.SetPipeline(pipeline)
		rp.SetBindGroup(0, group, nil)
		rp.SetVertexBuffer(0, c.vertexBuf, offset)
		rp.Draw(uint32(count), 1, uint32(first), 0)
	})
	if err != nil {
		return err
	}
	c.stats.Draws++
	c.stats.Vertices += count
	return nil
}

// pass encodes and submits one render pass over the targets. Attachments
// selected by clearMask are cleared on load, the rest are loaded. draw is
// skipped when the viewport lies outside the target.
func (c *Context) pass(label string, clearMask compositor.ClearMask, draw func(rp hal.RenderPassEncoder)) error {
	load := func(bit compositor.ClearMask) gputypes.LoadOp {
		if clearMask&bit != 0 {
			return gputypes.LoadOpClear
		}
		return gputypes.LoadOpLoad
	}

	encoder, err := c.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding(label); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: label,
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:       c.targets.colorView,
				LoadOp:     load(compositor.ColorBuffer),
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: c.clearColor,
			},
		},
		DepthStencilAttachment: &hal.RenderPassDepthStencilAttachment{
			View:              c.targets.depthView,
			DepthLoadOp:       load(compositor.DepthBuffer),
			DepthStoreOp:      gputypes.StoreOpStore,
			DepthClearValue:   1,
			StencilLoadOp:     load(compositor.StencilBuffer),
			StencilStoreOp:    gputypes.StoreOpStore,
			StencilClearValue: 0,
		},
	})
	if x, y, w, h, ok := c.deviceViewport(); ok {
		rp.SetViewport(x, y, w, h, 0, 1)
		draw(rp)
	}
	rp.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer c.device.FreeCommandBuffer(cmdBuf)

	if _, err := c.queue.Submit([]hal.CommandBuffer{cmdBuf}); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	c.stats.Passes++
	return nil
}

// deviceViewport converts the GL viewport to top-left origin and clips it
// to the target. It reports false when nothing of it is visible.
func (c *Context) deviceViewport() (x, y, w, h float32, ok bool) {
	tw, th := float32(c.targets.width), float32(c.targets.height)
	vx, vy := float32(c.viewport[0]), float32(c.viewport[1])
	vw, vh := float32(c.viewport[2]), float32(c.viewport[3])
	top := th - (vy + vh)

	x0, y0 := math32.Max(vx, 0), math32.Max(top, 0)
	x1, y1 := math32.Min(vx+vw, tw), math32.Min(top+vh, th)
	if x1 <= x0 || y1 <= y0 {
		return 0, 0, 0, 0, false
	}
	return x0, y0, x1 - x0, y1 - y0, true
}

// Destroy releases every shader, texture and buffer created through c and
// the render targets. It is safe to call twice.
func (c *Context) Destroy() {
	if c.destroyed {
		return
	}
	for s := range c.shaders {
		s.destroy()
	}
	clear(c.shaders)
	for t := range c.textures {
		t.destroy()
	}
	clear(c.textures)
	if c.vertexBuf != nil {
		c.device.DestroyBuffer(c.vertexBuf)
		c.vertexBuf = nil
	}
	c.targets.destroy(c.device)
	c.shader = nil
	c.texture = nil
	c.destroyed = true
	slogger().Debug("wgpu: context destroyed", "stats", c.stats)
	if c.owner != nil {
		c.owner.Close()
		c.owner = nil
	}
}
