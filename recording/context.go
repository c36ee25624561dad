package recording

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/gogpu/stage/compositor"
)

// ErrUnknownTexture is returned when a texture from another context is used.
var ErrUnknownTexture = errors.New("recording: texture does not belong to this context")

// Context is a compositor.Context that records every call. It also
// implements compositor.RangeUploader, compositor.TextureContext and
// compositor.ShaderCompiler; use Basic for a context without them.
//
// Context is safe for concurrent use.
type Context struct {
	mu       sync.Mutex
	commands []Command
	failures map[CommandType]error

	clearColor [4]float32
	viewport   [4]int
	bound      *Shader
	textures   map[*Texture]bool
	units      map[int]*Texture

	nextShader  int
	nextTexture int
}

// NewContext returns an empty recording context.
func NewContext() *Context {
	return &Context{
		failures: make(map[CommandType]error),
		textures: make(map[*Texture]bool),
		units:    make(map[int]*Texture),
	}
}

var (
	_ compositor.Context        = (*Context)(nil)
	_ compositor.RangeUploader  = (*Context)(nil)
	_ compositor.TextureContext = (*Context)(nil)
	_ compositor.ShaderCompiler = (*Context)(nil)
)

// record appends cmd unless a failure is injected for its type, in which
// case the command is still recorded and the error returned.
func (c *Context) record(cmd Command) error {
	c.commands = append(c.commands, cmd)
	return c.failures[cmd.Type()]
}

// FailOn makes every later command of type t return err. A nil err removes
// the failure.
func (c *Context) FailOn(t CommandType, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err == nil {
		delete(c.failures, t)
		return
	}
	c.failures[t] = err
}

// Viewport implements compositor.Context.
func (c *Context) Viewport(x, y, w, h int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewport = [4]int{x, y, w, h}
	_ = c.record(ViewportCommand{X: x, Y: y, Width: w, Height: h})
}

// ClearColor implements compositor.Context.
func (c *Context) ClearColor(r, g, b, a float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearColor = [4]float32{r, g, b, a}
	_ = c.record(ClearColorCommand{R: r, G: g, B: b, A: a})
}

// Clear implements compositor.Context.
func (c *Context) Clear(mask compositor.ClearMask) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.record(ClearCommand{Mask: mask})
}

// BufferData implements compositor.Context. The data is copied.
func (c *Context) BufferData(data []float32, usage compositor.BufferUsage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.record(BufferDataCommand{
		Data:   append([]float32(nil), data...),
		Usage:  usage,
		Length: len(data),
	})
}

// BufferDataRange implements compositor.RangeUploader.
func (c *Context) BufferDataRange(data []float32, usage compositor.BufferUsage, offset, length int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if offset < 0 || length < 0 || offset+length > len(data) {
		return fmt.Errorf("recording: range [%d:%d] outside %d values", offset, offset+length, len(data))
	}
	return c.record(BufferDataCommand{
		Data:   append([]float32(nil), data[offset:offset+length]...),
		Usage:  usage,
		Ranged: true,
		Offset: offset,
		Length: length,
	})
}

// DrawArrays implements compositor.Context.
func (c *Context) DrawArrays(mode compositor.DrawMode, first, count int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	label := ""
	if c.bound != nil {
		label = c.bound.label
	}
	return c.record(DrawArraysCommand{Mode: mode, First: first, Count: count, Shader: label})
}

// CompileShader implements compositor.ShaderCompiler.
func (c *Context) CompileShader(desc compositor.ShaderDescriptor) (compositor.Shader, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.newShaderLocked(desc.Label)
	if err := c.record(CompileShaderCommand{Shader: s.label, Textured: desc.Textured}); err != nil {
		return nil, err
	}
	return s, nil
}

// NewShader returns a recording shader bound to this context without
// recording a compile command. An empty label gets a generated one.
func (c *Context) NewShader(label string) *Shader {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.newShaderLocked(label)
}

func (c *Context) newShaderLocked(label string) *Shader {
	c.nextShader++
	if label == "" {
		label = fmt.Sprintf("shader%d", c.nextShader)
	}
	return &Shader{ctx: c, label: label, uniforms: make(map[string][]byte)}
}

// CreateTexture implements compositor.TextureContext.
func (c *Context) CreateTexture(img image.Image) (compositor.Texture, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextTexture++
	b := img.Bounds()
	t := &Texture{id: c.nextTexture, width: b.Dx(), height: b.Dy()}
	if err := c.record(CreateTextureCommand{Texture: t.id, Width: t.width, Height: t.height}); err != nil {
		return nil, err
	}
	c.textures[t] = true
	return t, nil
}

// BindTexture implements compositor.TextureContext.
func (c *Context) BindTexture(unit int, tex compositor.Texture) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := tex.(*Texture)
	if !ok || !c.textures[t] {
		return ErrUnknownTexture
	}
	c.units[unit] = t
	return c.record(BindTextureCommand{Unit: unit, Texture: t.id})
}

// DeleteTexture implements compositor.TextureContext.
func (c *Context) DeleteTexture(tex compositor.Texture) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := tex.(*Texture)
	if !ok || !c.textures[t] {
		return
	}
	delete(c.textures, t)
	for unit, bound := range c.units {
		if bound == t {
			delete(c.units, unit)
		}
	}
	_ = c.record(DeleteTextureCommand{Texture: t.id})
}

// Commands returns a copy of the recorded commands.
func (c *Context) Commands() []Command {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Command(nil), c.commands...)
}

// Types returns the types of the recorded commands, in order.
func (c *Context) Types() []CommandType {
	c.mu.Lock()
	defer c.mu.Unlock()
	types := make([]CommandType, len(c.commands))
	for i, cmd := range c.commands {
		types[i] = cmd.Type()
	}
	return types
}

// Count returns how many commands of type t were recorded.
func (c *Context) Count(t CommandType) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, cmd := range c.commands {
		if cmd.Type() == t {
			n++
		}
	}
	return n
}

// Last returns the most recent command of type t.
func (c *Context) Last(t CommandType) (Command, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := len(c.commands) - 1; i >= 0; i-- {
		if c.commands[i].Type() == t {
			return c.commands[i], true
		}
	}
	return nil, false
}

// ResetCommands drops the recorded commands and keeps the state (clear
// color, viewport, bound shader, textures).
func (c *Context) ResetCommands() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.commands = c.commands[:0]
}

// ClearColorState returns the current clear color.
func (c *Context) ClearColorState() (r, g, b, a float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clearColor[0], c.clearColor[1], c.clearColor[2], c.clearColor[3]
}

// ViewportState returns the current viewport.
func (c *Context) ViewportState() (x, y, w, h int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewport[0], c.viewport[1], c.viewport[2], c.viewport[3]
}

// BoundShader returns the current shader, or nil.
func (c *Context) BoundShader() *Shader {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bound
}

// Recording returns an immutable snapshot of the commands.
func (c *Context) Recording() *Recording {
	return &Recording{commands: c.Commands()}
}

// Basic returns a view of c that implements only compositor.Context, for
// exercising code paths taken on minimal devices.
func (c *Context) Basic() compositor.Context {
	return basicContext{c}
}

type basicContext struct{ c *Context }

func (b basicContext) Viewport(x, y, w, h int)        { b.c.Viewport(x, y, w, h) }
func (b basicContext) ClearColor(r, g, bl, a float32) { b.c.ClearColor(r, g, bl, a) }
func (b basicContext) Clear(m compositor.ClearMask) error {
	return b.c.Clear(m)
}
func (b basicContext) BufferData(data []float32, usage compositor.BufferUsage) error {
	return b.c.BufferData(data, usage)
}
func (b basicContext) DrawArrays(mode compositor.DrawMode, first, count int) error {
	return b.c.DrawArrays(mode, first, count)
}

// Texture is a texture created by a recording Context.
type Texture struct {
	id            int
	width, height int
}

// ID returns the texture's sequence number within its context.
func (t *Texture) ID() int { return t.id }

// Width implements compositor.Texture.
func (t *Texture) Width() int { return t.width }

// Height implements compositor.Texture.
func (t *Texture) Height() int { return t.height }
