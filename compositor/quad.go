package compositor

import (
	"fmt"
	"image"

	"github.com/gogpu/stage"
)

// QuadCompositor draws textured, tinted quads. Its vertex record is aVertex
// (float32x2), aRegion (float32x2 texture coordinates) and aColor
// (normalized uint8x4 tint), five float32 slots in total.
//
// One texture is bound at a time; drawing with another texture flushes the
// batch first.
type QuadCompositor struct {
	*Compositor

	tc      TextureContext
	shader  Shader
	texture Texture
	scratch [6 * 5]float32
}

// NewQuadCompositor creates a quad compositor. The renderer's context must
// implement TextureContext.
func NewQuadCompositor(r Renderer, opts ...Option) (*QuadCompositor, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if r != nil && r.GL() != nil {
		if _, ok := r.GL().(TextureContext); !ok {
			return nil, ErrTexturesUnsupported
		}
	}
	c, err := newCompositor(r, o)
	if err != nil {
		return nil, err
	}
	q := &QuadCompositor{Compositor: c, tc: c.gl.(TextureContext)}
	if err := q.init(o.shader); err != nil {
		_ = c.Close()
		return nil, err
	}
	return q, nil
}

func (q *QuadCompositor) init(shader Shader) error {
	if err := q.AddAttribute("aVertex", 2, Float32, false, 0); err != nil {
		return err
	}
	if err := q.AddAttribute("aRegion", 2, Float32, false, 8); err != nil {
		return err
	}
	if err := q.AddAttribute("aColor", 4, Uint8, true, 16); err != nil {
		return err
	}
	s, err := resolveShader(q.gl, shader, QuadShaderDescriptor())
	if err != nil {
		return err
	}
	q.shader = s
	return q.UseShader(s)
}

// DefaultShader returns the shader the compositor draws with.
func (q *QuadCompositor) DefaultShader() Shader { return q.shader }

// CreateTexture uploads img to the GPU.
func (q *QuadCompositor) CreateTexture(img image.Image) (Texture, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.tc.CreateTexture(img)
}

// DeleteTexture releases tex. If it is bound, the pending batch is flushed
// first.
func (q *QuadCompositor) DeleteTexture(tex Texture) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if tex == q.texture {
		if err := q.flushLocked(q.mode); err != nil {
			return err
		}
		q.texture = nil
	}
	q.tc.DeleteTexture(tex)
	return nil
}

// BoundTexture returns the texture the pending batch samples.
func (q *QuadCompositor) BoundTexture() Texture {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.texture
}

// AddQuad draws the region (u0,v0)-(u1,v1) of tex into the rectangle
// (x, y, w, h), transformed by the renderer's current transform.
func (q *QuadCompositor) AddQuad(tex Texture, x, y, w, h, u0, v0, u1, v1 float32, tint stage.Color) error {
	if tex == nil {
		return ErrNilTexture
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrClosed
	}
	if err := q.useShaderLocked(q.shader); err != nil {
		return err
	}
	if err := q.setModeLocked(Triangles); err != nil {
		return err
	}
	if tex != q.texture {
		if err := q.flushLocked(q.mode); err != nil {
			return err
		}
		if err := q.tc.BindTexture(0, tex); err != nil {
			return fmt.Errorf("%w: bind texture: %w", ErrGPU, err)
		}
		q.texture = tex
	}

	m := q.renderer.CurrentTransform()
	color := PackColor(tint)
	corner := func(px, py float32) (float32, float32) {
		p := m.Apply(stage.V2(float64(px), float64(py)))
		return float32(p.X), float32(p.Y)
	}
	x0, y0 := corner(x, y)
	x1, y1 := corner(x+w, y)
	x2, y2 := corner(x, y+h)
	x3, y3 := corner(x+w, y+h)

	q.scratch = [6 * 5]float32{
		x0, y0, u0, v0, color,
		x1, y1, u1, v0, color,
		x2, y2, u0, v1, color,
		x2, y2, u0, v1, color,
		x1, y1, u1, v0, color,
		x3, y3, u1, v1, color,
	}
	return q.pushLocked(6, q.scratch[:])
}

// Rebind binds the shader and the current texture again.
func (q *QuadCompositor) Rebind() error {
	if err := q.Compositor.Rebind(); err != nil {
		return err
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.texture == nil {
		return nil
	}
	if err := q.tc.BindTexture(0, q.texture); err != nil {
		return fmt.Errorf("%w: bind texture: %w", ErrGPU, err)
	}
	return nil
}

// Reset resets the compositor and forgets the bound texture.
func (q *QuadCompositor) Reset() error {
	if err := q.Compositor.Reset(); err != nil {
		return err
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.texture = nil
	if tc, ok := q.gl.(TextureContext); ok {
		q.tc = tc
	}
	return nil
}
