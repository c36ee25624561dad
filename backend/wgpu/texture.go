package wgpu

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"golang.org/x/image/draw"

	"github.com/gogpu/stage/compositor"
)

// Texture is an RGBA8 image resident on the device.
type Texture struct {
	ctx           *Context
	tex           hal.Texture
	view          hal.TextureView
	width, height int
}

var _ compositor.Texture = (*Texture)(nil)

func (t *Texture) Width() int  { return t.width }
func (t *Texture) Height() int { return t.height }

// CreateTexture uploads img as a premultiplied RGBA8 texture.
func (c *Context) CreateTexture(img image.Image) (compositor.Texture, error) {
	if c.destroyed {
		return nil, ErrDestroyed
	}
	if img == nil {
		return nil, errors.New("wgpu: nil image")
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: image %dx%d", ErrInvalidSize, w, h)
	}

	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Rect.Min != (image.Point{}) || rgba.Stride != 4*w {
		rgba = image.NewRGBA(image.Rect(0, 0, w, h))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}

	size := hal.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1}
	tex, err := c.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "stage_image",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create texture: %w", err)
	}
	view, err := c.device.CreateTextureView(tex, &hal.TextureViewDescriptor{Label: "stage_image_view"})
	if err != nil {
		c.device.DestroyTexture(tex)
		return nil, fmt.Errorf("create texture view: %w", err)
	}
	err = c.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: tex, Aspect: gputypes.TextureAspectAll},
		rgba.Pix,
		&hal.ImageDataLayout{BytesPerRow: uint32(rgba.Stride), RowsPerImage: uint32(h)},
		&size,
	)
	if err != nil {
		c.device.DestroyTextureView(view)
		c.device.DestroyTexture(tex)
		return nil, fmt.Errorf("write texture: %w", err)
	}

	t := &Texture{ctx: c, tex: tex, view: view, width: w, height: h}
	c.textures[t] = struct{}{}
	return t, nil
}

// BindTexture selects tex for unit 0. A nil tex unbinds.
func (c *Context) BindTexture(unit int, tex compositor.Texture) error {
	if c.destroyed {
		return ErrDestroyed
	}
	if unit != 0 {
		return fmt.Errorf("%w: unit %d", ErrTextureUnit, unit)
	}
	if tex == nil {
		c.texture = nil
		return nil
	}
	t, ok := tex.(*Texture)
	if !ok || t.ctx != c {
		return ErrForeignContext
	}
	if _, live := c.textures[t]; !live {
		return fmt.Errorf("wgpu: texture %dx%d was deleted", t.width, t.height)
	}
	c.texture = t
	return nil
}

// BoundTexture returns the texture on unit 0, or nil.
func (c *Context) BoundTexture() *Texture { return c.texture }

// DeleteTexture releases tex and every bind group that references it.
// Unknown or already deleted textures are ignored.
func (c *Context) DeleteTexture(tex compositor.Texture) {
	t, ok := tex.(*Texture)
	if !ok || t.ctx != c {
		return
	}
	if _, live := c.textures[t]; !live {
		return
	}
	for s := range c.shaders {
		s.forgetTexture(t)
	}
	if c.texture == t {
		c.texture = nil
	}
	delete(c.textures, t)
	t.destroy()
}

func (t *Texture) destroy() {
	device := t.ctx.device
	if t.view != nil {
		device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.tex != nil {
		device.DestroyTexture(t.tex)
		t.tex = nil
	}
}
