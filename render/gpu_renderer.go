// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"sync"

	"github.com/gogpu/stage"
	"github.com/gogpu/stage/compositor"
	"github.com/gogpu/stage/event"
)

// batcher is a compositor the renderer can switch to.
type batcher interface {
	Flush(opts ...compositor.FlushOption) error
	Rebind() error
	Close() error
}

// GPURenderer draws through a compositor.Context. It owns the canvas size,
// the orthographic projection and the drawing state, and it creates the
// compositors that batch geometry. Only one compositor is active at a time;
// switching flushes the previous one and rebinds the next.
//
// Resizes are published on the renderer's own channel, so every compositor
// it created flushes its pending batch before the viewport moves.
type GPURenderer struct {
	canvasState

	name    string
	gl      compositor.Context
	version int
	opts    options

	mu            sync.Mutex
	width, height int
	proj          stage.Matrix3D

	resize    *event.Channel[event.Size]
	host      *event.Channel[event.Size]
	hostToken event.Token

	prim   *compositor.PrimitiveCompositor
	quad   *compositor.QuadCompositor
	active batcher

	images map[*Image]compositor.Texture
	closed bool
}

var (
	_ Renderer            = (*GPURenderer)(nil)
	_ compositor.Renderer = (*GPURenderer)(nil)
)

// NewGPURenderer creates a renderer on gl with a width x height canvas.
// With WithWindow a zero size is taken from the window.
func NewGPURenderer(gl compositor.Context, width, height int, opts ...Option) (*GPURenderer, error) {
	if gl == nil {
		return nil, compositor.ErrNoContext
	}
	o := options{name: "gpu"}
	for _, opt := range opts {
		opt(&o)
	}
	if (width <= 0 || height <= 0) && o.window != nil {
		width, height = o.window.Size()
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	r := &GPURenderer{
		canvasState: newCanvasState(),
		name:        o.name,
		gl:          gl,
		version:     o.version,
		opts:        o,
		width:       width,
		height:      height,
		proj:        stage.Ortho(0, float32(width), float32(height), 0, -1, 1),
		resize:      new(event.Channel[event.Size]),
		images:      make(map[*Image]compositor.Texture),
	}
	if r.version == 0 {
		r.version = 1
		if _, ok := gl.(compositor.RangeUploader); ok {
			r.version = 2
		}
	}

	copts := append([]compositor.Option{compositor.WithResizeChannel(r.resize)}, o.compositor...)
	prim, err := compositor.NewPrimitiveCompositor(r, copts...)
	if err != nil {
		return nil, fmt.Errorf("render: primitive compositor: %w", err)
	}
	r.prim = prim
	r.active = prim

	if _, ok := gl.(compositor.TextureContext); ok {
		quad, err := compositor.NewQuadCompositor(r, copts...)
		if err != nil {
			_ = prim.Close()
			return nil, fmt.Errorf("render: quad compositor: %w", err)
		}
		r.quad = quad
		// The quad shader is bound last; make the primitive shader current.
		if err := prim.Rebind(); err != nil {
			_ = r.Close()
			return nil, err
		}
	}

	gl.Viewport(0, 0, width, height)

	if o.events != nil {
		r.host = new(event.Channel[event.Size])
		r.hostToken = r.host.Subscribe(r.onHostResize)
		event.ForwardResize(o.events, r.host)
	}
	slogger().Debug("render: gpu renderer created",
		"width", width, "height", height,
		"version", r.version, "textures", r.quad != nil)
	return r, nil
}

func (r *GPURenderer) onHostResize(s event.Size) {
	if err := r.Resize(s.Width, s.Height); err != nil {
		slogger().Warn("render: host resize failed", "width", s.Width, "height", s.Height, "err", err)
	}
}

// Name implements Renderer.
func (r *GPURenderer) Name() string { return r.name }

// GL implements compositor.Renderer.
func (r *GPURenderer) GL() compositor.Context { return r.gl }

// GLVersion implements compositor.Renderer.
func (r *GPURenderer) GLVersion() int { return r.version }

// CanvasSize implements compositor.Renderer and Renderer.
func (r *GPURenderer) CanvasSize() (width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

// ProjectionMatrix implements compositor.Renderer.
func (r *GPURenderer) ProjectionMatrix() stage.Matrix3D {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.proj
}

// ResizeChannel returns the channel the renderer's compositors listen on.
func (r *GPURenderer) ResizeChannel() *event.Channel[event.Size] { return r.resize }

// Primitive returns the compositor used for flat geometry.
func (r *GPURenderer) Primitive() *compositor.PrimitiveCompositor { return r.prim }

// Quad returns the compositor used for images, or nil when the context has
// no textures.
func (r *GPURenderer) Quad() *compositor.QuadCompositor { return r.quad }

// use makes b the active compositor.
func (r *GPURenderer) use(b batcher) error {
	if r.closed {
		return ErrClosed
	}
	if r.active == b {
		return nil
	}
	if err := r.active.Flush(); err != nil {
		return err
	}
	if err := b.Rebind(); err != nil {
		return err
	}
	r.active = b
	return nil
}

func (r *GPURenderer) FillRect(x, y, w, h float64) error {
	if err := r.use(r.prim); err != nil {
		return err
	}
	return r.prim.FillRect(x, y, w, h)
}

func (r *GPURenderer) StrokeRect(x, y, w, h float64) error {
	if err := r.use(r.prim); err != nil {
		return err
	}
	return r.prim.StrokeRect(x, y, w, h)
}

func (r *GPURenderer) FillEllipse(cx, cy, rx, ry float64) error {
	if err := r.use(r.prim); err != nil {
		return err
	}
	return r.prim.FillEllipse(cx, cy, rx, ry)
}

func (r *GPURenderer) StrokeEllipse(cx, cy, rx, ry float64) error {
	if err := r.use(r.prim); err != nil {
		return err
	}
	return r.prim.StrokeEllipse(cx, cy, rx, ry)
}

func (r *GPURenderer) StrokeLine(x0, y0, x1, y1 float64) error {
	if err := r.use(r.prim); err != nil {
		return err
	}
	return r.prim.StrokeLine(x0, y0, x1, y1)
}

// DrawImage implements Renderer. The image is uploaded on first use.
func (r *GPURenderer) DrawImage(img *Image, sx, sy, sw, sh, dx, dy, dw, dh float64) error {
	if r.quad == nil {
		return ErrNoImages
	}
	if err := r.use(r.quad); err != nil {
		return err
	}
	tex, ok := r.images[img]
	if !ok {
		var err error
		tex, err = r.quad.CreateTexture(img.RGBA())
		if err != nil {
			return fmt.Errorf("render: upload image: %w", err)
		}
		r.images[img] = tex
	}
	iw, ih := float64(img.Width()), float64(img.Height())
	return r.quad.AddQuad(tex,
		float32(dx), float32(dy), float32(dw), float32(dh),
		float32(sx/iw), float32(sy/ih), float32((sx+sw)/iw), float32((sy+sh)/ih),
		r.CurrentColor())
}

// ReleaseImage implements Renderer.
func (r *GPURenderer) ReleaseImage(img *Image) {
	tex, ok := r.images[img]
	if !ok {
		return
	}
	delete(r.images, img)
	if err := r.quad.DeleteTexture(tex); err != nil {
		slogger().Warn("render: release image", "err", err)
	}
}

// Clear flushes and clears the canvas to transparent black.
func (r *GPURenderer) Clear() error {
	if r.closed {
		return ErrClosed
	}
	if err := r.active.Flush(); err != nil {
		return err
	}
	return r.prim.Clear()
}

// ClearColor flushes and fills the canvas with c.
func (r *GPURenderer) ClearColor(c stage.Color) error {
	if r.closed {
		return ErrClosed
	}
	if err := r.active.Flush(); err != nil {
		return err
	}
	return r.prim.ClearColor(c.R, c.G, c.B, c.A)
}

// Flush draws everything batched by the active compositor.
func (r *GPURenderer) Flush() error {
	if r.closed {
		return ErrClosed
	}
	if err := r.active.Flush(); err != nil {
		return err
	}
	if r.opts.window != nil {
		r.opts.window.RequestRedraw()
	}
	return nil
}

// Resize changes the canvas size. Batched geometry is drawn first, then
// the viewport and projection follow the new size. Contexts with a
// Resize(int, int) error method have their targets resized too.
func (r *GPURenderer) Resize(width, height int) error {
	if r.closed {
		return ErrClosed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	// Pending geometry belongs to the old targets; draw it before they go.
	if err := r.active.Flush(); err != nil {
		return err
	}
	if rs, ok := r.gl.(interface{ Resize(int, int) error }); ok {
		if err := rs.Resize(width, height); err != nil {
			return fmt.Errorf("render: resize context: %w", err)
		}
	}

	r.mu.Lock()
	r.width, r.height = width, height
	r.proj = stage.Ortho(0, float32(width), float32(height), 0, -1, 1)
	proj := r.proj
	r.mu.Unlock()

	r.resize.Publish(event.Size{Width: width, Height: height})

	if err := r.prim.SetProjection(proj); err != nil {
		return err
	}
	if r.quad != nil {
		if err := r.quad.SetProjection(proj); err != nil {
			return err
		}
	}
	slogger().Debug("render: resized", "width", width, "height", height)
	return nil
}

// Stats returns the activity counters of the primitive and quad
// compositors.
func (r *GPURenderer) Stats() (prim, quad compositor.Stats) {
	prim = r.prim.Stats()
	if r.quad != nil {
		quad = r.quad.Stats()
	}
	return prim, quad
}

// Close flushes, releases the uploaded images, closes the compositors and
// destroys the context if it has a Destroy method. Close is idempotent.
func (r *GPURenderer) Close() error {
	if r.closed {
		return nil
	}
	err := r.active.Flush()
	if r.host != nil {
		r.host.Revoke(r.hostToken)
	}
	for img := range r.images {
		r.ReleaseImage(img)
	}
	r.closed = true
	if r.quad != nil {
		_ = r.quad.Close()
	}
	_ = r.prim.Close()
	if d, ok := r.gl.(interface{ Destroy() }); ok {
		d.Destroy()
	}
	r.resetState()
	return err
}
