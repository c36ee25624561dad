// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/vector"

	"github.com/gogpu/stage"
	"github.com/gogpu/stage/compositor"
)

// CanvasRenderer is the software renderer. It draws straight into a
// PixmapTarget: fills go through the x/image vector rasterizer, images
// through its bilinear scaler. There is no batching, so Flush does nothing.
type CanvasRenderer struct {
	canvasState

	target *PixmapTarget
	raster *vector.Rasterizer
	points []stage.Vec2
	closed bool
}

var _ Renderer = (*CanvasRenderer)(nil)

// NewCanvasRenderer creates a renderer drawing into target.
func NewCanvasRenderer(target *PixmapTarget) *CanvasRenderer {
	return &CanvasRenderer{
		canvasState: newCanvasState(),
		target:      target,
		raster:      vector.NewRasterizer(target.Width(), target.Height()),
	}
}

func (r *CanvasRenderer) Name() string { return "canvas" }

// Target returns the pixmap the renderer draws into.
func (r *CanvasRenderer) Target() *PixmapTarget { return r.target }

func (r *CanvasRenderer) CanvasSize() (width, height int) {
	return r.target.Width(), r.target.Height()
}

func (r *CanvasRenderer) Clear() error {
	if r.closed {
		return ErrClosed
	}
	r.target.Fill(color.Transparent)
	return nil
}

func (r *CanvasRenderer) ClearColor(c stage.Color) error {
	if r.closed {
		return ErrClosed
	}
	r.target.Fill(c.NRGBA())
	return nil
}

func (r *CanvasRenderer) FillRect(x, y, w, h float64) error {
	r.points = append(r.points[:0],
		stage.V2(x, y), stage.V2(x+w, y), stage.V2(x+w, y+h), stage.V2(x, y+h))
	return r.fill(r.points)
}

func (r *CanvasRenderer) StrokeRect(x, y, w, h float64) error {
	r.points = append(r.points[:0],
		stage.V2(x, y), stage.V2(x+w, y), stage.V2(x+w, y+h), stage.V2(x, y+h))
	return r.stroke(r.points, true)
}

func (r *CanvasRenderer) FillEllipse(cx, cy, rx, ry float64) error {
	r.points = compositor.EllipseOutline(r.points[:0], cx, cy, rx, ry)
	return r.fill(r.points)
}

func (r *CanvasRenderer) StrokeEllipse(cx, cy, rx, ry float64) error {
	r.points = compositor.EllipseOutline(r.points[:0], cx, cy, rx, ry)
	return r.stroke(r.points, true)
}

func (r *CanvasRenderer) StrokeLine(x0, y0, x1, y1 float64) error {
	r.points = append(r.points[:0], stage.V2(x0, y0), stage.V2(x1, y1))
	return r.stroke(r.points, false)
}

// fill rasterizes the polygon pts, in local coordinates, with the current
// color.
func (r *CanvasRenderer) fill(pts []stage.Vec2) error {
	if r.closed {
		return ErrClosed
	}
	if len(pts) < 3 {
		return nil
	}
	m := r.CurrentTransform()
	r.begin()
	p := m.Apply(pts[0])
	r.raster.MoveTo(float32(p.X), float32(p.Y))
	for _, pt := range pts[1:] {
		p = m.Apply(pt)
		r.raster.LineTo(float32(p.X), float32(p.Y))
	}
	r.raster.ClosePath()
	r.paint()
	return nil
}

// stroke draws one pixel wide lines through pts. Widths are in device
// pixels, so scaling the transform does not thicken lines.
func (r *CanvasRenderer) stroke(pts []stage.Vec2, closed bool) error {
	if r.closed {
		return ErrClosed
	}
	if len(pts) < 2 {
		return nil
	}
	m := r.CurrentTransform()
	r.begin()
	n := len(pts) - 1
	if closed {
		n = len(pts)
	}
	for i := 0; i < n; i++ {
		a := m.Apply(pts[i])
		b := m.Apply(pts[(i+1)%len(pts)])
		d := b.Sub(a)
		if d.IsZero() {
			continue
		}
		off := d.Perp().Normalize().Mul(0.5)
		r.raster.MoveTo(float32(a.X+off.X), float32(a.Y+off.Y))
		r.raster.LineTo(float32(b.X+off.X), float32(b.Y+off.Y))
		r.raster.LineTo(float32(b.X-off.X), float32(b.Y-off.Y))
		r.raster.LineTo(float32(a.X-off.X), float32(a.Y-off.Y))
		r.raster.ClosePath()
	}
	r.paint()
	return nil
}

func (r *CanvasRenderer) begin() {
	r.raster.Reset(r.target.Width(), r.target.Height())
	r.raster.DrawOp = draw.Over
}

func (r *CanvasRenderer) paint() {
	dst := r.target.Image()
	src := image.NewUniform(r.CurrentColor().NRGBA())
	r.raster.Draw(dst, dst.Bounds(), src, image.Point{})
}

// DrawImage implements Renderer with bilinear filtering. The tint is the
// current color; an opaque white tint draws the image unchanged.
func (r *CanvasRenderer) DrawImage(img *Image, sx, sy, sw, sh, dx, dy, dw, dh float64) error {
	if r.closed {
		return ErrClosed
	}
	if sw <= 0 || sh <= 0 || dw == 0 || dh == 0 {
		return nil
	}
	sr := image.Rect(int(sx), int(sy), int(sx+sw), int(sy+sh))
	var src image.Image = img.RGBA()
	tint := r.CurrentColor()
	if tint.R != 1 || tint.G != 1 || tint.B != 1 {
		src = tinted(img.RGBA(), sr, tint)
	}

	// Source pixels map to the destination rectangle, then through the
	// current transform.
	kx, ky := dw/sw, dh/sh
	tx, ty := dx-sx*kx, dy-sy*ky
	m := r.CurrentTransform()
	s2d := f64.Aff3{
		m.A * kx, m.B * ky, m.A*tx + m.B*ty + m.C,
		m.D * kx, m.E * ky, m.D*tx + m.E*ty + m.F,
	}

	var opts *draw.Options
	if tint.A < 1 {
		opts = &draw.Options{SrcMask: image.NewUniform(color.Alpha16{A: uint16(tint.A * 0xffff)})}
	}
	draw.BiLinear.Transform(r.target.Image(), s2d, src, sr, draw.Over, opts)
	return nil
}

// tinted returns the sr region of src with its color channels multiplied by
// tint. The result keeps src's coordinate space.
func tinted(src *image.RGBA, sr image.Rectangle, tint stage.Color) *image.RGBA {
	sr = sr.Intersect(src.Bounds())
	out := image.NewRGBA(sr)
	for y := sr.Min.Y; y < sr.Max.Y; y++ {
		for x := sr.Min.X; x < sr.Max.X; x++ {
			c := src.RGBAAt(x, y)
			out.SetRGBA(x, y, color.RGBA{
				R: uint8(float32(c.R) * tint.R),
				G: uint8(float32(c.G) * tint.G),
				B: uint8(float32(c.B) * tint.B),
				A: c.A,
			})
		}
	}
	return out
}

// ReleaseImage does nothing; images are drawn from memory.
func (r *CanvasRenderer) ReleaseImage(*Image) {}

func (r *CanvasRenderer) Flush() error {
	if r.closed {
		return ErrClosed
	}
	return nil
}

// Resize replaces the target's pixels with a cleared image of the new size.
func (r *CanvasRenderer) Resize(width, height int) error {
	if r.closed {
		return ErrClosed
	}
	if width <= 0 || height <= 0 {
		return ErrInvalidSize
	}
	r.target.Resize(width, height)
	return nil
}

func (r *CanvasRenderer) Close() error {
	r.closed = true
	return nil
}
