// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/gogpu/stage"
)

// Renderer is the drawing surface shared by every backend. Colors and
// transforms set through it apply to subsequent draws; Save and Restore
// bracket changes.
//
// Renderers are not safe for concurrent use.
type Renderer interface {
	// Name returns the registry name of the backend.
	Name() string
	CanvasSize() (width, height int)

	Save()
	Restore() error
	Translate(x, y float64)
	Scale(x, y float64)
	Rotate(angle float64)
	Transform(m stage.Matrix)
	SetTransform(m stage.Matrix)
	ResetTransform()
	SetColor(c stage.Color)
	SetGlobalAlpha(a float32)
	CurrentColor() stage.Color
	CurrentTransform() stage.Matrix

	// Clear clears the canvas to transparent black.
	Clear() error
	// ClearColor fills the canvas with c, ignoring the transform.
	ClearColor(c stage.Color) error
	FillRect(x, y, w, h float64) error
	StrokeRect(x, y, w, h float64) error
	FillEllipse(cx, cy, rx, ry float64) error
	StrokeEllipse(cx, cy, rx, ry float64) error
	StrokeLine(x0, y0, x1, y1 float64) error
	// DrawImage draws the source rectangle of img into the destination
	// rectangle, tinted by the current color.
	DrawImage(img *Image, sx, sy, sw, sh, dx, dy, dw, dh float64) error
	// ReleaseImage frees any device copy of img.
	ReleaseImage(img *Image)

	// Flush submits pending work.
	Flush() error
	Resize(width, height int) error
	Close() error
}

// Image is a premultiplied RGBA image that renderers can draw. GPU
// renderers upload it on first use and keep the texture until
// ReleaseImage or Close.
type Image struct {
	rgba *image.RGBA
}

// NewImage copies src into a new Image.
func NewImage(src image.Image) *Image {
	b := src.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, b.Min, draw.Src)
	return &Image{rgba: rgba}
}

// NewImageFromRGBA wraps rgba without copying.
func NewImageFromRGBA(rgba *image.RGBA) *Image {
	return &Image{rgba: rgba}
}

func (img *Image) Width() int  { return img.rgba.Bounds().Dx() }
func (img *Image) Height() int { return img.rgba.Bounds().Dy() }

// RGBA returns the pixels.
func (img *Image) RGBA() *image.RGBA { return img.rgba }
