// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestNewPixmapTarget(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
	}{
		{"small", 16, 16},
		{"wide", 300, 10},
		{"tall", 10, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := NewPixmapTarget(tt.width, tt.height)
			if target.Width() != tt.width || target.Height() != tt.height {
				t.Errorf("size = %dx%d, want %dx%d", target.Width(), target.Height(), tt.width, tt.height)
			}
			if target.Format() != gputypes.TextureFormatRGBA8Unorm {
				t.Errorf("Format() = %v, want RGBA8Unorm", target.Format())
			}
			if target.Stride() != tt.width*4 {
				t.Errorf("Stride() = %d, want %d", target.Stride(), tt.width*4)
			}
			if len(target.Pixels()) != tt.width*tt.height*4 {
				t.Errorf("len(Pixels()) = %d", len(target.Pixels()))
			}
		})
	}
}

func TestPixmapTargetFromImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 10))
	img.SetRGBA(5, 5, color.RGBA{255, 0, 0, 255})

	target := NewPixmapTargetFromImage(img)
	if target.Image() != img {
		t.Error("Image() does not share the wrapped image")
	}
	if got := target.Pixel(5, 5); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("Pixel(5,5) = %v", got)
	}
}

func TestPixmapTargetFill(t *testing.T) {
	target := NewPixmapTarget(7, 3)
	c := color.RGBA{10, 20, 30, 255}
	target.Fill(c)
	for y := 0; y < 3; y++ {
		for x := 0; x < 7; x++ {
			if got := target.Pixel(x, y); got != c {
				t.Fatalf("Pixel(%d,%d) = %v, want %v", x, y, got, c)
			}
		}
	}

	target.Resize(4, 4)
	if target.Width() != 4 || target.Pixel(0, 0) != (color.RGBA{}) {
		t.Error("Resize did not produce a cleared 4x4 image")
	}
}
