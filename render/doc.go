// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render provides the renderers that sit on top of the compositors.
//
// A Renderer keeps a canvas-style drawing state (a save/restore stack of
// transform, color and global alpha) and turns shape and image calls into
// batched geometry.
//
// # Renderer Implementations
//
//   - GPURenderer: draws through a compositor.Context. It owns the canvas
//     size and projection and switches between the primitive and quad
//     compositors as calls alternate between shapes and images.
//   - CanvasRenderer: rasterizes on the CPU into a PixmapTarget.
//
// # Backends
//
// Renderers are usually created by backend name:
//
//	r, err := render.New(render.BackendCanvas, render.Config{Width: 320, Height: 240})
//	if err != nil {
//		return err
//	}
//	defer r.Close()
//
//	r.SetColor(stage.Hex("#ff8000"))
//	r.FillRect(10, 10, 100, 50)
//	r.Flush()
//
// The built-in backends are "gpu" (a wgpu device, headless unless
// Config.HAL names a hal backend), "canvas" and "trace" (a recording
// context for tests and debugging). Register adds more.
package render
