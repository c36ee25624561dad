// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/stage/compositor"
)

// Option configures a GPURenderer.
type Option func(*options)

type options struct {
	name       string
	version    int
	window     gpucontext.WindowProvider
	events     gpucontext.EventSource
	compositor []compositor.Option
}

// WithName sets the name reported by Name. The default is "gpu".
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithGLVersion overrides the detected context version. Version 1 forces
// whole-array uploads even when the context supports ranges.
func WithGLVersion(v int) Option {
	return func(o *options) { o.version = v }
}

// WithWindow takes the canvas size from w when no explicit size is given,
// and requests a redraw after every Flush.
func WithWindow(w gpucontext.WindowProvider) Option {
	return func(o *options) { o.window = w }
}

// WithEventSource resizes the renderer whenever src reports a resize.
func WithEventSource(src gpucontext.EventSource) Option {
	return func(o *options) { o.events = src }
}

// WithCompositorOptions passes opts to every compositor the renderer
// creates.
func WithCompositorOptions(opts ...compositor.Option) Option {
	return func(o *options) { o.compositor = append(o.compositor, opts...) }
}

// Config is what registry factories receive.
type Config struct {
	Width, Height int

	// HAL selects the hal backend the "gpu" backend opens. Nil means the
	// headless noop backend.
	HAL hal.Backend

	// Target receives the pixels of the "canvas" backend. Nil allocates a
	// new PixmapTarget.
	Target *PixmapTarget

	Options []Option
}
