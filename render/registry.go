// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/stage/backend/wgpu"
	"github.com/gogpu/stage/recording"
)

// Built-in backend names.
const (
	BackendGPU    = "gpu"
	BackendCanvas = "canvas"
	BackendTrace  = "trace"
)

// Factory creates a renderer for cfg.
type Factory func(cfg Config) (Renderer, error)

// Priority order for Default (first registered wins).
var backends = gpucontext.NewRegistry[Factory](
	gpucontext.WithPriority(BackendGPU, BackendCanvas, BackendTrace),
)

func init() {
	Register(BackendGPU, newGPUBackend)
	Register(BackendCanvas, newCanvasBackend)
	Register(BackendTrace, newTraceBackend)
}

// Register registers a renderer factory under name, replacing any factory
// already registered with that name.
func Register(name string, f Factory) {
	backends.Register(name, func() Factory { return f })
}

// Unregister removes a backend from the registry.
func Unregister(name string) {
	backends.Unregister(name)
}

// Available returns the registered backend names.
func Available() []string {
	return backends.Available()
}

// IsRegistered reports whether a backend named name is registered.
func IsRegistered(name string) bool {
	return backends.Has(name)
}

// New creates a renderer with the named backend.
func New(name string, cfg Config) (Renderer, error) {
	f := backends.Get(name)
	if f == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
	r, err := f(cfg)
	if err != nil {
		return nil, fmt.Errorf("render: backend %s: %w", name, err)
	}
	slogger().Debug("render: backend created", "backend", name, "width", cfg.Width, "height", cfg.Height)
	return r, nil
}

// Default creates a renderer with the best registered backend.
func Default(cfg Config) (Renderer, error) {
	name := backends.BestName()
	if name == "" {
		return nil, ErrNoBackend
	}
	return New(name, cfg)
}

func newGPUBackend(cfg Config) (Renderer, error) {
	var (
		dev *wgpu.Device
		err error
	)
	if cfg.HAL != nil {
		dev, err = wgpu.Open(cfg.HAL)
	} else {
		dev, err = wgpu.OpenNoop()
	}
	if err != nil {
		return nil, err
	}
	ctx, err := wgpu.NewDeviceContext(dev, cfg.Width, cfg.Height)
	if err != nil {
		dev.Close()
		return nil, err
	}
	opts := append([]Option{WithName(BackendGPU), WithGLVersion(2)}, cfg.Options...)
	r, err := NewGPURenderer(ctx, cfg.Width, cfg.Height, opts...)
	if err != nil {
		ctx.Destroy()
		return nil, err
	}
	return r, nil
}

func newCanvasBackend(cfg Config) (Renderer, error) {
	target := cfg.Target
	if target == nil {
		if cfg.Width <= 0 || cfg.Height <= 0 {
			return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, cfg.Width, cfg.Height)
		}
		target = NewPixmapTarget(cfg.Width, cfg.Height)
	}
	return NewCanvasRenderer(target), nil
}

// newTraceBackend renders into a recording context. The recording is
// reachable through the renderer's GL method.
func newTraceBackend(cfg Config) (Renderer, error) {
	opts := append([]Option{WithName(BackendTrace)}, cfg.Options...)
	return NewGPURenderer(recording.NewContext(), cfg.Width, cfg.Height, opts...)
}
