// Package wgpu implements compositor.Context on top of the gogpu/wgpu
// hardware abstraction layer.
//
// A Context owns a single-sample RGBA8 color target, a Depth24PlusStencil8
// attachment and one growable vertex buffer. Every DrawArrays call encodes
// one render pass and submits it immediately, so the GPU sees draws in the
// same order the compositor flushes them.
//
// Shaders are WGSL. They are parsed and validated with naga before the
// hal shader module is created, and each shader keeps one render pipeline
// per primitive topology. Line loops and triangle fans, which WebGPU does
// not support, are expanded on upload into line strips and triangle lists.
//
// Typical use with a headless device:
//
//	dev, err := wgpu.OpenNoop()
//	if err != nil {
//		return err
//	}
//	defer dev.Close()
//
//	ctx, err := wgpu.NewContext(dev.Device, dev.Queue, 800, 600)
//	if err != nil {
//		return err
//	}
//	defer ctx.Destroy()
package wgpu
