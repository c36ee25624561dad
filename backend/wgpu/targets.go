package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

const (
	colorFormat        = gputypes.TextureFormatRGBA8Unorm
	depthStencilFormat = gputypes.TextureFormatDepth24PlusStencil8
)

// targets holds the color and depth/stencil attachments every pass renders
// into. The color texture has CopySrc usage so it can be read back.
type targets struct {
	colorTex  hal.Texture
	colorView hal.TextureView

	depthTex  hal.Texture
	depthView hal.TextureView

	width, height uint32
}

// ensure creates or recreates both attachments when the requested size
// differs from the current one. On failure everything created so far is
// released.
func (t *targets) ensure(device hal.Device, width, height uint32) error {
	if t.width == width && t.height == height && t.colorTex != nil {
		return nil
	}
	t.destroy(device)

	size := hal.Extent3D{
		Width:              width,
		Height:             height,
		DepthOrArrayLayers: 1,
	}

	colorTex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "stage_color",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        colorFormat,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("create color texture: %w", err)
	}
	t.colorTex = colorTex

	colorView, err := device.CreateTextureView(colorTex, &hal.TextureViewDescriptor{
		Label: "stage_color_view",
	})
	if err != nil {
		t.destroy(device)
		return fmt.Errorf("create color texture view: %w", err)
	}
	t.colorView = colorView

	depthTex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "stage_depth_stencil",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        depthStencilFormat,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		t.destroy(device)
		return fmt.Errorf("create depth/stencil texture: %w", err)
	}
	t.depthTex = depthTex

	depthView, err := device.CreateTextureView(depthTex, &hal.TextureViewDescriptor{
		Label: "stage_depth_stencil_view",
	})
	if err != nil {
		t.destroy(device)
		return fmt.Errorf("create depth/stencil texture view: %w", err)
	}
	t.depthView = depthView

	t.width = width
	t.height = height
	return nil
}

// destroy releases views before textures. Each resource is nil-checked so
// a partially built set can be cleaned up.
func (t *targets) destroy(device hal.Device) {
	if t.depthView != nil {
		device.DestroyTextureView(t.depthView)
		t.depthView = nil
	}
	if t.depthTex != nil {
		device.DestroyTexture(t.depthTex)
		t.depthTex = nil
	}
	if t.colorView != nil {
		device.DestroyTextureView(t.colorView)
		t.colorView = nil
	}
	if t.colorTex != nil {
		device.DestroyTexture(t.colorTex)
		t.colorTex = nil
	}
	t.width = 0
	t.height = 0
}
