package wgpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// Device is an opened hal device together with the instance that owns it.
type Device struct {
	Info   gputypes.AdapterInfo
	Device hal.Device
	Queue  hal.Queue

	instance hal.Instance
}

// Open creates an instance on the given hal backend and opens its first
// adapter with default limits.
func Open(api hal.Backend) (*Device, error) {
	instance, err := api.CreateInstance(nil)
	if err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, errors.New("wgpu: no adapters")
	}
	exposed := adapters[0]
	open, err := exposed.Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("open adapter %q: %w", exposed.Info.Name, err)
	}
	slogger().Debug("wgpu: device opened",
		"backend", api.Variant(),
		"adapter", exposed.Info.Name,
		"vendor", exposed.Info.Vendor)
	return &Device{
		Info:     exposed.Info,
		Device:   open.Device,
		Queue:    open.Queue,
		instance: instance,
	}, nil
}

// OpenNoop opens the headless noop backend. Every call succeeds and no
// pixels are produced, which makes it useful for tests and dry runs.
func OpenNoop() (*Device, error) {
	return Open(noop.API{})
}

// Close destroys the device and its instance. It is safe to call twice.
func (d *Device) Close() {
	if d.Device != nil {
		d.Device.Destroy()
		d.Device = nil
	}
	if d.instance != nil {
		d.instance.Destroy()
		d.instance = nil
	}
	d.Queue = nil
}
