// Package recording provides a compositor.Context that records GPU calls.
//
// Instead of talking to a device, the Context appends a typed Command for
// every call it receives. Commands can be inspected in tests, counted, or
// dumped as text:
//
//	ctx := recording.NewContext()
//	r, _ := render.NewGPURenderer(ctx, 800, 600)
//	r.FillRect(0, 0, 10, 10)
//	r.Flush()
//	ctx.Recording().WriteTo(os.Stdout)
//
// Commands are plain typed structs rather than a binary encoding, so tests
// can compare them field by field.
//
// Failures can be injected per command type with FailOn to exercise error
// paths of code built on the compositor.
package recording
