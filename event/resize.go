package event

import "github.com/gogpu/gpucontext"

// Size is a canvas size in pixels.
type Size struct {
	Width, Height int
}

// CanvasResize is published whenever the process's main canvas changes size.
// Compositors subscribe to it unless configured with their own channel.
var CanvasResize Channel[Size]

// ForwardResize publishes every resize reported by src on ch.
// Event sources cannot unregister callbacks; stop forwarding by discarding
// the source.
func ForwardResize(src gpucontext.EventSource, ch *Channel[Size]) {
	src.OnResize(func(w, h int) {
		ch.Publish(Size{Width: w, Height: h})
	})
}
