// Package event provides typed publish/subscribe channels.
//
// A Channel delivers values synchronously to its subscribers in subscription
// order. Subscribing returns a Token that later revokes the subscription:
//
//	tok := event.CanvasResize.Subscribe(func(s event.Size) {
//	    log.Println("canvas is now", s.Width, "x", s.Height)
//	})
//	defer event.CanvasResize.Revoke(tok)
//
// CanvasResize is the process-wide channel a host publishes on when the
// drawing surface changes size. ForwardResize bridges a gpucontext.EventSource
// (a windowing backend) onto such a channel.
package event
