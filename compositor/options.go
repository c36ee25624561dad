package compositor

import "github.com/gogpu/stage/event"

// DefaultMaxVertices is the batch size at which Push flushes automatically.
const DefaultMaxVertices = 4096

// Option configures a Compositor during creation.
//
// Example:
//
//	c, err := compositor.New(r,
//	    compositor.WithMaxVertices(1024),
//	    compositor.WithResizeChannel(&myCanvasResize),
//	)
type Option func(*options)

// options holds optional configuration for Compositor creation.
type options struct {
	maxVertices int
	mode        DrawMode
	resize      *event.Channel[event.Size]
	onError     func(error)
	shader      Shader
}

// defaultOptions returns the default compositor options.
func defaultOptions() options {
	return options{
		maxVertices: DefaultMaxVertices,
		mode:        Triangles,
		resize:      &event.CanvasResize,
		onError: func(err error) {
			slogger().Error("compositor: resize flush failed", "error", err)
		},
	}
}

// WithMaxVertices sets how many vertices are batched before an automatic
// flush. Values below 1 are ignored.
func WithMaxVertices(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxVertices = n
		}
	}
}

// WithDrawMode sets the initial draw mode (default Triangles).
func WithDrawMode(m DrawMode) Option {
	return func(o *options) {
		o.mode = m
	}
}

// WithResizeChannel subscribes the compositor to ch instead of the
// process-wide event.CanvasResize.
func WithResizeChannel(ch *event.Channel[event.Size]) Option {
	return func(o *options) {
		if ch != nil {
			o.resize = ch
		}
	}
}

// WithErrorHandler receives errors that have no caller to return to, such
// as a failed flush inside a resize notification. The default logs them.
func WithErrorHandler(fn func(error)) Option {
	return func(o *options) {
		if fn != nil {
			o.onError = fn
		}
	}
}

// WithShader supplies the shader used by PrimitiveCompositor and
// QuadCompositor instead of compiling the built-in one.
func WithShader(s Shader) Option {
	return func(o *options) {
		o.shader = s
	}
}

// FlushOption configures a single Flush call.
type FlushOption func(*flushOptions)

type flushOptions struct {
	mode    DrawMode
	modeSet bool
}

// WithMode draws the batch with m instead of the compositor's draw mode.
func WithMode(m DrawMode) FlushOption {
	return func(o *flushOptions) {
		o.mode = m
		o.modeSet = true
	}
}

// ClearOption configures a single Clear call.
type ClearOption func(*clearOptions)

type clearOptions struct {
	alpha float32
}

// WithAlpha sets the alpha of the black clear color (default 0).
func WithAlpha(a float32) ClearOption {
	return func(o *clearOptions) {
		o.alpha = a
	}
}
