package compositor

import "github.com/gogpu/stage"

// Renderer is the collaborator that owns the GPU context and the drawing
// state. A Compositor holds a non-owning reference to it and reads its state
// on every draw.
type Renderer interface {
	// GL returns the current GPU context. It may change after context loss;
	// Compositor.Reset re-reads it.
	GL() Context
	CurrentColor() stage.Color
	CurrentTransform() stage.Matrix
	ProjectionMatrix() stage.Matrix3D
	CanvasSize() (width, height int)
	// GLVersion is 2 or more when the context supports sub-range uploads.
	GLVersion() int
}
