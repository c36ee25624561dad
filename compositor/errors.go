package compositor

import "errors"

// Layout errors.
var (
	// ErrInvalidAttributeType is returned when an attribute's scalar type is
	// not one of Int8, Uint8, Int16, Uint16, Int32, Uint32 or Float32.
	ErrInvalidAttributeType = errors.New("compositor: invalid attribute type")

	// ErrInvalidComponentCount is returned for component counts outside 1..4.
	ErrInvalidComponentCount = errors.New("compositor: component count must be 1..4")

	// ErrAttributeOffset is returned when an attribute's byte offset does not
	// equal the size of the attributes before it.
	ErrAttributeOffset = errors.New("compositor: attribute offset does not match layout stride")

	// ErrUnalignedLayout is returned when vertices are pushed while the
	// layout's byte stride is not a multiple of 4.
	ErrUnalignedLayout = errors.New("compositor: vertex stride is not float32 aligned")

	// ErrNoAttributes is returned when vertices are pushed before any
	// attribute was added.
	ErrNoAttributes = errors.New("compositor: layout has no attributes")
)

// Vertex buffer errors.
var (
	// ErrRecordLength is returned when a pushed record does not have exactly
	// one stride of values.
	ErrRecordLength = errors.New("compositor: record length does not match stride")

	// ErrRange is returned when a view lies outside the committed region.
	ErrRange = errors.New("compositor: range outside committed vertices")

	// ErrBufferNotEmpty is returned when the layout changes while vertices
	// are pending.
	ErrBufferNotEmpty = errors.New("compositor: vertex buffer is not empty")
)

// Binding and GPU errors.
var (
	// ErrNoActiveShader is returned by operations that need a bound shader.
	ErrNoActiveShader = errors.New("compositor: no active shader")

	// ErrNilShader is returned by UseShader(nil).
	ErrNilShader = errors.New("compositor: nil shader")

	// ErrNilTexture is returned by AddQuad(nil, ...).
	ErrNilTexture = errors.New("compositor: nil texture")

	// ErrNoContext is returned when the renderer has no GPU context.
	ErrNoContext = errors.New("compositor: renderer has no context")

	// ErrShaderUnavailable is returned when no shader was supplied and the
	// context cannot compile one.
	ErrShaderUnavailable = errors.New("compositor: no shader supplied and context cannot compile shaders")

	// ErrTexturesUnsupported is returned when a textured compositor is
	// created on a context without texture support.
	ErrTexturesUnsupported = errors.New("compositor: context does not support textures")

	// ErrGPU wraps failures reported by the Context during a flush. The batch
	// is discarded; the frame should be considered corrupt.
	ErrGPU = errors.New("compositor: gpu error")

	// ErrClosed is returned by operations on a closed compositor.
	ErrClosed = errors.New("compositor: closed")
)
