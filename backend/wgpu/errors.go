package wgpu

import "errors"

var (
	// ErrDestroyed is returned by calls on a destroyed Context.
	ErrDestroyed = errors.New("wgpu: context destroyed")

	// ErrInvalidSize is returned for zero target dimensions.
	ErrInvalidSize = errors.New("wgpu: invalid target size")

	// ErrNoShader is returned by DrawArrays when no shader is bound.
	ErrNoShader = errors.New("wgpu: no shader bound")

	// ErrNoLayout is returned by DrawArrays when the bound shader has no
	// vertex attributes.
	ErrNoLayout = errors.New("wgpu: shader has no vertex layout")

	// ErrEntryPoint is returned when a WGSL module lacks vs_main or fs_main.
	ErrEntryPoint = errors.New("wgpu: missing shader entry point")

	// ErrShaderValidation wraps naga parse and validation failures.
	ErrShaderValidation = errors.New("wgpu: shader validation failed")

	// ErrUnknownUniform is returned by SetUniform for names outside the
	// shader's uniform block.
	ErrUnknownUniform = errors.New("wgpu: unknown uniform")

	// ErrUniformSize is returned when a value does not fit its field.
	ErrUniformSize = errors.New("wgpu: uniform value too large")

	// ErrVertexFormat is returned for attribute shapes WebGPU cannot fetch,
	// such as single 8-bit components.
	ErrVertexFormat = errors.New("wgpu: unsupported vertex format")

	// ErrForeignContext is returned when a shader or texture is used with a
	// context that did not create it.
	ErrForeignContext = errors.New("wgpu: resource belongs to another context")

	// ErrTextureUnit is returned when binding a unit other than 0.
	ErrTextureUnit = errors.New("wgpu: only texture unit 0 is supported")

	// ErrDrawRange is returned when a draw reads past the uploaded vertices.
	ErrDrawRange = errors.New("wgpu: draw range outside uploaded data")
)

var (
	// ErrUploadRange is returned by BufferDataRange for a range outside data.
	ErrUploadRange = errors.New("wgpu: upload range outside data")

	// ErrNoTexture is returned when a textured shader draws with no texture
	// bound to unit 0.
	ErrNoTexture = errors.New("wgpu: textured shader drawn without a texture")
)
