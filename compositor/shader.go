package compositor

import (
	"encoding/binary"

	"github.com/chewxy/math32"
)

// UniformProjection is the uniform every compositor shader must declare.
const UniformProjection = "uProjectionMatrix"

// Shader is a compiled GPU program as seen by a Compositor.
// Implementations must be comparable, usually by being pointers; the
// compositor compares them to detect rebinding the active shader.
type Shader interface {
	// Bind makes the program current on its context.
	Bind() error
	// SetUniform updates a named uniform.
	SetUniform(name string, v UniformValue) error
	// SetVertexAttributes binds the vertex layout to the program's inputs.
	SetVertexAttributes(ctx Context, attrs []Attribute, byteStride int) error
}

// UniformValue is a value that can be written into a uniform block.
// Float, Int, Vec2, Vec4 and stage.Matrix3D implement it.
type UniformValue interface {
	// Size returns the encoded size in bytes.
	Size() int
	// AppendBytes appends the little-endian encoding to dst.
	AppendBytes(dst []byte) []byte
}

// Float is a scalar float uniform.
type Float float32

func (Float) Size() int { return 4 }

func (f Float) AppendBytes(dst []byte) []byte {
	return binary.LittleEndian.AppendUint32(dst, math32.Float32bits(float32(f)))
}

// Int is a scalar int uniform.
type Int int32

func (Int) Size() int { return 4 }

func (i Int) AppendBytes(dst []byte) []byte {
	return binary.LittleEndian.AppendUint32(dst, uint32(i))
}

// Vec2 is a two component float uniform.
type Vec2 [2]float32

func (Vec2) Size() int { return 8 }

func (v Vec2) AppendBytes(dst []byte) []byte {
	for _, f := range v {
		dst = binary.LittleEndian.AppendUint32(dst, math32.Float32bits(f))
	}
	return dst
}

// Vec4 is a four component float uniform.
type Vec4 [4]float32

func (Vec4) Size() int { return 16 }

func (v Vec4) AppendBytes(dst []byte) []byte {
	for _, f := range v {
		dst = binary.LittleEndian.AppendUint32(dst, math32.Float32bits(f))
	}
	return dst
}

// UniformField places a named uniform inside the shader's uniform block.
type UniformField struct {
	Name   string
	Offset int
	Size   int
}

// ShaderDescriptor describes a shader a ShaderCompiler can build.
type ShaderDescriptor struct {
	Label string
	// Source is WGSL with entry points vs_main and fs_main. The uniform block
	// is bound at group 0, binding 0; textured shaders also read a texture at
	// binding 1 and a sampler at binding 2.
	Source   string
	Uniforms []UniformField
	Textured bool
}

// UniformBlockSize returns the size of the uniform block rounded up to 16
// bytes.
func (d ShaderDescriptor) UniformBlockSize() int {
	size := 0
	for _, u := range d.Uniforms {
		size = max(size, u.Offset+u.Size)
	}
	return (size + 15) &^ 15
}

// ShaderCompiler is implemented by contexts that can create shaders.
type ShaderCompiler interface {
	CompileShader(desc ShaderDescriptor) (Shader, error)
}
