package recording

import (
	"github.com/gogpu/stage/compositor"
)

// Shader is a compositor.Shader that records its calls on its Context and
// remembers the last value of every uniform.
type Shader struct {
	ctx      *Context
	label    string
	uniforms map[string][]byte
	attrs    []compositor.Attribute
	stride   int
}

var _ compositor.Shader = (*Shader)(nil)

// Label returns the shader's name as it appears in commands.
func (s *Shader) Label() string { return s.label }

// Bind implements compositor.Shader.
func (s *Shader) Bind() error {
	s.ctx.mu.Lock()
	defer s.ctx.mu.Unlock()
	s.ctx.bound = s
	return s.ctx.record(BindShaderCommand{Shader: s.label})
}

// SetUniform implements compositor.Shader.
func (s *Shader) SetUniform(name string, v compositor.UniformValue) error {
	s.ctx.mu.Lock()
	defer s.ctx.mu.Unlock()
	b := v.AppendBytes(make([]byte, 0, v.Size()))
	s.uniforms[name] = b
	return s.ctx.record(SetUniformCommand{Shader: s.label, Name: name, Value: b})
}

// SetVertexAttributes implements compositor.Shader.
func (s *Shader) SetVertexAttributes(_ compositor.Context, attrs []compositor.Attribute, byteStride int) error {
	s.ctx.mu.Lock()
	defer s.ctx.mu.Unlock()
	s.attrs = append(s.attrs[:0], attrs...)
	s.stride = byteStride
	return s.ctx.record(SetVertexAttributesCommand{
		Shader:     s.label,
		Attributes: append([]compositor.Attribute(nil), attrs...),
		ByteStride: byteStride,
	})
}

// Uniform returns the encoded value last set for name.
func (s *Shader) Uniform(name string) ([]byte, bool) {
	s.ctx.mu.Lock()
	defer s.ctx.mu.Unlock()
	b, ok := s.uniforms[name]
	return b, ok
}

// Attributes returns the vertex layout last bound to the shader.
func (s *Shader) Attributes() ([]compositor.Attribute, int) {
	s.ctx.mu.Lock()
	defer s.ctx.mu.Unlock()
	return append([]compositor.Attribute(nil), s.attrs...), s.stride
}
