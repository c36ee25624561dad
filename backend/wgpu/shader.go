package wgpu

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/stage/compositor"
)

// Entry points every stage shader must define.
const (
	VertexEntryPoint   = "vs_main"
	FragmentEntryPoint = "fs_main"
)

const minUniformBlockSize = 16

// ValidateWGSL parses, lowers and validates source with naga and checks
// that it declares a vertex vs_main and a fragment fs_main.
func ValidateWGSL(source string) error {
	ast, err := naga.Parse(source)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrShaderValidation, err)
	}
	module, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrShaderValidation, err)
	}
	problems, err := naga.Validate(module)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrShaderValidation, err)
	}
	if len(problems) > 0 {
		msgs := make([]string, len(problems))
		for i, p := range problems {
			msgs[i] = p.Message
		}
		return fmt.Errorf("%w: %s", ErrShaderValidation, strings.Join(msgs, "; "))
	}

	var vertex, fragment bool
	for _, ep := range module.EntryPoints {
		switch {
		case ep.Name == VertexEntryPoint && ep.Stage == ir.StageVertex:
			vertex = true
		case ep.Name == FragmentEntryPoint && ep.Stage == ir.StageFragment:
			fragment = true
		}
	}
	if !vertex {
		return fmt.Errorf("%w: vertex %s", ErrEntryPoint, VertexEntryPoint)
	}
	if !fragment {
		return fmt.Errorf("%w: fragment %s", ErrEntryPoint, FragmentEntryPoint)
	}
	return nil
}

// Shader is a compiled WGSL program with its uniform block, bind group
// layout and one render pipeline per topology.
type Shader struct {
	ctx  *Context
	desc compositor.ShaderDescriptor

	module     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	uniformBuf hal.Buffer
	sampler    hal.Sampler

	uniforms []byte
	fields   map[string]compositor.UniformField
	scratch  []byte

	attrs  []gputypes.VertexAttribute
	stride int

	pipelines  map[gputypes.PrimitiveTopology]hal.RenderPipeline
	bindGroups map[*Texture]hal.BindGroup

	destroyed bool
}

var _ compositor.Shader = (*Shader)(nil)

// CompileShader validates desc.Source and creates the GPU objects for it.
func (c *Context) CompileShader(desc compositor.ShaderDescriptor) (compositor.Shader, error) {
	if c.destroyed {
		return nil, ErrDestroyed
	}
	if err := ValidateWGSL(desc.Source); err != nil {
		return nil, fmt.Errorf("shader %q: %w", desc.Label, err)
	}

	s := &Shader{
		ctx:        c,
		desc:       desc,
		uniforms:   make([]byte, max(desc.UniformBlockSize(), minUniformBlockSize)),
		fields:     make(map[string]compositor.UniformField, len(desc.Uniforms)),
		pipelines:  make(map[gputypes.PrimitiveTopology]hal.RenderPipeline),
		bindGroups: make(map[*Texture]hal.BindGroup),
	}
	for _, f := range desc.Uniforms {
		s.fields[f.Name] = f
	}
	if err := s.create(); err != nil {
		s.destroy()
		return nil, fmt.Errorf("shader %q: %w", desc.Label, err)
	}
	c.shaders[s] = struct{}{}
	slogger().Debug("wgpu: shader compiled",
		"label", desc.Label,
		"uniformBytes", len(s.uniforms),
		"textured", desc.Textured)
	return s, nil
}

func (s *Shader) create() error {
	device := s.ctx.device
	label := s.desc.Label

	module, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label,
		Source: hal.ShaderSource{WGSL: s.desc.Source},
	})
	if err != nil {
		return fmt.Errorf("compile shader module: %w", err)
	}
	s.module = module

	entries := []gputypes.BindGroupLayoutEntry{
		{
			Binding:    0,
			Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
		},
	}
	if s.desc.Textured {
		entries = append(entries,
			gputypes.BindGroupLayoutEntry{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			gputypes.BindGroupLayoutEntry{
				Binding:    2,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		)
	}
	bindLayout, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   label + "_bind_layout",
		Entries: entries,
	})
	if err != nil {
		return fmt.Errorf("create bind group layout: %w", err)
	}
	s.bindLayout = bindLayout

	pipeLayout, err := device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            label + "_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{bindLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	s.pipeLayout = pipeLayout

	uniformBuf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: label + "_uniforms",
		Size:  uint64(len(s.uniforms)),
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create uniform buffer: %w", err)
	}
	s.uniformBuf = uniformBuf

	if s.desc.Textured {
		sampler, err := device.CreateSampler(&hal.SamplerDescriptor{
			Label:        label + "_sampler",
			AddressModeU: gputypes.AddressModeClampToEdge,
			AddressModeV: gputypes.AddressModeClampToEdge,
			AddressModeW: gputypes.AddressModeClampToEdge,
			MagFilter:    gputypes.FilterModeLinear,
			MinFilter:    gputypes.FilterModeLinear,
			Anisotropy:   1,
		})
		if err != nil {
			return fmt.Errorf("create sampler: %w", err)
		}
		s.sampler = sampler
	}
	return nil
}

// Label returns the descriptor label.
func (s *Shader) Label() string { return s.desc.Label }

// Bind makes s the program used by subsequent draws.
func (s *Shader) Bind() error {
	if s.destroyed {
		return ErrDestroyed
	}
	s.ctx.shader = s
	return nil
}

// SetUniform writes v into the field named name and uploads those bytes.
func (s *Shader) SetUniform(name string, v compositor.UniformValue) error {
	if s.destroyed {
		return ErrDestroyed
	}
	f, ok := s.fields[name]
	if !ok {
		return fmt.Errorf("%w: %q in %q", ErrUnknownUniform, name, s.desc.Label)
	}
	if v.Size() > f.Size {
		return fmt.Errorf("%w: %q holds %d bytes, got %d", ErrUniformSize, name, f.Size, v.Size())
	}
	s.scratch = v.AppendBytes(s.scratch[:0])
	copy(s.uniforms[f.Offset:], s.scratch)
	if err := s.ctx.queue.WriteBuffer(s.uniformBuf, uint64(f.Offset), s.scratch); err != nil {
		return fmt.Errorf("write uniform %q: %w", name, err)
	}
	return nil
}

// Uniform returns the current bytes of a uniform field.
func (s *Shader) Uniform(name string) ([]byte, bool) {
	f, ok := s.fields[name]
	if !ok {
		return nil, false
	}
	return slices.Clone(s.uniforms[f.Offset : f.Offset+f.Size]), true
}

// SetVertexAttributes records the vertex layout used to build pipelines.
// Changing the layout drops every cached pipeline.
func (s *Shader) SetVertexAttributes(ctx compositor.Context, attrs []compositor.Attribute, byteStride int) error {
	if s.destroyed {
		return ErrDestroyed
	}
	if c, ok := ctx.(*Context); !ok || c != s.ctx {
		return ErrForeignContext
	}
	va, err := vertexAttributes(attrs)
	if err != nil {
		return err
	}
	if byteStride == s.stride && slices.Equal(va, s.attrs) {
		return nil
	}
	s.destroyPipelines()
	s.attrs = va
	s.stride = byteStride
	return nil
}

// Stride returns the byte stride of the current vertex layout.
func (s *Shader) Stride() int { return s.stride }

// pipeline returns the cached render pipeline for topology, creating it on
// first use.
func (s *Shader) pipeline(topology gputypes.PrimitiveTopology) (hal.RenderPipeline, error) {
	if p, ok := s.pipelines[topology]; ok {
		return p, nil
	}
	premulBlend := gputypes.BlendStatePremultiplied()
	p, err := s.ctx.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  fmt.Sprintf("%s_%s", s.desc.Label, topology),
		Layout: s.pipeLayout,
		Vertex: hal.VertexState{
			Module:     s.module,
			EntryPoint: VertexEntryPoint,
			Buffers: []gputypes.VertexBufferLayout{
				{
					ArrayStride: uint64(s.stride),
					StepMode:    gputypes.VertexStepModeVertex,
					Attributes:  s.attrs,
				},
			},
		},
		Fragment: &hal.FragmentState{
			Module:     s.module,
			EntryPoint: FragmentEntryPoint,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    colorFormat,
					Blend:     &premulBlend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		DepthStencil: &hal.DepthStencilState{
			Format:            depthStencilFormat,
			DepthWriteEnabled: false,
			DepthCompare:      gputypes.CompareFunctionAlways,
			StencilFront: hal.StencilFaceState{
				Compare:     gputypes.CompareFunctionAlways,
				FailOp:      hal.StencilOperationKeep,
				DepthFailOp: hal.StencilOperationKeep,
				PassOp:      hal.StencilOperationKeep,
			},
			StencilBack: hal.StencilFaceState{
				Compare:     gputypes.CompareFunctionAlways,
				FailOp:      hal.StencilOperationKeep,
				DepthFailOp: hal.StencilOperationKeep,
				PassOp:      hal.StencilOperationKeep,
			},
			StencilReadMask:  0xFF,
			StencilWriteMask: 0xFF,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		Primitive: gputypes.PrimitiveState{
			Topology: topology,
			CullMode: gputypes.CullModeNone,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create %s pipeline: %w", topology, err)
	}
	s.pipelines[topology] = p
	s.ctx.stats.Pipelines++
	return p, nil
}

// bindGroup returns the bind group for tex, creating it on first use.
// Untextured shaders ignore tex.
func (s *Shader) bindGroup(tex *Texture) (hal.BindGroup, error) {
	if !s.desc.Textured {
		tex = nil
	} else if tex == nil {
		return nil, ErrNoTexture
	}
	if g, ok := s.bindGroups[tex]; ok {
		return g, nil
	}
	entries := []gputypes.BindGroupEntry{
		{
			Binding: 0,
			Resource: gputypes.BufferBinding{
				Buffer: s.uniformBuf.NativeHandle(),
				Offset: 0,
				Size:   uint64(len(s.uniforms)),
			},
		},
	}
	if tex != nil {
		entries = append(entries,
			gputypes.BindGroupEntry{
				Binding:  1,
				Resource: gputypes.TextureViewBinding{TextureView: tex.view.NativeHandle()},
			},
			gputypes.BindGroupEntry{
				Binding:  2,
				Resource: gputypes.SamplerBinding{Sampler: s.sampler.NativeHandle()},
			},
		)
	}
	g, err := s.ctx.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:   s.desc.Label + "_bind_group",
		Layout:  s.bindLayout,
		Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("create bind group: %w", err)
	}
	s.bindGroups[tex] = g
	return g, nil
}

// forgetTexture destroys the bind group built for tex.
func (s *Shader) forgetTexture(tex *Texture) {
	if g, ok := s.bindGroups[tex]; ok {
		s.ctx.device.DestroyBindGroup(g)
		delete(s.bindGroups, tex)
	}
}

func (s *Shader) destroyPipelines() {
	for topology, p := range s.pipelines {
		s.ctx.device.DestroyRenderPipeline(p)
		delete(s.pipelines, topology)
	}
}

// Destroy releases the shader's GPU objects. Destroying the bound shader
// unbinds it.
func (s *Shader) Destroy() {
	if s.destroyed {
		return
	}
	s.destroy()
	delete(s.ctx.shaders, s)
	if s.ctx.shader == s {
		s.ctx.shader = nil
	}
}

func (s *Shader) destroy() {
	device := s.ctx.device
	s.destroyPipelines()
	for tex, g := range s.bindGroups {
		device.DestroyBindGroup(g)
		delete(s.bindGroups, tex)
	}
	if s.sampler != nil {
		device.DestroySampler(s.sampler)
		s.sampler = nil
	}
	if s.uniformBuf != nil {
		device.DestroyBuffer(s.uniformBuf)
		s.uniformBuf = nil
	}
	if s.pipeLayout != nil {
		device.DestroyPipelineLayout(s.pipeLayout)
		s.pipeLayout = nil
	}
	if s.bindLayout != nil {
		device.DestroyBindGroupLayout(s.bindLayout)
		s.bindLayout = nil
	}
	if s.module != nil {
		device.DestroyShaderModule(s.module)
		s.module = nil
	}
	s.destroyed = true
}
