package compositor

import _ "embed"

//go:embed shaders/primitive.wgsl
var primitiveShaderWGSL string

//go:embed shaders/quad.wgsl
var quadShaderWGSL string

// projectionField is the uniform block shared by the built-in shaders.
var projectionField = []UniformField{{Name: UniformProjection, Offset: 0, Size: 64}}

// PrimitiveShaderDescriptor describes the built-in untextured shader used by
// PrimitiveCompositor (inputs: aVertex, aColor).
func PrimitiveShaderDescriptor() ShaderDescriptor {
	return ShaderDescriptor{
		Label:    "stage_primitive",
		Source:   primitiveShaderWGSL,
		Uniforms: projectionField,
	}
}

// QuadShaderDescriptor describes the built-in textured shader used by
// QuadCompositor (inputs: aVertex, aRegion, aColor).
func QuadShaderDescriptor() ShaderDescriptor {
	return ShaderDescriptor{
		Label:    "stage_quad",
		Source:   quadShaderWGSL,
		Uniforms: projectionField,
		Textured: true,
	}
}
