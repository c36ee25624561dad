package recording

import (
	"fmt"

	"github.com/gogpu/stage/compositor"
)

// CommandType identifies the type of a command.
type CommandType uint8

const (
	// State commands
	CmdViewport   CommandType = iota // Set viewport rectangle
	CmdClearColor                    // Set clear color
	CmdClear                         // Clear buffers

	// Data and drawing commands
	CmdBufferData // Upload vertex data
	CmdDrawArrays // Draw vertices

	// Shader commands
	CmdCompileShader       // Create a shader program
	CmdBindShader          // Make a program current
	CmdSetUniform          // Update a uniform
	CmdSetVertexAttributes // Bind vertex layout to a program

	// Texture commands
	CmdCreateTexture // Upload an image
	CmdBindTexture   // Bind a texture to a unit
	CmdDeleteTexture // Release a texture
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdViewport:            "Viewport",
	CmdClearColor:          "ClearColor",
	CmdClear:               "Clear",
	CmdBufferData:          "BufferData",
	CmdDrawArrays:          "DrawArrays",
	CmdCompileShader:       "CompileShader",
	CmdBindShader:          "BindShader",
	CmdSetUniform:          "SetUniform",
	CmdSetVertexAttributes: "SetVertexAttributes",
	CmdCreateTexture:       "CreateTexture",
	CmdBindTexture:         "BindTexture",
	CmdDeleteTexture:       "DeleteTexture",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is the interface implemented by all command types.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
	fmt.Stringer
}

// ViewportCommand sets the viewport rectangle.
type ViewportCommand struct {
	X, Y, Width, Height int
}

// Type implements Command.
func (ViewportCommand) Type() CommandType { return CmdViewport }

func (c ViewportCommand) String() string {
	return fmt.Sprintf("Viewport %d,%d %dx%d", c.X, c.Y, c.Width, c.Height)
}

// ClearColorCommand sets the color used for color buffer clears.
type ClearColorCommand struct {
	R, G, B, A float32
}

// Type implements Command.
func (ClearColorCommand) Type() CommandType { return CmdClearColor }

func (c ClearColorCommand) String() string {
	return fmt.Sprintf("ClearColor %g,%g,%g,%g", c.R, c.G, c.B, c.A)
}

// ClearCommand clears the buffers selected by Mask.
type ClearCommand struct {
	Mask compositor.ClearMask
}

// Type implements Command.
func (ClearCommand) Type() CommandType { return CmdClear }

// Color reports whether the color buffer is cleared.
func (c ClearCommand) Color() bool { return c.Mask&compositor.ColorBuffer != 0 }

// Stencil reports whether the stencil buffer is cleared.
func (c ClearCommand) Stencil() bool { return c.Mask&compositor.StencilBuffer != 0 }

func (c ClearCommand) String() string {
	return fmt.Sprintf("Clear color=%t depth=%t stencil=%t",
		c.Color(), c.Mask&compositor.DepthBuffer != 0, c.Stencil())
}

// BufferDataCommand uploads vertex data. Data holds exactly the uploaded
// values; for ranged uploads Offset and Length describe the range that was
// selected from the caller's array.
type BufferDataCommand struct {
	Data   []float32
	Usage  compositor.BufferUsage
	Ranged bool
	Offset int
	Length int
}

// Type implements Command.
func (BufferDataCommand) Type() CommandType { return CmdBufferData }

func (c BufferDataCommand) String() string {
	if c.Ranged {
		return fmt.Sprintf("BufferData %d floats [%d:%d] %s", len(c.Data), c.Offset, c.Offset+c.Length, c.Usage)
	}
	return fmt.Sprintf("BufferData %d floats %s", len(c.Data), c.Usage)
}

// DrawArraysCommand draws Count vertices starting at First.
type DrawArraysCommand struct {
	Mode  compositor.DrawMode
	First int
	Count int
	// Shader is the label of the shader bound at draw time.
	Shader string
}

// Type implements Command.
func (DrawArraysCommand) Type() CommandType { return CmdDrawArrays }

func (c DrawArraysCommand) String() string {
	return fmt.Sprintf("DrawArrays %s first=%d count=%d shader=%s", c.Mode, c.First, c.Count, c.Shader)
}

// CompileShaderCommand records creation of a shader.
type CompileShaderCommand struct {
	Shader   string
	Textured bool
}

// Type implements Command.
func (CompileShaderCommand) Type() CommandType { return CmdCompileShader }

func (c CompileShaderCommand) String() string {
	return fmt.Sprintf("CompileShader %s textured=%t", c.Shader, c.Textured)
}

// BindShaderCommand makes a shader current.
type BindShaderCommand struct {
	Shader string
}

// Type implements Command.
func (BindShaderCommand) Type() CommandType { return CmdBindShader }

func (c BindShaderCommand) String() string { return "BindShader " + c.Shader }

// SetUniformCommand updates a uniform. Value holds the encoded bytes.
type SetUniformCommand struct {
	Shader string
	Name   string
	Value  []byte
}

// Type implements Command.
func (SetUniformCommand) Type() CommandType { return CmdSetUniform }

func (c SetUniformCommand) String() string {
	return fmt.Sprintf("SetUniform %s.%s (%d bytes)", c.Shader, c.Name, len(c.Value))
}

// SetVertexAttributesCommand binds a vertex layout to a shader.
type SetVertexAttributesCommand struct {
	Shader     string
	Attributes []compositor.Attribute
	ByteStride int
}

// Type implements Command.
func (SetVertexAttributesCommand) Type() CommandType { return CmdSetVertexAttributes }

func (c SetVertexAttributesCommand) String() string {
	return fmt.Sprintf("SetVertexAttributes %s %d attrs stride=%d", c.Shader, len(c.Attributes), c.ByteStride)
}

// CreateTextureCommand records a texture upload.
type CreateTextureCommand struct {
	Texture       int
	Width, Height int
}

// Type implements Command.
func (CreateTextureCommand) Type() CommandType { return CmdCreateTexture }

func (c CreateTextureCommand) String() string {
	return fmt.Sprintf("CreateTexture #%d %dx%d", c.Texture, c.Width, c.Height)
}

// BindTextureCommand binds a texture to a unit.
type BindTextureCommand struct {
	Unit    int
	Texture int
}

// Type implements Command.
func (BindTextureCommand) Type() CommandType { return CmdBindTexture }

func (c BindTextureCommand) String() string {
	return fmt.Sprintf("BindTexture unit=%d #%d", c.Unit, c.Texture)
}

// DeleteTextureCommand releases a texture.
type DeleteTextureCommand struct {
	Texture int
}

// Type implements Command.
func (DeleteTextureCommand) Type() CommandType { return CmdDeleteTexture }

func (c DeleteTextureCommand) String() string { return fmt.Sprintf("DeleteTexture #%d", c.Texture) }
