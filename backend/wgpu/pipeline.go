package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/stage/compositor"
)

type formatKey struct {
	typ        compositor.ScalarType
	components int
	normalized bool
}

// vertexFormats lists every attribute shape WebGPU can fetch. Float
// attributes ignore the normalized flag.
var vertexFormats = map[formatKey]gputypes.VertexFormat{
	{compositor.Float32, 1, false}: gputypes.VertexFormatFloat32,
	{compositor.Float32, 2, false}: gputypes.VertexFormatFloat32x2,
	{compositor.Float32, 3, false}: gputypes.VertexFormatFloat32x3,
	{compositor.Float32, 4, false}: gputypes.VertexFormatFloat32x4,

	{compositor.Uint8, 2, false}: gputypes.VertexFormatUint8x2,
	{compositor.Uint8, 4, false}: gputypes.VertexFormatUint8x4,
	{compositor.Uint8, 2, true}:  gputypes.VertexFormatUnorm8x2,
	{compositor.Uint8, 4, true}:  gputypes.VertexFormatUnorm8x4,
	{compositor.Int8, 2, false}:  gputypes.VertexFormatSint8x2,
	{compositor.Int8, 4, false}:  gputypes.VertexFormatSint8x4,
	{compositor.Int8, 2, true}:   gputypes.VertexFormatSnorm8x2,
	{compositor.Int8, 4, true}:   gputypes.VertexFormatSnorm8x4,

	{compositor.Uint16, 2, false}: gputypes.VertexFormatUint16x2,
	{compositor.Uint16, 4, false}: gputypes.VertexFormatUint16x4,
	{compositor.Uint16, 2, true}:  gputypes.VertexFormatUnorm16x2,
	{compositor.Uint16, 4, true}:  gputypes.VertexFormatUnorm16x4,
	{compositor.Int16, 2, false}:  gputypes.VertexFormatSint16x2,
	{compositor.Int16, 4, false}:  gputypes.VertexFormatSint16x4,
	{compositor.Int16, 2, true}:   gputypes.VertexFormatSnorm16x2,
	{compositor.Int16, 4, true}:   gputypes.VertexFormatSnorm16x4,

	{compositor.Uint32, 1, false}: gputypes.VertexFormatUint32,
	{compositor.Uint32, 2, false}: gputypes.VertexFormatUint32x2,
	{compositor.Uint32, 3, false}: gputypes.VertexFormatUint32x3,
	{compositor.Uint32, 4, false}: gputypes.VertexFormatUint32x4,
	{compositor.Int32, 1, false}:  gputypes.VertexFormatSint32,
	{compositor.Int32, 2, false}:  gputypes.VertexFormatSint32x2,
	{compositor.Int32, 3, false}:  gputypes.VertexFormatSint32x3,
	{compositor.Int32, 4, false}:  gputypes.VertexFormatSint32x4,
}

// VertexFormat maps a compositor attribute to its WebGPU vertex format.
func VertexFormat(a compositor.Attribute) (gputypes.VertexFormat, error) {
	key := formatKey{a.Type, a.Components, a.Normalized}
	if a.Type == compositor.Float32 {
		key.normalized = false
	}
	f, ok := vertexFormats[key]
	if !ok {
		norm := ""
		if a.Normalized {
			norm = " normalized"
		}
		return gputypes.VertexFormatUndefined, fmt.Errorf("%w: %q is %d x %s%s",
			ErrVertexFormat, a.Name, a.Components, a.Type, norm)
	}
	return f, nil
}

// vertexAttributes converts a layout into hal vertex attributes. Shader
// locations follow declaration order.
func vertexAttributes(attrs []compositor.Attribute) ([]gputypes.VertexAttribute, error) {
	out := make([]gputypes.VertexAttribute, len(attrs))
	for i, a := range attrs {
		f, err := VertexFormat(a)
		if err != nil {
			return nil, err
		}
		out[i] = gputypes.VertexAttribute{
			Format:         f,
			Offset:         uint64(a.Offset),
			ShaderLocation: uint32(i),
		}
	}
	return out, nil
}

// Topology returns the WebGPU primitive topology used to draw mode.
// LineLoop and TriangleFan have no WebGPU equivalent and are drawn as line
// strips and triangle lists after expansion.
func Topology(mode compositor.DrawMode) gputypes.PrimitiveTopology {
	switch mode {
	case compositor.Points:
		return gputypes.PrimitiveTopologyPointList
	case compositor.LineStrip, compositor.LineLoop:
		return gputypes.PrimitiveTopologyLineStrip
	case compositor.Lines:
		return gputypes.PrimitiveTopologyLineList
	case compositor.TriangleStrip:
		return gputypes.PrimitiveTopologyTriangleStrip
	default:
		return gputypes.PrimitiveTopologyTriangleList
	}
}

// needsExpansion reports whether mode must be rewritten before drawing.
func needsExpansion(mode compositor.DrawMode) bool {
	return mode == compositor.LineLoop || mode == compositor.TriangleFan
}

// expand appends to dst the vertex records that draw count vertices from
// first in mode using Topology(mode), and returns the new vertex count.
// src holds records of stride bytes.
func expand(dst, src []byte, stride int, mode compositor.DrawMode, first, count int) ([]byte, int) {
	vertex := func(i int) []byte {
		off := (first + i) * stride
		return src[off : off+stride]
	}
	switch mode {
	case compositor.LineLoop:
		if count < 2 {
			return dst, 0
		}
		dst = append(dst, src[first*stride:(first+count)*stride]...)
		dst = append(dst, vertex(0)...)
		return dst, count + 1
	case compositor.TriangleFan:
		if count < 3 {
			return dst, 0
		}
		for i := 1; i < count-1; i++ {
			dst = append(dst, vertex(0)...)
			dst = append(dst, vertex(i)...)
			dst = append(dst, vertex(i+1)...)
		}
		return dst, 3 * (count - 2)
	}
	dst = append(dst, src[first*stride:(first+count)*stride]...)
	return dst, count
}
