package compositor

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/gogpu/stage"
)

// VertexBuffer is an arena of interleaved float32 vertex records. It has a
// logical length (the committed vertices) and a growable capacity; Clear
// resets the length and keeps the storage so that steady-state frames do not
// allocate.
type VertexBuffer struct {
	data    []float32
	stride  int
	count   int
	reserve int // requested capacity in vertices
}

// NewVertexBuffer returns a buffer for records of stride float32 values with
// room for capacity vertices.
func NewVertexBuffer(stride, capacity int) *VertexBuffer {
	if stride < 0 {
		stride = 0
	}
	if capacity < 1 {
		capacity = 1
	}
	return &VertexBuffer{
		data:    make([]float32, stride*capacity),
		stride:  stride,
		reserve: capacity,
	}
}

// Push appends one record. The record must be exactly one stride long.
func (b *VertexBuffer) Push(record ...float32) error {
	if len(record) != b.stride || b.stride == 0 {
		return fmt.Errorf("%w: got %d values, stride is %d", ErrRecordLength, len(record), b.stride)
	}
	b.grow(1)
	copy(b.data[b.count*b.stride:], record)
	b.count++
	return nil
}

// PushN appends n records stored back to back in records.
func (b *VertexBuffer) PushN(n int, records []float32) error {
	if n < 0 || b.stride == 0 || len(records) != n*b.stride {
		return fmt.Errorf("%w: got %d values for %d vertices, stride is %d", ErrRecordLength, len(records), n, b.stride)
	}
	b.grow(n)
	copy(b.data[b.count*b.stride:], records)
	b.count += n
	return nil
}

// grow makes room for n more vertices, doubling the capacity as needed.
func (b *VertexBuffer) grow(n int) {
	need := (b.count + n) * b.stride
	if need <= len(b.data) {
		return
	}
	size := len(b.data)
	if size == 0 {
		size = b.stride
	}
	for size < need {
		size *= 2
	}
	data := make([]float32, size)
	copy(data, b.data[:b.count*b.stride])
	b.data = data
}

// VertexCount returns the number of committed vertices.
func (b *VertexBuffer) VertexCount() int { return b.count }

// Stride returns the record size in float32 values.
func (b *VertexBuffer) Stride() int { return b.stride }

// Len returns the number of committed float32 values.
func (b *VertexBuffer) Len() int { return b.count * b.stride }

// Cap returns the capacity in vertices.
func (b *VertexBuffer) Cap() int {
	if b.stride == 0 {
		return 0
	}
	return len(b.data) / b.stride
}

// IsEmpty reports whether no vertices are committed.
func (b *VertexBuffer) IsEmpty() bool { return b.count == 0 }

// ToFloat32 returns the committed region without copying. The slice is only
// valid until the next Push or Clear.
func (b *VertexBuffer) ToFloat32() []float32 {
	return b.data[:b.count*b.stride : b.count*b.stride]
}

// Slice returns length floats starting at offset, within the committed
// region.
func (b *VertexBuffer) Slice(offset, length int) ([]float32, error) {
	end := offset + length
	if offset < 0 || length < 0 || end > b.Len() {
		return nil, fmt.Errorf("%w: [%d:%d] of %d", ErrRange, offset, end, b.Len())
	}
	return b.data[offset:end:end], nil
}

// Backing returns the whole backing array, including uncommitted capacity.
// It is meant for uploads that take an explicit source range.
func (b *VertexBuffer) Backing() []float32 { return b.data }

// Clear drops all vertices and keeps the capacity.
func (b *VertexBuffer) Clear() { b.count = 0 }

// SetStride changes the record size. The buffer must be empty.
func (b *VertexBuffer) SetStride(stride int) error {
	if b.count != 0 {
		return ErrBufferNotEmpty
	}
	if stride < 0 {
		stride = 0
	}
	vertices := max(b.Cap(), b.reserve, 1)
	b.stride = stride
	if len(b.data) < stride*vertices {
		b.data = make([]float32, stride*vertices)
	}
	return nil
}

// PackColor stores c as a normalized uint8x4 inside a single float32 slot,
// so a color occupies one value of a float record.
func PackColor(c stage.Color) float32 {
	return math32.Float32frombits(c.PackUint32())
}

// UnpackColor reverses PackColor.
func UnpackColor(f float32) stage.Color {
	u := math32.Float32bits(f)
	return stage.RGBA(
		float32(u&0xff)/255,
		float32(u>>8&0xff)/255,
		float32(u>>16&0xff)/255,
		float32(u>>24)/255,
	)
}
