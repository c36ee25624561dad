package compositor

import (
	"errors"
	"testing"

	"github.com/gogpu/stage"
)

func TestVertexBuffer_RoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 3, 7, 100} {
		b := NewVertexBuffer(3, 2)
		for i := 0; i < n; i++ {
			if err := b.Push(float32(i), float32(i)+0.5, float32(-i)); err != nil {
				t.Fatalf("Push(%d) = %v", i, err)
			}
		}
		data := b.ToFloat32()
		if len(data) != n*3 || b.VertexCount() != n || b.Len() != n*3 {
			t.Fatalf("n=%d: len %d, count %d", n, len(data), b.VertexCount())
		}
		for i := 0; i < n; i++ {
			if data[i*3] != float32(i) || data[i*3+1] != float32(i)+0.5 || data[i*3+2] != float32(-i) {
				t.Fatalf("n=%d: record %d = %v", n, i, data[i*3:i*3+3])
			}
		}
	}
}

func TestVertexBuffer_RecordLength(t *testing.T) {
	b := NewVertexBuffer(3, 4)
	for _, rec := range [][]float32{{1, 2}, {1, 2, 3, 4}, nil} {
		if err := b.Push(rec...); !errors.Is(err, ErrRecordLength) {
			t.Errorf("Push(%v) = %v, want ErrRecordLength", rec, err)
		}
	}
	if b.VertexCount() != 0 {
		t.Errorf("rejected records were committed: %d", b.VertexCount())
	}
	if err := b.PushN(2, []float32{1, 2, 3, 4, 5}); !errors.Is(err, ErrRecordLength) {
		t.Errorf("PushN short = %v, want ErrRecordLength", err)
	}
	if err := b.PushN(2, []float32{1, 2, 3, 4, 5, 6}); err != nil {
		t.Errorf("PushN = %v", err)
	}
}

func TestVertexBuffer_ClearKeepsCapacity(t *testing.T) {
	b := NewVertexBuffer(2, 1)
	for i := 0; i < 10; i++ {
		_ = b.Push(1, 2)
	}
	capBefore := b.Cap()
	if capBefore < 10 {
		t.Fatalf("Cap() = %d after 10 pushes", capBefore)
	}
	b.Clear()
	if b.VertexCount() != 0 || !b.IsEmpty() || len(b.ToFloat32()) != 0 {
		t.Error("Clear did not empty the buffer")
	}
	if b.Cap() != capBefore {
		t.Errorf("Cap() = %d after Clear, want %d", b.Cap(), capBefore)
	}
}

func TestVertexBuffer_Slice(t *testing.T) {
	b := NewVertexBuffer(2, 4)
	_ = b.Push(1, 2)
	_ = b.Push(3, 4)

	s, err := b.Slice(1, 2)
	if err != nil || len(s) != 2 || s[0] != 2 || s[1] != 3 {
		t.Errorf("Slice(1,2) = %v, %v", s, err)
	}
	for _, r := range [][2]int{{-1, 1}, {0, 5}, {3, 2}} {
		if _, err := b.Slice(r[0], r[1]); !errors.Is(err, ErrRange) {
			t.Errorf("Slice(%d,%d) = %v, want ErrRange", r[0], r[1], err)
		}
	}
	if len(b.Backing()) < b.Len() {
		t.Error("Backing shorter than committed data")
	}
}

func TestVertexBuffer_SetStride(t *testing.T) {
	b := NewVertexBuffer(0, 16)
	if err := b.SetStride(5); err != nil {
		t.Fatal(err)
	}
	if b.Stride() != 5 || b.Cap() != 16 {
		t.Errorf("stride %d cap %d, want 5 and 16", b.Stride(), b.Cap())
	}
	_ = b.Push(1, 2, 3, 4, 5)
	if err := b.SetStride(3); !errors.Is(err, ErrBufferNotEmpty) {
		t.Errorf("SetStride on non-empty = %v, want ErrBufferNotEmpty", err)
	}
}

func TestPackColor(t *testing.T) {
	c := stage.RGBA(1, 0, 0, 1)
	f := PackColor(c)
	if got := UnpackColor(f); got != c {
		t.Errorf("UnpackColor(PackColor(%v)) = %v", c, got)
	}
}
