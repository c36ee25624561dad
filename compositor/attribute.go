package compositor

import "fmt"

// ScalarType is the component type of a vertex attribute.
type ScalarType uint8

// Recognized scalar types. The zero value is invalid.
const (
	Int8 ScalarType = iota + 1
	Uint8
	Int16
	Uint16
	Int32
	Uint32
	Float32
)

var scalarTypeInfo = [...]struct {
	name string
	size int
}{
	Int8:    {"int8", 1},
	Uint8:   {"uint8", 1},
	Int16:   {"int16", 2},
	Uint16:  {"uint16", 2},
	Int32:   {"int32", 4},
	Uint32:  {"uint32", 4},
	Float32: {"float32", 4},
}

// Valid reports whether t is a recognized scalar type.
func (t ScalarType) Valid() bool {
	return t >= Int8 && t <= Float32
}

// Size returns the byte size of one component, or 0 for invalid types.
func (t ScalarType) Size() int {
	if !t.Valid() {
		return 0
	}
	return scalarTypeInfo[t].size
}

// String returns the type name.
func (t ScalarType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("ScalarType(%d)", uint8(t))
	}
	return scalarTypeInfo[t].name
}

// Attribute describes one named field of a vertex record.
type Attribute struct {
	Name       string
	Components int
	Type       ScalarType
	Normalized bool
	Offset     int // byte offset within the record
}

// ByteSize returns Components * Type.Size().
func (a Attribute) ByteSize() int {
	return a.Components * a.Type.Size()
}

// Layout is the ordered, append-only set of attributes making up a vertex
// record. The zero value is an empty layout.
type Layout struct {
	attrs      []Attribute
	byteStride int
}

// Add appends an attribute. On error nothing is added and the stride is
// unchanged.
func (l *Layout) Add(name string, components int, typ ScalarType, normalized bool, offset int) error {
	if !typ.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidAttributeType, typ)
	}
	if components < 1 || components > 4 {
		return fmt.Errorf("%w: %q has %d", ErrInvalidComponentCount, name, components)
	}
	if offset != l.byteStride {
		return fmt.Errorf("%w: %q at %d, want %d", ErrAttributeOffset, name, offset, l.byteStride)
	}
	a := Attribute{
		Name:       name,
		Components: components,
		Type:       typ,
		Normalized: normalized,
		Offset:     offset,
	}
	l.attrs = append(l.attrs, a)
	l.byteStride += a.ByteSize()
	return nil
}

// Attributes returns a copy of the attributes in insertion order.
func (l *Layout) Attributes() []Attribute {
	return append([]Attribute(nil), l.attrs...)
}

// Len returns the number of attributes.
func (l *Layout) Len() int { return len(l.attrs) }

// ByteStride returns the size of one vertex record in bytes.
func (l *Layout) ByteStride() int { return l.byteStride }

// FloatStride returns the size of one vertex record in float32 slots.
func (l *Layout) FloatStride() int { return l.byteStride / 4 }

// Aligned reports whether the byte stride is a whole number of float32 slots.
func (l *Layout) Aligned() bool { return l.byteStride%4 == 0 }

// Lookup returns the attribute with the given name.
func (l *Layout) Lookup(name string) (Attribute, bool) {
	for _, a := range l.attrs {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}
