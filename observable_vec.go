package stage

// UpdateFunc is called after an ObservableVec2 changes. It receives the new
// and the previous components. Returning ok=true replaces the new value with
// the returned vector.
type UpdateFunc func(newX, newY, oldX, oldY float64) (replace Vec2, ok bool)

// ObservableVec2 is a mutable 2D vector that notifies an UpdateFunc on every
// change. Renderables use it for positions so that derived state (bounds,
// visible areas) follows the object.
//
// The zero value is a usable vector at the origin with no callback.
type ObservableVec2 struct {
	v        Vec2
	onUpdate UpdateFunc
}

// NewObservableVec2 creates an observable vector. onUpdate may be nil.
// The initial value does not trigger the callback.
func NewObservableVec2(x, y float64, onUpdate UpdateFunc) *ObservableVec2 {
	return &ObservableVec2{v: V2(x, y), onUpdate: onUpdate}
}

// OnUpdate replaces the update callback.
func (o *ObservableVec2) OnUpdate(fn UpdateFunc) {
	o.onUpdate = fn
}

// X returns the x component.
func (o *ObservableVec2) X() float64 { return o.v.X }

// Y returns the y component.
func (o *ObservableVec2) Y() float64 { return o.v.Y }

// Vec returns the current value.
func (o *ObservableVec2) Vec() Vec2 { return o.v }

// Set assigns both components and notifies.
func (o *ObservableVec2) Set(x, y float64) *ObservableVec2 {
	old := o.v
	o.v = V2(x, y)
	if o.onUpdate != nil {
		if r, ok := o.onUpdate(x, y, old.X, old.Y); ok {
			o.v = r
		}
	}
	return o
}

// SetX assigns the x component and notifies.
func (o *ObservableVec2) SetX(x float64) *ObservableVec2 { return o.Set(x, o.v.Y) }

// SetY assigns the y component and notifies.
func (o *ObservableVec2) SetY(y float64) *ObservableVec2 { return o.Set(o.v.X, y) }

// SetMuted assigns both components without calling the update callback.
func (o *ObservableVec2) SetMuted(x, y float64) *ObservableVec2 {
	o.v = V2(x, y)
	return o
}

// SetV assigns v and notifies.
func (o *ObservableVec2) SetV(v Vec2) *ObservableVec2 { return o.Set(v.X, v.Y) }

// Copy assigns the value of other and notifies.
func (o *ObservableVec2) Copy(other *ObservableVec2) *ObservableVec2 { return o.SetV(other.v) }

// Clone returns a plain copy of the current value.
func (o *ObservableVec2) Clone() Vec2 { return o.v }

func (o *ObservableVec2) Add(w Vec2) *ObservableVec2       { return o.SetV(o.v.Add(w)) }
func (o *ObservableVec2) Sub(w Vec2) *ObservableVec2       { return o.SetV(o.v.Sub(w)) }
func (o *ObservableVec2) Scale(s float64) *ObservableVec2  { return o.SetV(o.v.Mul(s)) }
func (o *ObservableVec2) ScaleV(w Vec2) *ObservableVec2    { return o.SetV(o.v.Scale(w)) }
func (o *ObservableVec2) Negate() *ObservableVec2          { return o.SetV(o.v.Neg()) }
func (o *ObservableVec2) Normalize() *ObservableVec2       { return o.SetV(o.v.Normalize()) }
func (o *ObservableVec2) Rotate(angle float64) *ObservableVec2 {
	return o.SetV(o.v.Rotate(angle))
}
func (o *ObservableVec2) Lerp(w Vec2, t float64) *ObservableVec2 { return o.SetV(o.v.Lerp(w, t)) }
func (o *ObservableVec2) Min(w Vec2) *ObservableVec2             { return o.SetV(o.v.Min(w)) }
func (o *ObservableVec2) Max(w Vec2) *ObservableVec2             { return o.SetV(o.v.Max(w)) }
func (o *ObservableVec2) Clamp(lo, hi float64) *ObservableVec2   { return o.SetV(o.v.Clamp(lo, hi)) }
func (o *ObservableVec2) Floor() *ObservableVec2                 { return o.SetV(o.v.Floor()) }
func (o *ObservableVec2) Ceil() *ObservableVec2                  { return o.SetV(o.v.Ceil()) }
func (o *ObservableVec2) Project(w Vec2) *ObservableVec2         { return o.SetV(o.v.Project(w)) }
func (o *ObservableVec2) Perp() *ObservableVec2                  { return o.SetV(o.v.Perp()) }

func (o *ObservableVec2) Dot(w Vec2) float64      { return o.v.Dot(w) }
func (o *ObservableVec2) Cross(w Vec2) float64    { return o.v.Cross(w) }
func (o *ObservableVec2) Length() float64         { return o.v.Length() }
func (o *ObservableVec2) LengthSq() float64       { return o.v.LengthSq() }
func (o *ObservableVec2) Distance(w Vec2) float64 { return o.v.Distance(w) }
func (o *ObservableVec2) Angle(w Vec2) float64    { return o.v.Angle(w) }
func (o *ObservableVec2) Equals(w Vec2) bool      { return o.v.Equals(w) }

// String returns the vector as "x:X,y:Y".
func (o *ObservableVec2) String() string { return o.v.String() }
