package stage

// Rect is an axis-aligned rectangle.
type Rect struct {
	Min, Max Vec2
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Contains reports whether p lies inside r (edges included).
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Overlaps reports whether r and o intersect.
func (r Rect) Overlaps(o Rect) bool {
	return r.Min.X <= o.Max.X && o.Min.X <= r.Max.X &&
		r.Min.Y <= o.Max.Y && o.Min.Y <= r.Max.Y
}

// Ellipse is an axis-aligned ellipse given by its centre and radii.
type Ellipse struct {
	Pos              Vec2
	RadiusX, RadiusY float64
}

// NewEllipse returns an ellipse centred on (x, y).
func NewEllipse(x, y, radiusX, radiusY float64) Ellipse {
	return Ellipse{Pos: V2(x, y), RadiusX: radiusX, RadiusY: radiusY}
}

// Contains reports whether p lies inside or on the ellipse.
func (e Ellipse) Contains(p Vec2) bool {
	if e.RadiusX <= 0 || e.RadiusY <= 0 {
		return false
	}
	dx := (p.X - e.Pos.X) / e.RadiusX
	dy := (p.Y - e.Pos.Y) / e.RadiusY
	return dx*dx+dy*dy <= 1
}

// Bounds returns the bounding rectangle.
func (e Ellipse) Bounds() Rect {
	r := V2(e.RadiusX, e.RadiusY)
	return Rect{Min: e.Pos.Sub(r), Max: e.Pos.Add(r)}
}

// Translate returns e moved by d.
func (e Ellipse) Translate(d Vec2) Ellipse {
	e.Pos = e.Pos.Add(d)
	return e
}
