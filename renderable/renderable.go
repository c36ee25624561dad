package renderable

import (
	"github.com/gogpu/stage"
	"github.com/gogpu/stage/render"
)

// Drawable is anything a scene can draw.
type Drawable interface {
	Draw(r render.Renderer) error
}

// Renderable is the base of every drawable object. Pos is the anchor point
// of the object; with the default anchor (0.5, 0.5) it is the centre.
type Renderable struct {
	Pos           *stage.ObservableVec2
	Width, Height float64

	// Anchor is the point of the object placed at Pos, as a fraction of
	// its size.
	Anchor stage.Vec2

	// Alpha is the global alpha the object is drawn with.
	Alpha   float32
	Visible bool
}

// NewRenderable returns a visible, opaque w x h object anchored at (x, y).
func NewRenderable(x, y, w, h float64) *Renderable {
	r := &Renderable{}
	r.init(x, y, w, h)
	return r
}

func (r *Renderable) init(x, y, w, h float64) {
	r.Pos = stage.NewObservableVec2(x, y, nil)
	r.Width, r.Height = w, h
	r.Anchor = stage.V2(0.5, 0.5)
	r.Alpha = 1
	r.Visible = true
}

// Bounds returns the rectangle covered by the object.
func (r *Renderable) Bounds() stage.Rect {
	tl := r.Pos.Vec().Sub(r.Anchor.Scale(stage.V2(r.Width, r.Height)))
	return stage.Rect{Min: tl, Max: tl.Add(stage.V2(r.Width, r.Height))}
}

// Resize changes the size of the object. The anchor point stays at Pos.
func (r *Renderable) Resize(w, h float64) {
	r.Width, r.Height = w, h
}

// preDraw saves the renderer state and applies the object's alpha. It
// reports false when there is nothing to draw.
func (r *Renderable) preDraw(rn render.Renderer) bool {
	if !r.Visible || r.Alpha <= 0 || r.Width <= 0 || r.Height <= 0 {
		return false
	}
	rn.Save()
	rn.SetGlobalAlpha(r.Alpha)
	return true
}

func (r *Renderable) postDraw(rn render.Renderer) {
	// The stack cannot underflow: preDraw saved.
	_ = rn.Restore()
}
