// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "github.com/gogpu/stage"

type drawState struct {
	color     stage.Color
	alpha     float32
	transform stage.Matrix
}

func defaultState() drawState {
	return drawState{color: stage.White, alpha: 1, transform: stage.Identity()}
}

// canvasState is the color and transform state shared by the renderers,
// with a save/restore stack. It is embedded by each renderer.
type canvasState struct {
	cur   drawState
	saved []drawState
}

func newCanvasState() canvasState {
	return canvasState{cur: defaultState()}
}

// Save pushes the current color, alpha and transform.
func (s *canvasState) Save() {
	s.saved = append(s.saved, s.cur)
}

// Restore pops the state pushed by the matching Save.
func (s *canvasState) Restore() error {
	if len(s.saved) == 0 {
		return ErrStateUnderflow
	}
	s.cur = s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
	return nil
}

// Depth returns the number of saved states.
func (s *canvasState) Depth() int { return len(s.saved) }

func (s *canvasState) Translate(x, y float64) { s.cur.transform = s.cur.transform.Translate(x, y) }

func (s *canvasState) Scale(x, y float64) { s.cur.transform = s.cur.transform.Scale(x, y) }

func (s *canvasState) Rotate(angle float64) { s.cur.transform = s.cur.transform.Rotate(angle) }

// Transform multiplies the current transform by m, applying m first.
func (s *canvasState) Transform(m stage.Matrix) {
	s.cur.transform = s.cur.transform.Multiply(m)
}

// SetTransform replaces the current transform.
func (s *canvasState) SetTransform(m stage.Matrix) { s.cur.transform = m }

// ResetTransform sets the identity transform.
func (s *canvasState) ResetTransform() { s.cur.transform = stage.Identity() }

func (s *canvasState) SetColor(c stage.Color) { s.cur.color = c }

// SetGlobalAlpha sets the alpha multiplied into every color drawn.
func (s *canvasState) SetGlobalAlpha(a float32) {
	s.cur.alpha = min(max(a, 0), 1)
}

func (s *canvasState) GlobalAlpha() float32 { return s.cur.alpha }

// CurrentColor returns the fill color with the global alpha applied.
func (s *canvasState) CurrentColor() stage.Color {
	return s.cur.color.MulAlpha(s.cur.alpha)
}

func (s *canvasState) CurrentTransform() stage.Matrix { return s.cur.transform }

// resetState drops the stack and restores the defaults.
func (s *canvasState) resetState() {
	s.cur = defaultState()
	s.saved = s.saved[:0]
}
