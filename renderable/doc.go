// Package renderable contains the objects a scene draws: the Renderable
// base, Sprite for image regions and Light2d for point lights.
//
// Every object keeps its position in a stage.ObservableVec2, so state
// derived from the position (bounds, a light's visible area) follows any
// change made through it:
//
//	light := renderable.NewLight2d(100, 80, 40, renderable.WithColor(stage.Hex("#ffcc66")))
//	light.Pos.Add(stage.V2(10, 0))
//	area := light.VisibleArea() // centred on (110, 80)
//	light.Draw(r)
package renderable
