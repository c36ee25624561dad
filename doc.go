// Package stage is the rendering core of a 2D game runtime.
//
// # Overview
//
// stage provides the math support library (vectors, matrices, colors,
// ellipses) shared by its sub-packages:
//
//   - compositor: vertex batching, attribute layouts and shader binding state
//   - render: GPU and Canvas (software) renderers
//   - renderable: scene-graph objects such as sprites and 2D lights
//   - backend/wgpu: a compositor device context on top of gogpu/wgpu
//   - recording: a device context that records GPU calls for inspection
//   - event: typed publish/subscribe channels (canvas resize)
//
// # Quick Start
//
//	gl, err := wgpu.Open(gputypes.BackendVulkan, wgpu.WithSize(800, 600))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	r, err := render.NewGPURenderer(gl, render.WithSize(800, 600))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	r.SetColor(stage.Hex("#ff8800"))
//	r.FillRect(10, 10, 100, 50)
//	if err := r.Flush(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Coordinate System
//
// Origin (0,0) is the top-left corner of the canvas, X grows right and Y
// grows down. Angles are in radians.
package stage

// Version is the current version of the library.
const Version = "0.3.0"
