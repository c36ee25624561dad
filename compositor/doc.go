// Package compositor batches 2D geometry into as few GPU draw calls as
// possible.
//
// A Compositor owns a VertexBuffer and a Layout (the attribute registry that
// describes one vertex record). Drawing code appends records with Push; the
// batch is uploaded and drawn with a single DrawArrays call when it is
// flushed. Flushes happen explicitly, when the active Shader or projection
// changes, when the draw mode changes, when the buffer reaches its maximum
// size, and when the canvas is resized. Draw calls are issued in exactly the
// order flushes occur.
//
// The GPU is reached only through the Context interface, so the same
// Compositor runs on the wgpu backend (package backend/wgpu) and on the
// command recorder (package recording) used by tests.
//
// # Shader state
//
// A Compositor starts Unbound. UseShader moves it to Bound(S); binding the
// same instance again is a no-op. There is no way back to Unbound.
//
// # Concurrency
//
// Drawing is expected to happen on a single render goroutine, but every
// method takes the compositor's lock so that resize notifications delivered
// from a windowing goroutine are applied between batches, never inside one.
package compositor
