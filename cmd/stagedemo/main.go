// Command stagedemo draws a scene with one of the stage renderers.
//
// The canvas backend writes a PNG, the trace backend writes the recorded
// GPU commands as text and the gpu backend runs the scene on a headless
// wgpu device and reports its counters.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/stage"
	"github.com/gogpu/stage/backend/wgpu"
	"github.com/gogpu/stage/recording"
	"github.com/gogpu/stage/render"
)

func main() {
	var (
		backend = flag.String("backend", render.BackendCanvas, "renderer backend: canvas, gpu or trace")
		scene   = flag.String("scene", "", "YAML scene file (default: built-in scene)")
		width   = flag.Int("width", 0, "canvas width (default: scene width)")
		height  = flag.Int("height", 0, "canvas height (default: scene height)")
		output  = flag.String("output", "", "output file (default: stage.png for canvas, stdout for trace)")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		stage.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	s, err := LoadScene(*scene)
	if err != nil {
		log.Fatalf("Failed to load scene: %v", err)
	}
	w, h := s.Width, s.Height
	if *width > 0 {
		w = *width
	}
	if *height > 0 {
		h = *height
	}

	if err := run(*backend, s, w, h, *output); err != nil {
		log.Fatal(err)
	}
}

func run(backend string, s *Scene, w, h int, output string) error {
	r, err := render.New(backend, render.Config{Width: w, Height: h})
	if err != nil {
		return err
	}
	defer r.Close()

	if err := s.Draw(r); err != nil {
		return fmt.Errorf("draw: %w", err)
	}

	switch rr := r.(type) {
	case *render.CanvasRenderer:
		if output == "" {
			output = "stage.png"
		}
		if err := savePNG(rr.Target(), output); err != nil {
			return err
		}
		log.Printf("Scene saved to %s (%dx%d)\n", output, w, h)

	case *render.GPURenderer:
		prim, quad := rr.Stats()
		log.Printf("primitive: %d draws, %d vertices; quad: %d draws, %d vertices",
			prim.DrawCalls, prim.Vertices, quad.DrawCalls, quad.Vertices)

		switch gl := rr.GL().(type) {
		case *recording.Context:
			return writeTrace(gl.Recording(), output)
		case interface{ Stats() wgpu.Stats }:
			st := gl.Stats()
			log.Printf("device: %d passes, %d pipelines, %d bytes uploaded",
				st.Passes, st.Pipelines, st.BytesUploaded)
		}
	}
	return nil
}

func savePNG(t *render.PixmapTarget, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, t.Image()); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func writeTrace(rec *recording.Recording, path string) error {
	var out io.Writer = os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	if _, err := rec.WriteTo(out); err != nil {
		return err
	}
	sum := rec.Summarize()
	log.Printf("trace: %d commands, %d vertices, %d floats uploaded", rec.Len(), sum.Vertices, sum.Floats)
	return nil
}
