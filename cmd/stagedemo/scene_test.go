package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/stage/recording"
	"github.com/gogpu/stage/render"
)

func TestDefaultSceneParses(t *testing.T) {
	s, err := LoadScene("")
	if err != nil {
		t.Fatal(err)
	}
	if s.Width != 480 || s.Height != 320 {
		t.Errorf("size = %dx%d", s.Width, s.Height)
	}
	if len(s.Shapes) == 0 || len(s.Sprites) == 0 || len(s.Lights) != 1 {
		t.Errorf("scene contents: %d shapes, %d sprites, %d lights", len(s.Shapes), len(s.Sprites), len(s.Lights))
	}
	if s.Lights[0].Intensity == nil || *s.Lights[0].Intensity != 0.5 {
		t.Error("light intensity not decoded")
	}
}

func TestParseSceneErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"syntax", "width: [", "parse scene"},
		{"size", "width: 0\nheight: 10", "invalid size"},
		{"kind", "width: 1\nheight: 1\nshapes:\n  - {kind: star}", "unknown kind"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScene([]byte(tt.yaml))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("ParseScene() error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestSceneOnCanvas(t *testing.T) {
	s, err := ParseScene([]byte(`
width: 32
height: 32
background: "#000000"
shapes:
  - {kind: rect, x: 0, y: 0, w: 16, h: 16, color: "#ff0000"}
`))
	if err != nil {
		t.Fatal(err)
	}
	r := render.NewCanvasRenderer(render.NewPixmapTarget(32, 32))
	defer r.Close()
	if err := s.Draw(r); err != nil {
		t.Fatal(err)
	}
	if got := r.Target().Pixel(8, 8); got.R != 255 || got.A != 255 {
		t.Errorf("rect pixel = %v", got)
	}
	if got := r.Target().Pixel(24, 24); got.R != 0 || got.A != 255 {
		t.Errorf("background pixel = %v", got)
	}
}

func TestRunBackends(t *testing.T) {
	s, err := LoadScene("")
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	for _, backend := range []string{render.BackendCanvas, render.BackendTrace, render.BackendGPU} {
		t.Run(backend, func(t *testing.T) {
			out := filepath.Join(dir, backend+".out")
			if err := run(backend, s, 96, 64, out); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestSceneTrace(t *testing.T) {
	s, err := LoadScene("")
	if err != nil {
		t.Fatal(err)
	}
	gl := recording.NewContext()
	r, err := render.NewGPURenderer(gl, s.Width, s.Height)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	if err := s.Draw(r); err != nil {
		t.Fatal(err)
	}
	// Two checkerboards and the light each need their own texture.
	if n := gl.Count(recording.CmdCreateTexture); n != 3 {
		t.Errorf("uploaded %d textures, want 3", n)
	}
	if gl.Count(recording.CmdDeleteTexture) != 1 {
		t.Error("the destroyed light did not release its texture")
	}
}
