package main

import (
	"testing"
)

func TestNewApp(t *testing.T) {
	app := newApp()

	expected := []string{"render", "renderers", "scenes", "cpu"}
	if len(app.Commands) != len(expected) {
		t.Fatalf("Expected %d commands, got %d", len(expected), len(app.Commands))
	}
	for i, name := range expected {
		if app.Commands[i].Name != name {
			t.Errorf("Command %d: expected %q, got %q", i, name, app.Commands[i].Name)
		}
		if app.Commands[i].Action == nil {
			t.Errorf("Command %q has no action", name)
		}
	}
}

func TestRenderFlags(t *testing.T) {
	render := newApp().Command("render")
	if render == nil {
		t.Fatal("Expected a render command")
	}

	names := map[string]bool{}
	for _, flag := range render.Flags {
		names[flag.GetName()] = true
	}
	for _, name := range []string{"scene, s", "renderer, r", "width", "height", "spp", "frames", "threshold", "lanes", "volume", "depth", "out, o"} {
		if !names[name] {
			t.Errorf("Expected render flag %q", name)
		}
	}
}

func TestRenderCommand(t *testing.T) {
	out := t.TempDir() + "/frame.bmp"
	args := []string{"raytracer", "render", "--scene", "sphere-grid", "--renderer", "ao_stream",
		"--width", "32", "--height", "20", "--frames", "1", "--out", out}
	if err := newApp().Run(args); err != nil {
		t.Fatalf("render command failed: %v", err)
	}
}

func TestGlobalFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"verbose", []string{"raytracer", "-v", "renderers"}},
		{"very verbose", []string{"raytracer", "-vv", "scenes"}},
		{"version", []string{"raytracer", "--version"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := newApp().Run(tt.args); err != nil {
				t.Errorf("Expected %v to succeed, got %v", tt.args, err)
			}
		})
	}
}
