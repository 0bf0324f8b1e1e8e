package shader

import (
	"errors"
	"testing"

	"github.com/df07/go-stream-raytracer/pkg/renderer"
)

func TestNames(t *testing.T) {
	names := Names()
	expected := []string{"ao", "ao_stream", "dvr"}

	if len(names) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, names)
	}
	for i := range expected {
		if names[i] != expected[i] {
			t.Errorf("Expected %v, got %v", expected, names)
		}
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		stream bool
	}{
		{"ao", false},
		{"cpp_ao", false},
		{"ao_stream", true},
		{"cpp_ao_stream", true},
		{"dvr", false},
		{"cpp_dvr", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(tt.name, DefaultConfig())
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			_, isStream := r.(*renderer.SimdRenderer)
			if isStream != tt.stream {
				t.Errorf("Expected stream renderer %v, got %T", tt.stream, r)
			}
		})
	}
}

func TestNew_Unknown(t *testing.T) {
	if _, err := New("path_tracer", DefaultConfig()); !errors.Is(err, ErrUnknownShader) {
		t.Errorf("Expected ErrUnknownShader, got %v", err)
	}
}

func TestNewStream(t *testing.T) {
	if _, err := NewStream("ao", DefaultConfig()); !errors.Is(err, renderer.ErrTypeMismatch) {
		t.Errorf("Expected ErrTypeMismatch for a scalar shader, got %v", err)
	}
	if _, err := NewStream("dvr", DefaultConfig()); !errors.Is(err, renderer.ErrTypeMismatch) {
		t.Errorf("Expected ErrTypeMismatch for a scalar shader, got %v", err)
	}
	if _, err := NewStream("cpp_ao_stream", DefaultConfig()); err != nil {
		t.Errorf("Expected stream renderer, got %v", err)
	}
}

func TestLookup(t *testing.T) {
	info, err := Lookup("cpp_dvr")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if info.Name != "dvr" || info.Stream {
		t.Errorf("Expected scalar dvr, got %+v", info)
	}
}
