package loaders

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestReadRawVolume(t *testing.T) {
	dims := [3]int{2, 1, 1}

	tests := []struct {
		name     string
		format   RawFormat
		data     any
		expected []float64
	}{
		{"uint8", RawUint8, []uint8{0, 255}, []float64{0, 1}},
		{"uint16", RawUint16, []uint16{0, 65535}, []float64{0, 1}},
		{"float32", RawFloat32, []float32{0.25, 2}, []float64{0.25, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := binary.Write(&buf, binary.LittleEndian, tt.data); err != nil {
				t.Fatalf("binary.Write failed: %v", err)
			}

			voxels, err := ReadRawVolume(&buf, dims, tt.format)
			if err != nil {
				t.Fatalf("ReadRawVolume failed: %v", err)
			}
			for i := range tt.expected {
				if math.Abs(voxels[i]-tt.expected[i]) > 1e-9 {
					t.Errorf("voxel %d: expected %f, got %f", i, tt.expected[i], voxels[i])
				}
			}
		})
	}
}

func TestReadRawVolume_ShortInput(t *testing.T) {
	_, err := ReadRawVolume(bytes.NewReader([]byte{1, 2, 3}), [3]int{2, 2, 1}, RawUint8)
	if err == nil {
		t.Error("Expected error for truncated volume data")
	}
}

func TestReadRawVolume_InvalidDims(t *testing.T) {
	if _, err := ReadRawVolume(bytes.NewReader(nil), [3]int{0, 2, 2}, RawUint8); err == nil {
		t.Error("Expected error for empty dimensions")
	}
}

func TestLoadRawVolume(t *testing.T) {
	path := filepath.Join(t.TempDir(), "volume.raw")
	if err := os.WriteFile(path, []byte{0, 51, 102, 255}, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	voxels, err := LoadRawVolume(path, [3]int{2, 2, 1}, RawUint8)
	if err != nil {
		t.Fatalf("LoadRawVolume failed: %v", err)
	}
	if len(voxels) != 4 || math.Abs(voxels[1]-0.2) > 1e-9 {
		t.Errorf("Expected 4 voxels with voxel 1 at 0.2, got %v", voxels)
	}
}

func TestParseRawFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected RawFormat
		valid    bool
	}{
		{"uint8", RawUint8, true},
		{"U16", RawUint16, true},
		{"float32", RawFloat32, true},
		{"int64", 0, false},
	}

	for _, tt := range tests {
		format, err := ParseRawFormat(tt.input)
		if tt.valid && (err != nil || format != tt.expected) {
			t.Errorf("ParseRawFormat(%q) = %v, %v; want %v", tt.input, format, err, tt.expected)
		}
		if !tt.valid && err == nil {
			t.Errorf("ParseRawFormat(%q): expected error", tt.input)
		}
	}
}
