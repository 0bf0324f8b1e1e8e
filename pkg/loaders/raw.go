package loaders

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
)

// RawFormat is the voxel encoding of a raw volume file
type RawFormat int

const (
	RawUint8 RawFormat = iota
	RawUint16
	RawFloat32
)

// ParseRawFormat parses "uint8", "uint16" or "float32"
func ParseRawFormat(name string) (RawFormat, error) {
	switch strings.ToLower(name) {
	case "uint8", "u8", "byte":
		return RawUint8, nil
	case "uint16", "u16":
		return RawUint16, nil
	case "float32", "f32", "float":
		return RawFloat32, nil
	default:
		return 0, fmt.Errorf("unknown raw voxel format %q", name)
	}
}

func (f RawFormat) String() string {
	switch f {
	case RawUint8:
		return "uint8"
	case RawUint16:
		return "uint16"
	case RawFloat32:
		return "float32"
	default:
		return "unknown"
	}
}

// ReadRawVolume reads dims[0]*dims[1]*dims[2] little-endian voxels stored
// X-fastest. Integer voxels are normalized to [0, 1]; float voxels are kept.
func ReadRawVolume(r io.Reader, dims [3]int, format RawFormat) ([]float64, error) {
	count := dims[0] * dims[1] * dims[2]
	if count <= 0 {
		return nil, fmt.Errorf("invalid volume dimensions %v", dims)
	}

	br := bufio.NewReader(r)
	data := make([]float64, count)
	switch format {
	case RawUint8:
		buf := make([]uint8, count)
		if _, err := io.ReadFull(br, buf); err != nil {
			return nil, fmt.Errorf("failed to read %d voxels: %w", count, err)
		}
		for i, v := range buf {
			data[i] = float64(v) / math.MaxUint8
		}
	case RawUint16:
		buf := make([]uint16, count)
		if err := binary.Read(br, binary.LittleEndian, buf); err != nil {
			return nil, fmt.Errorf("failed to read %d voxels: %w", count, err)
		}
		for i, v := range buf {
			data[i] = float64(v) / math.MaxUint16
		}
	case RawFloat32:
		buf := make([]float32, count)
		if err := binary.Read(br, binary.LittleEndian, buf); err != nil {
			return nil, fmt.Errorf("failed to read %d voxels: %w", count, err)
		}
		for i, v := range buf {
			data[i] = float64(v)
		}
	default:
		return nil, fmt.Errorf("unsupported raw voxel format %v", format)
	}
	return data, nil
}

// LoadRawVolume reads a raw volume file, see ReadRawVolume
func LoadRawVolume(filename string, dims [3]int, format RawFormat) ([]float64, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open volume file: %w", err)
	}
	defer file.Close()
	return ReadRawVolume(file, dims, format)
}
