package simd

import (
	"golang.org/x/sys/cpu"
)

// Backend names the instruction set family the lane width was derived from
type Backend int

const (
	BackendGeneric Backend = iota // No SIMD extension detected
	BackendSSE                    // x86-64 SSE2/SSE4.1, 128-bit
	BackendAVX                    // x86-64 AVX/AVX2, 256-bit
	BackendAVX512                 // x86-64 AVX-512F, 512-bit
	BackendNEON                   // ARM64 ASIMD, 128-bit
)

func (b Backend) String() string {
	switch b {
	case BackendSSE:
		return "SSE"
	case BackendAVX:
		return "AVX"
	case BackendAVX512:
		return "AVX-512"
	case BackendNEON:
		return "NEON"
	case BackendGeneric:
		return "generic"
	default:
		return "unknown"
	}
}

// Lanes returns the number of single precision lanes of the backend's registers
func (b Backend) Lanes() int {
	switch b {
	case BackendAVX512:
		return 16
	case BackendAVX:
		return 8
	default:
		return 4
	}
}

// Features describes the CPU features relevant to lane width selection
type Features struct {
	AVX512F bool
	AVX2    bool
	AVX     bool
	SSE41   bool
	SSE2    bool
	ASIMD   bool
}

// HostFeatures reads the feature flags of the running CPU
func HostFeatures() Features {
	return Features{
		AVX512F: cpu.X86.HasAVX512F,
		AVX2:    cpu.X86.HasAVX2,
		AVX:     cpu.X86.HasAVX,
		SSE41:   cpu.X86.HasSSE41,
		SSE2:    cpu.X86.HasSSE2,
		ASIMD:   cpu.ARM64.HasASIMD,
	}
}

// SelectBackend picks the widest backend supported by the features
func SelectBackend(f Features) Backend {
	switch {
	case f.AVX512F:
		return BackendAVX512
	case f.AVX2 || f.AVX:
		return BackendAVX
	case f.SSE41 || f.SSE2:
		return BackendSSE
	case f.ASIMD:
		return BackendNEON
	default:
		return BackendGeneric
	}
}

// ActiveBackend is the backend selected for the host at initialization
var ActiveBackend = SelectBackend(HostFeatures())

// Width returns the default lane width for the host
func Width() int {
	return ActiveBackend.Lanes()
}

// ValidWidth reports whether width can be used to step over blocks of
// blockSize elements without a remainder
func ValidWidth(width, blockSize int) bool {
	return width > 0 && width <= MaxWidth && blockSize%width == 0
}
