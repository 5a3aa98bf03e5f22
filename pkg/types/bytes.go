package types

import "fmt"

const (
	KiB = 1 << 10
	MiB = 1 << 20
	GiB = 1 << 30
	TiB = 1 << 40
)

// Bytes is a uint64 wrapper representing a size in bytes.
type Bytes uint64

// ToBytes converts a raw counter into Bytes.
func ToBytes(v uint64) Bytes { return Bytes(v) }

// Humanized returns a human-readable string with automatic unit (B, KB, MB, GB, TB).
func (b Bytes) Humanized() string {
	v := float64(b)
	switch {
	case b >= TiB:
		return fmt.Sprintf("%.2f TB", v/TiB)
	case b >= GiB:
		return fmt.Sprintf("%.2f GB", v/GiB)
	case b >= MiB:
		return fmt.Sprintf("%.2f MB", v/MiB)
	case b >= KiB:
		return fmt.Sprintf("%.2f KB", v/KiB)
	default:
		return fmt.Sprintf("%d B", b)
	}
}

// WholeMB returns the size in whole megabytes (1024 base), truncated.
func (b Bytes) WholeMB() uint64 { return uint64(b) / MiB }

// WholeGB returns the size in whole gigabytes (1024 base), truncated.
func (b Bytes) WholeGB() uint64 { return uint64(b) / GiB }

// Sub returns b-o, or zero when o is larger.
func (b Bytes) Sub(o Bytes) Bytes {
	if o >= b {
		return 0
	}
	return b - o
}

// Memory holds system-wide physical memory figures.
type Memory struct {
	Total     Bytes
	Available Bytes
}

// Volume is one mounted filesystem as reported by the OS.
// Ready is false when the volume has no media or could not be queried.
type Volume struct {
	Name  string
	Ready bool
	Total Bytes
	Free  Bytes
}

// Used is Total minus Free.
func (v Volume) Used() Bytes { return v.Total.Sub(v.Free) }
