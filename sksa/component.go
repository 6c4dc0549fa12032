package sksa

import (
	"fmt"
	"math"
)

// Component names the role of an input blob in the image.
type Component int

const (
	ComponentSK Component = iota
	ComponentSA1
	ComponentSA2
)

func (c Component) String() string {
	switch c {
	case ComponentSK:
		return "SK"
	case ComponentSA1:
		return "SA1"
	case ComponentSA2:
		return "SA2"
	default:
		return "unknown"
	}
}

// SKSize is the fixed size of the secure kernel section: four blocks. Shorter
// kernels are zero-extended, longer ones are rejected outright, never truncated.
const SKSize = 64 * 1024

// maxAppSize is the ceiling for application payloads; the CMD head records
// lengths in a 32-bit field.
const maxAppSize = math.MaxUint32

// ComponentTooLongError reports a component exceeding its role's size ceiling.
// For SA2 the length is measured after compression, since that is what the
// image carries.
type ComponentTooLongError struct {
	Component Component
	Len       uint64
	Max       uint64
}

func (e *ComponentTooLongError) Error() string {
	return fmt.Sprintf("provided %s is too long (got 0x%X bytes, max 0x%X)", e.Component, e.Len, e.Max)
}
