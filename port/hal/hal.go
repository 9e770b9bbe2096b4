package hal

import "math/bits"

// PortName identifies a port as defined by the target's pin naming.
type PortName string

// Direction is the configured direction of a port's masked pins.
type Direction uint8

// Direction constants.
const (
	PinInput  Direction = iota // Pins sample external levels
	PinOutput                  // Pins drive the output latch
)

// String returns a human-readable direction name.
func (d Direction) String() string {
	switch d {
	case PinInput:
		return "input"
	case PinOutput:
		return "output"
	default:
		return "unknown"
	}
}

// Valid reports whether d is a known direction.
func (d Direction) Valid() bool {
	return d <= PinOutput
}

// Pull is the bias applied to input pins.
type Pull uint8

// Pull constants.
const (
	PullDefault Pull = iota // Leave the pins' bias as the HAL finds it
	PullNone                // Floating
	PullUp                  // Weak pull-up
	PullDown                // Weak pull-down
)

// String returns a human-readable pull name.
func (p Pull) String() string {
	switch p {
	case PullDefault:
		return "default"
	case PullNone:
		return "none"
	case PullUp:
		return "up"
	case PullDown:
		return "down"
	default:
		return "unknown"
	}
}

// Valid reports whether p is a known pull mode.
func (p Pull) Valid() bool {
	return p <= PullDown
}

// Port is an initialized group of pins selected by a mask.
//
// Write and Read must be safe to call from interrupt context. Neither
// reports errors; an implementation that can fail records the failure
// out of band.
type Port interface {
	// Write drives value onto the masked pins. Bits outside the mask are ignored.
	Write(value uint32)

	// Read returns the level of the masked pins. Bits outside the mask are zero.
	Read() uint32

	// SetDirection reconfigures every masked pin.
	SetDirection(dir Direction) error

	// SetPull sets the bias of every masked pin.
	SetPull(pull Pull) error
}

// PortHAL defines the Hardware Abstraction Layer interface for port access.
//
// Platform vendors implement this interface to bind port names to their
// pin hardware. Callers hold the critical section while InitPort runs.
type PortHAL interface {
	// InitPort configures the pins of port name selected by mask in the
	// given direction and returns a handle to them.
	InitPort(name PortName, mask uint32, dir Direction) (Port, error)
}

// PinCount returns the number of pins selected by mask.
func PinCount(mask uint32) int {
	return bits.OnesCount32(mask)
}

// ForEachPin calls fn with the index of every set bit in mask, lowest first.
func ForEachPin(mask uint32, fn func(bit int)) {
	for mask != 0 {
		bit := bits.TrailingZeros32(mask)
		fn(bit)
		mask &^= 1 << bit
	}
}
