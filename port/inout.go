package port

import "github.com/ardnew/softport/port/hal"

// InOut is a multiple pin digital input/output.
// It starts as an input.
type InOut struct {
	handle
}

// NewInOut configures the pins of port name selected by mask as inputs.
func NewInOut(h hal.PortHAL, name hal.PortName, mask uint32, opts ...Option) (*InOut, error) {
	hd, err := newHandle(h, name, mask, hal.PinInput, opts)
	if err != nil {
		return nil, err
	}
	return &InOut{handle: hd}, nil
}

// Write sets the output latch. Pins only drive it while in output mode.
func (p *InOut) Write(value uint32) {
	p.port.Write(value)
}

// Read returns the levels of the pins.
func (p *InOut) Read() uint32 {
	return p.port.Read()
}

// Int is Read as an int.
func (p *InOut) Int() int {
	return int(p.Read())
}

// Assign is a shorthand for Write that returns p.
func (p *InOut) Assign(value uint32) *InOut {
	p.Write(value)
	return p
}

// AssignFrom writes the value read from r.
func (p *InOut) AssignFrom(r Reader) *InOut {
	p.Write(r.Read())
	return p
}

// Output switches the pins to output mode.
func (p *InOut) Output() error {
	return p.setDirection(hal.PinOutput)
}

// Input switches the pins to input mode.
func (p *InOut) Input() error {
	return p.setDirection(hal.PinInput)
}

// Mode sets the pull of the pins.
func (p *InOut) Mode(pull hal.Pull) error {
	return p.setPull(pull)
}
