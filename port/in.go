package port

import "github.com/ardnew/softport/port/hal"

// In is a multiple pin digital input.
type In struct {
	handle
}

// NewIn configures the pins of port name selected by mask as inputs.
func NewIn(h hal.PortHAL, name hal.PortName, mask uint32, opts ...Option) (*In, error) {
	hd, err := newHandle(h, name, mask, hal.PinInput, opts)
	if err != nil {
		return nil, err
	}
	return &In{handle: hd}, nil
}

// Read returns the levels of the input pins.
func (i *In) Read() uint32 {
	return i.port.Read()
}

// Int is Read as an int.
func (i *In) Int() int {
	return int(i.Read())
}

// Mode sets the pull of the input pins.
func (i *In) Mode(pull hal.Pull) error {
	return i.setPull(pull)
}
