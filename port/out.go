package port

import "github.com/ardnew/softport/port/hal"

// Out is a multiple pin digital output.
type Out struct {
	handle
}

// NewOut configures the pins of port name selected by mask as outputs.
// Pass DefaultMask to use every pin of the port.
func NewOut(h hal.PortHAL, name hal.PortName, mask uint32, opts ...Option) (*Out, error) {
	hd, err := newHandle(h, name, mask, hal.PinOutput, opts)
	if err != nil {
		return nil, err
	}
	return &Out{handle: hd}, nil
}

// Write sets the output pins; each bit of value drives the matching pin.
func (o *Out) Write(value uint32) {
	o.port.Write(value)
}

// Read returns the value currently output on the port.
func (o *Out) Read() uint32 {
	return o.port.Read()
}

// Int is Read as an int.
func (o *Out) Int() int {
	return int(o.Read())
}

// Assign is a shorthand for Write that returns o.
func (o *Out) Assign(value uint32) *Out {
	o.Write(value)
	return o
}

// AssignFrom writes the value read from r.
func (o *Out) AssignFrom(r Reader) *Out {
	o.Write(r.Read())
	return o
}
