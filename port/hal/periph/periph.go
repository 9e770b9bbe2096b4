package periph

import (
	"fmt"
	"strconv"
	"sync"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"

	"github.com/ardnew/softport/pkg"
	"github.com/ardnew/softport/port/hal"
)

var (
	_ hal.PortHAL = (*HAL)(nil)
	_ hal.Port    = (*Port)(nil)
)

// Layout names the pin behind each bit of a port. Empty entries have no pin.
type Layout [32]string

// Sequential returns a layout whose bit i is the pin prefix+strconv.Itoa(first+i),
// for the first n bits.
func Sequential(prefix string, first, n int) Layout {
	var l Layout
	for i := 0; i < n && i < len(l); i++ {
		l[i] = prefix + strconv.Itoa(first+i)
	}
	return l
}

// Mask returns the mask of every bit that has a pin.
func (l *Layout) Mask() uint32 {
	var m uint32
	for i, name := range l {
		if name != "" {
			m |= 1 << i
		}
	}
	return m
}

// Lookup resolves a pin name, returning nil when the pin does not exist.
type Lookup func(name string) gpio.PinIO

// Option configures a HAL.
type Option func(*HAL)

// WithLookup replaces gpioreg.ByName as the pin resolver.
func WithLookup(lookup Lookup) Option {
	return func(h *HAL) {
		h.lookup = lookup
	}
}

// HAL implements hal.PortHAL over periph.io pins.
type HAL struct {
	layouts map[hal.PortName]Layout
	lookup  Lookup
}

// New creates a HAL with the given port layouts.
func New(layouts map[hal.PortName]Layout, opts ...Option) *HAL {
	h := &HAL{
		layouts: make(map[hal.PortName]Layout, len(layouts)),
		lookup:  gpioreg.ByName,
	}
	for name, l := range layouts {
		h.layouts[name] = l
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// InitPort resolves the masked pins of name and configures them.
//
// Pins are configured one at a time. If configuring one fails, InitPort
// returns the error and pins configured before it keep their new direction.
func (h *HAL) InitPort(name hal.PortName, mask uint32, dir hal.Direction) (hal.Port, error) {
	layout, ok := h.layouts[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", pkg.ErrInvalidPort, name)
	}
	if mask == 0 {
		return nil, fmt.Errorf("%w: no pins selected on %q", pkg.ErrInvalidMask, name)
	}
	if missing := mask &^ layout.Mask(); missing != 0 {
		return nil, fmt.Errorf("%w: bits %#08x have no pin on %q", pkg.ErrInvalidMask, missing, name)
	}

	p := &Port{
		name: name,
		mask: mask,
		pins: make([]portPin, 0, hal.PinCount(mask)),
		pull: gpio.PullNoChange,
	}
	var err error
	hal.ForEachPin(mask, func(bit int) {
		if err != nil {
			return
		}
		pin := h.lookup(layout[bit])
		if pin == nil {
			err = fmt.Errorf("%w: %s (bit %d of %q)", pkg.ErrPinUnavailable, layout[bit], bit, name)
			return
		}
		p.pins = append(p.pins, portPin{bit: uint32(1) << bit, pin: pin})
	})
	if err != nil {
		return nil, err
	}
	// Outputs start at the level the pins already have.
	p.out = p.Read()
	if err := p.SetDirection(dir); err != nil {
		return nil, err
	}

	pkg.LogDebug(pkg.ComponentHAL, "periph port initialized",
		"port", string(name),
		"mask", fmt.Sprintf("%#08x", mask),
		"pins", len(p.pins),
		"dir", dir.String())
	return p, nil
}

type portPin struct {
	bit uint32
	pin gpio.PinIO
}

// Port is a handle to the masked pins of one periph port.
type Port struct {
	name hal.PortName
	mask uint32
	pins []portPin

	mutex sync.Mutex
	dir   hal.Direction
	out   uint32 // output latch
	pull  gpio.Pull
	err   error
}

// Write updates the output latch on the masked pins. The pins are driven
// only while the port is an output; an input port drives the latch when it
// is switched to output.
func (p *Port) Write(value uint32) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.out = (p.out &^ p.mask) | (value & p.mask)
	if p.dir != hal.PinOutput {
		return
	}
	for _, pp := range p.pins {
		if err := pp.pin.Out(gpio.Level(p.out&pp.bit != 0)); err != nil {
			p.fail(fmt.Errorf("write %s: %w", pp.pin.Name(), err))
		}
	}
}

// Read samples the masked pins.
func (p *Port) Read() uint32 {
	var value uint32
	for _, pp := range p.pins {
		if pp.pin.Read() == gpio.High {
			value |= pp.bit
		}
	}
	return value
}

// SetDirection reconfigures the masked pins. Outputs drive the latch.
func (p *Port) SetDirection(dir hal.Direction) error {
	if !dir.Valid() {
		return fmt.Errorf("%w: direction %d", pkg.ErrInvalidParameter, dir)
	}
	p.mutex.Lock()
	defer p.mutex.Unlock()
	for _, pp := range p.pins {
		var err error
		if dir == hal.PinOutput {
			err = pp.pin.Out(gpio.Level(p.out&pp.bit != 0))
		} else {
			err = pp.pin.In(p.pull, gpio.NoEdge)
		}
		if err != nil {
			return fmt.Errorf("set %s %s: %w", pp.pin.Name(), dir, err)
		}
	}
	p.dir = dir
	return nil
}

// SetPull sets the bias of the masked pins. It is applied immediately to
// inputs and remembered for when outputs become inputs.
func (p *Port) SetPull(pull hal.Pull) error {
	gp, err := toPeriphPull(pull)
	if err != nil {
		return err
	}
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.pull = gp
	if p.dir != hal.PinInput {
		return nil
	}
	for _, pp := range p.pins {
		if err := pp.pin.In(gp, gpio.NoEdge); err != nil {
			return fmt.Errorf("pull %s %s: %w", pp.pin.Name(), pull, err)
		}
	}
	return nil
}

// Err returns the first pin error seen by Write, if any.
func (p *Port) Err() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.err
}

// fail records err; requires p.mutex.
func (p *Port) fail(err error) {
	if p.err == nil {
		p.err = err
	}
	pkg.LogWarn(pkg.ComponentHAL, "pin write failed",
		"port", string(p.name),
		"error", err)
}

// Name returns the port name.
func (p *Port) Name() hal.PortName { return p.name }

// Mask returns the pins this handle controls.
func (p *Port) Mask() uint32 { return p.mask }

func toPeriphPull(pull hal.Pull) (gpio.Pull, error) {
	switch pull {
	case hal.PullDefault:
		return gpio.PullNoChange, nil
	case hal.PullNone:
		return gpio.Float, nil
	case hal.PullUp:
		return gpio.PullUp, nil
	case hal.PullDown:
		return gpio.PullDown, nil
	default:
		return gpio.PullNoChange, fmt.Errorf("%w: pull %d", pkg.ErrInvalidParameter, pull)
	}
}
