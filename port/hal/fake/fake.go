package fake

import (
	"fmt"
	"sync"

	"github.com/ardnew/softport/pkg"
	"github.com/ardnew/softport/port/hal"
)

var (
	_ hal.PortHAL = (*HAL)(nil)
	_ hal.Port    = (*Port)(nil)
)

// HAL implements hal.PortHAL with in-memory registers.
type HAL struct {
	mutex sync.Mutex
	ports map[hal.PortName]*registers
}

type registers struct {
	out    uint32
	in     uint32
	dir    uint32
	pull   [32]hal.Pull
	writes int
}

func (r *registers) level() uint32 {
	return (r.out & r.dir) | (r.in &^ r.dir)
}

// New creates a HAL with the named 32-bit ports, all pins inputs.
func New(names ...hal.PortName) *HAL {
	h := &HAL{ports: make(map[hal.PortName]*registers, len(names))}
	for _, name := range names {
		h.ports[name] = &registers{}
	}
	return h
}

// InitPort configures the masked pins of name and returns a handle to them.
func (h *HAL) InitPort(name hal.PortName, mask uint32, dir hal.Direction) (hal.Port, error) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	regs, ok := h.ports[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", pkg.ErrInvalidPort, name)
	}
	if mask == 0 {
		return nil, fmt.Errorf("%w: no pins selected on %q", pkg.ErrInvalidMask, name)
	}
	if !dir.Valid() {
		return nil, fmt.Errorf("%w: direction %d", pkg.ErrInvalidParameter, dir)
	}

	p := &Port{hal: h, regs: regs, name: name, mask: mask}
	p.setDirection(dir)
	pkg.LogDebug(pkg.ComponentHAL, "fake port initialized",
		"port", string(name),
		"mask", fmt.Sprintf("%#08x", mask),
		"dir", dir.String())
	return p, nil
}

// Drive sets the externally driven level of the pins of name.
// Only pins configured as inputs observe it.
func (h *HAL) Drive(name hal.PortName, value uint32) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if regs, ok := h.ports[name]; ok {
		regs.in = value
	}
}

// Output returns the output latch of name.
func (h *HAL) Output(name hal.PortName) uint32 {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if regs, ok := h.ports[name]; ok {
		return regs.out
	}
	return 0
}

// Directions returns the direction register of name (1 = output).
func (h *HAL) Directions(name hal.PortName) uint32 {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if regs, ok := h.ports[name]; ok {
		return regs.dir
	}
	return 0
}

// PullOf returns the pull mode of one pin of name.
func (h *HAL) PullOf(name hal.PortName, bit int) hal.Pull {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if regs, ok := h.ports[name]; ok && bit >= 0 && bit < len(regs.pull) {
		return regs.pull[bit]
	}
	return hal.PullDefault
}

// Writes returns the number of Write calls made on any handle of name.
func (h *HAL) Writes(name hal.PortName) int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if regs, ok := h.ports[name]; ok {
		return regs.writes
	}
	return 0
}

// Port is a handle to the masked pins of one fake port.
type Port struct {
	hal  *HAL
	regs *registers
	name hal.PortName
	mask uint32
}

// Write updates the output latch on the masked pins.
func (p *Port) Write(value uint32) {
	p.hal.mutex.Lock()
	defer p.hal.mutex.Unlock()
	p.regs.out = (p.regs.out &^ p.mask) | (value & p.mask)
	p.regs.writes++
}

// Read returns the level of the masked pins.
func (p *Port) Read() uint32 {
	p.hal.mutex.Lock()
	defer p.hal.mutex.Unlock()
	return p.regs.level() & p.mask
}

// SetDirection reconfigures the masked pins.
func (p *Port) SetDirection(dir hal.Direction) error {
	if !dir.Valid() {
		return fmt.Errorf("%w: direction %d", pkg.ErrInvalidParameter, dir)
	}
	p.hal.mutex.Lock()
	defer p.hal.mutex.Unlock()
	p.setDirection(dir)
	return nil
}

// setDirection requires p.hal.mutex.
func (p *Port) setDirection(dir hal.Direction) {
	if dir == hal.PinOutput {
		p.regs.dir |= p.mask
	} else {
		p.regs.dir &^= p.mask
	}
}

// SetPull records pull on the masked pins.
// A pull-up or pull-down also drives the external level of those pins.
func (p *Port) SetPull(pull hal.Pull) error {
	if !pull.Valid() {
		return fmt.Errorf("%w: pull %d", pkg.ErrInvalidParameter, pull)
	}
	p.hal.mutex.Lock()
	defer p.hal.mutex.Unlock()
	hal.ForEachPin(p.mask, func(bit int) {
		p.regs.pull[bit] = pull
	})
	switch pull {
	case hal.PullUp:
		p.regs.in |= p.mask
	case hal.PullDown:
		p.regs.in &^= p.mask
	}
	return nil
}

// Name returns the port name.
func (p *Port) Name() hal.PortName { return p.name }

// Mask returns the pins this handle controls.
func (p *Port) Mask() uint32 { return p.mask }
