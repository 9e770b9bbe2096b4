package port

import (
	"fmt"
	"log/slog"

	"github.com/ardnew/softport/pkg"
	"github.com/ardnew/softport/pkg/critical"
	"github.com/ardnew/softport/port/hal"
)

// DefaultMask selects every pin of a port.
const DefaultMask uint32 = 0xFFFFFFFF

// Reader is anything that yields a port value.
type Reader interface {
	Read() uint32
}

// Option configures a handle at construction.
type Option func(*options)

type options struct {
	section critical.Section
	logger  *slog.Logger
}

// WithCriticalSection replaces critical.Global as the guard around
// initialization and direction changes. A nil s keeps critical.Global.
func WithCriticalSection(s critical.Section) Option {
	return func(o *options) {
		if s != nil {
			o.section = s
		}
	}
}

// WithLogger sets the logger for one handle.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// handle is the state shared by Out, In and InOut.
type handle struct {
	port    hal.Port
	name    hal.PortName
	mask    uint32
	section critical.Section
	logger  *slog.Logger
}

func newHandle(h hal.PortHAL, name hal.PortName, mask uint32, dir hal.Direction, opts []Option) (handle, error) {
	o := options{section: critical.Global}
	for _, opt := range opts {
		opt(&o)
	}

	hd := handle{
		name:    name,
		mask:    mask,
		section: o.section,
		logger:  pkg.WithComponent(o.logger, pkg.ComponentPort),
	}

	var err error
	critical.Guard(hd.section, func() {
		hd.port, err = h.InitPort(name, mask, dir)
	})
	if err != nil {
		hd.logger.Error("port init failed",
			"port", string(name),
			"mask", fmt.Sprintf("%#08x", mask),
			"error", err)
		return handle{}, fmt.Errorf("init port %s: %w", name, err)
	}

	hd.logger.Debug("port initialized",
		"port", string(name),
		"mask", fmt.Sprintf("%#08x", mask),
		"dir", dir.String())
	return hd, nil
}

// setDirection reconfigures the port inside the critical section.
func (hd *handle) setDirection(dir hal.Direction) error {
	var err error
	critical.Guard(hd.section, func() {
		err = hd.port.SetDirection(dir)
	})
	if err != nil {
		return fmt.Errorf("port %s direction %s: %w", hd.name, dir, err)
	}
	hd.logger.Debug("port direction changed",
		"port", string(hd.name),
		"dir", dir.String())
	return nil
}

func (hd *handle) setPull(pull hal.Pull) error {
	if err := hd.port.SetPull(pull); err != nil {
		return fmt.Errorf("port %s pull %s: %w", hd.name, pull, err)
	}
	return nil
}

// Name returns the port the handle is bound to.
func (hd *handle) Name() hal.PortName { return hd.name }

// Mask returns the pins the handle controls.
func (hd *handle) Mask() uint32 { return hd.mask }
