package periph

import (
	"errors"
	"testing"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"

	"github.com/ardnew/softport/pkg"
	"github.com/ardnew/softport/port/hal"
)

// testBoard is a set of fake pins GPIO0..GPIO7 behind one 8-bit port "P0".
type testBoard struct {
	pins map[string]gpio.PinIO
	raw  []*gpiotest.Pin
}

func newTestBoard() *testBoard {
	b := &testBoard{pins: make(map[string]gpio.PinIO)}
	layout := Sequential("GPIO", 0, 8)
	for i, name := range layout[:8] {
		p := &gpiotest.Pin{N: name, Num: i}
		b.raw = append(b.raw, p)
		b.pins[name] = p
	}
	return b
}

func (b *testBoard) lookup(name string) gpio.PinIO {
	if p, ok := b.pins[name]; ok {
		return p
	}
	return nil
}

func (b *testBoard) hal() *HAL {
	return New(map[hal.PortName]Layout{"P0": Sequential("GPIO", 0, 8)}, WithLookup(b.lookup))
}

func TestSequential(t *testing.T) {
	l := Sequential("GPIO", 4, 3)
	want := []string{"GPIO4", "GPIO5", "GPIO6"}
	for i, name := range want {
		if l[i] != name {
			t.Errorf("bit %d = %q, want %q", i, l[i], name)
		}
	}
	if l[3] != "" {
		t.Errorf("bit 3 = %q, want empty", l[3])
	}
	if got := l.Mask(); got != 0x7 {
		t.Errorf("Mask() = %#x, want 0x7", got)
	}

	full := Sequential("P", 0, 40)
	if got := full.Mask(); got != 0xFFFFFFFF {
		t.Errorf("Mask() = %#x, want 0xffffffff", got)
	}
}

func TestInitPortErrors(t *testing.T) {
	b := newTestBoard()
	delete(b.pins, "GPIO3")
	h := b.hal()

	tests := []struct {
		name    string
		port    hal.PortName
		mask    uint32
		wantErr error
	}{
		{"unknown port", "P9", 0x1, pkg.ErrInvalidPort},
		{"empty mask", "P0", 0, pkg.ErrInvalidMask},
		{"bit without pin", "P0", 0x100, pkg.ErrInvalidMask},
		{"pin not registered", "P0", 0x08, pkg.ErrPinUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.InitPort(tt.port, tt.mask, hal.PinOutput)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("InitPort() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestWriteDrivesMaskedPins(t *testing.T) {
	b := newTestBoard()
	p, err := b.hal().InitPort("P0", 0xB4, hal.PinOutput)
	if err != nil {
		t.Fatalf("InitPort(): %v", err)
	}

	p.Write(0xFF)
	for i, pin := range b.raw {
		want := gpio.Level(0xB4&(1<<i) != 0)
		if got := pin.Read(); got != want {
			t.Errorf("GPIO%d = %v, want %v", i, got, want)
		}
	}
	if got := p.Read(); got != 0xB4 {
		t.Errorf("Read() = %#x, want 0xb4", got)
	}

	p.Write(0)
	if got := p.Read(); got != 0 {
		t.Errorf("Read() = %#x after Write(0), want 0", got)
	}
}

func TestOutputKeepsLevel(t *testing.T) {
	b := newTestBoard()
	if err := b.raw[2].Out(gpio.High); err != nil {
		t.Fatal(err)
	}

	p, err := b.hal().InitPort("P0", 0x0F, hal.PinOutput)
	if err != nil {
		t.Fatalf("InitPort(): %v", err)
	}
	if got := p.Read(); got != 0x04 {
		t.Errorf("Read() = %#x, want 0x4", got)
	}
}

func TestInputReadsLevels(t *testing.T) {
	b := newTestBoard()
	p, err := b.hal().InitPort("P0", 0xF0, hal.PinInput)
	if err != nil {
		t.Fatalf("InitPort(): %v", err)
	}

	for _, i := range []int{0, 5, 7} {
		if err := b.raw[i].Out(gpio.High); err != nil {
			t.Fatal(err)
		}
	}
	if got := p.Read(); got != 0xA0 {
		t.Errorf("Read() = %#x, want 0xa0", got)
	}

	// Inputs ignore writes.
	p.Write(0xFF)
	if got := b.raw[4].Read(); got != gpio.Low {
		t.Errorf("GPIO4 = %v after write to input, want Low", got)
	}
}

func TestSetPull(t *testing.T) {
	b := newTestBoard()
	p, err := b.hal().InitPort("P0", 0x03, hal.PinInput)
	if err != nil {
		t.Fatalf("InitPort(): %v", err)
	}

	if err := p.SetPull(hal.PullUp); err != nil {
		t.Fatalf("SetPull(): %v", err)
	}
	for _, i := range []int{0, 1} {
		b.raw[i].Lock()
		pull := b.raw[i].P
		b.raw[i].Unlock()
		if pull != gpio.PullUp {
			t.Errorf("GPIO%d pull = %v, want %v", i, pull, gpio.PullUp)
		}
	}

	if err := p.SetPull(hal.Pull(99)); !errors.Is(err, pkg.ErrInvalidParameter) {
		t.Errorf("SetPull(99) error = %v, want %v", err, pkg.ErrInvalidParameter)
	}
}

func TestToPeriphPull(t *testing.T) {
	tests := []struct {
		pull hal.Pull
		want gpio.Pull
	}{
		{hal.PullDefault, gpio.PullNoChange},
		{hal.PullNone, gpio.Float},
		{hal.PullUp, gpio.PullUp},
		{hal.PullDown, gpio.PullDown},
	}

	for _, tt := range tests {
		t.Run(tt.pull.String(), func(t *testing.T) {
			got, err := toPeriphPull(tt.pull)
			if err != nil {
				t.Fatalf("toPeriphPull(): %v", err)
			}
			if got != tt.want {
				t.Errorf("toPeriphPull(%v) = %v, want %v", tt.pull, got, tt.want)
			}
		})
	}
}

// stuckPin accepts configuration but fails every write after arm is set.
type stuckPin struct {
	*gpiotest.Pin
	armed bool
}

var errStuck = errors.New("stuck")

func (s *stuckPin) Out(l gpio.Level) error {
	if s.armed {
		return errStuck
	}
	return s.Pin.Out(l)
}

func TestWriteRecordsFirstError(t *testing.T) {
	b := newTestBoard()
	stuck := &stuckPin{Pin: b.raw[1]}
	b.pins["GPIO1"] = stuck

	port, err := b.hal().InitPort("P0", 0x03, hal.PinOutput)
	if err != nil {
		t.Fatalf("InitPort(): %v", err)
	}
	p := port.(*Port)
	if p.Err() != nil {
		t.Fatalf("Err() = %v before any failure", p.Err())
	}

	stuck.armed = true
	p.Write(0x03)
	if !errors.Is(p.Err(), errStuck) {
		t.Errorf("Err() = %v, want %v", p.Err(), errStuck)
	}
	if got := b.raw[0].Read(); got != gpio.High {
		t.Errorf("GPIO0 = %v, healthy pins should still be written", got)
	}
}

func TestWriteWhileInputLatches(t *testing.T) {
	b := newTestBoard()
	p, err := b.hal().InitPort("P0", 0x0F, hal.PinInput)
	if err != nil {
		t.Fatalf("InitPort(): %v", err)
	}

	p.Write(0x0A)
	for i := 0; i < 4; i++ {
		if got := b.raw[i].Read(); got != gpio.Low {
			t.Errorf("GPIO%d = %v while input, want Low", i, got)
		}
	}

	if err := p.SetDirection(hal.PinOutput); err != nil {
		t.Fatalf("SetDirection(): %v", err)
	}
	if got := p.Read(); got != 0x0A {
		t.Errorf("Read() = %#x after switching to output, want 0xa", got)
	}

	// Back to input and out again: the latch survives.
	if err := p.SetDirection(hal.PinInput); err != nil {
		t.Fatalf("SetDirection(): %v", err)
	}
	p.Write(0x05)
	if err := p.SetDirection(hal.PinOutput); err != nil {
		t.Fatalf("SetDirection(): %v", err)
	}
	if got := p.Read(); got != 0x05 {
		t.Errorf("Read() = %#x, want 0x5", got)
	}
}

func TestInitPortPinFailure(t *testing.T) {
	b := newTestBoard()
	b.pins["GPIO1"] = &stuckPin{Pin: b.raw[1], armed: true}

	_, err := b.hal().InitPort("P0", 0x03, hal.PinOutput)
	if !errors.Is(err, errStuck) {
		t.Errorf("InitPort() error = %v, want %v", err, errStuck)
	}
}
