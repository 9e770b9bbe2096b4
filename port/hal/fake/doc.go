// Package fake implements an in-memory HAL for digital ports.
//
// It is intended for tests and simulation. Each port is modelled as three
// 32-bit registers:
//
//	out  output latch, written by Port.Write
//	in   level driven onto the pins from outside (see HAL.Drive)
//	dir  direction, 1 = output
//
// A pin's level is its latch bit when it is an output and its external bit
// otherwise. Port.Read returns the levels of the handle's masked pins.
// Several handles may share one port; each only changes its own bits.
//
// # Usage
//
//	h := fake.New("Port0", "Port1")
//	leds, _ := port.NewOut(h, "Port1", 0x00B40000)
//	leds.Write(0x00B40000)
//	h.Output("Port1") // 0x00B40000
package fake
