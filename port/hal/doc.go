// Package hal defines the Hardware Abstraction Layer interface for digital ports.
//
// A port is a hardware-defined group of GPIO pins that can be addressed
// together as one register. The HAL binds a [PortName] and a pin mask to a
// [Port] value; the handles in [github.com/ardnew/softport/port] only
// forward to it.
//
// # Interface Overview
//
//   - [PortHAL.InitPort] plays the role of port_init
//   - [Port.Write] and [Port.Read] play port_write and port_read
//   - [Port.SetDirection] and [Port.SetPull] reconfigure masked pins
//
// # Implementing a HAL
//
//  1. Map each port name to the pins it contains
//  2. In InitPort, configure only the pins selected by the mask
//  3. Apply the mask in Write and Read; callers pass values through untouched
//  4. Keep Write and Read non-blocking; they may run in interrupt context
//
// An in-memory HAL for tests is available in
// [github.com/ardnew/softport/port/hal/fake], and a HAL over periph.io pins
// in [github.com/ardnew/softport/port/hal/periph].
package hal
