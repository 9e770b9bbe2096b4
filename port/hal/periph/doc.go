// Package periph implements a port HAL over periph.io GPIO pins.
//
// Hosts such as single-board computers expose GPIO lines one at a time. This
// HAL groups them: a [Layout] assigns a pin name to each bit of a port, and
// a port handle drives or samples the pins selected by its mask as a single
// value.
//
// Pins are looked up through [gpioreg.ByName], so the host drivers must be
// loaded first (periph.io/x/host/v3 host.Init). Tests substitute their own
// lookup with [WithLookup].
//
// # Usage
//
//	if _, err := host.Init(); err != nil {
//	    return err
//	}
//	h := periph.New(map[hal.PortName]periph.Layout{
//	    "GPIO": periph.Sequential("GPIO", 0, 28),
//	})
//	leds, err := port.NewOut(h, "GPIO", 0x0000F000)
//
// Pin errors cannot be returned from Write; the first one is kept and
// reported by [Port.Err].
package periph
