// Package port provides multi-pin digital port handles.
//
// A handle binds a port (a hardware group of GPIO pins) and a pin mask to a
// single integer value. [Out] drives the masked pins, [In] samples them and
// [InOut] does either. The handles hold no logic of their own; every
// operation forwards to a [hal.Port] obtained from a [hal.PortHAL] while the
// critical section is held.
//
// # Example
//
// Toggle four LEDs on port 1:
//
//	// LED1 = P1.18  LED2 = P1.20  LED3 = P1.21  LED4 = P1.23
//	const ledMask = 0x00B40000
//
//	leds, err := port.NewOut(h, "Port1", ledMask)
//	if err != nil {
//	    return err
//	}
//	for {
//	    leds.Write(ledMask)
//	    time.Sleep(time.Second)
//	    leds.Write(0)
//	    time.Sleep(time.Second)
//	}
//
// # Synchronization
//
// Construction and direction changes run inside a [critical.Section].
// Write and Read add no locking; they are as interrupt safe as the HAL
// underneath. A handle is meant to be used by one owner.
package port
