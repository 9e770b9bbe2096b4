// Package critical provides the critical-section primitive used while a
// port is being initialized.
//
// The implementation is selected by build tags:
//
//   - TinyGo builds mask interrupts with [runtime/interrupt]. Sections nest;
//     only the outermost [Section.Exit] restores the saved interrupt state.
//   - Hosted builds serialize on a process-wide mutex. There is no interrupt
//     controller to mask from user space, so the guard only keeps concurrent
//     initializations apart. Hosted sections do not nest.
//
// Most callers use [Global] or [Run]:
//
//	critical.Run(func() {
//	    p, err = h.InitPort(name, mask, hal.PinOutput)
//	})
package critical
