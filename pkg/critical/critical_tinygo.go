//go:build tinygo

package critical

import "runtime/interrupt"

var (
	// nesting counts active sections; only touched with interrupts masked.
	nesting uint32
	saved   interrupt.State
)

type global struct{}

func (global) Enter() {
	state := interrupt.Disable()
	if nesting == 0 {
		saved = state
	}
	nesting++
}

func (global) Exit() {
	if nesting == 0 {
		return
	}
	nesting--
	if nesting == 0 {
		interrupt.Restore(saved)
	}
}
