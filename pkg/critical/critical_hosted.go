//go:build !tinygo

package critical

import "sync"

var hostedMutex sync.Mutex

type global struct{}

func (global) Enter() { hostedMutex.Lock() }
func (global) Exit()  { hostedMutex.Unlock() }
