package pkg

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorsWrap(t *testing.T) {
	sentinels := []error{
		ErrInvalidPort,
		ErrInvalidMask,
		ErrInvalidParameter,
		ErrPinUnavailable,
	}

	for _, want := range sentinels {
		t.Run(want.Error(), func(t *testing.T) {
			err := fmt.Errorf("init port: %w", want)
			if !errors.Is(err, want) {
				t.Errorf("errors.Is(%v, %v) = false", err, want)
			}
			for _, other := range sentinels {
				if other != want && errors.Is(err, other) {
					t.Errorf("errors.Is(%v, %v) = true", err, other)
				}
			}
		})
	}
}
