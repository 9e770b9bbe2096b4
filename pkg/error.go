package pkg

import "errors"

// Port and HAL errors.
var (
	// ErrInvalidPort indicates the HAL does not know the requested port.
	ErrInvalidPort = errors.New("invalid port")

	// ErrInvalidMask indicates the mask selects no pins, or pins the port lacks.
	ErrInvalidMask = errors.New("invalid pin mask")

	// ErrInvalidParameter indicates an out-of-range direction or pull mode.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrPinUnavailable indicates a pin exists in the layout but not on the host.
	ErrPinUnavailable = errors.New("pin unavailable")
)
