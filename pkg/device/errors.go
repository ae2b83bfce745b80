package device

import "errors"

var (
	// ErrConfiguration indicates missing or invalid connection settings
	ErrConfiguration = errors.New("invalid configuration")

	// ErrTransport indicates the hub connection could not be opened, written or read
	ErrTransport = errors.New("transport error")

	// ErrTimeout indicates a socket operation exceeded its deadline
	ErrTimeout = errors.New("operation timed out")

	// ErrMalformedResponse indicates a hub line did not have the expected shape
	ErrMalformedResponse = errors.New("malformed response")

	// ErrUnknownDevice indicates a light id outside the known fixtures
	ErrUnknownDevice = errors.New("unknown device")

	// ErrNotConnected indicates the controller has no hub session
	ErrNotConnected = errors.New("controller not connected")

	// ErrValidation indicates a state payload failed schema validation
	ErrValidation = errors.New("validation error")
)
