package transport

import "errors"

var (
	// ErrAlreadyConnected is returned by Connect when the MobileSync client
	// is already running.
	ErrAlreadyConnected = errors.New("mobilesync client is already running")

	// ErrNotConnected is returned by Send and Receive before Connect.
	ErrNotConnected = errors.New("mobilesync client is not connected")

	// ErrFrameTooLarge is returned when a frame exceeds the maximum payload size.
	ErrFrameTooLarge = errors.New("devicelink frame too large")
)
