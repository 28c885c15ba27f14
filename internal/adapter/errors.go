package adapter

import "errors"

var (
	ErrBadRequest   = errors.New("sync engine rejected the request")
	ErrUnauthorized = errors.New("sync engine unauthorized")
	ErrForbidden    = errors.New("sync engine forbids the request")
	ErrNotFound     = errors.New("sync engine endpoint not found")

	// ErrDuplicateChange is returned when the sync engine already holds a
	// change with the same UID for the cycle.
	ErrDuplicateChange = errors.New("sync engine already has a change with this uid")

	// ErrUnprocessableChange is returned when the sync engine cannot accept
	// the contact payload.
	ErrUnprocessableChange = errors.New("sync engine cannot process the change")

	// ErrEngineUnavailable covers every 5xx reply.
	ErrEngineUnavailable = errors.New("sync engine unavailable")

	ErrInvalidAddress = errors.New("invalid sync engine address")
)
