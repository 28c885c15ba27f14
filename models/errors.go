// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "errors"

// Cycle-level error kinds. Every failure of a sync cycle wraps exactly one of
// these sentinels so that callers can classify it with [errors.Is].
var (
	// ErrConnection indicates the transport is unavailable or failed mid-session.
	ErrConnection = errors.New("connection error")

	// ErrProtocol indicates an unexpected or malformed device message.
	ErrProtocol = errors.New("protocol error")

	// ErrTransform indicates the stylesheet could not be applied or its
	// output could not be parsed.
	ErrTransform = errors.New("transform error")

	// ErrRecord indicates a single contact document could not be turned into
	// a change event (identifier count other than one, empty or duplicate
	// identifier, payload serialization failure).
	ErrRecord = errors.New("record error")
)

// ErrorKind names the class of a cycle failure as reported to consumers.
type ErrorKind string

const (
	ErrorKindConnection ErrorKind = "connection"
	ErrorKindProtocol   ErrorKind = "protocol"
	ErrorKindTransform  ErrorKind = "transform"
	ErrorKindRecord     ErrorKind = "record"
	ErrorKindGeneric    ErrorKind = "generic"
)

// KindOf maps err to its [ErrorKind]. Errors that wrap none of the cycle
// sentinels are reported as [ErrorKindGeneric].
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrConnection):
		return ErrorKindConnection
	case errors.Is(err, ErrProtocol):
		return ErrorKindProtocol
	case errors.Is(err, ErrTransform):
		return ErrorKindTransform
	case errors.Is(err, ErrRecord):
		return ErrorKindRecord
	default:
		return ErrorKindGeneric
	}
}
