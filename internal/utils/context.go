// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, hashing,
// HTTP response writing, HTTP client initialization, JWT token generation
// and validation, and other common operations.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

var (
	// OperatorCtxKey stores the control API operator authenticated by the
	// bearer token.
	OperatorCtxKey = contextKey("operator")

	// CycleIDCtxKey stores the identifier of the running sync cycle.
	CycleIDCtxKey = contextKey("cycleID")
)

// GetOperatorFromContext retrieves the authenticated operator name.
//
// Returns ok == false when the value is missing, empty or has an unexpected
// type.
func GetOperatorFromContext(ctx context.Context) (string, bool) {
	operator, ok := ctx.Value(OperatorCtxKey).(string)
	return operator, ok && operator != ""
}

// WithCycleID returns a copy of ctx carrying the sync cycle identifier.
func WithCycleID(ctx context.Context, cycleID string) context.Context {
	return context.WithValue(ctx, CycleIDCtxKey, cycleID)
}

// GetCycleIDFromContext retrieves the sync cycle identifier.
func GetCycleIDFromContext(ctx context.Context) (string, bool) {
	cycleID, ok := ctx.Value(CycleIDCtxKey).(string)
	return cycleID, ok
}
