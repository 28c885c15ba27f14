package models

import "time"

// AnchorResponse is returned by the control API for a stored sync anchor.
type AnchorResponse struct {
	ObjectClass string     `json:"object_class"`
	Anchor      string     `json:"anchor"`
	Found       bool       `json:"found"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// Anchor is a persisted sync point for an object class.
type Anchor struct {
	ObjectClass string
	Value       string
	UpdatedAt   time.Time
}
