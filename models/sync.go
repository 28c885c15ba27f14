// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Object classes and record markers understood by the MobileSync service.
const (
	// ObjectClassContacts is the data class identifier of the device address book.
	ObjectClassContacts = "com.apple.Contacts"

	// ContactRecordMarker marks a chunk that carries contact references
	// instead of inline contact content.
	ContactRecordMarker = "com.apple.contacts.Contact"

	// ContactObjectType is the object type reported on every change event.
	ContactObjectType = "contact"

	// ContactFormat is the payload format name reported on every change event.
	ContactFormat = "xmlformat-contact"
)

// SessionKind classifies a negotiated sync session.
type SessionKind string

const (
	// SessionSlow is a full resynchronization: every device record is
	// delivered as newly added.
	SessionSlow SessionKind = "slow"

	// SessionFast is an incremental synchronization driven by device deltas.
	SessionFast SessionKind = "fast"
)

// SyncSession holds the state negotiated by the hello handshake for one
// sync cycle. It lives only for the duration of that cycle.
type SyncSession struct {
	// ObjectClass is the data class being synchronized.
	ObjectClass string

	// Kind is the session classification reported by the device.
	Kind SessionKind

	// PriorAnchor is the anchor sent to the device in the hello message.
	// It equals the first-sync sentinel when no anchor was stored.
	PriorAnchor string

	// DeviceOldAnchor is the anchor the device reports as its last sync point.
	DeviceOldAnchor string

	// NewAnchor is the anchor supplied by the device; it is persisted only
	// after the cycle completes successfully.
	NewAnchor string

	// SessionNumber is the device session counter, zero when not reported.
	SessionNumber uint64

	// StartedAt is the host time at which negotiation began.
	StartedAt time.Time
}

// IsSlow reports whether the session requires a full resynchronization.
func (s SyncSession) IsSlow() bool {
	return s.Kind != SessionFast
}

// SyncReport summarises a finished sync cycle.
type SyncReport struct {
	CycleID     string      `json:"cycle_id"`
	ObjectClass string      `json:"object_class"`
	Kind        SessionKind `json:"kind"`
	Events      int         `json:"events"`
	Chunks      int         `json:"chunks"`
	NewAnchor   string      `json:"new_anchor,omitempty"`
	StartedAt   time.Time   `json:"started_at"`
	FinishedAt  time.Time   `json:"finished_at"`
}
