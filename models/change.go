package models

// ChangeType is the kind of change reported to the sync engine for a record.
type ChangeType string

const (
	ChangeAdded    ChangeType = "added"
	ChangeModified ChangeType = "modified"
	ChangeDeleted  ChangeType = "deleted"
)

// ChangeTypeFor returns the change type assigned to every record of a
// session of the given kind.
func ChangeTypeFor(kind SessionKind) ChangeType {
	if kind == SessionFast {
		return ChangeModified
	}
	return ChangeAdded
}

// ContactDocument is a single contact produced by the transform pipeline.
type ContactDocument struct {
	// UID is the stable record identifier read from /contact/Uid/content.
	UID string

	// Payload is the serialized, field-sorted contact XML document.
	Payload []byte
}

// ChangeEvent is one entry of the normalized change feed.
type ChangeEvent struct {
	UID        string     `json:"uid"`
	ChangeType ChangeType `json:"change_type"`
	ObjectType string     `json:"object_type"`
	Format     string     `json:"format"`
	Payload    string     `json:"payload"`
}

// NewChangeEvent builds the contact change event for doc.
func NewChangeEvent(doc ContactDocument, changeType ChangeType) ChangeEvent {
	return ChangeEvent{
		UID:        doc.UID,
		ChangeType: changeType,
		ObjectType: ContactObjectType,
		Format:     ContactFormat,
		Payload:    string(doc.Payload),
	}
}

// CycleError is the terminal failure report delivered to the sync engine.
type CycleError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}
