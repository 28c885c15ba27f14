package message

import (
	"fmt"

	"github.com/MKhiriev/go-contact-sync/models"
)

// MobileSync and DeviceLink protocol literals. They must match the device
// side byte for byte.
const (
	MsgSyncDataClassWithDevice      = "SDMessageSyncDataClassWithDevice"
	MsgGetAllRecordsFromDevice      = "SDMessageGetAllRecordsFromDevice"
	MsgAcknowledgeChangesFromDevice = "SDMessageAcknowledgeChangesFromDevice"
	MsgFinishSessionOnDevice        = "SDMessageFinishSessionOnDevice"
	MsgDeviceReadyToReceiveChanges  = "SDMessageDeviceReadyToReceiveChanges"
	MsgDeviceFinishedSession        = "SDMessageDeviceFinishedSession"
	MsgPing                         = "DLMessagePing"
	MsgVersionExchange              = "DLMessageVersionExchange"
	MsgDeviceReady                  = "DLMessageDeviceReady"
	MsgDisconnect                   = "DLMessageDisconnect"
	VersionsOk                      = "DLVersionsOk"
	SyncTypeFast                    = "SDSyncTypeFast"
	FirstSyncAnchor                 = "---"
	EmptyParameter                  = "___EmptyParameterString___"
	ContactRefKey                   = "contact-ref"
	PingPreparingChanges            = "Preparing to get changes for device"
	DisconnectFarewell              = "All done, thanks for the memories"
)

// ProtocolVersion is the MobileSync protocol version announced in the hello envelope.
const ProtocolVersion uint64 = 106

// NewEnvelope builds a protocol envelope: an array whose first element is
// the command name followed by string arguments.
func NewEnvelope(command string, args ...string) *Node {
	envelope := NewArray(NewString(command))
	for _, arg := range args {
		envelope.Append(NewString(arg))
	}
	return envelope
}

// Command returns the command name carried by an envelope.
func Command(envelope *Node) (string, bool) {
	first, ok := envelope.At(0)
	if !ok {
		return "", false
	}
	return first.StringValue()
}

// NewHello builds the hello envelope that opens a sync session for
// objectClass. An empty anchor is replaced with the first-sync sentinel.
func NewHello(objectClass, anchor, hostTimestamp string) *Node {
	if anchor == "" {
		anchor = FirstSyncAnchor
	}
	return NewArray(
		NewString(MsgSyncDataClassWithDevice),
		NewString(objectClass),
		NewString(anchor),
		NewString(hostTimestamp),
		NewUint(ProtocolVersion),
		NewString(EmptyParameter),
	)
}

// IsReferenceRecord reports whether record is already wrapped as a
// {contact-ref: chunk} dictionary.
func IsReferenceRecord(record *Node) bool {
	if record.Kind() != KindDict || record.Len() != 1 {
		return false
	}
	_, ok := record.Lookup(ContactRefKey)
	return ok
}

// WrapReference wraps chunk as a {contact-ref: chunk} dictionary. A chunk
// that is already wrapped is returned unchanged.
func WrapReference(chunk *Node) *Node {
	if IsReferenceRecord(chunk) {
		return chunk
	}
	return NewDict(Entry{Key: ContactRefKey, Value: chunk})
}

// HelloResponse is the typed record that follows the object class marker
// in the device's answer to the hello envelope.
type HelloResponse struct {
	OldAnchor     string
	NewAnchor     string
	SyncType      string
	SessionNumber uint64
}

// Kind classifies the response. Only the fast sync token yields a fast
// session; any other or missing token yields a slow one.
func (r HelloResponse) Kind() models.SessionKind {
	if r.SyncType == SyncTypeFast {
		return models.SessionFast
	}
	return models.SessionSlow
}

// DecodeHelloResponse locates the objectClass marker in response and
// decodes the sibling slots that follow it: old anchor, new anchor, sync
// type and session number.
//
// The marker and both anchors are required. A missing or non-string sync
// type decodes as empty and classifies as slow. A session number, when
// present, must be an unsigned integer.
func DecodeHelloResponse(response *Node, objectClass string) (HelloResponse, error) {
	loc, ok := FindString(response, objectClass)
	if !ok {
		return HelloResponse{}, fmt.Errorf("%w: hello response has no %q marker", models.ErrProtocol, objectClass)
	}

	slots := loc.Siblings()
	if len(slots) < 2 {
		return HelloResponse{}, fmt.Errorf("%w: hello response has %d fields after marker, want at least 2", models.ErrProtocol, len(slots))
	}

	var resp HelloResponse
	if resp.OldAnchor, ok = slots[0].StringValue(); !ok {
		return HelloResponse{}, fmt.Errorf("%w: old anchor is %s, want string", models.ErrProtocol, slots[0].Kind())
	}
	if resp.NewAnchor, ok = slots[1].StringValue(); !ok {
		return HelloResponse{}, fmt.Errorf("%w: new anchor is %s, want string", models.ErrProtocol, slots[1].Kind())
	}

	if len(slots) > 2 {
		resp.SyncType, _ = slots[2].StringValue()
	}

	if len(slots) > 3 {
		if resp.SessionNumber, ok = slots[3].UintValue(); !ok {
			return HelloResponse{}, fmt.Errorf("%w: session number is %s, want unsigned integer", models.ErrProtocol, slots[3].Kind())
		}
	}

	return resp, nil
}
