package message

import (
	"testing"

	"github.com/MKhiriev/go-contact-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── NewHello ─────────────────────────────────────────────────────────────────

func TestNewHello_FirstSyncUsesSentinel(t *testing.T) {
	hello := NewHello(models.ObjectClassContacts, "", "20260101T000000Z")

	require.Equal(t, 6, hello.Len())
	cmd, ok := Command(hello)
	require.True(t, ok)
	assert.Equal(t, MsgSyncDataClassWithDevice, cmd)

	anchor, _ := hello.Items()[2].StringValue()
	assert.Equal(t, FirstSyncAnchor, anchor)

	version, ok := hello.Items()[4].UintValue()
	require.True(t, ok)
	assert.Equal(t, uint64(106), version)

	last, _ := hello.Items()[5].StringValue()
	assert.Equal(t, EmptyParameter, last)
}

func TestNewHello_KeepsStoredAnchor(t *testing.T) {
	hello := NewHello(models.ObjectClassContacts, "2025-12-31 10:00:00 +0000", "20260101T000000Z")

	anchor, _ := hello.Items()[2].StringValue()
	assert.Equal(t, "2025-12-31 10:00:00 +0000", anchor)
	ts, _ := hello.Items()[3].StringValue()
	assert.Equal(t, "20260101T000000Z", ts)
}

// ── WrapReference ────────────────────────────────────────────────────────────

func TestWrapReference(t *testing.T) {
	chunk := NewEnvelope("SDMessageProcessChanges", models.ObjectClassContacts, models.ContactRecordMarker)

	wrapped := WrapReference(chunk)
	require.True(t, IsReferenceRecord(wrapped))
	inner, ok := wrapped.Lookup(ContactRefKey)
	require.True(t, ok)
	assert.Same(t, chunk, inner)

	t.Run("idempotent", func(t *testing.T) {
		again := WrapReference(wrapped)
		assert.Same(t, wrapped, again)
		assert.Equal(t, 1, again.Len())
	})

	t.Run("dict with extra keys is wrapped", func(t *testing.T) {
		d := NewDict(Entry{Key: ContactRefKey, Value: chunk}, Entry{Key: "other", Value: NewString("x")})
		assert.False(t, IsReferenceRecord(d))
		assert.NotSame(t, d, WrapReference(d))
	})
}

// ── DecodeHelloResponse ──────────────────────────────────────────────────────

func helloResponse(extra ...*Node) *Node {
	resp := NewArray(
		NewString(MsgSyncDataClassWithDevice),
		NewString(models.ObjectClassContacts),
	)
	resp.Append(extra...)
	return resp
}

func TestDecodeHelloResponse(t *testing.T) {
	tests := []struct {
		name     string
		response *Node
		want     HelloResponse
		wantKind models.SessionKind
		wantErr  bool
	}{
		{
			name: "fast",
			response: helloResponse(NewString("old"), NewString("new"),
				NewString(SyncTypeFast), NewUint(106)),
			want:     HelloResponse{OldAnchor: "old", NewAnchor: "new", SyncType: SyncTypeFast, SessionNumber: 106},
			wantKind: models.SessionFast,
		},
		{
			name: "slow token",
			response: helloResponse(NewString("---"), NewString("new"),
				NewString("SDSyncTypeSlow"), NewUint(1)),
			want:     HelloResponse{OldAnchor: "---", NewAnchor: "new", SyncType: "SDSyncTypeSlow", SessionNumber: 1},
			wantKind: models.SessionSlow,
		},
		{
			name:     "sync type absent",
			response: helloResponse(NewString("old"), NewString("new")),
			want:     HelloResponse{OldAnchor: "old", NewAnchor: "new"},
			wantKind: models.SessionSlow,
		},
		{
			name:     "sync type not a string",
			response: helloResponse(NewString("old"), NewString("new"), NewUint(7)),
			want:     HelloResponse{OldAnchor: "old", NewAnchor: "new"},
			wantKind: models.SessionSlow,
		},
		{
			name: "marker nested in dict",
			response: NewArray(NewDict(Entry{Key: "payload", Value: helloResponse(
				NewString("a"), NewString("b"), NewString(SyncTypeFast))})),
			want:     HelloResponse{OldAnchor: "a", NewAnchor: "b", SyncType: SyncTypeFast},
			wantKind: models.SessionFast,
		},
		{
			name:     "no marker",
			response: NewArray(NewString(MsgSyncDataClassWithDevice), NewString("com.apple.Calendars")),
			wantErr:  true,
		},
		{
			name:     "too few fields",
			response: helloResponse(NewString("old")),
			wantErr:  true,
		},
		{
			name:     "old anchor not a string",
			response: helloResponse(NewUint(1), NewString("new")),
			wantErr:  true,
		},
		{
			name: "session number not an integer",
			response: helloResponse(NewString("old"), NewString("new"),
				NewString(SyncTypeFast), NewString("one")),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeHelloResponse(tt.response, models.ObjectClassContacts)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, models.ErrProtocol)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantKind, got.Kind())
		})
	}
}

// ── FindString / Contains ────────────────────────────────────────────────────

func TestContains(t *testing.T) {
	chunk := NewArray(
		NewString("SDMessageProcessChanges"),
		NewDict(
			Entry{Key: models.ContactRecordMarker, Value: NewUint(1)},
			Entry{Key: "type", Value: NewString(models.ContactRecordMarker)},
		),
	)

	assert.True(t, Contains(chunk, models.ContactRecordMarker))
	assert.False(t, Contains(chunk, MsgDeviceReadyToReceiveChanges))
	assert.True(t, Contains(NewString("x"), "x"))
	assert.False(t, Contains(nil, "x"))
}

func TestFindString_DictKeysAreNotMatched(t *testing.T) {
	d := NewDict(Entry{Key: "needle", Value: NewString("hay")})

	_, ok := FindString(d, "needle")
	assert.False(t, ok)
}

func TestFindString_FirstMatchInDocumentOrder(t *testing.T) {
	first := NewArray(NewString("m"), NewString("first"))
	root := NewArray(first, NewString("m"), NewString("second"))

	loc, ok := FindString(root, "m")
	require.True(t, ok)
	assert.Same(t, first, loc.Parent)
	assert.Equal(t, 0, loc.Index)

	siblings := loc.Siblings()
	require.Len(t, siblings, 1)
	v, _ := siblings[0].StringValue()
	assert.Equal(t, "first", v)
}
