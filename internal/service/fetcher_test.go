package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-contact-sync/internal/config"
	"github.com/MKhiriev/go-contact-sync/internal/message"
	"github.com/MKhiriev/go-contact-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func connectedPhone(t *testing.T, phone *fakePhone) *fakePhone {
	t.Helper()
	require.NoError(t, phone.Connect(context.Background()))
	return phone
}

func TestFetchAll_OrderAndWrapping(t *testing.T) {
	a, plain, b := contactChunk("A", "Ann"), plainChunk("group"), contactChunk("B", "Bob")
	phone := connectedPhone(t, newFakePhone("SDSyncTypeSlow", a, plain, b))

	batch, err := NewBulkFetcher(phone, config.Sync{MaxChunks: 10}).FetchAll(context.Background(), testOC)
	require.NoError(t, err)

	records := batch.Records()
	require.Len(t, records, 3)

	assert.True(t, message.IsReferenceRecord(records[0]))
	ref, _ := records[0].Lookup(message.ContactRefKey)
	assert.Same(t, a, ref)

	assert.Same(t, plain, records[1], "plain chunks are kept verbatim")

	ref, _ = records[2].Lookup(message.ContactRefKey)
	assert.Same(t, b, ref)

	assert.Equal(t, []string{
		message.MsgGetAllRecordsFromDevice,
		message.MsgAcknowledgeChangesFromDevice,
		message.MsgAcknowledgeChangesFromDevice,
		message.MsgAcknowledgeChangesFromDevice,
		message.MsgPing,
		message.MsgFinishSessionOnDevice,
	}, phone.commands())
}

func TestFetchAll_ProtocolArguments(t *testing.T) {
	phone := connectedPhone(t, newFakePhone("SDSyncTypeSlow", contactChunk("A", "Ann")))

	_, err := NewBulkFetcher(phone, config.Sync{}).FetchAll(context.Background(), testOC)
	require.NoError(t, err)

	for _, msg := range phone.sent {
		cmd, _ := message.Command(msg)
		arg, ok := msg.At(1)
		require.True(t, ok, "%s carries an argument", cmd)
		s, _ := arg.StringValue()
		if cmd == message.MsgPing {
			assert.Equal(t, message.PingPreparingChanges, s)
			continue
		}
		assert.Equal(t, testOC, s, cmd)
	}
}

func TestFetchAll_EmptyAddressBook(t *testing.T) {
	phone := connectedPhone(t, newFakePhone("SDSyncTypeSlow"))

	batch, err := NewBulkFetcher(phone, config.Sync{}).FetchAll(context.Background(), testOC)
	require.NoError(t, err)
	assert.Equal(t, 0, batch.Len())
	assert.Equal(t, []string{
		message.MsgGetAllRecordsFromDevice,
		message.MsgPing,
		message.MsgFinishSessionOnDevice,
	}, phone.commands())
}

func TestFetchAll_ChunkLimit(t *testing.T) {
	phone := newFakePhone("SDSyncTypeSlow")
	phone.stuck = true
	connectedPhone(t, phone)

	batch, err := NewBulkFetcher(phone, config.Sync{MaxChunks: 5}).FetchAll(context.Background(), testOC)

	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrProtocol)
	assert.ErrorIs(t, err, ErrChunkLimitExceeded)
	assert.Equal(t, 0, batch.Len(), "no partial batch on failure")

	cmds := phone.commands()
	assert.Len(t, cmds, 6, "get-all plus one acknowledgement per accepted chunk")
	assert.NotContains(t, cmds, message.MsgFinishSessionOnDevice)
}

func TestFetchAll_ExactlyMaxChunks(t *testing.T) {
	phone := connectedPhone(t, newFakePhone("SDSyncTypeSlow",
		contactChunk("A", "Ann"), contactChunk("B", "Bob")))

	batch, err := NewBulkFetcher(phone, config.Sync{MaxChunks: 2}).FetchAll(context.Background(), testOC)
	require.NoError(t, err)
	assert.Equal(t, 2, batch.Len())
}

func TestFetchAll_DefaultLimit(t *testing.T) {
	f := NewBulkFetcher(nil, config.Sync{}).(*fetcher)
	assert.Equal(t, config.DefaultMaxChunks, f.maxChunks)
}

func TestFetchAll_FinishedSessionIsAdvisory(t *testing.T) {
	phone := newFakePhone("SDSyncTypeSlow", contactChunk("A", "Ann"))
	phone.finish = message.NewEnvelope("SDMessageCancelSession", testOC)
	connectedPhone(t, phone)

	batch, err := NewBulkFetcher(phone, config.Sync{}).FetchAll(context.Background(), testOC)
	require.NoError(t, err)
	assert.Equal(t, 1, batch.Len())
}

func TestFetchAll_TransportFailures(t *testing.T) {
	for _, cmd := range []string{
		message.MsgGetAllRecordsFromDevice,
		message.MsgAcknowledgeChangesFromDevice,
		message.MsgPing,
		message.MsgFinishSessionOnDevice,
	} {
		t.Run(cmd, func(t *testing.T) {
			phone := newFakePhone("SDSyncTypeSlow", contactChunk("A", "Ann"), contactChunk("B", "Bob"))
			phone.failOn = cmd
			connectedPhone(t, phone)

			batch, err := NewBulkFetcher(phone, config.Sync{}).FetchAll(context.Background(), testOC)
			require.Error(t, err)
			assert.ErrorIs(t, err, models.ErrConnection)
			assert.Equal(t, 0, batch.Len())
		})
	}
}

func TestFetchAll_Cancelled(t *testing.T) {
	phone := newFakePhone("SDSyncTypeSlow")
	phone.stuck = true
	connectedPhone(t, phone)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	batch, err := NewBulkFetcher(phone, config.Sync{}).FetchAll(ctx, testOC)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, models.ErrConnection)
	assert.Equal(t, 0, batch.Len())
	assert.Empty(t, phone.commands())
}
