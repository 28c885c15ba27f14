package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-contact-sync/internal/message"
	"github.com/MKhiriev/go-contact-sync/internal/transport"
	"github.com/MKhiriev/go-contact-sync/internal/xslt"
	"github.com/MKhiriev/go-contact-sync/models"
	"github.com/beevik/etree"
)

const testOC = models.ObjectClassContacts

// ── device fixtures ──────────────────────────────────────────────────────────

func helloReply(syncType string) *message.Node {
	return message.NewArray(
		message.NewString(message.MsgSyncDataClassWithDevice),
		message.NewString(testOC),
		message.NewString("20260101T000000Z"),
		message.NewString("20260501T120000Z"),
		message.NewString(syncType),
		message.NewUint(7),
	)
}

// contactChunk is a record chunk as the device sends it: a process-changes
// envelope carrying one contact keyed by its record id.
func contactChunk(uid, firstName string) *message.Node {
	return message.NewArray(
		message.NewString("SDMessageProcessChanges"),
		message.NewString(testOC),
		message.NewDict(message.Entry{Key: uid, Value: message.NewDict(
			message.Entry{Key: "com.apple.syncservices.RecordEntityName", Value: message.NewString(models.ContactRecordMarker)},
			message.Entry{Key: "first name", Value: message.NewString(firstName)},
		)}),
	)
}

// plainChunk carries no contact marker.
func plainChunk(label string) *message.Node {
	return message.NewArray(
		message.NewString("SDMessageProcessChanges"),
		message.NewString(testOC),
		message.NewString(label),
	)
}

func readyChunk() *message.Node {
	return message.NewEnvelope(message.MsgDeviceReadyToReceiveChanges, testOC)
}

// fakePhone is an in-memory [transport.Device] that answers requests the
// way a MobileSync service does.
type fakePhone struct {
	mu sync.Mutex

	hello  *message.Node
	chunks []*message.Node
	// stuck makes the phone answer every acknowledgement with another chunk.
	stuck bool
	// finish is the answer to the finish request; nil means finished-session.
	finish *message.Node
	// failOn makes the phone drop the connection when it receives the command.
	failOn string

	connectErr  error
	connected   bool
	connects    int
	disconnects int

	sent    []*message.Node
	pending []*message.Node
	next    int
}

func newFakePhone(syncType string, chunks ...*message.Node) *fakePhone {
	return &fakePhone{hello: helloReply(syncType), chunks: chunks}
}

func (p *fakePhone) Connect(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.connected {
		return transport.ErrAlreadyConnected
	}
	if p.connectErr != nil {
		return p.connectErr
	}
	p.connected = true
	p.connects++
	return nil
}

func (p *fakePhone) Disconnect(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.connected {
		p.disconnects++
	}
	p.connected = false
	return nil
}

func (p *fakePhone) Connected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.connected
}

func (p *fakePhone) Send(ctx context.Context, msg *message.Node) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", models.ErrConnection, err)
	}
	if !p.connected {
		return fmt.Errorf("%w: %w", models.ErrConnection, transport.ErrNotConnected)
	}

	p.sent = append(p.sent, msg)
	cmd, _ := message.Command(msg)
	if p.failOn != "" && cmd == p.failOn {
		return fmt.Errorf("%w: broken pipe", models.ErrConnection)
	}

	switch cmd {
	case message.MsgSyncDataClassWithDevice:
		p.pending = append(p.pending, p.hello)
	case message.MsgGetAllRecordsFromDevice, message.MsgAcknowledgeChangesFromDevice:
		p.pending = append(p.pending, p.nextChunk())
	case message.MsgFinishSessionOnDevice:
		finish := p.finish
		if finish == nil {
			finish = message.NewEnvelope(message.MsgDeviceFinishedSession, testOC)
		}
		p.pending = append(p.pending, finish)
	}
	return nil
}

func (p *fakePhone) nextChunk() *message.Node {
	if p.stuck {
		p.next++
		return contactChunk(fmt.Sprintf("stuck-%d", p.next), "Loop")
	}
	if p.next < len(p.chunks) {
		chunk := p.chunks[p.next]
		p.next++
		return chunk
	}
	return readyChunk()
}

func (p *fakePhone) Receive(ctx context.Context) (*message.Node, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrConnection, err)
	}
	if len(p.pending) == 0 {
		return nil, fmt.Errorf("%w: no message pending", models.ErrConnection)
	}
	msg := p.pending[0]
	p.pending = p.pending[1:]
	return msg, nil
}

func (p *fakePhone) commands() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	cmds := make([]string, 0, len(p.sent))
	for _, msg := range p.sent {
		cmd, _ := message.Command(msg)
		cmds = append(cmds, cmd)
	}
	return cmds
}

var _ transport.Device = (*fakePhone)(nil)

// ── transform fixture ────────────────────────────────────────────────────────

// fakeStylesheet stands in for xsltproc. Unless output or err is set, it
// reads the plist markup and emits one <contact> per contact record with
// the Uid field first and the Name field second.
type fakeStylesheet struct {
	mu       sync.Mutex
	output   []byte
	err      error
	checkErr error
	calls    int
	lastOpts xslt.Options
}

func (f *fakeStylesheet) Check() error {
	return f.checkErr
}

func (f *fakeStylesheet) Apply(ctx context.Context, input []byte, opts xslt.Options) ([]byte, error) {
	f.mu.Lock()
	f.calls++
	f.lastOpts = opts
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	if f.output != nil {
		return f.output, nil
	}

	in := etree.NewDocument()
	if err := in.ReadFromBytes(input); err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrTransform, err)
	}

	out := etree.NewDocument()
	contacts := out.CreateElement("contacts")
	for _, dict := range in.FindElements("//dict") {
		entries := dict.ChildElements()
		for i := 0; i+1 < len(entries); i += 2 {
			key, record := entries[i], entries[i+1]
			if key.Tag != "key" || record.Tag != "dict" || !isContactRecord(record) {
				continue
			}
			contact := contacts.CreateElement("contact")
			contact.CreateElement("Uid").CreateElement("content").SetText(key.Text())
			contact.CreateElement("Name").CreateElement("content").SetText(recordValue(record, "first name"))
		}
	}
	return out.WriteToBytes()
}

func isContactRecord(record *etree.Element) bool {
	for _, field := range record.ChildElements() {
		if field.Tag == "string" && field.Text() == models.ContactRecordMarker {
			return true
		}
	}
	return false
}

func recordValue(record *etree.Element, key string) string {
	fields := record.ChildElements()
	for i := 0; i+1 < len(fields); i += 2 {
		if fields[i].Tag == "key" && fields[i].Text() == key {
			return fields[i+1].Text()
		}
	}
	return ""
}

var _ xslt.Transformer = (*fakeStylesheet)(nil)

// ── consumer fixture ─────────────────────────────────────────────────────────

type recordingConsumer struct {
	mu sync.Mutex

	events    []models.ChangeEvent
	completes int
	failures  []models.CycleError

	changeErr   error
	completeErr error
	// failAfter makes OnChange fail once this many events were accepted.
	failAfter int
}

func (c *recordingConsumer) OnChange(ctx context.Context, event models.ChangeEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.changeErr != nil && len(c.events) >= c.failAfter {
		return c.changeErr
	}
	c.events = append(c.events, event)
	return nil
}

func (c *recordingConsumer) OnCycleComplete(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.completes++
	return c.completeErr
}

func (c *recordingConsumer) OnCycleError(ctx context.Context, kind models.ErrorKind, message string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures = append(c.failures, models.CycleError{Kind: kind, Message: message})
	return nil
}

func (c *recordingConsumer) uids() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	uids := make([]string, 0, len(c.events))
	for _, e := range c.events {
		uids = append(uids, e.UID)
	}
	return uids
}
