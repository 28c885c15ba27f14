package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/MKhiriev/go-contact-sync/internal/message"
	"github.com/MKhiriev/go-contact-sync/internal/mock"
	"github.com/MKhiriev/go-contact-sync/internal/xslt"
	"github.com/MKhiriev/go-contact-sync/models"
	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func batchOf(chunks ...*message.Node) message.Batch {
	var b message.Batch
	for _, c := range chunks {
		b.Append(message.WrapReference(c))
	}
	return b
}

func TestTransform_SplitsSortsAndIdentifies(t *testing.T) {
	stylesheet := &fakeStylesheet{}
	p := NewRecordTransformer(stylesheet)

	docs, err := p.Transform(context.Background(), batchOf(contactChunk("A", "Ann"), contactChunk("B", "Bob")))
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, "A", docs[0].UID)
	assert.Equal(t, "B", docs[1].UID)

	payload := string(docs[0].Payload)
	assert.True(t, strings.HasPrefix(payload, "<?xml"))
	assert.Less(t, strings.Index(payload, "<Name>"), strings.Index(payload, "<Uid>"), "fields are sorted by name")
	assert.Contains(t, payload, "<content>Ann</content>")
	assert.NotContains(t, payload, "Bob", "documents are split")

	assert.Equal(t, 1, stylesheet.calls)
	assert.Equal(t, xslt.DefaultOptions(), stylesheet.lastOpts)
}

func TestTransform_PassesPlistMarkup(t *testing.T) {
	ctrl := gomock.NewController(t)
	transformer := mock.NewMockTransformer(ctrl)

	transformer.EXPECT().
		Apply(gomock.Any(), gomock.Any(), xslt.DefaultOptions()).
		DoAndReturn(func(_ context.Context, input []byte, _ xslt.Options) ([]byte, error) {
			doc := etree.NewDocument()
			require.NoError(t, doc.ReadFromBytes(input))
			assert.Equal(t, "plist", doc.Root().Tag)
			assert.NotNil(t, doc.FindElement("//key[text()='contact-ref']"))
			return []byte(`<contacts/>`), nil
		})

	docs, err := NewRecordTransformer(transformer).Transform(context.Background(), batchOf(contactChunk("A", "Ann")))
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestTransform_StableSort(t *testing.T) {
	stylesheet := &fakeStylesheet{output: []byte(`<contacts>
  <contact>
    <Uid><content>A</content></Uid>
    <Phone><content>1</content></Phone>
    <Email><content>a@x</content></Email>
    <Phone><content>2</content></Phone>
  </contact>
</contacts>`)}

	docs, err := NewRecordTransformer(stylesheet).Transform(context.Background(), batchOf(contactChunk("A", "Ann")))
	require.NoError(t, err)
	require.Len(t, docs, 1)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(docs[0].Payload))
	var tags []string
	for _, field := range doc.Root().ChildElements() {
		tags = append(tags, field.Tag+":"+field.SelectElement("content").Text())
	}
	assert.Equal(t, []string{"Email:a@x", "Phone:1", "Phone:2", "Uid:A"}, tags)
}

func TestTransform_DeterministicPayload(t *testing.T) {
	batch := batchOf(contactChunk("A", "Ann"))

	first, err := NewRecordTransformer(&fakeStylesheet{}).Transform(context.Background(), batch)
	require.NoError(t, err)
	second, err := NewRecordTransformer(&fakeStylesheet{}).Transform(context.Background(), batch)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestTransform_RecordErrors(t *testing.T) {
	tests := []struct {
		name   string
		output string
		msg    string
	}{
		{
			name:   "missing uid",
			output: `<contacts><contact><Name><content>Ann</content></Name></contact></contacts>`,
			msg:    "matched 0 nodes",
		},
		{
			name:   "two uids",
			output: `<contacts><contact><Uid><content>A</content></Uid><Uid><content>B</content></Uid></contact></contacts>`,
			msg:    "matched 2 nodes",
		},
		{
			name:   "empty uid",
			output: `<contacts><contact><Uid><content>  </content></Uid></contact></contacts>`,
			msg:    "empty uid",
		},
		{
			name:   "not a contact",
			output: `<contacts><group><Uid><content>A</content></Uid></group></contacts>`,
			msg:    "matched 0 nodes",
		},
		{
			name: "duplicate uid",
			output: `<contacts><contact><Uid><content>A</content></Uid></contact>` +
				`<contact><Uid><content>A</content></Uid></contact></contacts>`,
			msg: "duplicate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewRecordTransformer(&fakeStylesheet{output: []byte(tt.output)})

			docs, err := p.Transform(context.Background(), batchOf(contactChunk("A", "Ann")))
			require.Error(t, err)
			assert.ErrorIs(t, err, models.ErrRecord)
			assert.Equal(t, models.ErrorKindRecord, models.KindOf(err))
			assert.Contains(t, err.Error(), tt.msg)
			assert.Nil(t, docs, "all or nothing")
		})
	}
}

func TestTransform_TransformErrors(t *testing.T) {
	tests := []struct {
		name       string
		stylesheet *fakeStylesheet
	}{
		{name: "processor failed", stylesheet: &fakeStylesheet{err: fmt.Errorf("%w: xsltproc: exit status 5", models.ErrTransform)}},
		{name: "unparseable output", stylesheet: &fakeStylesheet{output: []byte("<contacts><contact>")}},
		{name: "no root element", stylesheet: &fakeStylesheet{output: []byte(`<?xml version="1.0"?>`)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs, err := NewRecordTransformer(tt.stylesheet).Transform(context.Background(), batchOf(contactChunk("A", "Ann")))
			require.Error(t, err)
			assert.ErrorIs(t, err, models.ErrTransform)
			assert.Nil(t, docs)
		})
	}
}

func TestContactUID(t *testing.T) {
	uid, err := contactUID([]byte(`<?xml version="1.0"?><contact><Uid><content>X-1</content></Uid></contact>`))
	require.NoError(t, err)
	assert.Equal(t, "X-1", uid)

	_, err = contactUID([]byte(`<contact><Uid>`))
	assert.ErrorIs(t, err, models.ErrRecord)
}
