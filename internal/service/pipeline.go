package service

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/MKhiriev/go-contact-sync/internal/logger"
	"github.com/MKhiriev/go-contact-sync/internal/message"
	"github.com/MKhiriev/go-contact-sync/internal/xslt"
	"github.com/MKhiriev/go-contact-sync/models"
	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"github.com/beevik/etree"
)

var (
	uidPath  = xpath.MustCompile("/contact/Uid/content")
	uidCount = xpath.MustCompile("count(/contact/Uid/content)")
)

type pipeline struct {
	transformer xslt.Transformer
	options     func() xslt.Options
}

// NewRecordTransformer returns a [RecordTransformer] that applies the
// contact stylesheet through transformer.
func NewRecordTransformer(transformer xslt.Transformer) RecordTransformer {
	return &pipeline{transformer: transformer, options: xslt.DefaultOptions}
}

// Transform implements [RecordTransformer].
//
// The batch is rendered as an XML property list and run through the
// stylesheet. Every element child of the result's root becomes one contact
// document with its fields sorted by element name. Each document must carry
// exactly one non-empty /contact/Uid/content, unique within the batch.
func (p *pipeline) Transform(ctx context.Context, batch message.Batch) ([]models.ContactDocument, error) {
	log := logger.FromContext(ctx)

	markup, err := message.MarshalXML(batch.Node())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrTransform, err)
	}

	out, err := p.transformer.Apply(ctx, markup, p.options())
	if err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	if err = doc.ReadFromBytes(out); err != nil {
		return nil, fmt.Errorf("%w: parse transform output: %w", models.ErrTransform, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: %w", models.ErrTransform, ErrNoRootElement)
	}

	children := root.ChildElements()
	docs := make([]models.ContactDocument, 0, len(children))
	seen := make(map[string]int, len(children))
	for i, child := range children {
		payload, err := serializeContact(sortFields(child))
		if err != nil {
			return nil, fmt.Errorf("%w: contact %d: serialize: %w", models.ErrRecord, i, err)
		}

		uid, err := contactUID(payload)
		if err != nil {
			return nil, fmt.Errorf("contact %d: %w", i, err)
		}
		if first, dup := seen[uid]; dup {
			return nil, fmt.Errorf("%w: %w: %q in contacts %d and %d", models.ErrRecord, ErrDuplicateUID, uid, first, i)
		}
		seen[uid] = i

		docs = append(docs, models.ContactDocument{UID: uid, Payload: payload})
	}

	log.Info().
		Str("func", "pipeline.Transform").
		Int("records", batch.Len()).
		Int("contacts", len(docs)).
		Msg("batch transformed")
	return docs, nil
}

// sortFields returns a deep copy of contact whose element children are
// stably sorted by tag name. Whitespace between fields is dropped.
func sortFields(contact *etree.Element) *etree.Element {
	fields := contact.ChildElements()
	sort.SliceStable(fields, func(i, j int) bool {
		return fields[i].Tag < fields[j].Tag
	})

	sorted := etree.NewElement(contact.Tag)
	sorted.Space = contact.Space
	sorted.Attr = append(sorted.Attr, contact.Attr...)
	for _, field := range fields {
		sorted.AddChild(field.Copy())
	}
	return sorted
}

func serializeContact(contact *etree.Element) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.SetRoot(contact)
	doc.Indent(2)
	return doc.WriteToBytes()
}

// contactUID evaluates /contact/Uid/content on a serialized contact.
func contactUID(payload []byte) (string, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: parse contact: %w", models.ErrRecord, err)
	}

	count, _ := uidCount.Evaluate(xmlquery.CreateXPathNavigator(doc)).(float64)
	if count != 1 {
		return "", fmt.Errorf("%w: %s matched %d nodes, want exactly 1", models.ErrRecord, uidPath, int(count))
	}

	node := xmlquery.QuerySelector(doc, uidPath)
	if node == nil {
		return "", fmt.Errorf("%w: %s not found", models.ErrRecord, uidPath)
	}
	uid := node.InnerText()
	if strings.TrimSpace(uid) == "" {
		return "", fmt.Errorf("%w: empty uid", models.ErrRecord)
	}
	return uid, nil
}
