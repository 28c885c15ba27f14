package message

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
)

const plistDoctype = `DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd"`

// ErrMalformedXML is returned when markup is not a well-formed XML
// property list.
var ErrMalformedXML = errors.New("malformed xml property list")

// plistDateLayout is the date format used by XML property lists.
const plistDateLayout = "2006-01-02T15:04:05Z"

// MarshalXML renders n as an XML property list document. Dictionary
// entries are written in their stored order.
func MarshalXML(n *Node) ([]byte, error) {
	if n == nil {
		return nil, fmt.Errorf("marshal xml: nil node")
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.CreateDirective(plistDoctype)

	root := doc.CreateElement("plist")
	root.CreateAttr("version", "1.0")
	if err := writeElement(root, n); err != nil {
		return nil, fmt.Errorf("marshal xml: %w", err)
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("marshal xml: %w", err)
	}
	return out, nil
}

func writeElement(parent *etree.Element, n *Node) error {
	switch n.Kind() {
	case KindString:
		parent.CreateElement("string").SetText(n.str)
	case KindUint:
		parent.CreateElement("integer").SetText(strconv.FormatUint(n.u64, 10))
	case KindInt:
		parent.CreateElement("integer").SetText(strconv.FormatInt(n.i64, 10))
	case KindReal:
		parent.CreateElement("real").SetText(strconv.FormatFloat(n.f64, 'g', -1, 64))
	case KindBool:
		if n.flag {
			parent.CreateElement("true")
		} else {
			parent.CreateElement("false")
		}
	case KindDate:
		parent.CreateElement("date").SetText(n.stamp.UTC().Format(plistDateLayout))
	case KindData:
		parent.CreateElement("data").SetText(base64.StdEncoding.EncodeToString(n.blob))
	case KindArray:
		array := parent.CreateElement("array")
		for _, item := range n.items {
			if err := writeElement(array, item); err != nil {
				return err
			}
		}
	case KindDict:
		dict := parent.CreateElement("dict")
		for _, e := range n.entries {
			dict.CreateElement("key").SetText(e.Key)
			if err := writeElement(dict, e.Value); err != nil {
				return fmt.Errorf("key %q: %w", e.Key, err)
			}
		}
	default:
		return fmt.Errorf("%w: %s node", ErrUnsupportedValue, n.Kind())
	}
	return nil
}

// decodeXML reads an XML property list, keeping dictionary entries in
// document order.
func decodeXML(data []byte) (*Node, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, err
	}

	root := doc.Root()
	if root == nil || root.Tag != "plist" {
		return nil, fmt.Errorf("%w: missing plist element", ErrMalformedXML)
	}
	values := root.ChildElements()
	if len(values) != 1 {
		return nil, fmt.Errorf("%w: plist holds %d values", ErrMalformedXML, len(values))
	}
	return readElement(values[0])
}

func readElement(el *etree.Element) (*Node, error) {
	text := el.Text()

	switch el.Tag {
	case "string":
		return NewString(text), nil
	case "integer":
		return readInteger(strings.TrimSpace(text))
	case "real":
		v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: real %q", ErrMalformedXML, text)
		}
		return NewReal(v), nil
	case "true":
		return NewBool(true), nil
	case "false":
		return NewBool(false), nil
	case "date":
		t, err := time.Parse(time.RFC3339, strings.TrimSpace(text))
		if err != nil {
			return nil, fmt.Errorf("%w: date %q", ErrMalformedXML, text)
		}
		return NewDate(t), nil
	case "data":
		b, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(text), ""))
		if err != nil {
			return nil, fmt.Errorf("%w: data: %w", ErrMalformedXML, err)
		}
		return NewData(b), nil
	case "array":
		array := NewArray()
		for _, child := range el.ChildElements() {
			item, err := readElement(child)
			if err != nil {
				return nil, err
			}
			array.Append(item)
		}
		return array, nil
	case "dict":
		return readDict(el)
	}
	return nil, fmt.Errorf("%w: element <%s>", ErrUnsupportedValue, el.Tag)
}

// readDict reads alternating <key> and value elements.
func readDict(el *etree.Element) (*Node, error) {
	children := el.ChildElements()
	if len(children)%2 != 0 {
		return nil, fmt.Errorf("%w: dict with %d children", ErrMalformedXML, len(children))
	}

	dict := NewDict()
	for i := 0; i < len(children); i += 2 {
		key := children[i]
		if key.Tag != "key" {
			return nil, fmt.Errorf("%w: <%s> where <key> expected", ErrMalformedXML, key.Tag)
		}
		value, err := readElement(children[i+1])
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key.Text(), err)
		}
		dict.Set(key.Text(), value)
	}
	return dict, nil
}

// readInteger returns negative values as signed and the rest as unsigned.
// Hexadecimal and octal prefixes are accepted.
func readInteger(text string) (*Node, error) {
	if strings.HasPrefix(text, "-") {
		v, err := strconv.ParseInt(text, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: integer %q", ErrMalformedXML, text)
		}
		return NewInt(v), nil
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(text, "+"), 0, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: integer %q", ErrMalformedXML, text)
	}
	return NewUint(v), nil
}
