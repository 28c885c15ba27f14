package message

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"time"

	"howett.net/plist"
)

// ErrUnsupportedValue is returned when a decoded property list holds a value
// that has no [Node] representation.
var ErrUnsupportedValue = errors.New("unsupported property list value")

// MarshalBinary encodes n as a binary property list, the MobileSync wire
// format. Dictionary keys are written sorted.
func MarshalBinary(n *Node) ([]byte, error) {
	if n == nil {
		return nil, errors.New("marshal binary: nil node")
	}

	data, err := plist.Marshal(toValue(n), plist.BinaryFormat)
	if err != nil {
		return nil, fmt.Errorf("marshal binary plist: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a property list in any of the supported encodings
// (binary, XML, OpenStep) into a [Node] tree. Binary and XML dictionaries
// keep the key order of the encoded document. OpenStep text has no
// reliable order and its dictionary keys are sorted.
func Unmarshal(data []byte) (*Node, error) {
	var (
		n   *Node
		err error
	)
	switch {
	case bytes.HasPrefix(data, []byte(bplistMagic)):
		n, err = decodeBinary(data)
	case bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n\ufeff"), []byte("<")):
		n, err = decodeXML(data)
	default:
		n, err = decodeText(data)
	}
	if err != nil {
		return nil, fmt.Errorf("unmarshal plist: %w", err)
	}
	return n, nil
}

func decodeText(data []byte) (*Node, error) {
	var v any
	if _, err := plist.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return fromValue(v)
}

// toValue converts n into the generic values understood by the plist encoder.
func toValue(n *Node) any {
	switch n.Kind() {
	case KindString:
		return n.str
	case KindUint:
		return n.u64
	case KindInt:
		return n.i64
	case KindReal:
		return n.f64
	case KindBool:
		return n.flag
	case KindDate:
		return n.stamp
	case KindData:
		return n.blob
	case KindArray:
		values := make([]any, len(n.items))
		for i, item := range n.items {
			values[i] = toValue(item)
		}
		return values
	case KindDict:
		values := make(map[string]any, len(n.entries))
		for _, e := range n.entries {
			values[e.Key] = toValue(e.Value)
		}
		return values
	}
	return ""
}

func fromValue(v any) (*Node, error) {
	switch value := v.(type) {
	case string:
		return NewString(value), nil
	case uint64:
		return NewUint(value), nil
	case int64:
		return NewInt(value), nil
	case float64:
		return NewReal(value), nil
	case float32:
		return NewReal(float64(value)), nil
	case bool:
		return NewBool(value), nil
	case time.Time:
		return NewDate(value), nil
	case []byte:
		return NewData(value), nil
	case plist.UID:
		return NewUint(uint64(value)), nil
	case []any:
		array := NewArray()
		for _, item := range value {
			child, err := fromValue(item)
			if err != nil {
				return nil, err
			}
			array.Append(child)
		}
		return array, nil
	case map[string]any:
		keys := make([]string, 0, len(value))
		for key := range value {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		dict := NewDict()
		for _, key := range keys {
			child, err := fromValue(value[key])
			if err != nil {
				return nil, err
			}
			dict.Set(key, child)
		}
		return dict, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
}
