// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package message models the property-list trees exchanged with the device
// over MobileSync and converts them to and from their wire (binary plist)
// and markup (XML plist) representations.
//
// A [Node] is an ordered, heterogeneous tree. Arrays keep element order and
// dictionaries keep insertion order of their keys. [Unmarshal] reads binary
// and XML property lists in document order, so a message decoded from the
// device and re-encoded as markup preserves the device's ordering.
// [MarshalBinary] writes dictionary keys sorted.
package message

import (
	"time"
)

// Kind is the type of value held by a [Node].
type Kind uint8

const (
	KindInvalid Kind = iota
	KindString
	KindUint
	KindInt
	KindReal
	KindBool
	KindDate
	KindData
	KindDict
	KindArray
)

var kindNames = map[Kind]string{
	KindInvalid: "invalid",
	KindString:  "string",
	KindUint:    "uint",
	KindInt:     "int",
	KindReal:    "real",
	KindBool:    "bool",
	KindDate:    "date",
	KindData:    "data",
	KindDict:    "dict",
	KindArray:   "array",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Entry is a single key/value pair of a dictionary node.
type Entry struct {
	Key   string
	Value *Node
}

// Node is one value of a structured message tree.
type Node struct {
	kind Kind

	str   string
	u64   uint64
	i64   int64
	f64   float64
	flag  bool
	stamp time.Time
	blob  []byte

	entries []Entry
	items   []*Node
}

// NewString returns a string leaf.
func NewString(s string) *Node { return &Node{kind: KindString, str: s} }

// NewUint returns an unsigned integer leaf.
func NewUint(v uint64) *Node { return &Node{kind: KindUint, u64: v} }

// NewInt returns a signed integer leaf.
func NewInt(v int64) *Node { return &Node{kind: KindInt, i64: v} }

// NewReal returns a floating point leaf.
func NewReal(v float64) *Node { return &Node{kind: KindReal, f64: v} }

// NewBool returns a boolean leaf.
func NewBool(v bool) *Node { return &Node{kind: KindBool, flag: v} }

// NewDate returns a date leaf, normalized to UTC.
func NewDate(t time.Time) *Node { return &Node{kind: KindDate, stamp: t.UTC()} }

// NewData returns a binary data leaf. The slice is copied.
func NewData(b []byte) *Node {
	return &Node{kind: KindData, blob: append([]byte(nil), b...)}
}

// NewArray returns an array holding items in order.
func NewArray(items ...*Node) *Node {
	return &Node{kind: KindArray, items: append([]*Node(nil), items...)}
}

// NewDict returns a dictionary holding entries in order.
func NewDict(entries ...Entry) *Node {
	return &Node{kind: KindDict, entries: append([]Entry(nil), entries...)}
}

// Kind returns the kind of n, or KindInvalid for a nil node.
func (n *Node) Kind() Kind {
	if n == nil {
		return KindInvalid
	}
	return n.kind
}

// StringValue returns the value of a string leaf.
func (n *Node) StringValue() (string, bool) {
	if n.Kind() != KindString {
		return "", false
	}
	return n.str, true
}

// UintValue returns the value of an unsigned integer leaf. Non-negative
// signed integers are accepted as well.
func (n *Node) UintValue() (uint64, bool) {
	switch n.Kind() {
	case KindUint:
		return n.u64, true
	case KindInt:
		if n.i64 >= 0 {
			return uint64(n.i64), true
		}
	}
	return 0, false
}

// IntValue returns the value of a signed integer leaf.
func (n *Node) IntValue() (int64, bool) {
	if n.Kind() != KindInt {
		return 0, false
	}
	return n.i64, true
}

// RealValue returns the value of a floating point leaf.
func (n *Node) RealValue() (float64, bool) {
	if n.Kind() != KindReal {
		return 0, false
	}
	return n.f64, true
}

// BoolValue returns the value of a boolean leaf.
func (n *Node) BoolValue() (bool, bool) {
	if n.Kind() != KindBool {
		return false, false
	}
	return n.flag, true
}

// DateValue returns the value of a date leaf.
func (n *Node) DateValue() (time.Time, bool) {
	if n.Kind() != KindDate {
		return time.Time{}, false
	}
	return n.stamp, true
}

// DataValue returns the value of a binary data leaf.
func (n *Node) DataValue() ([]byte, bool) {
	if n.Kind() != KindData {
		return nil, false
	}
	return n.blob, true
}

// Len returns the number of children of an array or dictionary.
func (n *Node) Len() int {
	switch n.Kind() {
	case KindArray:
		return len(n.items)
	case KindDict:
		return len(n.entries)
	}
	return 0
}

// Items returns the elements of an array node.
func (n *Node) Items() []*Node {
	if n.Kind() != KindArray {
		return nil
	}
	return n.items
}

// Entries returns the key/value pairs of a dictionary node.
func (n *Node) Entries() []Entry {
	if n.Kind() != KindDict {
		return nil
	}
	return n.entries
}

// At returns the i-th element of an array node.
func (n *Node) At(i int) (*Node, bool) {
	if n.Kind() != KindArray || i < 0 || i >= len(n.items) {
		return nil, false
	}
	return n.items[i], true
}

// Lookup returns the value stored under key in a dictionary node.
func (n *Node) Lookup(key string) (*Node, bool) {
	for _, e := range n.Entries() {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Append adds items to the end of an array node. It is a no-op for other kinds.
func (n *Node) Append(items ...*Node) {
	if n.Kind() != KindArray {
		return
	}
	n.items = append(n.items, items...)
}

// Set stores value under key in a dictionary node, replacing an existing
// entry in place or appending a new one.
func (n *Node) Set(key string, value *Node) {
	if n.Kind() != KindDict {
		return
	}
	for i := range n.entries {
		if n.entries[i].Key == key {
			n.entries[i].Value = value
			return
		}
	}
	n.entries = append(n.entries, Entry{Key: key, Value: value})
}

// children returns the child values of a container in order.
func (n *Node) children() []*Node {
	switch n.Kind() {
	case KindArray:
		return n.items
	case KindDict:
		values := make([]*Node, len(n.entries))
		for i, e := range n.entries {
			values[i] = e.Value
		}
		return values
	}
	return nil
}
