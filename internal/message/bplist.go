package message

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"
	"unicode/utf16"
)

// Binary property list layout: "bplist0x" magic, the object table, an
// offset table indexed by object reference and a 32-byte trailer.
const (
	bplistMagic       = "bplist0"
	bplistTrailerSize = 32
)

// appleEpoch is the zero point of binary property list dates.
var appleEpoch = time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)

// ErrMalformedBinary is returned when a binary property list does not
// follow the bplist00 layout.
var ErrMalformedBinary = errors.New("malformed binary property list")

// bplistReader walks the object table of a binary property list. Unlike a
// generic plist decoder it keeps dictionary entries in the order the
// writer stored their keys.
type bplistReader struct {
	buf         []byte
	offsetSize  int
	refSize     int
	numObjects  uint64
	tableOffset uint64

	// containers being decoded, to reject self-referencing collections
	open map[uint64]bool
}

func decodeBinary(data []byte) (*Node, error) {
	if len(data) < len(bplistMagic)+1+bplistTrailerSize || string(data[:len(bplistMagic)]) != bplistMagic {
		return nil, fmt.Errorf("%w: bad header", ErrMalformedBinary)
	}

	trailer := data[len(data)-bplistTrailerSize:]
	r := &bplistReader{
		buf:         data,
		offsetSize:  int(trailer[6]),
		refSize:     int(trailer[7]),
		numObjects:  binary.BigEndian.Uint64(trailer[8:]),
		tableOffset: binary.BigEndian.Uint64(trailer[24:]),
		open:        make(map[uint64]bool),
	}
	top := binary.BigEndian.Uint64(trailer[16:])

	objectsEnd := uint64(len(data) - bplistTrailerSize)
	switch {
	case r.offsetSize < 1 || r.offsetSize > 8 || r.refSize < 1 || r.refSize > 8:
		return nil, fmt.Errorf("%w: integer sizes %d/%d", ErrMalformedBinary, r.offsetSize, r.refSize)
	case r.tableOffset < uint64(len(bplistMagic)+1) || r.tableOffset > objectsEnd:
		return nil, fmt.Errorf("%w: offset table at %d", ErrMalformedBinary, r.tableOffset)
	case r.numObjects > (objectsEnd-r.tableOffset)/uint64(r.offsetSize):
		return nil, fmt.Errorf("%w: %d objects do not fit the offset table", ErrMalformedBinary, r.numObjects)
	case top >= r.numObjects:
		return nil, fmt.Errorf("%w: top object %d out of range", ErrMalformedBinary, top)
	}

	return r.object(top)
}

// uintAt reads a big-endian unsigned integer of size bytes at off.
func (r *bplistReader) uintAt(off uint64, size int) (uint64, error) {
	if size < 1 || size > 8 || off > uint64(len(r.buf)) || uint64(size) > uint64(len(r.buf))-off {
		return 0, fmt.Errorf("%w: %d-byte integer at %d", ErrMalformedBinary, size, off)
	}
	var v uint64
	for _, b := range r.buf[off : off+uint64(size)] {
		v = v<<8 | uint64(b)
	}
	return v, nil
}

// span returns n bytes at start, which must lie inside the object table.
func (r *bplistReader) span(start, n uint64) ([]byte, error) {
	if start > r.tableOffset || n > r.tableOffset-start {
		return nil, fmt.Errorf("%w: %d bytes at %d overrun the object table", ErrMalformedBinary, n, start)
	}
	return r.buf[start : start+n], nil
}

func (r *bplistReader) object(ref uint64) (*Node, error) {
	if ref >= r.numObjects {
		return nil, fmt.Errorf("%w: object %d out of range", ErrMalformedBinary, ref)
	}
	off, err := r.uintAt(r.tableOffset+ref*uint64(r.offsetSize), r.offsetSize)
	if err != nil {
		return nil, err
	}
	if off >= r.tableOffset {
		return nil, fmt.Errorf("%w: object %d starts past the object table", ErrMalformedBinary, ref)
	}

	marker := r.buf[off]
	info := marker & 0x0F

	switch marker & 0xF0 {
	case 0x00:
		switch marker {
		case 0x08:
			return NewBool(false), nil
		case 0x09:
			return NewBool(true), nil
		}
	case 0x10:
		return r.integer(off+1, 1<<info)
	case 0x20:
		return r.real(off+1, 1<<info)
	case 0x30:
		if marker == 0x33 {
			bits, err := r.uintAt(off+1, 8)
			if err != nil {
				return nil, err
			}
			whole, frac := math.Modf(math.Float64frombits(bits))
			return NewDate(appleEpoch.Add(time.Duration(whole)*time.Second + time.Duration(frac*float64(time.Second)))), nil
		}
	case 0x40:
		b, err := r.counted(off, 1)
		if err != nil {
			return nil, err
		}
		return NewData(b), nil
	case 0x50:
		b, err := r.counted(off, 1)
		if err != nil {
			return nil, err
		}
		return NewString(string(b)), nil
	case 0x60:
		b, err := r.counted(off, 2)
		if err != nil {
			return nil, err
		}
		units := make([]uint16, len(b)/2)
		for i := range units {
			units[i] = binary.BigEndian.Uint16(b[2*i:])
		}
		return NewString(string(utf16.Decode(units))), nil
	case 0x80:
		uid, err := r.uintAt(off+1, int(info)+1)
		if err != nil {
			return nil, err
		}
		return NewUint(uid), nil
	case 0xA0:
		return r.container(ref, off, false)
	case 0xD0:
		return r.container(ref, off, true)
	}
	return nil, fmt.Errorf("%w: marker 0x%02x", ErrUnsupportedValue, marker)
}

// integer decodes 1, 2 and 4-byte integers as unsigned, 8-byte integers as
// signed when the top bit is set and 16-byte integers that fit 64 bits.
func (r *bplistReader) integer(off uint64, size int) (*Node, error) {
	switch size {
	case 1, 2, 4:
		v, err := r.uintAt(off, size)
		if err != nil {
			return nil, err
		}
		return NewUint(v), nil
	case 8:
		v, err := r.uintAt(off, 8)
		if err != nil {
			return nil, err
		}
		if v&(1<<63) != 0 {
			return NewInt(int64(v)), nil
		}
		return NewUint(v), nil
	case 16:
		hi, err := r.uintAt(off, 8)
		if err != nil {
			return nil, err
		}
		lo, err := r.uintAt(off+8, 8)
		if err != nil {
			return nil, err
		}
		switch hi {
		case 0:
			return NewUint(lo), nil
		case math.MaxUint64:
			return NewInt(int64(lo)), nil
		}
		return nil, fmt.Errorf("%w: 128-bit integer out of range", ErrUnsupportedValue)
	}
	return nil, fmt.Errorf("%w: %d-byte integer", ErrMalformedBinary, size)
}

func (r *bplistReader) real(off uint64, size int) (*Node, error) {
	switch size {
	case 4:
		bits, err := r.uintAt(off, 4)
		if err != nil {
			return nil, err
		}
		return NewReal(float64(math.Float32frombits(uint32(bits)))), nil
	case 8:
		bits, err := r.uintAt(off, 8)
		if err != nil {
			return nil, err
		}
		return NewReal(math.Float64frombits(bits)), nil
	}
	return nil, fmt.Errorf("%w: %d-byte real", ErrMalformedBinary, size)
}

// count returns the element count of the object at off and where its
// payload starts. Counts of 15 and more follow the marker as an integer.
func (r *bplistReader) count(off uint64) (n, start uint64, err error) {
	if info := r.buf[off] & 0x0F; info != 0x0F {
		return uint64(info), off + 1, nil
	}
	if off+1 >= r.tableOffset || r.buf[off+1]&0xF0 != 0x10 {
		return 0, 0, fmt.Errorf("%w: bad count at %d", ErrMalformedBinary, off)
	}
	size := 1 << (r.buf[off+1] & 0x0F)
	n, err = r.uintAt(off+2, size)
	if err != nil {
		return 0, 0, err
	}
	return n, off + 2 + uint64(size), nil
}

// counted returns the payload of a data or string object whose elements are
// unit bytes wide.
func (r *bplistReader) counted(off uint64, unit uint64) ([]byte, error) {
	n, start, err := r.count(off)
	if err != nil {
		return nil, err
	}
	if n > r.tableOffset/unit {
		return nil, fmt.Errorf("%w: length %d at %d", ErrMalformedBinary, n, off)
	}
	return r.span(start, n*unit)
}

// container decodes an array, or a dictionary stored as all key references
// followed by all value references.
func (r *bplistReader) container(ref, off uint64, dict bool) (*Node, error) {
	if r.open[ref] {
		return nil, fmt.Errorf("%w: object %d contains itself", ErrMalformedBinary, ref)
	}
	r.open[ref] = true
	defer delete(r.open, ref)

	n, start, err := r.count(off)
	if err != nil {
		return nil, err
	}
	refs := n
	if dict {
		refs = 2 * n
	}
	if n > r.tableOffset || refs > r.tableOffset/uint64(r.refSize) {
		return nil, fmt.Errorf("%w: %d references at %d", ErrMalformedBinary, refs, off)
	}
	if _, err = r.span(start, refs*uint64(r.refSize)); err != nil {
		return nil, err
	}

	child := func(i uint64) (*Node, error) {
		childRef, err := r.uintAt(start+i*uint64(r.refSize), r.refSize)
		if err != nil {
			return nil, err
		}
		return r.object(childRef)
	}

	if !dict {
		array := NewArray()
		for i := uint64(0); i < n; i++ {
			item, err := child(i)
			if err != nil {
				return nil, err
			}
			array.Append(item)
		}
		return array, nil
	}

	result := NewDict()
	for i := uint64(0); i < n; i++ {
		key, err := child(i)
		if err != nil {
			return nil, err
		}
		name, ok := key.StringValue()
		if !ok {
			return nil, fmt.Errorf("%w: dictionary key of kind %s", ErrMalformedBinary, key.Kind())
		}
		value, err := child(n + i)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", name, err)
		}
		result.Set(name, value)
	}
	return result, nil
}
