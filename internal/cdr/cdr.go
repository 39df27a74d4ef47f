// Package cdr decodes OMG CDR-encoded payloads as produced by ROS 2 RMW
// implementations.
//
// A serialized ROS 2 message starts with a 4-byte encapsulation header
// identifying the byte order, followed by the message body. Primitive values
// in the body are aligned to their own size, counted from the start of the
// body. Strings are a uint32 length (including the terminating NUL) followed
// by the bytes.
//
// Only the subset needed by the builtin converters is implemented: plain CDR
// in either byte order, primitives, and strings. Parameter-list (PL_CDR)
// encapsulations are rejected.
package cdr

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Decoding errors.
var (
	// ErrShortBuffer is returned when the buffer ends before the value.
	ErrShortBuffer = errors.New("cdr: short buffer")

	// ErrEncapsulation is returned for a missing or unsupported
	// encapsulation header.
	ErrEncapsulation = errors.New("cdr: bad encapsulation")
)

// Representation identifiers from the encapsulation header.
const (
	reprCDRBigEndian    = 0x0000
	reprCDRLittleEndian = 0x0001
)

// Decoder reads primitive values sequentially from a CDR buffer.
// It is not safe for concurrent use; create one per message.
type Decoder struct {
	body  []byte
	off   int
	order binary.ByteOrder
}

// NewDecoder parses the encapsulation header and returns a decoder
// positioned at the start of the message body.
func NewDecoder(buf []byte) (*Decoder, error) {
	if len(buf) < 4 {
		return nil, fmt.Errorf("%w: %d byte header", ErrEncapsulation, len(buf))
	}
	repr := binary.BigEndian.Uint16(buf[:2])
	var order binary.ByteOrder
	switch repr {
	case reprCDRBigEndian:
		order = binary.BigEndian
	case reprCDRLittleEndian:
		order = binary.LittleEndian
	default:
		return nil, fmt.Errorf("%w: representation 0x%04x", ErrEncapsulation, repr)
	}
	// buf[2:4] are encapsulation options, currently always zero; ignored.
	return &Decoder{body: buf[4:], order: order}, nil
}

// align advances the offset to the next multiple of n.
func (d *Decoder) align(n int) {
	if rem := d.off % n; rem != 0 {
		d.off += n - rem
	}
}

// take aligns to n and returns the next n bytes of the body.
func (d *Decoder) take(n int) ([]byte, error) {
	d.align(n)
	if d.off+n > len(d.body) {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d of %d", ErrShortBuffer, n, d.off, len(d.body))
	}
	b := d.body[d.off : d.off+n]
	d.off += n
	return b, nil
}

// Uint8 reads one unsigned byte.
func (d *Decoder) Uint8() (uint8, error) {
	b, err := d.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Int8 reads one signed byte.
func (d *Decoder) Int8() (int8, error) {
	v, err := d.Uint8()
	return int8(v), err
}

// Bool reads one byte as a boolean; any non-zero value is true.
func (d *Decoder) Bool() (bool, error) {
	v, err := d.Uint8()
	return v != 0, err
}

// Uint16 reads an aligned unsigned 16-bit integer.
func (d *Decoder) Uint16() (uint16, error) {
	b, err := d.take(2)
	if err != nil {
		return 0, err
	}
	return d.order.Uint16(b), nil
}

// Int16 reads an aligned signed 16-bit integer.
func (d *Decoder) Int16() (int16, error) {
	v, err := d.Uint16()
	return int16(v), err
}

// Uint32 reads an aligned unsigned 32-bit integer.
func (d *Decoder) Uint32() (uint32, error) {
	b, err := d.take(4)
	if err != nil {
		return 0, err
	}
	return d.order.Uint32(b), nil
}

// Int32 reads an aligned signed 32-bit integer.
func (d *Decoder) Int32() (int32, error) {
	v, err := d.Uint32()
	return int32(v), err
}

// Uint64 reads an aligned unsigned 64-bit integer.
func (d *Decoder) Uint64() (uint64, error) {
	b, err := d.take(8)
	if err != nil {
		return 0, err
	}
	return d.order.Uint64(b), nil
}

// Int64 reads an aligned signed 64-bit integer.
func (d *Decoder) Int64() (int64, error) {
	v, err := d.Uint64()
	return int64(v), err
}

// Float32 reads an aligned IEEE 754 single.
func (d *Decoder) Float32() (float32, error) {
	v, err := d.Uint32()
	return math.Float32frombits(v), err
}

// Float64 reads an aligned IEEE 754 double.
func (d *Decoder) Float64() (float64, error) {
	v, err := d.Uint64()
	return math.Float64frombits(v), err
}

// String reads a CDR string: uint32 length including the terminating NUL,
// followed by the bytes.
func (d *Decoder) String() (string, error) {
	n, err := d.Uint32()
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", nil
	}
	b := d.body
	if d.off+int(n) > len(b) {
		return "", fmt.Errorf("%w: string of %d bytes at offset %d of %d", ErrShortBuffer, n, d.off, len(b))
	}
	s := b[d.off : d.off+int(n)]
	d.off += int(n)
	if s[len(s)-1] == 0 {
		s = s[:len(s)-1]
	}
	return string(s), nil
}

// Remaining returns the number of unread bytes in the body.
func (d *Decoder) Remaining() int {
	return len(d.body) - d.off
}
