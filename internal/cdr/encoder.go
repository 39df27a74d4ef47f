package cdr

import (
	"encoding/binary"
	"math"
)

// Encoder builds a CDR buffer with the same alignment rules the Decoder
// expects. It always emits little-endian plain CDR, matching what common
// RMW implementations produce on little-endian hosts.
type Encoder struct {
	body []byte
}

// NewEncoder returns an empty encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Bytes returns the full serialized buffer including the encapsulation
// header.
func (e *Encoder) Bytes() []byte {
	out := make([]byte, 0, 4+len(e.body))
	out = append(out, 0x00, 0x01, 0x00, 0x00)
	return append(out, e.body...)
}

func (e *Encoder) align(n int) {
	for len(e.body)%n != 0 {
		e.body = append(e.body, 0)
	}
}

// PutUint8 appends one unsigned byte.
func (e *Encoder) PutUint8(v uint8) {
	e.body = append(e.body, v)
}

// PutInt8 appends one signed byte.
func (e *Encoder) PutInt8(v int8) {
	e.PutUint8(uint8(v))
}

// PutBool appends a boolean byte.
func (e *Encoder) PutBool(v bool) {
	if v {
		e.PutUint8(1)
	} else {
		e.PutUint8(0)
	}
}

// PutUint16 appends an aligned unsigned 16-bit integer.
func (e *Encoder) PutUint16(v uint16) {
	e.align(2)
	e.body = binary.LittleEndian.AppendUint16(e.body, v)
}

// PutInt16 appends an aligned signed 16-bit integer.
func (e *Encoder) PutInt16(v int16) {
	e.PutUint16(uint16(v))
}

// PutUint32 appends an aligned unsigned 32-bit integer.
func (e *Encoder) PutUint32(v uint32) {
	e.align(4)
	e.body = binary.LittleEndian.AppendUint32(e.body, v)
}

// PutInt32 appends an aligned signed 32-bit integer.
func (e *Encoder) PutInt32(v int32) {
	e.PutUint32(uint32(v))
}

// PutUint64 appends an aligned unsigned 64-bit integer.
func (e *Encoder) PutUint64(v uint64) {
	e.align(8)
	e.body = binary.LittleEndian.AppendUint64(e.body, v)
}

// PutInt64 appends an aligned signed 64-bit integer.
func (e *Encoder) PutInt64(v int64) {
	e.PutUint64(uint64(v))
}

// PutFloat32 appends an aligned IEEE 754 single.
func (e *Encoder) PutFloat32(v float32) {
	e.PutUint32(math.Float32bits(v))
}

// PutFloat64 appends an aligned IEEE 754 double.
func (e *Encoder) PutFloat64(v float64) {
	e.PutUint64(math.Float64bits(v))
}

// PutString appends a CDR string with its terminating NUL.
func (e *Encoder) PutString(s string) {
	e.PutUint32(uint32(len(s) + 1))
	e.body = append(e.body, s...)
	e.body = append(e.body, 0)
}
