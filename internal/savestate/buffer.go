// Package savestate provides small fixed-width encode/decode helpers shared
// by every component's SaveState/LoadState pair, so each component writes
// its registers in a fixed field order without hand-rolling a mirror struct
// per nested type. It is not itself the save-state container format (that
// lives in internal/nes); this package only serializes one component's
// scalar fields to and from a byte slice.
package savestate

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Writer accumulates fixed-width fields in order. The first encoding error
// is sticky; call Err or Bytes to check it once at the end instead of after
// every field.
type Writer struct {
	buf bytes.Buffer
	err error
}

func NewWriter() *Writer { return &Writer{} }

func (w *Writer) put(v any) {
	if w.err != nil {
		return
	}
	w.err = binary.Write(&w.buf, binary.LittleEndian, v)
}

func (w *Writer) U8(v uint8)   { w.put(v) }
func (w *Writer) U16(v uint16) { w.put(v) }
func (w *Writer) U32(v uint32) { w.put(v) }
func (w *Writer) U64(v uint64) { w.put(v) }
func (w *Writer) I32(v int32)  { w.put(v) }
func (w *Writer) F32(v float32) { w.put(v) }
func (w *Writer) F64(v float64) { w.put(v) }
func (w *Writer) Bytes8(b []uint8) {
	if w.err != nil {
		return
	}
	w.err = binary.Write(&w.buf, binary.LittleEndian, b)
}
func (w *Writer) Bool(v bool) {
	if v {
		w.U8(1)
	} else {
		w.U8(0)
	}
}

// Bytes returns the accumulated bytes, or an error if any Put failed.
func (w *Writer) Bytes() ([]byte, error) {
	if w.err != nil {
		return nil, fmt.Errorf("savestate: encode: %w", w.err)
	}
	return w.buf.Bytes(), nil
}

// Reader decodes fields written by a Writer in the same order.
type Reader struct {
	r   *bytes.Reader
	err error
}

func NewReader(data []byte) *Reader {
	return &Reader{r: bytes.NewReader(data)}
}

func (r *Reader) get(v any) {
	if r.err != nil {
		return
	}
	r.err = binary.Read(r.r, binary.LittleEndian, v)
}

func (r *Reader) U8() uint8 {
	var v uint8
	r.get(&v)
	return v
}
func (r *Reader) U16() uint16 {
	var v uint16
	r.get(&v)
	return v
}
func (r *Reader) U32() uint32 {
	var v uint32
	r.get(&v)
	return v
}
func (r *Reader) U64() uint64 {
	var v uint64
	r.get(&v)
	return v
}
func (r *Reader) I32() int32 {
	var v int32
	r.get(&v)
	return v
}
func (r *Reader) F32() float32 {
	var v float32
	r.get(&v)
	return v
}
func (r *Reader) F64() float64 {
	var v float64
	r.get(&v)
	return v
}
func (r *Reader) Bytes8(n int) []uint8 {
	b := make([]uint8, n)
	if r.err != nil {
		return b
	}
	r.err = binary.Read(r.r, binary.LittleEndian, b)
	return b
}
func (r *Reader) Bool() bool {
	return r.U8() != 0
}

// Err reports the first decode error encountered, if any.
func (r *Reader) Err() error {
	if r.err != nil {
		return fmt.Errorf("savestate: decode: %w", r.err)
	}
	return nil
}
