// Package bytereader provides the position-tracked cursor the decoder reads
// instruction bytes through. It mirrors the dispatch-loop idiom of reading a
// byte at a time and checking the remaining length before every multi-byte
// pull, rather than leaning on encoding/binary and a bytes.Reader.
package bytereader

import "github.com/keurnel/x86codec/architecture/x86_64"

// Reader is a position-tracked cursor over an instruction byte stream. It
// never copies the underlying slice; reads advance the cursor, SetOffset
// moves it to any position, and PeekAt accepts negative distances to look
// at bytes already read. Offset reports how
// many bytes have been consumed so far, which the decoder uses both for
// error reporting and to compute Instruction.Length.
type Reader struct {
	data   []byte
	offset int
}

// New wraps data for sequential reading starting at offset 0.
func New(data []byte) *Reader {
	return &Reader{data: data}
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int {
	return r.offset
}

// SetOffset repositions the cursor. Out-of-range positions are clamped to
// the slab's bounds; the next read past the end still fails with
// ErrInsufficientBytes, so callers probing a truncated stream see the same
// error they would from sequential reads.
func (r *Reader) SetOffset(offset int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(r.data) {
		offset = len(r.data)
	}
	r.offset = offset
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.offset
}

// Peek returns the next byte without advancing the cursor. The second
// return value is false when no bytes remain.
func (r *Reader) Peek() (byte, bool) {
	if r.Remaining() < 1 {
		return 0, false
	}
	return r.data[r.offset], true
}

// PeekAt returns the byte `ahead` positions past the cursor without
// advancing it, used to look past a prefix byte before committing to
// consuming it.
func (r *Reader) PeekAt(ahead int) (byte, bool) {
	idx := r.offset + ahead
	if idx < 0 || idx >= len(r.data) {
		return 0, false
	}
	return r.data[idx], true
}

// ReadByte consumes and returns one byte, wrapping
// x86_64.ErrInsufficientBytes when the stream is exhausted.
func (r *Reader) ReadByte() (byte, error) {
	if r.Remaining() < 1 {
		return 0, x86_64.ErrInsufficientBytes
	}
	b := r.data[r.offset]
	r.offset++
	return b, nil
}

// ReadBytes consumes and returns the next n bytes as a new slice.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if r.Remaining() < n {
		return nil, x86_64.ErrInsufficientBytes
	}
	out := make([]byte, n)
	copy(out, r.data[r.offset:r.offset+n])
	r.offset += n
	return out, nil
}

// ReadUint16 consumes two bytes as a little-endian value.
func (r *Reader) ReadUint16() (uint16, error) {
	if r.Remaining() < 2 {
		return 0, x86_64.ErrInsufficientBytes
	}
	v := uint16(r.data[r.offset]) | uint16(r.data[r.offset+1])<<8
	r.offset += 2
	return v, nil
}

// ReadUint32 consumes four bytes as a little-endian value.
func (r *Reader) ReadUint32() (uint32, error) {
	if r.Remaining() < 4 {
		return 0, x86_64.ErrInsufficientBytes
	}
	var v uint32
	for i := 3; i >= 0; i-- {
		v = v<<8 | uint32(r.data[r.offset+i])
	}
	r.offset += 4
	return v, nil
}

// ReadUint64 consumes eight bytes as a little-endian value.
func (r *Reader) ReadUint64() (uint64, error) {
	if r.Remaining() < 8 {
		return 0, x86_64.ErrInsufficientBytes
	}
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(r.data[r.offset+i])
	}
	r.offset += 8
	return v, nil
}
