// Package binary provides low-level binary I/O operations for SPE file parsing and writing.
package binary

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// ErrShortRead is returned by Slice.Read when fewer bytes than requested
// could be read. The missing tail of the buffer is left zero-filled.
var ErrShortRead = errors.New("short read")

// order is the byte order of every multi-byte value in an SPE file.
var order = binary.LittleEndian

// Slice is a fixed window of bytes in a file: a file offset and a length.
// Read materializes the window; the typed accessors reinterpret bytes of the
// window by their offset relative to its start.
type Slice struct {
	offset int64
	length int
	buf    []byte
	filled int
}

// NewSlice creates an empty slice for length bytes starting at offset.
// Until Read is called every accessor returns zero values.
func NewSlice(offset int64, length int) *Slice {
	if length < 0 {
		length = 0
	}
	return &Slice{
		offset: offset,
		length: length,
		buf:    make([]byte, length),
	}
}

// Offset returns the file offset of the first byte of the slice.
func (s *Slice) Offset() int64 {
	return s.offset
}

// Len returns the length of the slice in bytes.
func (s *Slice) Len() int {
	return s.length
}

// Filled returns the number of bytes the last Read obtained from the file.
// Bytes at or beyond Filled are zero.
func (s *Slice) Filled() int {
	return s.filled
}

// Read reads the window from r, replacing any previous contents.
//
// The buffer is zeroed before reading. Bytes that were returned by r are
// kept even if the read was short; the remainder stays zero. The returned
// error describes the failure but never invalidates the buffer, so callers
// that only need best-effort values can ignore it.
func (s *Slice) Read(r io.ReaderAt) error {
	s.Reset()
	if s.length == 0 {
		return nil
	}
	if r == nil {
		return fmt.Errorf("reading %d bytes at 0x%04X: nil reader", s.length, s.offset)
	}
	if s.offset < 0 {
		return fmt.Errorf("reading %d bytes at %d: negative offset", s.length, s.offset)
	}

	n, err := r.ReadAt(s.buf, s.offset)
	if n > s.length {
		n = s.length
	}
	s.filled = n
	if n < s.length {
		// Some ReaderAt implementations return garbage past n on error.
		clear(s.buf[n:])
		if err == nil || errors.Is(err, io.EOF) {
			return fmt.Errorf("reading %d bytes at 0x%04X: got %d: %w", s.length, s.offset, n, ErrShortRead)
		}
		return fmt.Errorf("reading %d bytes at 0x%04X: %w", s.length, s.offset, err)
	}
	return nil
}

// Reset zero-fills the buffer.
func (s *Slice) Reset() {
	s.filled = 0
	if len(s.buf) != s.length {
		s.buf = make([]byte, s.length)
		return
	}
	clear(s.buf)
}

// Bytes returns a copy of n bytes at off. Requests that run past the end of
// the slice are truncated.
func (s *Slice) Bytes(off, n int) []byte {
	b := s.window(off, n)
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// Raw returns the underlying buffer. The caller must not retain it across
// calls to Read or Reset.
func (s *Slice) Raw() []byte {
	return s.buf
}

// Uint8 reads an unsigned 8-bit integer at off.
func (s *Slice) Uint8(off int) uint8 {
	b := s.window(off, 1)
	if len(b) < 1 {
		return 0
	}
	return b[0]
}

// Int8 reads a signed 8-bit integer at off.
func (s *Slice) Int8(off int) int8 {
	return int8(s.Uint8(off))
}

// Uint16 reads an unsigned 16-bit integer at off.
func (s *Slice) Uint16(off int) uint16 {
	b := s.window(off, 2)
	if len(b) < 2 {
		return 0
	}
	return order.Uint16(b)
}

// Int16 reads a signed 16-bit integer at off.
func (s *Slice) Int16(off int) int16 {
	return int16(s.Uint16(off))
}

// Uint32 reads an unsigned 32-bit integer at off.
func (s *Slice) Uint32(off int) uint32 {
	b := s.window(off, 4)
	if len(b) < 4 {
		return 0
	}
	return order.Uint32(b)
}

// Int32 reads a signed 32-bit integer at off.
func (s *Slice) Int32(off int) int32 {
	return int32(s.Uint32(off))
}

// Uint64 reads an unsigned 64-bit integer at off.
func (s *Slice) Uint64(off int) uint64 {
	b := s.window(off, 8)
	if len(b) < 8 {
		return 0
	}
	return order.Uint64(b)
}

// Float32 reads an IEEE-754 single precision value at off.
func (s *Slice) Float32(off int) float32 {
	return math.Float32frombits(s.Uint32(off))
}

// Float64 reads an IEEE-754 double precision value at off.
func (s *Slice) Float64(off int) float64 {
	return math.Float64frombits(s.Uint64(off))
}

// Int16s reads count consecutive signed 16-bit integers starting at off.
func (s *Slice) Int16s(off, count int) []int16 {
	out := make([]int16, count)
	for i := range out {
		out[i] = s.Int16(off + 2*i)
	}
	return out
}

// Float32s reads count consecutive float32 values starting at off.
func (s *Slice) Float32s(off, count int) []float32 {
	out := make([]float32, count)
	for i := range out {
		out[i] = s.Float32(off + 4*i)
	}
	return out
}

// Float64s reads count consecutive float64 values starting at off.
func (s *Slice) Float64s(off, count int) []float64 {
	out := make([]float64, count)
	for i := range out {
		out[i] = s.Float64(off + 8*i)
	}
	return out
}

// window returns buf[off:off+n] clipped to the buffer.
func (s *Slice) window(off, n int) []byte {
	if off < 0 || n <= 0 || off >= len(s.buf) {
		return nil
	}
	end := off + n
	if end > len(s.buf) {
		end = len(s.buf)
	}
	return s.buf[off:end]
}
