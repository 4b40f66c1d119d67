package spe

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/robert-malhotra/go-spe/internal/binary"
	"github.com/robert-malhotra/go-spe/internal/dtype"
	"github.com/robert-malhotra/go-spe/internal/header"
)

// Frame is a two-dimensional grid of pixel values stored in row-major
// order: the value at (row, col) is Pix[row*Cols+col].
type Frame struct {
	Rows int
	Cols int
	Pix  []float64
}

// NewFrame returns a zero-filled frame of the given shape.
func NewFrame(rows, cols int) *Frame {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	return &Frame{
		Rows: rows,
		Cols: cols,
		Pix:  make([]float64, rows*cols),
	}
}

// At returns the value at (row, col), or 0 outside the frame.
func (fr *Frame) At(row, col int) float64 {
	if !fr.in(row, col) {
		return 0
	}
	return fr.Pix[row*fr.Cols+col]
}

// Set stores v at (row, col). Positions outside the frame are ignored.
func (fr *Frame) Set(row, col int, v float64) {
	if fr.in(row, col) {
		fr.Pix[row*fr.Cols+col] = v
	}
}

// Row returns row i as a sub-slice of Pix.
func (fr *Frame) Row(i int) []float64 {
	if i < 0 || i >= fr.Rows {
		return nil
	}
	return fr.Pix[i*fr.Cols : (i+1)*fr.Cols]
}

func (fr *Frame) in(row, col int) bool {
	return row >= 0 && row < fr.Rows && col >= 0 && col < fr.Cols
}

func (fr *Frame) add(o *Frame) {
	for i := range fr.Pix {
		fr.Pix[i] += o.Pix[i]
	}
}

func (fr *Frame) div(n float64) {
	for i := range fr.Pix {
		fr.Pix[i] /= n
	}
}

// WriteText writes the frame as text: one line per row, values separated by
// single spaces in the shortest representation that round-trips.
func (fr *Frame) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)
	var num []byte
	for r := 0; r < fr.Rows; r++ {
		for c, v := range fr.Row(r) {
			if c > 0 {
				bw.WriteByte(' ')
			}
			num = strconv.AppendFloat(num[:0], v, 'g', -1, 64)
			bw.Write(num)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Pixel returns the value of one pixel widened to float64.
//
// The value is read from DataStart + width*(xdim*ydim*frame + xdim*row + col)
// with no bounds checking against the header, so an index past the end of
// the file reads as 0. An unrecognized datatype reads as 0. WithStrict turns
// both cases into errors.
func (f *File) Pixel(row, col, frame int) (float64, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.closed {
		return 0, ErrClosed
	}

	m := f.meta
	dt := m.Datatype()
	if !dt.Valid() {
		if f.opts.strict {
			return 0, fmt.Errorf("datatype %d: %w", int16(dt), ErrUnknownDatatype)
		}
		return 0, nil
	}
	rows, cols, frames := int(m.YDim()), int(m.XDim()), int(m.NumFrames())
	if f.opts.strict && (row < 0 || row >= rows || col < 0 || col >= cols || frame < 0 || frame >= frames) {
		return 0, fmt.Errorf("pixel (%d, %d) of frame %d in %d frames of %dx%d: %w",
			row, col, frame, frames, rows, cols, ErrOutOfRange)
	}

	index := int64(cols)*int64(rows)*int64(frame) + int64(cols)*int64(row) + int64(col)
	s := binary.NewSlice(header.DataStart+int64(dt.Size())*index, dt.Size())
	if err := s.Read(f.file); err != nil {
		if f.opts.strict {
			return 0, fmt.Errorf("pixel (%d, %d) of frame %d: %w: %w", row, col, frame, ErrTruncated, err)
		}
		f.opts.logger.Debug("short pixel read", "path", f.path, "row", row, "col", col, "frame", frame, "error", err)
	}
	return dtype.Value(dt, s.Raw()), nil
}

// Frame returns frame i as a grid of ydim rows and xdim columns.
//
// Pixels past the end of the file read as 0, and an unrecognized datatype
// yields a zero grid of the declared shape. WithStrict turns both cases,
// and an index outside [0, NumFrames), into errors.
//
// The grid is always allocated at the declared shape, up to 65535x65535
// pixels, even when the file is far too small to hold it. A file that is not
// really SPE can therefore ask for tens of gigabytes; open such files with
// WithStrict, which rejects them before any frame is read. In the default
// mode a Warn is logged when the declared frame has more pixels than the
// file has bytes.
func (f *File) Frame(i int) (*Frame, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.closed {
		return nil, ErrClosed
	}
	f.warnOversized()
	return f.readFrame(i)
}

// AverageFrame returns the element-wise mean of frames [0, NumFrames).
// It returns ErrNoFrames when the header declares no frames.
func (f *File) AverageFrame() (*Frame, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.closed {
		return nil, ErrClosed
	}

	n := int(f.meta.NumFrames())
	if n <= 0 {
		return nil, fmt.Errorf("averaging %s: %w", f.path, ErrNoFrames)
	}

	f.warnOversized()
	sum := NewFrame(int(f.meta.YDim()), int(f.meta.XDim()))
	for i := 0; i < n; i++ {
		fr, err := f.readFrame(i)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		sum.add(fr)
	}
	sum.div(float64(n))
	return sum, nil
}

// readFrame reads frame i. f.mu must be held.
func (f *File) readFrame(i int) (*Frame, error) {
	m := f.meta
	fr := NewFrame(int(m.YDim()), int(m.XDim()))

	dt := m.Datatype()
	if !dt.Valid() {
		if f.opts.strict {
			return nil, fmt.Errorf("datatype %d: %w", int16(dt), ErrUnknownDatatype)
		}
		f.opts.logger.Warn("unknown pixel datatype, returning zero frame", "path", f.path, "datatype", int16(dt))
		return fr, nil
	}
	if f.opts.strict && (i < 0 || i >= int(m.NumFrames())) {
		return nil, fmt.Errorf("frame %d of %d: %w", i, m.NumFrames(), ErrOutOfRange)
	}

	frameBytes := m.FrameBytes()
	offset := header.DataStart + frameBytes*int64(i)
	length, err := f.available(offset, frameBytes)
	if err != nil {
		return nil, err
	}

	s := binary.NewSlice(offset, int(length))
	if err := s.Read(f.file); err != nil {
		if f.opts.strict {
			return nil, fmt.Errorf("frame %d: %w: %w", i, ErrTruncated, err)
		}
		f.opts.logger.Debug("short frame read", "path", f.path, "frame", i, "error", err)
	}
	if length < frameBytes {
		if f.opts.strict {
			return nil, fmt.Errorf("frame %d: %d of %d bytes present: %w", i, length, frameBytes, ErrTruncated)
		}
		f.opts.logger.Debug("frame extends past end of file", "path", f.path, "frame", i, "present", length, "want", frameBytes)
	}
	dtype.Decode(dt, s.Raw(), fr.Pix)
	return fr, nil
}

// warnOversized logs when the declared frame has more pixels than the file
// has bytes, which means the header is almost certainly garbage.
func (f *File) warnOversized() {
	pixels := int64(f.meta.FrameSize())
	size, err := f.size()
	if err != nil || pixels <= size {
		return
	}
	f.opts.logger.Warn("declared frame has more pixels than the file has bytes",
		"path", f.path,
		"rows", f.meta.YDim(),
		"columns", f.meta.XDim(),
		"pixels", pixels,
		"size", size)
}

func (f *File) size() (int64, error) {
	fi, err := f.file.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", f.path, err)
	}
	return fi.Size(), nil
}

// available clamps a read of n bytes at offset to the current file size.
func (f *File) available(offset, n int64) (int64, error) {
	size, err := f.size()
	if err != nil {
		return 0, err
	}
	left := size - offset
	switch {
	case left <= 0 || offset < 0:
		return 0, nil
	case left < n:
		return left, nil
	default:
		return n, nil
	}
}
