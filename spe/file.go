package spe

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"sync"

	"github.com/robert-malhotra/go-spe/internal/header"
)

// File represents an open SPE file.
//
// The header is decoded once by Open and again by each Reopen. Pixel data is
// never cached: every Pixel, Frame and AverageFrame call reads the file.
// Reads are positional, so a File may be used from several goroutines.
type File struct {
	mu     sync.RWMutex
	path   string
	file   *os.File
	meta   *header.Metadata
	opts   *fileOptions
	closed bool
}

// Open opens an SPE file for reading and decodes its header.
//
// A path that does not exist is an error wrapping ErrNotFound. A file whose
// header is short or damaged still opens; the affected fields read as their
// defaults unless WithStrict is given.
func Open(path string, opts ...FileOption) (*File, error) {
	o := defaultFileOptions()
	for _, opt := range opts {
		opt(o)
	}

	f := &File{opts: o, closed: true}
	if err := f.open(path); err != nil {
		return nil, err
	}
	return f, nil
}

// open opens path and decodes its header into a new Metadata. f is only
// changed once both succeed. f.mu must be held for writing or f must not
// yet be shared.
func (f *File) open(path string) error {
	osf, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("opening %s: %w", path, ErrNotFound)
		}
		return fmt.Errorf("opening file: %w", err)
	}

	meta := header.New()
	meta.SetCharset(f.opts.charset)
	if err := meta.Read(osf); err != nil {
		if f.opts.strict {
			osf.Close()
			return fmt.Errorf("reading header: %w: %w", ErrTruncated, err)
		}
		f.opts.logger.Warn("incomplete SPE header", "path", path, "error", err)
	}

	if err := check(osf, meta); err != nil {
		if f.opts.strict {
			osf.Close()
			return err
		}
		f.opts.logger.Warn("damaged SPE file", "path", path, "error", err)
	}

	f.path = path
	f.file = osf
	f.meta = meta
	f.closed = false
	f.opts.logger.Debug("opened SPE file",
		"path", path,
		"rows", meta.YDim(),
		"columns", meta.XDim(),
		"frames", meta.NumFrames(),
		"datatype", meta.Datatype())
	return nil
}

// check validates a decoded header against itself and the file size.
func check(osf *os.File, m *header.Metadata) error {
	if !m.Datatype().Valid() {
		return fmt.Errorf("datatype %d: %w", int16(m.Datatype()), ErrUnknownDatatype)
	}
	if m.XDim() == 0 || m.YDim() == 0 {
		return fmt.Errorf("%dx%d: %w", m.XDim(), m.YDim(), ErrInvalidDimensions)
	}
	if m.NumFrames() < 0 {
		return fmt.Errorf("%d frames: %w", m.NumFrames(), ErrInvalidDimensions)
	}

	fi, err := osf.Stat()
	if err != nil {
		return fmt.Errorf("stat: %w", err)
	}
	want := int64(header.DataStart) + m.FrameBytes()*int64(m.NumFrames())
	if fi.Size() < want {
		return fmt.Errorf("%d bytes, %d frames need %d: %w", fi.Size(), m.NumFrames(), want, ErrTruncated)
	}
	return nil
}

// Reopen closes the underlying file and opens path in its place, decoding
// its header afresh. Passing the current Path picks up changes made to the
// file on disk.
//
// On failure the File is left closed with its previous Path and Metadata.
// Metadata values returned before the call are not modified.
func (f *File) Reopen(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.file != nil && !f.closed {
		f.file.Close()
	}
	f.file = nil
	f.closed = true
	return f.open(path)
}

// Close closes the file. Closing a closed file does nothing.
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}
	f.closed = true
	return f.file.Close()
}

// Path returns the file path.
func (f *File) Path() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.path
}

// Metadata returns the decoded header. It is a snapshot: modifying it does
// not change the file, and Reopen installs a new value instead of updating
// this one.
func (f *File) Metadata() *Metadata {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.meta
}

// Rows returns the number of rows in a frame (the header's ydim).
func (f *File) Rows() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return int(f.meta.YDim())
}

// Columns returns the number of columns in a frame (the header's xdim).
func (f *File) Columns() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return int(f.meta.XDim())
}

// Frames returns the number of frames declared by the header.
func (f *File) Frames() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return int(f.meta.NumFrames())
}

// Datatype returns the pixel datatype code from the header.
func (f *File) Datatype() Datatype {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.meta.Datatype()
}

// GoType returns the Go type matching the on-disk pixel representation.
func (f *File) GoType() (reflect.Type, error) {
	t, err := f.Datatype().GoType()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnknownDatatype, err)
	}
	return t, nil
}
