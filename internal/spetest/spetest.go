// Package spetest builds synthetic SPE files for tests.
//
// A [Builder] encodes a complete header through the same layout tables the
// decoder uses, followed by frame data in the selected pixel datatype:
//
//	b := spetest.New(3, 2, dtype.Float32)
//	b.AddFrame(1, 2, 3, 4, 5, 6)
//	b.Set("exp_sec", float32(0.5))
//	path := b.WriteFile(t, "image.spe")
package spetest

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-spe/internal/binary"
	"github.com/robert-malhotra/go-spe/internal/dtype"
	"github.com/robert-malhotra/go-spe/internal/header"
)

// Values written by WinView/WinSpec that the builder reproduces.
const (
	HeaderVersion = 2.5
	LastValue     = 0x5555
)

type fieldValue struct {
	name  string
	value any
}

// Builder accumulates the contents of an SPE file.
type Builder struct {
	xdim      uint16
	ydim      uint16
	datatype  dtype.Datatype
	numFrames *int32
	frames    [][]float64
	fields    []fieldValue
	rois      map[int]header.ROI
	xcal      *header.Calibration
	ycal      *header.Calibration
}

// New returns a builder for frames of xdim columns and ydim rows.
func New(xdim, ydim uint16, dt dtype.Datatype) *Builder {
	return &Builder{
		xdim:     xdim,
		ydim:     ydim,
		datatype: dt,
		rois:     make(map[int]header.ROI),
	}
}

// AddFrame appends a frame given in row-major order. Missing trailing
// pixels are encoded as zero.
func (b *Builder) AddFrame(pix ...float64) *Builder {
	b.frames = append(b.frames, pix)
	return b
}

// SetNumFrames overrides the frame count written to the header, which
// otherwise equals the number of frames added.
func (b *Builder) SetNumFrames(n int32) *Builder {
	b.numFrames = &n
	return b
}

// Set stores value in the named header field. Array fields take a slice or
// array of the element type. Values are converted to the field's on-disk
// kind. Values set for the frame geometry fields replace the builder's own.
func (b *Builder) Set(name string, value any) *Builder {
	b.fields = append(b.fields, fieldValue{name: name, value: value})
	return b
}

// SetROI stores ROI block i.
func (b *Builder) SetROI(i int, roi header.ROI) *Builder {
	b.rois[i] = roi
	return b
}

// SetXCalibration stores the x axis calibration block.
func (b *Builder) SetXCalibration(c header.Calibration) *Builder {
	b.xcal = &c
	return b
}

// SetYCalibration stores the y axis calibration block.
func (b *Builder) SetYCalibration(c header.Calibration) *Builder {
	b.ycal = &c
	return b
}

// Buffer encodes the file into an in-memory buffer. It panics if a field
// set with Set does not exist or cannot hold its value.
func (b *Builder) Buffer() *binary.Buffer {
	buf := binary.NewBuffer(header.DataStart)
	w := binary.NewWriter(buf)
	hl := header.HeaderLayout()

	numFrames := int32(len(b.frames))
	if b.numFrames != nil {
		numFrames = *b.numFrames
	}
	must(put(w, hl, header.FieldXDim, b.xdim))
	must(put(w, hl, header.FieldYDim, b.ydim))
	must(put(w, hl, header.FieldDatatype, int16(b.datatype)))
	must(put(w, hl, header.FieldNumFrames, numFrames))
	must(put(w, hl, "file_header_ver", float32(HeaderVersion)))
	must(put(w, hl, "WinView_id", int32(header.WinViewMagic)))
	must(put(w, hl, "lastvalue", int16(LastValue)))

	for _, fv := range b.fields {
		must(put(w, hl, fv.name, fv.value))
	}
	for i, roi := range b.rois {
		must(encodeStruct(w.At(header.ROIOffset(i)), header.ROILayout(), roi))
	}
	if b.xcal != nil {
		must(encodeStruct(w.At(header.XCalibrationOffset), header.CalibrationLayout(), *b.xcal))
	}
	if b.ycal != nil {
		must(encodeStruct(w.At(header.YCalibrationOffset), header.CalibrationLayout(), *b.ycal))
	}

	width := int64(b.datatype.Size())
	frameSize := int64(b.xdim) * int64(b.ydim)
	for i, pix := range b.frames {
		fw := w.At(header.DataStart + width*frameSize*int64(i))
		for j := int64(0); j < frameSize; j++ {
			var v float64
			if j < int64(len(pix)) {
				v = pix[j]
			}
			must(putPixel(fw, b.datatype, v))
		}
	}
	return buf
}

// Bytes encodes the file and returns its contents.
func (b *Builder) Bytes() []byte {
	return b.Buffer().Bytes()
}

// WriteFile encodes the file into a new temporary directory and returns
// its path.
func (b *Builder) WriteFile(tb testing.TB, name string) string {
	tb.Helper()
	return WriteFile(tb, tb.TempDir(), name, b.Bytes())
}

// WriteFile writes data to dir/name and returns the path.
func WriteFile(tb testing.TB, dir, name string, data []byte) string {
	tb.Helper()
	path := filepath.Join(dir, name)
	require.NoError(tb, os.WriteFile(path, data, 0o644))
	return path
}

func must(err error) {
	if err != nil {
		panic("spetest: " + err.Error())
	}
}

func putPixel(w *binary.Writer, dt dtype.Datatype, v float64) error {
	switch dt {
	case dtype.Float32:
		return w.WriteFloat32(float32(v))
	case dtype.Int32:
		return w.WriteInt32(int32(v))
	case dtype.Int16:
		return w.WriteInt16(int16(v))
	case dtype.Uint16:
		return w.WriteUint16(uint16(v))
	default:
		return nil
	}
}

// encodeStruct writes every `spe` tagged field of v at w's position plus
// the field offset.
func encodeStruct(w *binary.Writer, l *header.Layout, v any) error {
	rv := reflect.ValueOf(v)
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		name, ok := rt.Field(i).Tag.Lookup("spe")
		if !ok {
			continue
		}
		f, ok := l.Lookup(name)
		if !ok {
			return fmt.Errorf("%s layout has no field %q", l.Name(), name)
		}
		if err := putField(w.At(w.Pos()+int64(f.Offset)), f, rv.Field(i)); err != nil {
			return err
		}
	}
	return nil
}

func put(w *binary.Writer, l *header.Layout, name string, value any) error {
	f, ok := l.Lookup(name)
	if !ok {
		return fmt.Errorf("%s layout has no field %q", l.Name(), name)
	}
	return putField(w.At(int64(f.Offset)), f, reflect.ValueOf(value))
}

// putField writes v at w's position using the layout of f.
func putField(w *binary.Writer, f header.Field, v reflect.Value) error {
	if f.Count > 1 {
		if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
			return fmt.Errorf("field %s needs %d elements, have %s", f.Name, f.Count, v.Type())
		}
		base := w.Pos()
		for i := 0; i < f.Count && i < v.Len(); i++ {
			if err := putElem(w.At(base+int64(i*f.Width)), f, v.Index(i)); err != nil {
				return err
			}
		}
		return nil
	}
	return putElem(w, f, v)
}

func putElem(w *binary.Writer, f header.Field, v reflect.Value) error {
	switch f.Kind {
	case header.KindInt8:
		return w.WriteInt8(int8(asInt(v)))
	case header.KindUint8:
		return w.WriteUint8(uint8(asInt(v)))
	case header.KindInt16:
		return w.WriteInt16(int16(asInt(v)))
	case header.KindUint16:
		return w.WriteUint16(uint16(asInt(v)))
	case header.KindInt32:
		return w.WriteInt32(int32(asInt(v)))
	case header.KindUint32:
		return w.WriteUint32(uint32(asInt(v)))
	case header.KindFloat32:
		return w.WriteFloat32(float32(asFloat(v)))
	case header.KindFloat64:
		return w.WriteFloat64(asFloat(v))
	case header.KindString:
		if v.Kind() == reflect.Slice && v.Type().Elem().Kind() == reflect.Uint8 {
			return w.WriteString(string(v.Bytes()), f.Width)
		}
		if v.Kind() != reflect.String {
			return fmt.Errorf("field %s is a string, have %s", f.Name, v.Type())
		}
		return w.WriteString(v.String(), f.Width)
	default:
		return fmt.Errorf("field %s of kind %s cannot be set", f.Name, f.Kind)
	}
}

func asInt(v reflect.Value) int64 {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(v.Uint())
	case reflect.Float32, reflect.Float64:
		return int64(v.Float())
	default:
		panic(fmt.Sprintf("spetest: %s is not numeric", v.Type()))
	}
}

func asFloat(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return v.Float()
	default:
		return float64(asInt(v))
	}
}
