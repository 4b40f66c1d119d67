package header

import (
	"fmt"
	"io"
	"reflect"
	"strings"
)

// nameWidth is the column width field names are right-aligned to.
const nameWidth = 24

// Dump writes the listing produced by Metadata.WriteTo to w.
func Dump(w io.Writer, m *Metadata) error {
	_, err := m.WriteTo(w)
	return err
}

// WriteTo writes a human-readable listing of every header field, one
// "name<TAB>value" line per field in on-disk order. Strings are quoted and
// trimmed, arrays are written as {a, b, ...}, and the ROI and calibration
// blocks are expanded with prefixed names.
func (m *Metadata) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	v := reflect.ValueOf(m).Elem()
	byName := indexBindings(metadataBindings)

	for _, f := range headerLayout.fields {
		switch f.Name {
		case FieldXDim:
			cw.line(f.Name, m.xdim)
			continue
		case FieldYDim:
			cw.line(f.Name, m.ydim)
			continue
		case FieldDatatype:
			cw.line(f.Name, int16(m.datatype))
			continue
		case FieldNumFrames:
			cw.line(f.Name, m.numFrames)
			continue
		}

		b, ok := byName[f.Name]
		if !ok {
			continue
		}
		fv := v.Field(b.index)
		switch {
		case f.Kind == KindBlock && fv.Kind() == reflect.Array:
			for i := 0; i < fv.Len(); i++ {
				cw.block(fmt.Sprintf("%s[%d].", f.Name, i), fv.Index(i), roiBindings)
			}
		case f.Kind == KindBlock:
			cw.block(f.Name+".", fv, calibrationBindings)
		default:
			cw.line(f.Name, formatValue(fv))
		}
		if cw.err != nil {
			break
		}
	}
	return cw.n, cw.err
}

// WriteTo writes the ROI fields in the same format as Metadata.WriteTo.
func (roi *ROI) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	cw.block("", reflect.ValueOf(roi).Elem(), roiBindings)
	return cw.n, cw.err
}

// WriteTo writes the calibration fields in the same format as
// Metadata.WriteTo.
func (c *Calibration) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	cw.block("", reflect.ValueOf(c).Elem(), calibrationBindings)
	return cw.n, cw.err
}

func indexBindings(bindings []binding) map[string]binding {
	out := make(map[string]binding, len(bindings))
	for _, b := range bindings {
		out[b.field.Name] = b
	}
	return out
}

func formatValue(v reflect.Value) string {
	switch v.Kind() {
	case reflect.String:
		return `"` + Trim(v.String()) + `"`
	case reflect.Array:
		parts := make([]string, v.Len())
		for i := range parts {
			parts[i] = formatValue(v.Index(i))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprint(v.Interface())
	}
}

type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (cw *countingWriter) line(name string, value any) {
	if cw.err != nil {
		return
	}
	n, err := fmt.Fprintf(cw.w, "%*s\t%v\n", nameWidth, name, value)
	cw.n += int64(n)
	cw.err = err
}

func (cw *countingWriter) block(prefix string, v reflect.Value, bindings []binding) {
	for _, b := range bindings {
		cw.line(prefix+b.field.Name, formatValue(v.Field(b.index)))
	}
}
