package header

import (
	"fmt"
	"reflect"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/robert-malhotra/go-spe/internal/binary"
)

// DefaultCharset is used to decode header strings. SPE files are written by
// Windows acquisition software, so text fields are Windows-1252.
var DefaultCharset encoding.Encoding = charmap.Windows1252

// binding ties a tagged struct field to a layout field.
type binding struct {
	field Field
	index int
}

// bind matches every struct field tagged `spe:"name"` to the named layout
// field and checks that the Go type can hold it. It panics on mismatch; it is
// only called during package initialization.
func bind(t reflect.Type, l *Layout) []binding {
	var out []binding
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		name, ok := sf.Tag.Lookup("spe")
		if !ok {
			continue
		}
		f, ok := l.Lookup(name)
		if !ok {
			panic(fmt.Sprintf("header: %s.%s tagged %q, not in %s layout", t.Name(), sf.Name, name, l.Name()))
		}
		if err := checkType(sf.Type, f); err != nil {
			panic(fmt.Sprintf("header: %s.%s: %v", t.Name(), sf.Name, err))
		}
		out = append(out, binding{field: f, index: i})
	}
	return out
}

func checkType(t reflect.Type, f Field) error {
	if f.Count > 1 || f.Kind == KindBlock && t.Kind() == reflect.Array {
		if t.Kind() != reflect.Array || t.Len() != f.Count {
			return fmt.Errorf("%s needs an array of %d, have %s", f.Name, f.Count, t)
		}
		t = t.Elem()
	}
	want := goKind(f.Kind)
	if t.Kind() != want {
		return fmt.Errorf("%s is %s, have %s", f.Name, f.Kind, t)
	}
	return nil
}

func goKind(k Kind) reflect.Kind {
	switch k {
	case KindInt8:
		return reflect.Int8
	case KindUint8:
		return reflect.Uint8
	case KindInt16:
		return reflect.Int16
	case KindUint16:
		return reflect.Uint16
	case KindInt32:
		return reflect.Int32
	case KindUint32:
		return reflect.Uint32
	case KindFloat32:
		return reflect.Float32
	case KindFloat64:
		return reflect.Float64
	case KindString:
		return reflect.String
	case KindBlock:
		return reflect.Struct
	default:
		return reflect.Invalid
	}
}

// decodeFields fills the bound fields of v from s. Fields that extend past
// the bytes actually read are left untouched so they keep their defaults.
func decodeFields(v reflect.Value, bindings []binding, s *binary.Slice, enc encoding.Encoding) {
	filled := s.Filled()
	for _, b := range bindings {
		f := b.field
		if f.Kind == KindBlock || f.End() > filled {
			continue
		}
		fv := v.Field(b.index)
		if fv.Kind() == reflect.Array {
			for i := 0; i < f.Count; i++ {
				setElem(fv.Index(i), s, f.ElementOffset(i), f, enc)
			}
			continue
		}
		setElem(fv, s, f.Offset, f, enc)
	}
}

func setElem(fv reflect.Value, s *binary.Slice, off int, f Field, enc encoding.Encoding) {
	switch f.Kind {
	case KindInt8:
		fv.SetInt(int64(s.Int8(off)))
	case KindUint8:
		fv.SetUint(uint64(s.Uint8(off)))
	case KindInt16:
		fv.SetInt(int64(s.Int16(off)))
	case KindUint16:
		fv.SetUint(uint64(s.Uint16(off)))
	case KindInt32:
		fv.SetInt(int64(s.Int32(off)))
	case KindUint32:
		fv.SetUint(uint64(s.Uint32(off)))
	case KindFloat32:
		fv.SetFloat(float64(s.Float32(off)))
	case KindFloat64:
		fv.SetFloat(s.Float64(off))
	case KindString:
		fv.SetString(decodeString(s.Bytes(off, f.Width), enc))
	}
}

// resetFields restores the bound fields of v to their defaults: zero for
// numbers and blank-padded, NUL-terminated text for strings.
func resetFields(v reflect.Value, bindings []binding) {
	for _, b := range bindings {
		f := b.field
		if f.Kind == KindBlock {
			continue
		}
		fv := v.Field(b.index)
		fv.SetZero()
		if f.Kind != KindString {
			continue
		}
		if fv.Kind() == reflect.Array {
			for i := 0; i < fv.Len(); i++ {
				fv.Index(i).SetString(Blank(f.Width))
			}
			continue
		}
		fv.SetString(Blank(f.Width))
	}
}

// Blank returns the default value of a string field of the given on-disk
// width: width-1 spaces followed by a NUL.
func Blank(width int) string {
	if width <= 0 {
		return ""
	}
	return strings.Repeat(" ", width-1) + "\x00"
}

// Trim returns the text of a fixed-width string field: everything before the
// first NUL, without trailing spaces.
func Trim(s string) string {
	if i := strings.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	return strings.TrimRight(s, " ")
}

func decodeString(b []byte, enc encoding.Encoding) string {
	if enc == nil {
		return string(b)
	}
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(out)
}
