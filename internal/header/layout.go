package header

import "fmt"

// Kind is the on-disk representation of a header field element.
type Kind uint8

// Field kinds.
const (
	KindReserved Kind = iota // spare bytes, never decoded
	KindInt8
	KindUint8
	KindInt16
	KindUint16
	KindInt32
	KindUint32
	KindFloat32
	KindFloat64
	KindString // fixed-width character array
	KindBlock  // nested structure with its own layout
)

var kindNames = [...]string{
	KindReserved: "reserved",
	KindInt8:     "int8",
	KindUint8:    "uint8",
	KindInt16:    "int16",
	KindUint16:   "uint16",
	KindInt32:    "int32",
	KindUint32:   "uint32",
	KindFloat32:  "float32",
	KindFloat64:  "float64",
	KindString:   "string",
	KindBlock:    "block",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Field describes one named field of a fixed layout.
// Offset is relative to the start of the enclosing layout. Width is the size
// of one element and Count the number of elements (1 for scalars).
type Field struct {
	Name   string
	Offset int
	Kind   Kind
	Width  int
	Count  int
	Desc   string
}

// Size returns the total number of bytes the field occupies.
func (f Field) Size() int {
	return f.Width * f.Count
}

// End returns the offset of the first byte after the field.
func (f Field) End() int {
	return f.Offset + f.Size()
}

// ElementOffset returns the offset of element i of an array field.
func (f Field) ElementOffset(i int) int {
	return f.Offset + i*f.Width
}

// Layout is an ordered, immutable list of fields.
type Layout struct {
	name   string
	size   int
	fields []Field
	index  map[string]int
}

func newLayout(name string, size int, fields []Field) *Layout {
	l := &Layout{
		name:   name,
		size:   size,
		fields: fields,
		index:  make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		l.index[f.Name] = i
	}
	return l
}

// Name returns the layout name.
func (l *Layout) Name() string {
	return l.name
}

// Size returns the total size of the layout in bytes.
func (l *Layout) Size() int {
	return l.size
}

// Len returns the number of fields, including reserved ones.
func (l *Layout) Len() int {
	return len(l.fields)
}

// Fields returns a copy of the fields in on-disk order.
func (l *Layout) Fields() []Field {
	out := make([]Field, len(l.fields))
	copy(out, l.fields)
	return out
}

// Lookup returns the field with the given name.
func (l *Layout) Lookup(name string) (Field, bool) {
	i, ok := l.index[name]
	if !ok {
		return Field{}, false
	}
	return l.fields[i], true
}

// must returns the named field and panics if it is missing or of the wrong
// kind. It is only used with names compiled into this package.
func (l *Layout) must(name string, kind Kind) Field {
	f, ok := l.Lookup(name)
	if !ok {
		panic(fmt.Sprintf("header: %s layout has no field %q", l.name, name))
	}
	if f.Kind != kind {
		panic(fmt.Sprintf("header: %s field %q is %s, not %s", l.name, name, f.Kind, kind))
	}
	return f
}

func scalar(name string, off int, kind Kind, desc string) Field {
	return Field{Name: name, Offset: off, Kind: kind, Width: kindWidth(kind), Count: 1, Desc: desc}
}

func array(name string, off int, kind Kind, n int, desc string) Field {
	return Field{Name: name, Offset: off, Kind: kind, Width: kindWidth(kind), Count: n, Desc: desc}
}

func str(name string, off, width int, desc string) Field {
	return Field{Name: name, Offset: off, Kind: KindString, Width: width, Count: 1, Desc: desc}
}

func strs(name string, off, width, n int, desc string) Field {
	return Field{Name: name, Offset: off, Kind: KindString, Width: width, Count: n, Desc: desc}
}

func block(name string, off, width, n int, desc string) Field {
	return Field{Name: name, Offset: off, Kind: KindBlock, Width: width, Count: n, Desc: desc}
}

func spare(name string, off, n int) Field {
	return Field{Name: name, Offset: off, Kind: KindReserved, Width: 1, Count: n}
}

func kindWidth(k Kind) int {
	switch k {
	case KindInt8, KindUint8:
		return 1
	case KindInt16, KindUint16:
		return 2
	case KindInt32, KindUint32, KindFloat32:
		return 4
	case KindFloat64:
		return 8
	default:
		return 1
	}
}
