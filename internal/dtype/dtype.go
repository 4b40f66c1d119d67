package dtype

import (
	"fmt"
	"reflect"
)

// Datatype is the pixel datatype code stored in an SPE header.
type Datatype int16

// Pixel datatype codes defined by the SPE 2.5 header.
const (
	Float32 Datatype = 0
	Int32   Datatype = 1
	Int16   Datatype = 2
	Uint16  Datatype = 3
)

// Size returns the on-disk width of one pixel in bytes, or 0 for an
// unrecognized code.
func (d Datatype) Size() int {
	switch d {
	case Float32, Int32:
		return 4
	case Int16, Uint16:
		return 2
	default:
		return 0
	}
}

// Valid reports whether d is one of the four defined codes.
func (d Datatype) Valid() bool {
	return d.Size() != 0
}

// GoType returns the Go type that holds one pixel as stored on disk.
func (d Datatype) GoType() (reflect.Type, error) {
	switch d {
	case Float32:
		return reflect.TypeOf(float32(0)), nil
	case Int32:
		return reflect.TypeOf(int32(0)), nil
	case Int16:
		return reflect.TypeOf(int16(0)), nil
	case Uint16:
		return reflect.TypeOf(uint16(0)), nil
	default:
		return nil, fmt.Errorf("unsupported pixel datatype: %d", int16(d))
	}
}

func (d Datatype) String() string {
	switch d {
	case Float32:
		return "float32"
	case Int32:
		return "int32"
	case Int16:
		return "int16"
	case Uint16:
		return "uint16"
	default:
		return fmt.Sprintf("unknown(%d)", int16(d))
	}
}
