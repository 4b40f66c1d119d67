package header

import (
	"io"
	"reflect"

	"golang.org/x/text/encoding"

	"github.com/robert-malhotra/go-spe/internal/binary"
)

// Calibration is the polynomial axis-scaling block stored once for each of
// the x and y axes. The values are recorded for display; pixel values are
// never scaled by them.
type Calibration struct {
	Offset        float64     `spe:"offset"`
	Factor        float64     `spe:"factor"`
	CurrentUnit   int8        `spe:"current_unit"`
	String        string      `spe:"string"`
	CalibValid    int8        `spe:"calib_valid"`
	InputUnit     int8        `spe:"input_unit"`
	PolynomUnit   int8        `spe:"polynom_unit"`
	PolynomOrder  int8        `spe:"polynom_order"`
	CalibCount    int8        `spe:"calib_count"`
	PixelPosition [10]float64 `spe:"pixel_position"`
	CalibValue    [10]float64 `spe:"calib_value"`
	PolynomCoeff  [6]float64  `spe:"polynom_coeff"`
	LaserPosition float64     `spe:"laser_position"`
	NewCalibFlag  uint8       `spe:"new_calib_flag"`
	CalibLabel    string      `spe:"calib_label"`
}

// NewCalibFlagValid is the NewCalibFlag value marking CalibLabel as valid.
const NewCalibFlagValid = 200

var calibrationBindings = bind(reflect.TypeOf(Calibration{}), calibrationLayout)

// Calibration block offsets in the header.
var (
	XCalibrationOffset = int64(headerLayout.must("xcalibration", KindBlock).Offset)
	YCalibrationOffset = int64(headerLayout.must("ycalibration", KindBlock).Offset)
)

// Read decodes the block at offset from r using the default charset.
func (c *Calibration) Read(r io.ReaderAt, offset int64) error {
	return c.read(r, offset, DefaultCharset)
}

func (c *Calibration) read(r io.ReaderAt, offset int64, enc encoding.Encoding) error {
	c.Reset()
	s := binary.NewSlice(offset, CalibrationSize)
	err := s.Read(r)
	decodeFields(reflect.ValueOf(c).Elem(), calibrationBindings, s, enc)
	return err
}

// Reset restores every field to its default.
func (c *Calibration) Reset() {
	resetFields(reflect.ValueOf(c).Elem(), calibrationBindings)
}

// Label returns CalibLabel as text when NewCalibFlag marks it valid.
func (c *Calibration) Label() string {
	if c.NewCalibFlag != NewCalibFlagValid {
		return ""
	}
	return Trim(c.CalibLabel)
}
