package header_test

import (
	"bytes"
	stdbinary "encoding/binary"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-spe/internal/binary"
	"github.com/robert-malhotra/go-spe/internal/dtype"
	"github.com/robert-malhotra/go-spe/internal/header"
	"github.com/robert-malhotra/go-spe/internal/spetest"
)

func sampleBuilder() *spetest.Builder {
	return spetest.New(3, 2, dtype.Uint16).
		AddFrame(1, 2, 3, 4, 5, 6).
		AddFrame(7, 8, 9, 10, 11, 12).
		Set("exp_sec", float32(0.25)).
		Set("date", "01Jan2020").
		Set("Comments", []string{"first", "second"}).
		Set("SpecSlitPos", []float32{1, 2, 3, 4}).
		Set("lnoscan", int32(-1)).
		Set("SpecType", uint8(7)).
		Set("PulseBurstPeriod", 12.5).
		Set("NumROI", int16(1)).
		SetROI(0, header.ROI{StartX: 1, EndX: 3, GroupX: 1, StartY: 1, EndY: 2, GroupY: 1}).
		SetXCalibration(header.Calibration{
			Offset:       10,
			Factor:       0.5,
			PolynomOrder: 1,
			PolynomCoeff: [6]float64{1, 2},
			NewCalibFlag: header.NewCalibFlagValid,
			CalibLabel:   "nm",
		})
}

func TestMetadataRead(t *testing.T) {
	m := header.New()
	require.NoError(t, m.Read(sampleBuilder().Buffer()))

	assert.True(t, m.Complete())
	assert.Equal(t, uint16(3), m.XDim())
	assert.Equal(t, uint16(2), m.YDim())
	assert.Equal(t, dtype.Uint16, m.Datatype())
	assert.Equal(t, int32(2), m.NumFrames())
	assert.Equal(t, 6, m.FrameSize())
	assert.Equal(t, int64(12), m.FrameBytes())

	assert.Equal(t, float32(0.25), m.ExpSec)
	assert.Equal(t, "01Jan2020", header.Trim(m.Date))
	assert.Equal(t, "first", header.Trim(m.Comments[0]))
	assert.Equal(t, "second", header.Trim(m.Comments[1]))
	assert.Equal(t, "", header.Trim(m.Comments[4]))
	assert.Equal(t, [4]float32{1, 2, 3, 4}, m.SpecSlitPos)
	assert.Equal(t, int32(-1), m.LNoScan)
	assert.Equal(t, uint8(7), m.SpecType)
	assert.Equal(t, 12.5, m.PulseBurstPeriod)
	assert.Equal(t, float32(spetest.HeaderVersion), m.FileHeaderVer)
	assert.Equal(t, int32(header.WinViewMagic), m.WinViewID)
	assert.Equal(t, int16(spetest.LastValue), m.LastValue)

	assert.Equal(t, int16(1), m.NumROI)
	assert.Equal(t, header.ROI{StartX: 1, EndX: 3, GroupX: 1, StartY: 1, EndY: 2, GroupY: 1}, m.ROIs[0])
	assert.Equal(t, header.ROI{}, m.ROIs[1])

	assert.Equal(t, 10.0, m.XCalibration.Offset)
	assert.Equal(t, 0.5, m.XCalibration.Factor)
	assert.Equal(t, [6]float64{1, 2, 0, 0, 0, 0}, m.XCalibration.PolynomCoeff)
	assert.Equal(t, "nm", m.XCalibration.Label())
	assert.Equal(t, "", m.YCalibration.Label())
}

func TestMetadataReadFixedOffsets(t *testing.T) {
	raw := make([]byte, 0x1004)
	stdbinary.LittleEndian.PutUint16(raw[0x002A:], 640)
	stdbinary.LittleEndian.PutUint16(raw[0x0290:], 480)
	stdbinary.LittleEndian.PutUint16(raw[0x006C:], uint16(dtype.Int16))
	stdbinary.LittleEndian.PutUint32(raw[0x05A6:], 12)

	m := header.New()
	require.NoError(t, m.Read(bytes.NewReader(raw)))

	assert.Equal(t, uint16(640), m.XDim())
	assert.Equal(t, uint16(480), m.YDim())
	assert.Equal(t, dtype.Int16, m.Datatype())
	assert.Equal(t, int32(12), m.NumFrames())
}

func TestMetadataReadEmpty(t *testing.T) {
	m := header.New()
	err := m.Read(binary.NewBuffer(0))
	require.ErrorIs(t, err, binary.ErrShortRead)

	assert.False(t, m.Complete())
	assert.Zero(t, m.XDim())
	assert.Zero(t, m.YDim())
	assert.Equal(t, dtype.Float32, m.Datatype())
	assert.Zero(t, m.NumFrames())
	assert.Zero(t, m.ExpSec)
	assert.Equal(t, header.Blank(10), m.Date)
	for i := range m.Comments {
		assert.Equal(t, header.Blank(80), m.Comments[i])
	}
	assert.Equal(t, header.Blank(81), m.XCalibration.CalibLabel)
	assert.Equal(t, header.ROI{}, m.ROIs[0])
	assert.Equal(t, header.New(), m)
}

func TestMetadataReadTruncated(t *testing.T) {
	data := sampleBuilder().Bytes()[:0x100]
	buf := binary.NewBuffer(0)
	buf.WriteAt(data, 0)

	m := header.New()
	require.ErrorIs(t, m.Read(buf), binary.ErrShortRead)

	// Fields inside the first 256 bytes decode; the rest keep defaults.
	assert.Equal(t, uint16(3), m.XDim())
	assert.Equal(t, dtype.Uint16, m.Datatype())
	assert.Equal(t, "01Jan2020", header.Trim(m.Date))
	assert.Zero(t, m.YDim())
	assert.Zero(t, m.NumFrames())
	assert.Equal(t, header.Blank(16), m.YLabel)
	assert.Equal(t, header.ROI{}, m.ROIs[0])
}

func TestMetadataResetReadIdempotent(t *testing.T) {
	other := spetest.New(640, 480, dtype.Int32).
		SetNumFrames(7).
		Set("exp_sec", float32(3)).
		Set("Comments", []string{"x", "y", "z", "w", "v"}).
		SetROI(3, header.ROI{EndX: 640, EndY: 480})

	reused := header.New()
	require.NoError(t, reused.Read(sampleBuilder().Buffer()))
	require.NoError(t, reused.Read(other.Buffer()))

	fresh := header.New()
	require.NoError(t, fresh.Read(other.Buffer()))

	assert.Equal(t, fresh, reused)

	reused.Reset()
	assert.Equal(t, header.New(), reused)
}

func TestMetadataCharset(t *testing.T) {
	data := spetest.New(1, 1, dtype.Float32).
		Set("xlabel", []byte{'c', 0xB5, 'm'}).
		Buffer()

	m := header.New()
	require.NoError(t, m.Read(data))
	assert.Equal(t, "cµm", header.Trim(m.XLabel))

	m.SetCharset(nil)
	require.NoError(t, m.Read(data))
	assert.Equal(t, "c\xb5m", header.Trim(m.XLabel))
}

func TestMetadataField(t *testing.T) {
	m := header.New()
	require.NoError(t, m.Read(sampleBuilder().Buffer()))

	b, ok := m.Field(header.FieldXDim)
	require.True(t, ok)
	assert.Equal(t, []byte{3, 0}, b)

	_, ok = m.Field("no_such_field")
	assert.False(t, ok)

	raw := m.Raw()
	assert.Len(t, raw, header.DataStart)
	assert.Equal(t, byte(2), raw[0x0290])
}

func TestSubBlocksReadAtOwnOffset(t *testing.T) {
	buf := sampleBuilder().Buffer()

	var roi header.ROI
	require.NoError(t, roi.Read(buf, header.ROIOffset(0)))
	assert.Equal(t, uint16(3), roi.EndX)

	var cal header.Calibration
	require.NoError(t, cal.Read(buf, header.XCalibrationOffset))
	assert.Equal(t, 0.5, cal.Factor)
	assert.Equal(t, "nm", cal.Label())

	// A block past the end of the file decodes to defaults.
	err := cal.Read(buf, int64(buf.Len()))
	require.ErrorIs(t, err, binary.ErrShortRead)
	assert.Zero(t, cal.Factor)
	assert.Equal(t, header.Blank(81), cal.CalibLabel)
}

func TestDump(t *testing.T) {
	m := header.New()
	require.NoError(t, m.Read(sampleBuilder().Buffer()))

	var out bytes.Buffer
	require.NoError(t, header.Dump(&out, m))
	text := out.String()

	line := func(name, value string) string {
		return fmt.Sprintf("%24s\t%s\n", name, value)
	}
	assert.Contains(t, text, line("xdim", "3"))
	assert.Contains(t, text, line("ydim", "2"))
	assert.Contains(t, text, line("datatype", "3"))
	assert.Contains(t, text, line("NumFrames", "2"))
	assert.Contains(t, text, line("date", `"01Jan2020"`))
	assert.Contains(t, text, line("Comments", `{"first", "second", "", "", ""}`))
	assert.Contains(t, text, line("SpecSlitPos", "{1, 2, 3, 4}"))
	assert.Contains(t, text, line("ROIinfoblk[0].endx", "3"))
	assert.Contains(t, text, line("ROIinfoblk[9].groupy", "0"))
	assert.Contains(t, text, line("xcalibration.polynom_coeff", "{1, 2, 0, 0, 0, 0}"))
	assert.Contains(t, text, line("xcalibration.calib_label", `"nm"`))
	assert.NotContains(t, text, "Spare_")
	assert.NotContains(t, text, "reserved")

	// Header fields appear in on-disk order.
	assert.Less(t, strings.Index(text, line("xdim", "3")), strings.Index(text, line("ydim", "2")))

	n, err := m.WriteTo(&bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, int64(out.Len()), n)
}

func TestBlockWriteTo(t *testing.T) {
	roi := header.ROI{StartX: 5, GroupY: 2}
	var out bytes.Buffer
	_, err := roi.WriteTo(&out)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%24s\t5\n", "startx"), strings.SplitAfter(out.String(), "\n")[0])
	assert.Equal(t, 6, strings.Count(out.String(), "\n"))
}
