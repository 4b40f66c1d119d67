package header

import (
	"io"
	"reflect"

	"golang.org/x/text/encoding"

	"github.com/robert-malhotra/go-spe/internal/binary"
	"github.com/robert-malhotra/go-spe/internal/dtype"
)

// Metadata is the decoded SPE 2.5 header.
//
// The four values the pixel accessor depends on (frame width and height,
// pixel datatype and frame count) are read-only through methods. Every other
// header field is an exported struct field; changing one does not affect the
// file. Strings keep their fixed on-disk width; use [Trim] for display.
//
// A Metadata is not safe for concurrent mutation.
type Metadata struct {
	ControllerVersion    int16       `spe:"ControllerVersion"`
	LogicOutput          int16       `spe:"LogicOutput"`
	AmpHiCapLowNoise     uint16      `spe:"AmpHiCapLowNoise"`
	XDimDet              uint16      `spe:"xDimDet"`
	Mode                 int16       `spe:"mode"`
	ExpSec               float32     `spe:"exp_sec"`
	VChipXDim            int16       `spe:"VChipXdim"`
	VChipYDim            int16       `spe:"VChipYdim"`
	YDimDet              uint16      `spe:"yDimDet"`
	Date                 string      `spe:"date"`
	VirtualChipFlag      int16       `spe:"VirtualChipFlag"`
	NoScan               int16       `spe:"noscan"`
	DetTemperature       float32     `spe:"DetTemperature"`
	DetType              int16       `spe:"DetType"`
	StDiode              int16       `spe:"stdiode"`
	DelayTime            float32     `spe:"DelayTime"`
	ShutterControl       uint16      `spe:"ShutterControl"`
	AbsorbLive           int16       `spe:"AbsorbLive"`
	AbsorbMode           uint16      `spe:"AbsorbMode"`
	CanDoVirtualChipFlag int16       `spe:"CanDoVirtualChipFlag"`
	ThresholdMinLive     int16       `spe:"ThresholdMinLive"`
	ThresholdMinVal      float32     `spe:"ThresholdMinVal"`
	ThresholdMaxLive     int16       `spe:"ThresholdMaxLive"`
	ThresholdMaxVal      float32     `spe:"ThresholdMaxVal"`
	SpecAutoSpectroMode  int16       `spe:"SpecAutoSpectroMode"`
	SpecCenterWlNm       float32     `spe:"SpecCenterWlNm"`
	SpecGlueFlag         int16       `spe:"SpecGlueFlag"`
	SpecGlueStartWlNm    float32     `spe:"SpecGlueStartWlNm"`
	SpecGlueEndWlNm      float32     `spe:"SpecGlueEndWlNm"`
	SpecGlueMinOvrlpNm   float32     `spe:"SpecGlueMinOvrlpNm"`
	SpecGlueFinalResNm   float32     `spe:"SpecGlueFinalResNm"`
	PulserType           int16       `spe:"PulserType"`
	CustomChipFlag       int16       `spe:"CustomChipFlag"`
	XPrePixels           int16       `spe:"XPrePixels"`
	XPostPixels          int16       `spe:"XPostPixels"`
	YPrePixels           int16       `spe:"YPrePixels"`
	YPostPixels          int16       `spe:"YPostPixels"`
	AsynEn               int16       `spe:"asynen"`
	PulserMode           int16       `spe:"PulserMode"`
	PulserOnChipAccums   uint16      `spe:"PulserOnChipAccums"`
	PulserRepeatExp      uint32      `spe:"PulserRepeatExp"`
	PulseRepWidth        float32     `spe:"PulseRepWidth"`
	PulseRepDelay        float32     `spe:"PulseRepDelay"`
	PulseSeqStartWidth   float32     `spe:"PulseSeqStartWidth"`
	PulseSeqEndWidth     float32     `spe:"PulseSeqEndWidth"`
	PulseSeqStartDelay   float32     `spe:"PulseSeqStartDelay"`
	PulseSeqEndDelay     float32     `spe:"PulseSeqEndDelay"`
	PulseSeqIncMode      int16       `spe:"PulseSeqIncMode"`
	PImaxUsed            int16       `spe:"PImaxUsed"`
	PImaxMode            int16       `spe:"PImaxMode"`
	PImaxGain            int16       `spe:"PImaxGain"`
	BackGrndApplied      int16       `spe:"BackGrndApplied"`
	PImax2nsBrdUsed      int16       `spe:"PImax2nsBrdUsed"`
	MinBlk               uint16      `spe:"minblk"`
	NumMinBlk            uint16      `spe:"numminblk"`
	SpecMirrorLocation   [2]int16    `spe:"SpecMirrorLocation"`
	SpecSlitLocation     [4]int16    `spe:"SpecSlitLocation"`
	CustomTimingFlag     int16       `spe:"CustomTimingFlag"`
	ExperimentTimeLocal  string      `spe:"ExperimentTimeLocal"`
	ExperimentTimeUTC    string      `spe:"ExperimentTimeUTC"`
	ExposUnits           int16       `spe:"ExposUnits"`
	ADCOffset            uint16      `spe:"ADCoffset"`
	ADCRate              uint16      `spe:"ADCrate"`
	ADCType              uint16      `spe:"ADCtype"`
	ADCResolution        uint16      `spe:"ADCresolution"`
	ADCBitAdjust         uint16      `spe:"ADCbitAdjust"`
	Gain                 uint16      `spe:"gain"`
	Comments             [5]string   `spe:"Comments"`
	Geometric            uint16      `spe:"geometric"`
	XLabel               string      `spe:"xlabel"`
	Cleans               uint16      `spe:"cleans"`
	NumSkpPerCln         uint16      `spe:"NumSkpPerCln"`
	SpecMirrorPos        [2]int16    `spe:"SpecMirrorPos"`
	SpecSlitPos          [4]float32  `spe:"SpecSlitPos"`
	AutoCleansActive     int16       `spe:"AutoCleansActive"`
	UseContCleansInst    int16       `spe:"UseContCleansInst"`
	AbsorbStripNum       int16       `spe:"AbsorbStripNum"`
	SpecSlitPosUnits     int16       `spe:"SpecSlitPosUnits"`
	SpecGrooves          float32     `spe:"SpecGrooves"`
	SrcCmp               int16       `spe:"srccmp"`
	Scramble             int16       `spe:"scramble"`
	ContinuousCleansFlag int16       `spe:"ContinuousCleansFlag"`
	ExternalTriggerFlag  int16       `spe:"ExternalTriggerFlag"`
	LNoScan              int32       `spe:"lnoscan"`
	LAvgExp              int32       `spe:"lavgexp"`
	ReadoutTime          float32     `spe:"ReadoutTime"`
	TriggeredModeFlag    int16       `spe:"TriggeredModeFlag"`
	SWVersion            string      `spe:"sw_version"`
	Type                 int16       `spe:"type"`
	FlatFieldApplied     int16       `spe:"flatFieldApplied"`
	KinTrigMode          int16       `spe:"kin_trig_mode"`
	DLabel               string      `spe:"dlabel"`
	PulseFileName        string      `spe:"PulseFileName"`
	AbsorbFileName       string      `spe:"AbsorbFileName"`
	NumExpRepeats        uint32      `spe:"NumExpRepeats"`
	NumExpAccums         uint32      `spe:"NumExpAccums"`
	YTFlag               int16       `spe:"YT_Flag"`
	ClkSpdUs             float32     `spe:"clkspd_us"`
	HWAccumFlag          int16       `spe:"HWaccumFlag"`
	StoreSync            int16       `spe:"StoreSync"`
	BlemishApplied       int16       `spe:"BlemishApplied"`
	CosmicApplied        int16       `spe:"CosmicApplied"`
	CosmicType           int16       `spe:"CosmicType"`
	CosmicThreshold      float32     `spe:"CosmicThreshold"`
	MaxIntensity         float32     `spe:"MaxIntensity"`
	MinIntensity         float32     `spe:"MinIntensity"`
	YLabel               string      `spe:"ylabel"`
	ShutterType          uint16      `spe:"ShutterType"`
	ShutterComp          float32     `spe:"shutterComp"`
	ReadoutMode          uint16      `spe:"readoutMode"`
	WindowSize           uint16      `spe:"WindowSize"`
	ClkSpd               uint16      `spe:"clkspd"`
	InterfaceType        uint16      `spe:"interface_type"`
	NumROIsInExperiment  int16       `spe:"NumROIsInExperiment"`
	ControllerNum        uint16      `spe:"controllerNum"`
	SWMade               uint16      `spe:"SWmade"`
	NumROI               int16       `spe:"NumROI"`
	ROIs                 [ROIMax]ROI `spe:"ROIinfoblk"`
	FlatField            string      `spe:"FlatField"`
	Background           string      `spe:"background"`
	Blemish              string      `spe:"blemish"`
	FileHeaderVer        float32     `spe:"file_header_ver"`
	YTInfo               string      `spe:"YT_Info"`
	WinViewID            int32       `spe:"WinView_id"`
	XCalibration         Calibration `spe:"xcalibration"`
	YCalibration         Calibration `spe:"ycalibration"`
	IString              string      `spe:"Istring"`
	SpecType             uint8       `spe:"SpecType"`
	SpecModel            uint8       `spe:"SpecModel"`
	PulseBurstUsed       uint8       `spe:"PulseBurstUsed"`
	PulseBurstCount      uint32      `spe:"PulseBurstCount"`
	PulseBurstPeriod     float64     `spe:"PulseBurstPeriod"`
	PulseBracketUsed     uint8       `spe:"PulseBracketUsed"`
	PulseBracketType     uint8       `spe:"PulseBracketType"`
	PulseTimeConstFast   float64     `spe:"PulseTimeConstFast"`
	PulseAmplitudeFast   float64     `spe:"PulseAmplitudeFast"`
	PulseTimeConstSlow   float64     `spe:"PulseTimeConstSlow"`
	PulseAmplitudeSlow   float64     `spe:"PulseAmplitudeSlow"`
	AnalogGain           int16       `spe:"AnalogGain"`
	AvGainUsed           int16       `spe:"AvGainUsed"`
	AvGain               int16       `spe:"AvGain"`
	LastValue            int16       `spe:"lastvalue"`

	xdim      uint16
	ydim      uint16
	datatype  dtype.Datatype
	numFrames int32

	raw     *binary.Slice
	charset encoding.Encoding
}

// WinViewMagic is the WinView_id value of files created by WinView/WinSpec.
const WinViewMagic = 0x01234567

var (
	metadataBindings = bind(reflect.TypeOf(Metadata{}), headerLayout)

	xdimField      = headerLayout.must(FieldXDim, KindUint16)
	ydimField      = headerLayout.must(FieldYDim, KindUint16)
	datatypeField  = headerLayout.must(FieldDatatype, KindInt16)
	numFramesField = headerLayout.must(FieldNumFrames, KindInt32)
)

// New returns an empty Metadata with every field at its default.
func New() *Metadata {
	m := &Metadata{}
	m.Reset()
	return m
}

// SetCharset sets the encoding used for header strings. A nil encoding
// copies the bytes unchanged. The setting survives Reset.
func (m *Metadata) SetCharset(enc encoding.Encoding) {
	m.charset = enc
	if enc == nil {
		m.charset = encoding.Nop
	}
}

// XDim returns the frame width in pixels (number of columns).
func (m *Metadata) XDim() uint16 {
	return m.xdim
}

// YDim returns the frame height in pixels (number of rows).
func (m *Metadata) YDim() uint16 {
	return m.ydim
}

// Datatype returns the pixel datatype code. It may be a code outside the
// four defined ones if the file is damaged.
func (m *Metadata) Datatype() dtype.Datatype {
	return m.datatype
}

// NumFrames returns the number of frames declared by the header.
func (m *Metadata) NumFrames() int32 {
	return m.numFrames
}

// FrameSize returns the number of pixels in one frame.
func (m *Metadata) FrameSize() int {
	return int(m.xdim) * int(m.ydim)
}

// FrameBytes returns the on-disk size of one frame, or 0 for an
// unrecognized datatype.
func (m *Metadata) FrameBytes() int64 {
	return int64(m.FrameSize()) * int64(m.datatype.Size())
}

// Read decodes the header from r.
//
// Read always resets m first. The header region [0, DataStart) is read in a
// single pass and every field decoded from it; the ROI and calibration
// blocks are then read again from r at their own offsets. Fields the file is
// too short to contain keep their defaults.
//
// The returned error reports a failed or short header read. The decoded
// fields are usable either way, so callers that want the lenient behavior
// may ignore it.
func (m *Metadata) Read(r io.ReaderAt) error {
	m.Reset()

	err := m.raw.Read(r)
	filled := m.raw.Filled()

	decodeFields(reflect.ValueOf(m).Elem(), metadataBindings, m.raw, m.charset)

	if xdimField.End() <= filled {
		m.xdim = m.raw.Uint16(xdimField.Offset)
	}
	if ydimField.End() <= filled {
		m.ydim = m.raw.Uint16(ydimField.Offset)
	}
	if datatypeField.End() <= filled {
		m.datatype = dtype.Datatype(m.raw.Int16(datatypeField.Offset))
	}
	if numFramesField.End() <= filled {
		m.numFrames = m.raw.Int32(numFramesField.Offset)
	}

	// Sub-blocks seek on their own rather than slicing the header buffer.
	for i := range m.ROIs {
		m.ROIs[i].Read(r, ROIOffset(i))
	}
	m.XCalibration.read(r, XCalibrationOffset, m.charset)
	m.YCalibration.read(r, YCalibrationOffset, m.charset)

	return err
}

// Reset restores every field to its default: numbers to zero, strings to
// blank padding and arrays to zero-filled fixed-length values.
func (m *Metadata) Reset() {
	if m.raw == nil {
		m.raw = binary.NewSlice(0, DataStart)
	}
	if m.charset == nil {
		m.charset = DefaultCharset
	}
	m.raw.Reset()

	resetFields(reflect.ValueOf(m).Elem(), metadataBindings)
	m.xdim = 0
	m.ydim = 0
	m.datatype = 0
	m.numFrames = 0
	for i := range m.ROIs {
		m.ROIs[i].Reset()
	}
	m.XCalibration.Reset()
	m.YCalibration.Reset()
}

// Raw returns a copy of the header bytes from the last Read.
func (m *Metadata) Raw() []byte {
	if m.raw == nil {
		return make([]byte, DataStart)
	}
	return m.raw.Bytes(0, DataStart)
}

// Field returns the raw bytes of the named header field from the last Read.
func (m *Metadata) Field(name string) ([]byte, bool) {
	f, ok := headerLayout.Lookup(name)
	if !ok {
		return nil, false
	}
	if m.raw == nil {
		return make([]byte, f.Size()), true
	}
	return m.raw.Bytes(f.Offset, f.Size()), true
}

// Complete reports whether the last Read obtained the entire header.
func (m *Metadata) Complete() bool {
	return m.raw != nil && m.raw.Filled() == DataStart
}
