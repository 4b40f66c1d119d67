package header

// Sizes of the fixed regions of an SPE 2.5 file.
const (
	// DataStart is the file offset of the first pixel of the first frame.
	// The header occupies every byte before it.
	DataStart = 0x1004

	// CalibrationSize is the size of one axis calibration block.
	CalibrationSize = 489

	// ROISize is the size of one region-of-interest block.
	ROISize = 12

	// ROIMax is the number of ROI blocks stored in the header.
	ROIMax = 10
)

// Load-bearing field names. These four values drive the pixel accessor.
const (
	FieldXDim      = "xdim"
	FieldYDim      = "ydim"
	FieldDatatype  = "datatype"
	FieldNumFrames = "NumFrames"
)

/*
SPE 2.5 header layout (3/23/04), 4100 bytes.

Names follow the published header definition. Every byte of the header is
covered by exactly one entry; unused regions appear as Spare_N.
*/
var headerLayout = newLayout("header", DataStart, []Field{
	scalar("ControllerVersion", 0x0000, KindInt16, "Hardware Version"),
	scalar("LogicOutput", 0x0002, KindInt16, "Definition of Output BNC"),
	scalar("AmpHiCapLowNoise", 0x0004, KindUint16, "Amp Switching Mode"),
	scalar("xDimDet", 0x0006, KindUint16, "Detector x dimension of chip"),
	scalar("mode", 0x0008, KindInt16, "timing mode"),
	scalar("exp_sec", 0x000A, KindFloat32, "alternative exposure, in sec"),
	scalar("VChipXdim", 0x000E, KindInt16, "Virtual Chip X dim"),
	scalar("VChipYdim", 0x0010, KindInt16, "Virtual Chip Y dim"),
	scalar("yDimDet", 0x0012, KindUint16, "y dimension of CCD or detector"),
	str("date", 0x0014, 10, "date as ddmmmyyyy"),
	scalar("VirtualChipFlag", 0x001E, KindInt16, "On/Off"),
	spare("Spare_1", 0x0020, 2),
	scalar("noscan", 0x0022, KindInt16, "Old number of scans - should always be -1"),
	scalar("DetTemperature", 0x0024, KindFloat32, "Detector Temperature Set"),
	scalar("DetType", 0x0028, KindInt16, "CCD/DiodeArray type"),
	scalar(FieldXDim, 0x002A, KindUint16, "actual # of pixels on x axis"),
	scalar("stdiode", 0x002C, KindInt16, "trigger diode"),
	scalar("DelayTime", 0x002E, KindFloat32, "Used with Async Mode"),
	scalar("ShutterControl", 0x0032, KindUint16, "Normal, Disabled Open, Disabled Closed"),
	scalar("AbsorbLive", 0x0034, KindInt16, "On/Off"),
	scalar("AbsorbMode", 0x0036, KindUint16, "Reference Strip or File"),
	scalar("CanDoVirtualChipFlag", 0x0038, KindInt16, "T/F Cont/Chip able to do Virtual Chip"),
	scalar("ThresholdMinLive", 0x003A, KindInt16, "On/Off"),
	scalar("ThresholdMinVal", 0x003C, KindFloat32, "Threshold Minimum Value"),
	scalar("ThresholdMaxLive", 0x0040, KindInt16, "On/Off"),
	scalar("ThresholdMaxVal", 0x0042, KindFloat32, "Threshold Maximum Value"),
	scalar("SpecAutoSpectroMode", 0x0046, KindInt16, "T/F Spectrograph Used"),
	scalar("SpecCenterWlNm", 0x0048, KindFloat32, "Center Wavelength in Nm"),
	scalar("SpecGlueFlag", 0x004C, KindInt16, "T/F File is Glued"),
	scalar("SpecGlueStartWlNm", 0x004E, KindFloat32, "Starting Wavelength in Nm"),
	scalar("SpecGlueEndWlNm", 0x0052, KindFloat32, "Ending Wavelength in Nm"),
	scalar("SpecGlueMinOvrlpNm", 0x0056, KindFloat32, "Minimum Overlap in Nm"),
	scalar("SpecGlueFinalResNm", 0x005A, KindFloat32, "Final Resolution in Nm"),
	scalar("PulserType", 0x005E, KindInt16, "0=None, PG200=1, PTG=2, DG535=3"),
	scalar("CustomChipFlag", 0x0060, KindInt16, "T/F Custom Chip Used"),
	scalar("XPrePixels", 0x0062, KindInt16, "Pre Pixels in X direction"),
	scalar("XPostPixels", 0x0064, KindInt16, "Post Pixels in X direction"),
	scalar("YPrePixels", 0x0066, KindInt16, "Pre Pixels in Y direction"),
	scalar("YPostPixels", 0x0068, KindInt16, "Post Pixels in Y direction"),
	scalar("asynen", 0x006A, KindInt16, "asynchron enable flag 0 = off"),
	scalar(FieldDatatype, 0x006C, KindInt16, "experiment datatype"),
	scalar("PulserMode", 0x006E, KindInt16, "Repetitive/Sequential"),
	scalar("PulserOnChipAccums", 0x0070, KindUint16, "Num PTG On-Chip Accums"),
	scalar("PulserRepeatExp", 0x0072, KindUint32, "Num Exp Repeats (Pulser SW Accum)"),
	scalar("PulseRepWidth", 0x0076, KindFloat32, "Width Value for Repetitive pulse (usec)"),
	scalar("PulseRepDelay", 0x007A, KindFloat32, "Delay Value for Repetitive pulse (usec)"),
	scalar("PulseSeqStartWidth", 0x007E, KindFloat32, "Start Width for Sequential pulse (usec)"),
	scalar("PulseSeqEndWidth", 0x0082, KindFloat32, "End Width for Sequential pulse (usec)"),
	scalar("PulseSeqStartDelay", 0x0086, KindFloat32, "Start Delay for Sequential pulse (usec)"),
	scalar("PulseSeqEndDelay", 0x008A, KindFloat32, "End Delay for Sequential pulse (usec)"),
	scalar("PulseSeqIncMode", 0x008E, KindInt16, "Increments: 1=Fixed, 2=Exponential"),
	scalar("PImaxUsed", 0x0090, KindInt16, "PI-Max type Controller flag"),
	scalar("PImaxMode", 0x0092, KindInt16, "PI-Max mode"),
	scalar("PImaxGain", 0x0094, KindInt16, "PI-Max Gain"),
	scalar("BackGrndApplied", 0x0096, KindInt16, "1 if background subtraction done"),
	scalar("PImax2nsBrdUsed", 0x0098, KindInt16, "T/F PI-Max 2ns Board Used"),
	scalar("minblk", 0x009A, KindUint16, "min. # of strips per skips"),
	scalar("numminblk", 0x009C, KindUint16, "# of min-blocks before geo skps"),
	array("SpecMirrorLocation", 0x009E, KindInt16, 2, "Spectro Mirror Location, 0=Not Present"),
	array("SpecSlitLocation", 0x00A2, KindInt16, 4, "Spectro Slit Location, 0=Not Present"),
	scalar("CustomTimingFlag", 0x00AA, KindInt16, "T/F Custom Timing Used"),
	str("ExperimentTimeLocal", 0x00AC, 7, "Experiment Local Time as hhmmss"),
	str("ExperimentTimeUTC", 0x00B3, 7, "Experiment UTC Time as hhmmss"),
	scalar("ExposUnits", 0x00BA, KindInt16, "User Units for Exposure"),
	scalar("ADCoffset", 0x00BC, KindUint16, "ADC offset"),
	scalar("ADCrate", 0x00BE, KindUint16, "ADC rate"),
	scalar("ADCtype", 0x00C0, KindUint16, "ADC type"),
	scalar("ADCresolution", 0x00C2, KindUint16, "ADC resolution"),
	scalar("ADCbitAdjust", 0x00C4, KindUint16, "ADC bit adjust"),
	scalar("gain", 0x00C6, KindUint16, "gain"),
	strs("Comments", 0x00C8, 80, 5, "File Comments"),
	scalar("geometric", 0x0258, KindUint16, "geometric ops: rotate 0x01, reverse 0x02, flip 0x04"),
	str("xlabel", 0x025A, 16, "intensity display string"),
	scalar("cleans", 0x026A, KindUint16, "cleans"),
	scalar("NumSkpPerCln", 0x026C, KindUint16, "number of skips per clean"),
	array("SpecMirrorPos", 0x026E, KindInt16, 2, "Spectrograph Mirror Positions"),
	array("SpecSlitPos", 0x0272, KindFloat32, 4, "Spectrograph Slit Positions"),
	scalar("AutoCleansActive", 0x0282, KindInt16, "T/F"),
	scalar("UseContCleansInst", 0x0284, KindInt16, "T/F"),
	scalar("AbsorbStripNum", 0x0286, KindInt16, "Absorbance Strip Number"),
	scalar("SpecSlitPosUnits", 0x0288, KindInt16, "Spectrograph Slit Position Units"),
	scalar("SpecGrooves", 0x028A, KindFloat32, "Spectrograph Grating Grooves"),
	scalar("srccmp", 0x028E, KindInt16, "number of source comp. diodes"),
	scalar(FieldYDim, 0x0290, KindUint16, "y dimension of raw data"),
	scalar("scramble", 0x0292, KindInt16, "0=scrambled, 1=unscrambled"),
	scalar("ContinuousCleansFlag", 0x0294, KindInt16, "T/F Continuous Cleans Timing Option"),
	scalar("ExternalTriggerFlag", 0x0296, KindInt16, "T/F External Trigger Timing Option"),
	scalar("lnoscan", 0x0298, KindInt32, "Number of scans (Early WinX)"),
	scalar("lavgexp", 0x029C, KindInt32, "Number of Accumulations"),
	scalar("ReadoutTime", 0x02A0, KindFloat32, "Experiment readout time"),
	scalar("TriggeredModeFlag", 0x02A4, KindInt16, "T/F Triggered Timing Option"),
	spare("Spare_2", 0x02A6, 10),
	str("sw_version", 0x02B0, 16, "Version of SW creating this file"),
	scalar("type", 0x02C0, KindInt16, "controller type"),
	scalar("flatFieldApplied", 0x02C2, KindInt16, "1 if flat field was applied"),
	spare("Spare_3", 0x02C4, 16),
	scalar("kin_trig_mode", 0x02D4, KindInt16, "Kinetics Trigger Mode"),
	str("dlabel", 0x02D6, 16, "Data label"),
	spare("Spare_4", 0x02E6, 436),
	str("PulseFileName", 0x049A, 120, "Name of Pulser File with Pulse Widths/Delays (for Z-Slice)"),
	str("AbsorbFileName", 0x0512, 120, "Name of Absorbance File (if File Mode)"),
	scalar("NumExpRepeats", 0x058A, KindUint32, "Number of Times experiment repeated"),
	scalar("NumExpAccums", 0x058E, KindUint32, "Number of Times experiment accumulated"),
	scalar("YT_Flag", 0x0592, KindInt16, "Set to 1 if this file contains YT data"),
	scalar("clkspd_us", 0x0594, KindFloat32, "Vert Clock Speed in micro-sec"),
	scalar("HWaccumFlag", 0x0598, KindInt16, "set to 1 if accum done by Hardware"),
	scalar("StoreSync", 0x059A, KindInt16, "set to 1 if store sync used"),
	scalar("BlemishApplied", 0x059C, KindInt16, "set to 1 if blemish removal applied"),
	scalar("CosmicApplied", 0x059E, KindInt16, "set to 1 if cosmic ray removal applied"),
	scalar("CosmicType", 0x05A0, KindInt16, "if cosmic ray applied, this is type"),
	scalar("CosmicThreshold", 0x05A2, KindFloat32, "Threshold of cosmic ray removal"),
	scalar(FieldNumFrames, 0x05A6, KindInt32, "number of frames in file"),
	scalar("MaxIntensity", 0x05AA, KindFloat32, "max intensity of data (future)"),
	scalar("MinIntensity", 0x05AE, KindFloat32, "min intensity of data (future)"),
	str("ylabel", 0x05B2, 16, "y axis label"),
	scalar("ShutterType", 0x05C2, KindUint16, "shutter type"),
	scalar("shutterComp", 0x05C4, KindFloat32, "shutter compensation time"),
	scalar("readoutMode", 0x05C8, KindUint16, "readout mode, full, kinetics, etc."),
	scalar("WindowSize", 0x05CA, KindUint16, "window size for kinetics only"),
	scalar("clkspd", 0x05CC, KindUint16, "clock speed for kinetics & frame transfer"),
	scalar("interface_type", 0x05CE, KindUint16, "computer interface (isa-taxi, pci, eisa, etc.)"),
	scalar("NumROIsInExperiment", 0x05D0, KindInt16, "May be more than the 10 allowed in this header (if 0, assume 1)"),
	spare("Spare_5", 0x05D2, 16),
	scalar("controllerNum", 0x05E2, KindUint16, "controller number in a multiple controller system"),
	scalar("SWmade", 0x05E4, KindUint16, "Which software package created this file"),
	scalar("NumROI", 0x05E6, KindInt16, "number of ROIs used, if 0 assume 1"),
	block("ROIinfoblk", 0x05E8, ROISize, ROIMax, "ROI info blocks"),
	str("FlatField", 0x0660, 120, "Flat field file name"),
	str("background", 0x06D8, 120, "background sub file name"),
	str("blemish", 0x0750, 120, "blemish file name"),
	scalar("file_header_ver", 0x07C8, KindFloat32, "version of this file header"),
	str("YT_Info", 0x07CC, 1000, "Reserved for YT information"),
	scalar("WinView_id", 0x0BB4, KindInt32, "0x01234567L if file created by WinX"),
	block("xcalibration", 0x0BB8, CalibrationSize, 1, "x axis calibration"),
	block("ycalibration", 0x0DA1, CalibrationSize, 1, "y axis calibration"),
	str("Istring", 0x0F8A, 40, "special intensity scaling string"),
	spare("Spare_6", 0x0FB2, 25),
	scalar("SpecType", 0x0FCB, KindUint8, "spectrometer type (acton, spex, etc.)"),
	scalar("SpecModel", 0x0FCC, KindUint8, "spectrometer model (type dependent)"),
	scalar("PulseBurstUsed", 0x0FCD, KindUint8, "pulser burst mode on/off"),
	scalar("PulseBurstCount", 0x0FCE, KindUint32, "pulser triggers per burst"),
	scalar("PulseBurstPeriod", 0x0FD2, KindFloat64, "pulser burst period (in usec)"),
	scalar("PulseBracketUsed", 0x0FDA, KindUint8, "pulser bracket pulsing on/off"),
	scalar("PulseBracketType", 0x0FDB, KindUint8, "pulser bracket pulsing type"),
	scalar("PulseTimeConstFast", 0x0FDC, KindFloat64, "pulser fast exponential time constant (in usec)"),
	scalar("PulseAmplitudeFast", 0x0FE4, KindFloat64, "pulser fast exponential amplitude constant"),
	scalar("PulseTimeConstSlow", 0x0FEC, KindFloat64, "pulser slow exponential time constant (in usec)"),
	scalar("PulseAmplitudeSlow", 0x0FF4, KindFloat64, "pulser slow exponential amplitude constant"),
	scalar("AnalogGain", 0x0FFC, KindInt16, "analog gain"),
	scalar("AvGainUsed", 0x0FFE, KindInt16, "avalanche gain was used"),
	scalar("AvGain", 0x1000, KindInt16, "avalanche gain value"),
	scalar("lastvalue", 0x1002, KindInt16, "Always the last value in the header"),
})

/*
Calibration block layout, 489 bytes, relative to the block start.
*/
var calibrationLayout = newLayout("calibration", CalibrationSize, []Field{
	scalar("offset", 0, KindFloat64, "offset for absolute data scaling"),
	scalar("factor", 8, KindFloat64, "factor for absolute data scaling"),
	scalar("current_unit", 16, KindInt8, "selected scaling unit"),
	spare("reserved1", 17, 1),
	str("string", 18, 40, "special string for scaling"),
	spare("reserved2", 58, 40),
	scalar("calib_valid", 98, KindInt8, "flag if calibration is valid"),
	scalar("input_unit", 99, KindInt8, "current input units for calib_value"),
	scalar("polynom_unit", 100, KindInt8, "linear unit and used in polynom_coeff"),
	scalar("polynom_order", 101, KindInt8, "order of calibration polynom"),
	scalar("calib_count", 102, KindInt8, "valid calibration data pairs"),
	array("pixel_position", 103, KindFloat64, 10, "pixel pos of calibration data"),
	array("calib_value", 183, KindFloat64, 10, "calibration value at above pos"),
	array("polynom_coeff", 263, KindFloat64, 6, "polynom coefficients"),
	scalar("laser_position", 311, KindFloat64, "laser wavenumber for relative WN"),
	spare("reserved3", 319, 1),
	scalar("new_calib_flag", 320, KindUint8, "If set to 200, valid label below"),
	str("calib_label", 321, 81, "Calibration label (null term'd)"),
	spare("expansion", 402, 87),
})

/*
ROI block layout, 12 bytes, relative to the block start.
*/
var roiLayout = newLayout("roi", ROISize, []Field{
	scalar("startx", 0, KindUint16, "left x start value"),
	scalar("endx", 2, KindUint16, "right x value"),
	scalar("groupx", 4, KindUint16, "amount x is binned/grouped in hw"),
	scalar("starty", 6, KindUint16, "top y start value"),
	scalar("endy", 8, KindUint16, "bottom y value"),
	scalar("groupy", 10, KindUint16, "amount y is binned/grouped in hw"),
})

// HeaderLayout returns the SPE 2.5 header layout.
func HeaderLayout() *Layout {
	return headerLayout
}

// CalibrationLayout returns the layout of one calibration block.
func CalibrationLayout() *Layout {
	return calibrationLayout
}

// ROILayout returns the layout of one ROI block.
func ROILayout() *Layout {
	return roiLayout
}
