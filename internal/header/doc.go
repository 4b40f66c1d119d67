// Package header decodes the fixed 4100-byte header of SPE 2.5 files.
//
// An SPE file starts with a header that occupies bytes 0x0000 through
// 0x1003; pixel data begins at [DataStart]. All multi-byte values are
// little-endian. Strings are fixed-width character arrays, normally padded
// with spaces and terminated by a NUL, and are decoded as Windows-1252 by
// default.
//
// # Layouts
//
// Field positions are described by three static tables, each a [Layout]:
//
//   - [HeaderLayout]: every field of the header, spares included
//   - [ROILayout]: one 12-byte region-of-interest block (10 per header)
//   - [CalibrationLayout]: one 489-byte axis calibration block (x and y)
//
// Every byte of a layout belongs to exactly one field. Exported struct
// fields of [Metadata], [ROI] and [Calibration] are bound to layout fields
// by their `spe` struct tag when the package is initialized.
//
// # Decoding
//
// [Metadata.Read] resets the metadata, reads the header region in one pass
// and decodes every field. ROI and calibration blocks then read the file
// again at their own offsets. A file that is shorter than the header is not
// an error for decoding purposes: fields the file does not cover keep their
// defaults (zero for numbers, blank padding for strings). The error Read
// returns reports the short read for callers that want to treat it as one.
//
//	m := header.New()
//	if err := m.Read(f); err != nil {
//	    // header incomplete; m is still usable
//	}
//	fmt.Println(m.XDim(), m.YDim(), m.Datatype(), m.NumFrames())
//
// # Key Types and Functions
//
//   - [Metadata]: Decoded header
//   - [ROI]: Region-of-interest block
//   - [Calibration]: Axis calibration block
//   - [Dump]: Writes a field-by-field listing of a header
//   - [Trim]: Returns the text of a fixed-width string field
package header
