// Package dtype provides SPE pixel datatype handling and conversion to Go
// values.
//
// An SPE header stores a small integer datatype code at offset 0x006C that
// selects the on-disk representation of every pixel in the file:
//
//	Code | On disk            | Width | Go type
//	-----|--------------------|-------|---------
//	0    | IEEE-754 float     | 4     | float32
//	1    | signed integer     | 4     | int32
//	2    | signed integer     | 2     | int16
//	3    | unsigned integer   | 2     | uint16
//
// Every code is widened to float64 when decoded, so callers see a single
// numeric representation regardless of how the file was written. Integer
// pixels are converted directly; no scaling or calibration is applied.
//
// Codes outside this table are "unrecognized". [Datatype.Size] reports 0
// for them and [Decode] produces zeros rather than failing, which lets the
// frame accessor return a zero-filled frame of the declared shape.
//
// # Key Functions
//
//   - [Datatype.Size]: Width in bytes of one pixel
//   - [Datatype.Valid]: Reports whether the code is recognized
//   - [Value]: Decodes a single pixel
//   - [Decode]: Decodes a run of pixels into a float64 slice
package dtype
