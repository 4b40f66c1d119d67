// Package spe reads Princeton Instruments / Roper Scientific SPE 2.5 image
// files as written by WinView and WinSpec.
//
// An SPE file is a 4100-byte little-endian header followed by one or more
// frames of pixels. Each frame is ydim rows of xdim pixels stored row-major;
// every pixel uses the representation selected by the header's datatype
// code (float32, int32, int16 or uint16). All pixel values are returned as
// float64.
//
// # Opening Files
//
//	f, err := spe.Open("scan.spe")
//	if errors.Is(err, spe.ErrNotFound) {
//	    // no such file
//	}
//	defer f.Close()
//
//	fmt.Println(f.Rows(), f.Columns(), f.Frames(), f.Datatype())
//
// The header is decoded once when the file is opened. [File.Metadata]
// exposes every header field as a snapshot; [File.Reopen] points the File
// at another path (or the same one after it changed on disk) and decodes a
// new header.
//
// # Reading Pixels
//
//	v, err := f.Pixel(row, col, 0)
//	frame, err := f.Frame(0)
//	avg, err := f.AverageFrame()
//
// Pixel data is never cached. Reads past the end of the file produce zeros
// and an unknown datatype produces zero frames, so damaged files can still
// be inspected. Open with [WithStrict] to get errors instead.
//
// # Listing Files
//
// [Glob] lists the SPE files in a directory and [Walk] opens each of them
// in turn.
//
// # Key Types and Functions
//
//   - [Open]: Opens a file and decodes its header
//   - [File]: An open file
//   - [Frame]: A decoded frame
//   - [Metadata]: The decoded header
//   - [Glob]: Lists SPE files in a directory
//   - [Walk]: Visits every SPE file in a directory
package spe
