package header

import (
	"io"
	"reflect"

	"github.com/robert-malhotra/go-spe/internal/binary"
)

// ROI is one region-of-interest block: the sub-rectangle of the detector
// that was read out and its hardware binning. ROIs are descriptive only;
// they do not affect how pixels are addressed.
type ROI struct {
	StartX uint16 `spe:"startx"`
	EndX   uint16 `spe:"endx"`
	GroupX uint16 `spe:"groupx"`
	StartY uint16 `spe:"starty"`
	EndY   uint16 `spe:"endy"`
	GroupY uint16 `spe:"groupy"`
}

var roiBindings = bind(reflect.TypeOf(ROI{}), roiLayout)

// ROIOffset returns the file offset of ROI block i.
func ROIOffset(i int) int64 {
	f := headerLayout.must("ROIinfoblk", KindBlock)
	return int64(f.ElementOffset(i))
}

// Read decodes the block at offset from r. Fields the file does not cover
// are left at zero.
func (roi *ROI) Read(r io.ReaderAt, offset int64) error {
	roi.Reset()
	s := binary.NewSlice(offset, ROISize)
	err := s.Read(r)
	decodeFields(reflect.ValueOf(roi).Elem(), roiBindings, s, nil)
	return err
}

// Reset zeroes every field.
func (roi *ROI) Reset() {
	*roi = ROI{}
}
