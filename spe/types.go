package spe

import (
	"github.com/robert-malhotra/go-spe/internal/dtype"
	"github.com/robert-malhotra/go-spe/internal/header"
)

// Header types.
type (
	Metadata    = header.Metadata
	ROI         = header.ROI
	Calibration = header.Calibration
	Datatype    = dtype.Datatype
)

// Pixel datatypes.
const (
	Float32 = dtype.Float32
	Int32   = dtype.Int32
	Int16   = dtype.Int16
	Uint16  = dtype.Uint16
)

// DataStart is the file offset of the first pixel.
const DataStart = header.DataStart
