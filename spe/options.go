package spe

import (
	"log/slog"

	"golang.org/x/text/encoding"

	"github.com/robert-malhotra/go-spe/internal/header"
)

// FileOption configures how a file is opened and read.
type FileOption func(*fileOptions)

type fileOptions struct {
	strict  bool
	logger  *slog.Logger
	charset encoding.Encoding
}

func defaultFileOptions() *fileOptions {
	return &fileOptions{
		logger:  slog.New(slog.DiscardHandler),
		charset: header.DefaultCharset,
	}
}

// WithStrict makes damaged content an error instead of reading as zeros.
// Open rejects incomplete headers, unknown datatypes, zero dimensions and
// files shorter than their declared frames; Pixel and Frame reject indices
// outside the declared shape.
func WithStrict() FileOption {
	return func(o *fileOptions) {
		o.strict = true
	}
}

// WithLogger sets the logger soft failures are reported to. By default
// nothing is logged.
func WithLogger(l *slog.Logger) FileOption {
	return func(o *fileOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithCharset sets the encoding of header strings (Windows-1252 by
// default). A nil encoding keeps the raw bytes.
func WithCharset(enc encoding.Encoding) FileOption {
	return func(o *fileOptions) {
		o.charset = enc
	}
}
