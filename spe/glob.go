package spe

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Ext is the extension of SPE files. It is matched case-insensitively.
const Ext = ".spe"

// Glob returns the paths of the SPE files directly inside dir, sorted by
// name. Subdirectories are not searched. A directory that does not exist
// yields no paths and no error.
func Glob(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), Ext) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	slices.Sort(paths)
	return paths, nil
}

// WalkFunc is called for each file visited by Walk.
// f is nil when err is non-nil. Walk closes f after the call returns.
// Return nil to continue walking, or an error to stop.
type WalkFunc func(path string, f *File, err error) error

// Walk opens every SPE file returned by Glob(dir) in turn and calls fn
// with it. Files that fail to open are passed to fn with the error.
//
// Example:
//
//	spe.Walk(dir, func(path string, f *spe.File, err error) error {
//	    if err != nil {
//	        return nil // skip
//	    }
//	    fmt.Println(path, f.Rows(), f.Columns(), f.Frames())
//	    return nil
//	})
func Walk(dir string, fn WalkFunc, opts ...FileOption) error {
	paths, err := Glob(dir)
	if err != nil {
		return err
	}
	for _, path := range paths {
		if err := visit(path, fn, opts); err != nil {
			return err
		}
	}
	return nil
}

func visit(path string, fn WalkFunc, opts []FileOption) error {
	f, err := Open(path, opts...)
	if err != nil {
		return fn(path, nil, err)
	}
	defer f.Close()
	return fn(path, f, nil)
}
