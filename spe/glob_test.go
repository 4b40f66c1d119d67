package spe

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-spe/internal/dtype"
	"github.com/robert-malhotra/go-spe/internal/spetest"
)

func TestGlob(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"c.spe", "a.SPE", "b.Spe", "notes.txt", "spe", "d.spe.bak"} {
		spetest.WriteFile(t, dir, name, nil)
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "e.spe"), 0o755))

	paths, err := Glob(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.SPE"),
		filepath.Join(dir, "b.Spe"),
		filepath.Join(dir, "c.spe"),
	}, paths)
}

func TestGlobMissingDir(t *testing.T) {
	paths, err := Glob(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestGlobNotADirectory(t *testing.T) {
	path := spetest.WriteFile(t, t.TempDir(), "file.spe", nil)
	_, err := Glob(path)
	assert.Error(t, err)
}

func TestWalk(t *testing.T) {
	dir := t.TempDir()
	spetest.WriteFile(t, dir, "one.spe", spetest.New(2, 1, dtype.Uint16).AddFrame(1, 2).Bytes())
	spetest.WriteFile(t, dir, "two.spe", spetest.New(4, 3, dtype.Float32).Bytes())

	type visit struct {
		name string
		rows int
		cols int
	}
	var got []visit
	err := Walk(dir, func(path string, f *File, err error) error {
		require.NoError(t, err)
		got = append(got, visit{filepath.Base(path), f.Rows(), f.Columns()})
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []visit{{"one.spe", 1, 2}, {"two.spe", 3, 4}}, got)
}

func TestWalkStops(t *testing.T) {
	dir := t.TempDir()
	spetest.WriteFile(t, dir, "one.spe", nil)
	spetest.WriteFile(t, dir, "two.spe", nil)

	stop := errors.New("stop")
	calls := 0
	err := Walk(dir, func(path string, f *File, err error) error {
		calls++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestWalkReportsOpenErrors(t *testing.T) {
	dir := t.TempDir()
	spetest.WriteFile(t, dir, "bad.spe", nil)

	var openErr error
	err := Walk(dir, func(path string, f *File, err error) error {
		openErr = err
		assert.Nil(t, f)
		return nil
	}, WithStrict())
	require.NoError(t, err)
	assert.ErrorIs(t, openErr, ErrTruncated)
}
