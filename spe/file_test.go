package spe

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-spe/internal/dtype"
	"github.com/robert-malhotra/go-spe/internal/header"
	"github.com/robert-malhotra/go-spe/internal/spetest"
)

func openTest(t *testing.T, path string, opts ...FileOption) *File {
	t.Helper()
	f, err := Open(path, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestOpenNotFound(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.spe"))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestOpenEmptyFile(t *testing.T) {
	path := spetest.WriteFile(t, t.TempDir(), "empty.spe", nil)
	f := openTest(t, path)

	assert.Equal(t, path, f.Path())
	assert.Zero(t, f.Rows())
	assert.Zero(t, f.Columns())
	assert.Zero(t, f.Frames())
	assert.Equal(t, Float32, f.Datatype())
	assert.Equal(t, header.Blank(10), f.Metadata().Date)
	assert.False(t, f.Metadata().Complete())

	fr, err := f.Frame(0)
	require.NoError(t, err)
	assert.Empty(t, fr.Pix)

	_, err = f.AverageFrame()
	assert.ErrorIs(t, err, ErrNoFrames)
}

func TestOpenHeader(t *testing.T) {
	path := spetest.New(4, 3, dtype.Int16).
		AddFrame(1).
		Set("exp_sec", float32(2)).
		WriteFile(t, "scan.spe")
	f := openTest(t, path)

	assert.Equal(t, 3, f.Rows())
	assert.Equal(t, 4, f.Columns())
	assert.Equal(t, 1, f.Frames())
	assert.Equal(t, Int16, f.Datatype())
	assert.Equal(t, float32(2), f.Metadata().ExpSec)
	assert.True(t, f.Metadata().Complete())
}

func TestOpenStrict(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{
			name:    "empty",
			data:    nil,
			wantErr: ErrTruncated,
		},
		{
			name:    "unknown datatype",
			data:    spetest.New(2, 2, dtype.Datatype(99)).SetNumFrames(1).Bytes(),
			wantErr: ErrUnknownDatatype,
		},
		{
			name:    "zero width",
			data:    spetest.New(0, 2, dtype.Float32).Bytes(),
			wantErr: ErrInvalidDimensions,
		},
		{
			name:    "negative frames",
			data:    spetest.New(2, 2, dtype.Float32).SetNumFrames(-1).Bytes(),
			wantErr: ErrInvalidDimensions,
		},
		{
			name:    "missing frames",
			data:    spetest.New(2, 2, dtype.Float32).AddFrame(1, 2, 3, 4).SetNumFrames(3).Bytes(),
			wantErr: ErrTruncated,
		},
		{
			name: "valid",
			data: spetest.New(2, 2, dtype.Float32).AddFrame(1, 2, 3, 4).Bytes(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := spetest.WriteFile(t, t.TempDir(), "test.spe", tt.data)

			f, err := Open(path, WithStrict())
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, f)
				return
			}
			require.NoError(t, err)
			f.Close()

			// Without WithStrict every file opens.
			f, err = Open(path)
			require.NoError(t, err)
			f.Close()
		})
	}
}

func TestOpenLenientAcceptsDamage(t *testing.T) {
	for _, data := range [][]byte{
		nil,
		spetest.New(2, 2, dtype.Datatype(99)).SetNumFrames(1).Bytes(),
		spetest.New(2, 2, dtype.Float32).SetNumFrames(3).Bytes(),
	} {
		path := spetest.WriteFile(t, t.TempDir(), "test.spe", data)
		f, err := Open(path)
		require.NoError(t, err)
		f.Close()
	}
}

func TestReopen(t *testing.T) {
	dir := t.TempDir()
	a := spetest.WriteFile(t, dir, "a.spe", spetest.New(2, 2, dtype.Uint16).AddFrame(1, 2, 3, 4).Bytes())
	b := spetest.WriteFile(t, dir, "b.spe", spetest.New(3, 1, dtype.Uint16).AddFrame(9, 8, 7).AddFrame(6, 5, 4).Bytes())
	f := openTest(t, a)

	v, err := f.Pixel(0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	require.NoError(t, f.Reopen(b))

	assert.Equal(t, b, f.Path())
	assert.Equal(t, 1, f.Rows())
	assert.Equal(t, 3, f.Columns())
	assert.Equal(t, 2, f.Frames())
	v, err = f.Pixel(0, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 6.0, v)
}

func TestReopenSamePath(t *testing.T) {
	dir := t.TempDir()
	path := spetest.WriteFile(t, dir, "scan.spe", spetest.New(2, 2, dtype.Uint16).AddFrame(1, 2, 3, 4).Bytes())
	f := openTest(t, path)

	spetest.WriteFile(t, dir, "scan.spe", spetest.New(7, 1, dtype.Uint16).AddFrame(1, 2, 3, 4, 5, 6, 7).Bytes())
	require.NoError(t, f.Reopen(f.Path()))

	assert.Equal(t, path, f.Path())
	assert.Equal(t, 7, f.Columns())
	assert.Equal(t, 1, f.Rows())
}

func TestReopenKeepsMetadataSnapshot(t *testing.T) {
	dir := t.TempDir()
	path := spetest.WriteFile(t, dir, "scan.spe", spetest.New(2, 2, dtype.Uint16).AddFrame(1, 2, 3, 4).Bytes())
	f := openTest(t, path)

	m := f.Metadata()
	require.Equal(t, uint16(2), m.XDim())

	spetest.WriteFile(t, dir, "scan.spe", spetest.New(7, 1, dtype.Uint16).AddFrame(1).Bytes())
	require.NoError(t, f.Reopen(path))

	assert.Equal(t, uint16(2), m.XDim())
	assert.Equal(t, uint16(7), f.Metadata().XDim())
	assert.NotSame(t, m, f.Metadata())
}

func TestReopenStrictFailureKeepsState(t *testing.T) {
	dir := t.TempDir()
	good := spetest.WriteFile(t, dir, "good.spe", spetest.New(2, 2, dtype.Uint16).AddFrame(1, 2, 3, 4).Bytes())
	bad := spetest.WriteFile(t, dir, "bad.spe", spetest.New(5, 5, dtype.Datatype(99)).SetNumFrames(1).Bytes())
	f := openTest(t, good, WithStrict())

	require.ErrorIs(t, f.Reopen(bad), ErrUnknownDatatype)

	assert.Equal(t, good, f.Path())
	assert.Equal(t, uint16(2), f.Metadata().XDim())
	assert.Equal(t, Uint16, f.Datatype())
	_, err := f.Pixel(0, 0, 0)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestReopenMissing(t *testing.T) {
	dir := t.TempDir()
	path := spetest.WriteFile(t, dir, "scan.spe", spetest.New(1, 1, dtype.Uint16).Bytes())
	f := openTest(t, path)

	require.NoError(t, os.Remove(path))
	require.ErrorIs(t, f.Reopen(path), ErrNotFound)

	_, err := f.Pixel(0, 0, 0)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestClose(t *testing.T) {
	path := spetest.New(2, 2, dtype.Float32).AddFrame(1, 2, 3, 4).WriteFile(t, "scan.spe")
	f, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, f.Close())
	require.NoError(t, f.Close())

	_, err = f.Pixel(0, 0, 0)
	assert.ErrorIs(t, err, ErrClosed)
	_, err = f.Frame(0)
	assert.ErrorIs(t, err, ErrClosed)
	_, err = f.AverageFrame()
	assert.ErrorIs(t, err, ErrClosed)

	// Reopen revives a closed file.
	require.NoError(t, f.Reopen(path))
	v, err := f.Pixel(1, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 4.0, v)
	f.Close()
}

func TestGoType(t *testing.T) {
	tests := []struct {
		dt   dtype.Datatype
		want reflect.Type
	}{
		{dtype.Float32, reflect.TypeOf(float32(0))},
		{dtype.Int32, reflect.TypeOf(int32(0))},
		{dtype.Int16, reflect.TypeOf(int16(0))},
		{dtype.Uint16, reflect.TypeOf(uint16(0))},
	}
	for _, tt := range tests {
		t.Run(tt.dt.String(), func(t *testing.T) {
			f := openTest(t, spetest.New(1, 1, tt.dt).WriteFile(t, "scan.spe"))
			got, err := f.GoType()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	f := openTest(t, spetest.New(1, 1, dtype.Datatype(7)).WriteFile(t, "scan.spe"))
	_, err := f.GoType()
	assert.ErrorIs(t, err, ErrUnknownDatatype)
}

func TestWithCharset(t *testing.T) {
	path := spetest.New(1, 1, dtype.Float32).
		Set("ylabel", []byte{'2', 0xB0, 'C'}).
		WriteFile(t, "scan.spe")

	f := openTest(t, path)
	assert.Equal(t, "2°C", header.Trim(f.Metadata().YLabel))

	raw := openTest(t, path, WithCharset(nil))
	assert.Equal(t, "2\xb0C", header.Trim(raw.Metadata().YLabel))
}

func TestWithLogger(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	path := spetest.New(2, 2, dtype.Datatype(99)).SetNumFrames(1).WriteFile(t, "scan.spe")
	f := openTest(t, path, WithLogger(logger))

	fr, err := f.Frame(0)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0, 0}, fr.Pix)

	assert.Contains(t, logs.String(), "damaged SPE file")
	assert.Contains(t, logs.String(), "unknown pixel datatype")
}

func TestOversizedFrameWarns(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	// 100x100 pixels declared, but only the header is present.
	path := spetest.New(100, 100, dtype.Uint16).SetNumFrames(1).WriteFile(t, "scan.spe")
	f := openTest(t, path, WithLogger(logger))

	fr, err := f.Frame(0)
	require.NoError(t, err)
	assert.Len(t, fr.Pix, 10000)
	assert.Contains(t, logs.String(), "declared frame has more pixels than the file has bytes")

	logs.Reset()
	small := openTest(t, spetest.New(2, 2, dtype.Uint16).AddFrame(1, 2, 3, 4).WriteFile(t, "small.spe"), WithLogger(logger))
	_, err = small.Frame(0)
	require.NoError(t, err)
	assert.NotContains(t, logs.String(), "more pixels than the file")
}
