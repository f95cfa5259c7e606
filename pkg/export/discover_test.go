package export

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/jpfielding/dcmtags.go/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestDiscover_SortedMatchingFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.dcm"))
	touch(t, filepath.Join(dir, "a.dcm"))
	touch(t, filepath.Join(dir, "notes.txt"))
	touch(t, filepath.Join(dir, "sub", "c.dcm"))

	paths := Discover(context.Background(), dir, ".dcm", false)
	require.Len(t, paths, 2)
	assert.Equal(t, "a.dcm", filepath.Base(paths[0]))
	assert.Equal(t, "b.dcm", filepath.Base(paths[1]))
	for _, p := range paths {
		assert.True(t, filepath.IsAbs(p))
	}
}

func TestDiscover_Recursive(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.dcm"))
	touch(t, filepath.Join(dir, "sub", "deeper", "c.dcm"))

	paths := Discover(context.Background(), dir, ".dcm", true)
	assert.Len(t, paths, 2)
}

func TestDiscover_MissingDirIsEmpty(t *testing.T) {
	assert.Empty(t, Discover(context.Background(), filepath.Join(t.TempDir(), "nope"), ".dcm", false))
}

func TestDiscover_DisallowedExtensionIsEmpty(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "notes.txt"))
	assert.Empty(t, Discover(context.Background(), dir, ".txt", false))
	assert.Empty(t, Discover(context.Background(), dir, ".exe", false))
}

func TestDiscover_AllowedExtensionSet(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "vol.nii"))
	touch(t, filepath.Join(dir, "arch.gz"))
	touch(t, filepath.Join(dir, "img.dicom"))

	assert.Len(t, Discover(context.Background(), dir, ".nii", false), 1)
	assert.Len(t, Discover(context.Background(), dir, ".gz", false), 1)
	assert.Len(t, Discover(context.Background(), dir, ".dicom", false), 1)
}

func TestDiscover_LogsCarryContextAttrs(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.dcm"))

	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(logging.Logger(&buf, false, slog.LevelInfo))
	defer slog.SetDefault(prev)

	ctx := logging.AppendCtx(context.Background(), slog.String("run", "abc123"))
	Discover(ctx, dir, ".dcm", false)

	assert.Contains(t, buf.String(), "found matching files")
	assert.Contains(t, buf.String(), "run=abc123")
}

func TestDiscover_IgnoresDirectoriesMatchingExt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "fake.dcm"), 0o755))
	touch(t, filepath.Join(dir, "real.dcm"))

	paths := Discover(context.Background(), dir, ".dcm", false)
	require.Len(t, paths, 1)
	assert.Equal(t, "real.dcm", filepath.Base(paths[0]))
}
