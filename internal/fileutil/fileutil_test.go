package fileutil_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/encutil/internal/fileutil"
)

func TestTempFileCommit(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "out")

	tmp, err := fileutil.NewTempFile(target)
	require.NoError(t, err)

	defer tmp.Cleanup()

	assert.Equal(t, dir, filepath.Dir(tmp.Name()))
	assert.NoFileExists(t, target)

	_, err = tmp.WriteString("contents")
	require.NoError(t, err)
	require.NoError(t, tmp.Commit(0o600))

	tmp.Cleanup()

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "contents", string(got))

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	assert.NoFileExists(t, tmp.Name())
}

func TestTempFileCleanup(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "out")
	require.NoError(t, os.WriteFile(target, []byte("previous"), 0o600))

	tmp, err := fileutil.NewTempFile(target)
	require.NoError(t, err)

	_, err = tmp.WriteString("partial")
	require.NoError(t, err)

	tmp.Cleanup()

	assert.NoFileExists(t, tmp.Name())

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(got))
}

func TestNewTempFileMissingDirectory(t *testing.T) {
	t.Parallel()

	_, err := fileutil.NewTempFile(filepath.Join(t.TempDir(), "missing", "out"))
	require.Error(t, err)
}

func TestFinalizeOutput(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out")
	require.NoError(t, os.WriteFile(path, make([]byte, 42), 0o600))

	modTime := time.Date(2020, time.January, 2, 3, 4, 5, 0, time.UTC)

	size, err := fileutil.FinalizeOutput(path, true, modTime)
	require.NoError(t, err)
	assert.Equal(t, int64(42), size)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(modTime))

	_, err = fileutil.FinalizeOutput(filepath.Join(t.TempDir(), "missing"), false, modTime)
	require.Error(t, err)
}

func TestOutputMode(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("execute bits are not tracked on windows")
	}

	dir := t.TempDir()

	for mode, want := range map[os.FileMode]os.FileMode{
		0o644: 0o600,
		0o600: 0o600,
		0o755: 0o711,
		0o701: 0o711,
	} {
		path := filepath.Join(dir, mode.String())
		require.NoError(t, os.WriteFile(path, nil, 0o600))
		require.NoError(t, os.Chmod(path, mode))

		info, err := os.Stat(path)
		require.NoError(t, err)

		assert.Equal(t, want != 0o600, fileutil.IsExec(info), mode.String())
		assert.Equal(t, want, fileutil.OutputMode(info), mode.String())
	}
}
