package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureParentDir(t *testing.T) {
	target := filepath.Join(t.TempDir(), "sub", "folder", "out.png")
	require.NoError(t, EnsureParentDir(target))

	info, err := os.Stat(filepath.Dir(target))
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestCopyFileOverwrites(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")
	require.NoError(t, os.WriteFile(src, []byte{0x89, 'P', 'N', 'G'}, 0o644))
	require.NoError(t, os.WriteFile(dst, []byte("an older and much longer artifact"), 0o600))

	require.NoError(t, CopyFile(src, dst))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, []byte{0x89, 'P', 'N', 'G'}, got)

	info, err := os.Stat(dst)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestCopyFileMissingSource(t *testing.T) {
	dir := t.TempDir()
	err := CopyFile(filepath.Join(dir, "nope"), filepath.Join(dir, "dst"))
	require.Error(t, err)
	require.True(t, os.IsNotExist(err))
}

func TestCopyFileOntoItself(t *testing.T) {
	path := filepath.Join(t.TempDir(), "same.png")
	require.NoError(t, os.WriteFile(path, []byte("artifact"), 0o600))

	require.NoError(t, CopyFile(path, filepath.Join(filepath.Dir(path), ".", "same.png")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "artifact", string(got))
}
