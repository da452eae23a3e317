package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/markypond/internal/options"
)

func TestDigestIsStableMD5(t *testing.T) {
	require.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", Digest(""))
	require.Equal(t, Digest("c d e"), Digest("c d e"))
	require.NotEqual(t, Digest("c d e"), Digest("c d f"))
}

func TestStoreEntryLayout(t *testing.T) {
	s := NewStore("my/custom/cache/dir")
	e := s.EntryFor("c d e", options.FormatSVG)
	require.Equal(t, Digest("c d e"), e.Hash)
	require.Equal(t, filepath.Join("my/custom/cache/dir", e.Hash)+".svg", e.Path)

	other := s.EntryFor("c d e", options.FormatPNG)
	require.Equal(t, e.Hash, other.Hash)
	require.NotEqual(t, e.Path, other.Path)
}

func TestStorePrepareAndExists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cache")
	s := NewStore(dir)
	require.NoError(t, s.Prepare())
	require.NoError(t, s.Prepare())

	e := s.EntryFor("c d e", options.FormatPNG)
	ok, err := s.Exists(e)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, os.WriteFile(e.Path, []byte("png"), 0o600))
	ok, err = s.Exists(e)
	require.NoError(t, err)
	require.True(t, ok)
}
