// Package cache provides the content-addressed store for rendered artifacts.
//
// Entries live in a flat directory:
//
//	.markypond_cache/
//	  892897f8289a8ee303e506e3ce18b8cc.png
//	  892897f8289a8ee303e506e3ce18b8cc.svg
//
// The file name stem is the MD5 digest of the renderer input and the extension
// is the output format. An entry is valid forever once it exists; there is no
// index, metadata or invalidation.
package cache

import (
	"crypto/md5" // #nosec G501 - cache key, not a security boundary
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/markypond/internal/options"
)

// Digest returns the hex digest used as the cache file stem for source.
// Changing the algorithm orphans every previously warmed cache.
func Digest(source string) string {
	sum := md5.Sum([]byte(source)) // #nosec G401
	return hex.EncodeToString(sum[:])
}

// Entry locates one cached artifact.
type Entry struct {
	Hash   string
	Format options.Format
	Path   string
}

// Store is a directory of cached artifacts.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir. Nothing is created on disk until Prepare.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the store root.
func (s *Store) Dir() string { return s.dir }

// Path returns the file path for hash in format f.
func (s *Store) Path(hash string, f options.Format) string {
	return filepath.Join(s.dir, hash) + "." + string(f)
}

// EntryFor computes the entry for source rendered as f.
func (s *Store) EntryFor(source string, f options.Format) Entry {
	hash := Digest(source)
	return Entry{Hash: hash, Format: f, Path: s.Path(hash, f)}
}

// Prepare creates the store directory and any missing parents.
func (s *Store) Prepare() error {
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return fmt.Errorf("create cache directory %s: %w", s.dir, err)
	}
	return nil
}

// Exists reports whether the entry file is present.
func (s *Store) Exists(e Entry) (bool, error) {
	_, err := os.Stat(e.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat cache entry: %w", err)
	}
	return true, nil
}
