// Package storage persists uploaded photo files on local disk.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DiskStore stores photo files under a single flat directory. File names are
// generated once at upload time and never reused.
type DiskStore struct {
	dir string
}

// NewDiskStore returns a DiskStore rooted at dir.
func NewDiskStore(dir string) *DiskStore {
	return &DiskStore{dir: dir}
}

// GenerateFileName builds a unique on-disk name from the upload instant and
// the client-supplied name. The millisecond prefix keeps names collision-free
// and naturally ordered by upload time.
func GenerateFileName(original string, now time.Time) string {
	return fmt.Sprintf("U%d%s", now.UnixMilli(), SanitizeFileName(original))
}

// SanitizeFileName strips path components and characters that are unsafe in a
// flat file store. An empty result falls back to "photo".
func SanitizeFileName(name string) string {
	name = filepath.Base(name)
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
	name = strings.Trim(name, ".")
	if name == "" {
		return "photo"
	}
	return name
}

// isValidFileName rejects anything that could escape the store directory.
func isValidFileName(name string) bool {
	if name == "" || len(name) > 255 {
		return false
	}
	if strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return false
	}
	return true
}

// Put writes the photo bytes under the given file name.
func (s *DiskStore) Put(fileName string, data []byte) error {
	if !isValidFileName(fileName) {
		return fmt.Errorf("invalid file name %q", fileName)
	}
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, fileName), data, 0o600)
}

// Path resolves the on-disk path for fileName, confirming the file exists.
func (s *DiskStore) Path(fileName string) (string, error) {
	if !isValidFileName(fileName) {
		return "", fmt.Errorf("invalid file name %q", fileName)
	}
	full := filepath.Join(s.dir, fileName)
	if _, err := os.Stat(full); err != nil {
		return "", err
	}
	return full, nil
}

// Remove deletes the photo file. A missing file is not an error; the record
// is authoritative and blob deletion must be idempotent.
func (s *DiskStore) Remove(fileName string) error {
	if !isValidFileName(fileName) {
		return fmt.Errorf("invalid file name %q", fileName)
	}
	err := os.Remove(filepath.Join(s.dir, fileName))
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	// Remove the thumbnail alongside; its absence is equally fine.
	if terr := os.Remove(filepath.Join(s.dir, ThumbnailName(fileName))); terr != nil && !os.IsNotExist(terr) && err == nil {
		err = terr
	}
	return err
}
