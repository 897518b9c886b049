// Package filesys provides the file system seam used by the configuration
// loader, so that loading can be tested without touching the disk.
package filesys

import (
	"errors"
	"io/fs"
	"os"
)

// ReadFS is the tiny surface the config loader needs.
// Configuration is never written back, so there are no mutating methods.
type ReadFS interface {
	Stat(string) (fs.FileInfo, error)
	ReadFile(string) ([]byte, error)
}

// OS returns a file system implementation that delegates to the standard library.
func OS() OsFS {
	return OsFS{}
}

// OsFS implements ReadFS against the local disk.
type OsFS struct{}

func (OsFS) Stat(p string) (fs.FileInfo, error) { return os.Stat(p) }
func (OsFS) ReadFile(p string) ([]byte, error)  { return os.ReadFile(p) }

var _ ReadFS = OsFS{}

// Exists reports whether p names an existing file. Any Stat error other
// than fs.ErrNotExist is returned.
func Exists(fsys ReadFS, p string) (bool, error) {
	_, err := fsys.Stat(p)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}
