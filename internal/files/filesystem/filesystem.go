package filesystem

import (
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
type FileInfo = fs.FileInfo

// FileSystemProvider gives access to the data directory.
//
// Missing paths are reported with errors satisfying errors.Is(err, fs.ErrNotExist)
// in every implementation, so callers can translate them uniformly.
type FileSystemProvider interface {
	// ReadFile reads the whole file at path.
	ReadFile(path string) ([]byte, error)

	// ReadDir lists the entries directly under path, sorted by name.
	ReadDir(path string) ([]FileInfo, error)

	// Stat returns file information for the given path.
	Stat(path string) (FileInfo, error)

	// MkdirAll creates path and any missing parents.
	MkdirAll(path string) error

	// WriteFileAtomic replaces the file at path with data. Readers observe
	// either the previous content or the new content, never a partial write.
	WriteFileAtomic(path string, data []byte) error
}
