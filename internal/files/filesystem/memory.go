package filesystem

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory files
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.isDir }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

type memoryFile struct {
	content []byte
	info    *memoryFileInfo
}

// MemoryFileSystem implements FileSystemProvider for in-memory testing.
// Relative paths are resolved against the root given to NewMemoryFileSystem.
// Safe for concurrent use.
type MemoryFileSystem struct {
	mu         sync.Mutex
	files      map[string]*memoryFile
	root       string
	writes     map[string]int
	failWrites map[string]error
}

// NewMemoryFileSystem creates a new in-memory filesystem.
// The root path is normalized to use forward slashes for virtual filesystem consistency.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	root = path.Clean(filepath.ToSlash(root))

	mfs := &MemoryFileSystem{
		files:      make(map[string]*memoryFile),
		root:       root,
		writes:     make(map[string]int),
		failWrites: make(map[string]error),
	}
	mfs.files[root] = newMemoryDir(root)
	return mfs
}

func newMemoryDir(p string) *memoryFile {
	return &memoryFile{info: &memoryFileInfo{
		name:    path.Base(p),
		mode:    0o755 | fs.ModeDir,
		modTime: time.Now(),
		isDir:   true,
	}}
}

func (mfs *MemoryFileSystem) resolve(p string) string {
	p = filepath.ToSlash(p)
	if !path.IsAbs(p) {
		p = path.Join(mfs.root, p)
	}
	return path.Clean(p)
}

// AddFile adds a file to the in-memory filesystem
func (mfs *MemoryFileSystem) AddFile(path string, content string) {
	mfs.AddFileWithTime(path, content, time.Now())
}

// AddFileWithTime adds a file with a specific modification time
func (mfs *MemoryFileSystem) AddFileWithTime(filePath string, content string, modTime time.Time) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.put(mfs.resolve(filePath), []byte(content), modTime)
}

func (mfs *MemoryFileSystem) put(absPath string, data []byte, modTime time.Time) {
	mfs.files[absPath] = &memoryFile{
		content: append([]byte(nil), data...),
		info: &memoryFileInfo{
			name:    path.Base(absPath),
			size:    int64(len(data)),
			mode:    DataFileMode,
			modTime: modTime,
		},
	}
	mfs.ensureDirectoriesExist(absPath)
}

// ensureDirectoriesExist creates directory entries for all parent directories
func (mfs *MemoryFileSystem) ensureDirectoriesExist(filePath string) {
	dir := path.Dir(filePath)
	if dir == "." || dir == "/" {
		return
	}
	if _, exists := mfs.files[dir]; exists {
		return
	}
	mfs.files[dir] = newMemoryDir(dir)
	mfs.ensureDirectoriesExist(dir)
}

// FailWrites makes every later WriteFileAtomic to filePath return err
// without touching the stored content.
func (mfs *MemoryFileSystem) FailWrites(filePath string, err error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.failWrites[mfs.resolve(filePath)] = err
}

// WriteCount reports how many times WriteFileAtomic succeeded for filePath.
func (mfs *MemoryFileSystem) WriteCount(filePath string) int {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	return mfs.writes[mfs.resolve(filePath)]
}

// ReadFile implements FileSystemProvider.ReadFile
func (mfs *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	file, exists := mfs.files[mfs.resolve(filePath)]
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: filePath, Err: fs.ErrNotExist}
	}
	if file.info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", filePath)
	}
	return append([]byte(nil), file.content...), nil
}

// ReadDir implements FileSystemProvider.ReadDir
func (mfs *MemoryFileSystem) ReadDir(dirPath string) ([]FileInfo, error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	absPath := mfs.resolve(dirPath)
	dir, exists := mfs.files[absPath]
	if !exists {
		return nil, &fs.PathError{Op: "readdir", Path: dirPath, Err: fs.ErrNotExist}
	}
	if !dir.info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dirPath)
	}

	prefix := strings.TrimSuffix(absPath, "/") + "/"
	var infos []FileInfo
	for p, f := range mfs.files {
		if !strings.HasPrefix(p, prefix) || strings.Contains(p[len(prefix):], "/") {
			continue
		}
		infos = append(infos, f.info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name() < infos[j].Name() })
	return infos, nil
}

// Stat implements FileSystemProvider.Stat
func (mfs *MemoryFileSystem) Stat(statPath string) (FileInfo, error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	file, exists := mfs.files[mfs.resolve(statPath)]
	if !exists {
		return nil, &fs.PathError{Op: "stat", Path: statPath, Err: fs.ErrNotExist}
	}
	return file.info, nil
}

// MkdirAll implements FileSystemProvider.MkdirAll
func (mfs *MemoryFileSystem) MkdirAll(dirPath string) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	absPath := mfs.resolve(dirPath)
	if f, exists := mfs.files[absPath]; exists {
		if !f.info.IsDir() {
			return fmt.Errorf("not a directory: %s", dirPath)
		}
		return nil
	}
	mfs.files[absPath] = newMemoryDir(absPath)
	mfs.ensureDirectoriesExist(absPath)
	return nil
}

// WriteFileAtomic implements FileSystemProvider.WriteFileAtomic
func (mfs *MemoryFileSystem) WriteFileAtomic(filePath string, data []byte) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	absPath := mfs.resolve(filePath)
	if err := mfs.failWrites[absPath]; err != nil {
		return err
	}
	if parent, exists := mfs.files[path.Dir(absPath)]; !exists || !parent.info.IsDir() {
		return &fs.PathError{Op: "write", Path: filePath, Err: fs.ErrNotExist}
	}
	mfs.put(absPath, data, time.Now())
	mfs.writes[absPath]++
	return nil
}
