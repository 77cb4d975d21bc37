package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/vvka-141/dexdb/internal/checksum"
	"github.com/vvka-141/dexdb/internal/files/filesystem"
	"github.com/vvka-141/dexdb/pkg/dexdb"
)

// DataFile is the CSV source of one table.
type DataFile struct {
	Table       string
	Path        string
	Content     []byte
	SizeBytes   int64
	Checksum    string // normalized
	ChecksumRaw string
	ModifiedAt  time.Time
}

// ScanResult holds the files found for the declared tables.
type ScanResult struct {
	Dir   string
	files map[string]DataFile

	// Orphans lists CSV file names in the directory that match no declared
	// table, sorted.
	Orphans []string
}

// Lookup returns the data file for table, if it exists.
func (r ScanResult) Lookup(table string) (DataFile, bool) {
	f, ok := r.files[table]
	return f, ok
}

// Len returns the number of tables with a data file.
func (r ScanResult) Len() int {
	return len(r.files)
}

// Scanner reads data directories.
// Scanner is safe for concurrent use by multiple goroutines as long as
// the provided calculator and fsProvider are also thread-safe.
type Scanner struct {
	calculator checksum.Calculator
	fsProvider filesystem.FileSystemProvider
}

// NewScannerWithFS creates a new scanner with a custom filesystem provider.
// Panics if calculator or fsProvider is nil.
func NewScannerWithFS(calculator checksum.Calculator, fsProvider filesystem.FileSystemProvider) *Scanner {
	if calculator == nil {
		panic("calculator cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Scanner{
		calculator: calculator,
		fsProvider: fsProvider,
	}
}

// FilePath returns the path of table's data file under dir.
func FilePath(dir, table string) string {
	return filepath.Join(dir, table+dexdb.DataFileExtension)
}

// ScanDataDir reads the data file of every table in tables. Tables without a
// file are simply absent from the result. A missing directory is reported as
// dexdb.ErrSourceNotFound.
func (s *Scanner) ScanDataDir(dir string, tables []string) (ScanResult, error) {
	entries, err := s.fsProvider.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ScanResult{}, fmt.Errorf("%w: data directory %s does not exist", dexdb.ErrSourceNotFound, dir)
		}
		return ScanResult{}, fmt.Errorf("%w: failed to list %s: %v", dexdb.ErrIO, dir, err)
	}

	declared := make(map[string]bool, len(tables))
	for _, t := range tables {
		declared[t] = true
	}

	result := ScanResult{Dir: dir, files: make(map[string]DataFile)}
	for _, info := range entries {
		name := info.Name()
		if info.IsDir() || !strings.EqualFold(filepath.Ext(name), dexdb.DataFileExtension) {
			continue
		}
		table := strings.TrimSuffix(name, filepath.Ext(name))
		if !declared[table] || filepath.Ext(name) != dexdb.DataFileExtension {
			result.Orphans = append(result.Orphans, name)
			continue
		}

		file, err := s.processFile(dir, table, info)
		if err != nil {
			return ScanResult{}, err
		}
		result.files[table] = file
	}
	sort.Strings(result.Orphans)
	return result, nil
}

func (s *Scanner) processFile(dir, table string, info filesystem.FileInfo) (DataFile, error) {
	path := FilePath(dir, table)
	content, err := s.fsProvider.ReadFile(path)
	if err != nil {
		return DataFile{}, fmt.Errorf("%w: failed to read %s: %v", dexdb.ErrIO, path, err)
	}

	return DataFile{
		Table:       table,
		Path:        path,
		Content:     content,
		SizeBytes:   info.Size(),
		Checksum:    s.calculator.CalculateNormalized(content),
		ChecksumRaw: s.calculator.CalculateRaw(content),
		ModifiedAt:  info.ModTime(),
	}, nil
}
