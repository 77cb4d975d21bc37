// Package files groups the data directory handling into sub-packages:
//   - filesystem: filesystem abstraction (OS and in-memory) with atomic writes
//   - scanner: maps declared tables to their CSV files and checksums them
//   - loader: decodes scanned files and bulk inserts their rows
//
// # Usage
//
//	fsys := filesystem.NewOSFileSystem()
//	result, err := scanner.NewScannerWithFS(checksum.New(), fsys).ScanDataDir("data", registry.DependencyOrder())
//	file, ok := result.Lookup("languages")
//	l := loader.NewLoader(codec.Codec{})
//	rows, err := l.Decode(file, table)
//	n, err := l.Insert(ctx, tx, table, rows)
package files
