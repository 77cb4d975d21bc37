// Package filesystem abstracts the data directory that holds one CSV file per
// table.
//
// Key interface:
//   - FileSystemProvider: reads data files and replaces them atomically
//
// Implementations:
//   - OSFileSystem: production implementation using the OS filesystem
//   - MemoryFileSystem: in-memory implementation for testing
package filesystem
