// Package scanner discovers the CSV files of a data directory.
//
// The scanner package is responsible for:
//   - Mapping each declared table to its <table>.csv file
//   - Reading file content and computing raw and normalized checksums
//   - Reporting CSV files that belong to no declared table
//
// The scanner is filesystem-agnostic through the filesystem.FileSystemProvider
// interface, enabling both production use with the OS filesystem and testing
// with in-memory filesystems.
package scanner
