// Package checksum hashes data files so a dump can tell whether a table's
// CSV actually changed.
//
// Two checksums are provided:
//
//   - Raw checksum: hash of the exact file content (detects all changes)
//   - Normalized checksum: hash after dropping a leading UTF-8 BOM and
//     converting CRLF line endings to LF
//
// Two files with equal normalized checksums decode to the same rows, so a
// dump that only changes the raw checksum is a formatting rewrite.
//
// # Example Usage
//
//	calculator := checksum.New()
//	if calculator.CalculateRaw(old) == calculator.CalculateRaw(new) {
//	    // leave the file untouched
//	}
//
// # Thread Safety
//
// SHA256 is safe for concurrent use by multiple goroutines.
package checksum
