// Package loader moves CSV rows from scanned data files into a store
// transaction.
//
// The loader package is responsible for:
//   - Decoding a data file into typed rows with the configured codec
//   - Bulk inserting those rows through dexdb.Tx.InsertRows
//
// Statements run inside the caller's transaction; the loader never commits.
package loader
