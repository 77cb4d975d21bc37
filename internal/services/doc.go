// Package services implements the load, reload and dump commands.
//
// SyncService reads the data directory through the files sub-packages, talks
// to the store through a dexdb.Connector, and orders every table operation by
// the schema registry's foreign-key dependencies. Each command runs in a
// single transaction: it either commits completely or leaves the store as it
// found it.
package services
