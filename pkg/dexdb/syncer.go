package dexdb

import "context"

// Syncer runs the three synchronization commands. Each call is one atomic
// transition Idle -> Running -> {Committed, RolledBack}: a failed call leaves
// the store in its prior committed state and must be re-run from scratch.
type Syncer interface {
	// Load creates every table and inserts every CSV row, in dependency order.
	Load(ctx context.Context, config SyncConfig) error

	// Reload drops every table in reverse dependency order, then loads.
	Reload(ctx context.Context, config SyncConfig) error

	// Dump rewrites every CSV file from the store's current contents.
	Dump(ctx context.Context, config SyncConfig) error
}
