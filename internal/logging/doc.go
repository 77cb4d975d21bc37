// Package logging provides concrete implementations of the dexdb.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Writes formatted messages to stderr, styled when attached to a terminal
//   - ZapLogger: Structured console or JSON output through go.uber.org/zap
//   - NullLogger: Discards all messages (useful for testing)
//   - RecordingLogger: Keeps messages in memory for assertions in tests
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
