// Package keyval provides the durable key-value storage backends used to
// persist flagged state fields across restarts.
//
// The Store interface is deliberately narrow: whole-value get/set/delete
// under string keys, no transactions, no partial updates. State containers
// serialize each persisted field to JSON and hand the bytes to a Store;
// everything about layout and durability is the backend's business.
//
// Four backends ship with the runtime:
//
//   - MemoryStore: process-local map, the default for tests and ephemeral
//     apps.
//   - FileStore: one file per key in a directory, atomic replace on write.
//   - SQLStore: a single table on PostgreSQL, MySQL, or SQLite, with
//     embedded schema migrations.
//   - S3Store: one object per key under a bucket prefix.
//
// All implementations are safe for concurrent use. A missing key is not an
// error: Get returns (nil, nil).
package keyval
