// Package docstore is the embedded document database used by the client.
//
// Two engines implement Store:
//
//   - SQLiteStore keeps documents as JSON in a goose-migrated SQLite table
//     and filters on properties with json_extract.
//   - BadgerStore keeps the same JSON in BadgerDB under a document key plus
//     a sequence index and a per-type index.
//
// Both number documents with a store-wide, strictly increasing sequence that
// defines result order and drives replication change feeds.
//
// Errors: a missing document is common.ErrNotFound; engine failures wrap
// common.ErrStorage together with the underlying error.
package docstore
