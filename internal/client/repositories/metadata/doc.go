// Package metadata is a small key/value table next to the document store.
// It holds local bookkeeping that must never replicate, such as the sync
// checkpoints.
package metadata
