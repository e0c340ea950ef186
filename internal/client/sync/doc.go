// Package sync replicates report documents between the local store and the
// sync endpoint.
//
// A Replicator runs passes: push local changes since the push checkpoint,
// then pull remote changes since the pull checkpoint. Each direction applies
// its Filter to every candidate document. Checkpoints live in the metadata
// repository keyed by target, so they never replicate and switching targets
// starts over.
//
// DataSync is the fire-and-forget entry point used after a report is
// recorded: it runs one push-and-pull pass gated by ShouldSync on the
// network queue and logs the outcome.
package sync
