package client

import (
	"context"

	"github.com/dmitrijs2005/simpletemp/internal/client/docstore"
)

// Transport moves documents between the local store and the sync endpoint.
type Transport interface {
	// Push sends docs and returns how many the endpoint accepted. Pushing a
	// document id twice is harmless.
	Push(ctx context.Context, docs []docstore.Document) (int, error)

	// Pull returns remote documents changed after the since checkpoint and
	// the checkpoint to use next time.
	Pull(ctx context.Context, since int64) ([]docstore.Document, int64, error)

	Close() error
}
