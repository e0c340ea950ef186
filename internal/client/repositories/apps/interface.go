package apps

import (
	"context"

	"github.com/dmitrijs2005/simpletemp/internal/client/models"
)

// Repository is the IdentityStore.
type Repository interface {
	// GetApp returns the App record, or (nil, nil) when none is registered.
	GetApp(ctx context.Context) (*models.App, error)

	// RegisterApp persists app, failing with common.ErrAlreadyRegistered if a
	// record already exists.
	RegisterApp(ctx context.Context, app *models.App) error
}
