package profiles

import (
	"context"

	"github.com/dmitrijs2005/simpletemp/internal/client/models"
)

type Repository interface {
	// Save upserts p by its ID, assigning a fresh random ID when empty.
	Save(ctx context.Context, p *models.Person) error

	// Get returns the profile with id, or common.ErrNotFound.
	Get(ctx context.Context, id string) (*models.Person, error)

	// List returns every profile, least recently saved first.
	List(ctx context.Context) ([]models.Person, error)
}
