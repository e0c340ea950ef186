package reports

import (
	"context"

	"github.com/dmitrijs2005/simpletemp/internal/client/models"
)

type Repository interface {
	// Add stores a new report and fills in its ID.
	Add(ctx context.Context, rep *models.Report) error

	// ListByOwner returns the reports of a hashed owner id, oldest first.
	ListByOwner(ctx context.Context, ownerID string) ([]models.Report, error)

	// Recent returns (timestamp, temperature) samples for a hashed owner id.
	Recent(ctx context.Context, ownerID string) ([]models.Sample, error)
}
