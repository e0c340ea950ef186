package apps

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/simpletemp/internal/client/docstore"
	"github.com/dmitrijs2005/simpletemp/internal/client/models"
	"github.com/dmitrijs2005/simpletemp/internal/common"
	"github.com/dmitrijs2005/simpletemp/internal/logging"
)

// Document type and property names of the single app document.
const (
	// DocType tags the app document.
	DocType = "app"

	// Properties of the app document. Salt and init vector are base64 encoded.
	PropSalt     = "app_salt"
	PropInitVec  = "app_init_vec"
	PropID       = "app_id"
	PropPassword = "app_password"
)

// DocumentRepository implements Repository over a docstore.Store.
type DocumentRepository struct {
	store docstore.Store
	log   logging.Logger

	mu     sync.Mutex
	cached *models.App
}

// NewDocumentRepository returns a Repository keeping the app in store.
func NewDocumentRepository(store docstore.Store, log logging.Logger) *DocumentRepository {
	return &DocumentRepository{store: store, log: log}
}

func (r *DocumentRepository) GetApp(ctx context.Context) (*models.App, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getApp(ctx)
}

func (r *DocumentRepository) getApp(ctx context.Context) (*models.App, error) {
	if r.cached != nil {
		return r.cached, nil
	}

	docs, err := r.store.Query(ctx, docstore.Query{Type: DocType})
	if err != nil {
		return nil, fmt.Errorf("failed to query app: %w", err)
	}
	if len(docs) == 0 {
		return nil, nil
	}

	app, err := decode(docs[0])
	if err != nil {
		return nil, err
	}
	r.cached = app

	if len(docs) > 1 {
		r.log.Warn(ctx, "more than one app record found, using the oldest",
			"count", len(docs), "doc_id", docs[0].ID)
		return app, fmt.Errorf("%w: %d app records", common.ErrIntegrity, len(docs))
	}
	return app, nil
}

func (r *DocumentRepository) RegisterApp(ctx context.Context, app *models.App) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, err := r.getApp(ctx)
	if existing != nil {
		return common.ErrAlreadyRegistered
	}
	if err != nil {
		return err
	}

	doc := encode(app)
	if err := r.store.Save(ctx, doc); err != nil {
		return fmt.Errorf("failed to save app: %w", err)
	}

	cp := *app
	r.cached = &cp
	return nil
}

func encode(app *models.App) *docstore.Document {
	doc := docstore.NewDocument("", DocType)
	doc.Set(PropSalt, base64.StdEncoding.EncodeToString(app.Salt))
	doc.Set(PropInitVec, base64.StdEncoding.EncodeToString(app.InitVector))
	doc.Set(PropID, app.ID)
	doc.Set(PropPassword, app.Password)
	return doc
}

func decode(doc *docstore.Document) (*models.App, error) {
	salt, err := base64.StdEncoding.DecodeString(doc.String(PropSalt))
	if err != nil {
		return nil, fmt.Errorf("%w: app[%s] salt: %w", common.ErrIntegrity, doc.ID, err)
	}
	iv, err := base64.StdEncoding.DecodeString(doc.String(PropInitVec))
	if err != nil {
		return nil, fmt.Errorf("%w: app[%s] init vector: %w", common.ErrIntegrity, doc.ID, err)
	}
	return &models.App{
		Salt:       salt,
		InitVector: iv,
		ID:         doc.String(PropID),
		Password:   doc.String(PropPassword),
	}, nil
}
