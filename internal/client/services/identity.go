package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/simpletemp/internal/client/models"
	"github.com/dmitrijs2005/simpletemp/internal/client/repositories/apps"
	"github.com/dmitrijs2005/simpletemp/internal/common"
	"github.com/dmitrijs2005/simpletemp/internal/dispatch"
	"github.com/dmitrijs2005/simpletemp/internal/logging"
)

// IdentityService runs the login screen flow: it pairs the AuthManager with
// the persisted App record. Store access happens on the database queue.
type IdentityService interface {
	IsRegistered(ctx context.Context) (bool, error)

	// Register creates and persists the App record. Fails with
	// common.ErrAlreadyRegistered when one exists.
	Register(ctx context.Context, password []byte) error

	// Login validates password against the App record. A wrong password is
	// (false, nil); common.ErrNotRegistered means there is nothing to check.
	Login(ctx context.Context, password []byte) (bool, error)
}

type identityService struct {
	auth AuthManager
	apps apps.Repository
	db   *dispatch.Queue
	log  logging.Logger
}

func NewIdentityService(auth AuthManager, apps apps.Repository, db *dispatch.Queue, log logging.Logger) IdentityService {
	return &identityService{auth: auth, apps: apps, db: db, log: log}
}

func (s *identityService) IsRegistered(ctx context.Context) (bool, error) {
	app, err := s.loadApp(ctx)
	if err != nil {
		return false, err
	}
	return app != nil, nil
}

func (s *identityService) Register(ctx context.Context, password []byte) error {
	return s.db.Do(ctx, func(ctx context.Context) error {
		existing, err := s.apps.GetApp(ctx)
		if existing != nil {
			return common.ErrAlreadyRegistered
		}
		if err != nil {
			return fmt.Errorf("app lookup error: %w", err)
		}

		app, err := s.auth.Register(password)
		if err != nil {
			return fmt.Errorf("register error: %w", err)
		}
		if err := s.apps.RegisterApp(ctx, app); err != nil {
			s.auth.Reset()
			return fmt.Errorf("app saving error: %w", err)
		}

		s.log.Info(ctx, "app registered")
		return nil
	})
}

func (s *identityService) Login(ctx context.Context, password []byte) (bool, error) {
	app, err := s.loadApp(ctx)
	if err != nil {
		return false, err
	}
	if app == nil {
		return false, common.ErrNotRegistered
	}

	ok := s.auth.Validate(app, password)
	if !ok {
		s.log.Info(ctx, "login failed")
	}
	return ok, nil
}

// loadApp tolerates an integrity error as long as a record was picked; the
// repository already logged the anomaly.
func (s *identityService) loadApp(ctx context.Context) (*models.App, error) {
	return dispatch.DoValue(ctx, s.db, func(ctx context.Context) (*models.App, error) {
		app, err := s.apps.GetApp(ctx)
		if err != nil && !(app != nil && errors.Is(err, common.ErrIntegrity)) {
			return nil, fmt.Errorf("app lookup error: %w", err)
		}
		return app, nil
	})
}
