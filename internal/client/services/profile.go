package services

import (
	"context"

	"github.com/dmitrijs2005/simpletemp/internal/client/models"
	"github.com/dmitrijs2005/simpletemp/internal/client/repositories/profiles"
	"github.com/dmitrijs2005/simpletemp/internal/cryptox"
	"github.com/dmitrijs2005/simpletemp/internal/dispatch"
)

type ProfileService interface {
	// Create returns a new unsaved profile with a fresh random id.
	Create() *models.Person
	Save(ctx context.Context, p *models.Person) error
	Get(ctx context.Context, id string) (*models.Person, error)
	List(ctx context.Context) ([]models.Person, error)
}

type profileService struct {
	profiles profiles.Repository
	db       *dispatch.Queue
}

func NewProfileService(profiles profiles.Repository, db *dispatch.Queue) ProfileService {
	return &profileService{profiles: profiles, db: db}
}

func (s *profileService) Create() *models.Person {
	return &models.Person{ID: cryptox.RandomString(models.PersonIDLength)}
}

func (s *profileService) Save(ctx context.Context, p *models.Person) error {
	return s.db.Do(ctx, func(ctx context.Context) error {
		return s.profiles.Save(ctx, p)
	})
}

func (s *profileService) Get(ctx context.Context, id string) (*models.Person, error) {
	return dispatch.DoValue(ctx, s.db, func(ctx context.Context) (*models.Person, error) {
		return s.profiles.Get(ctx, id)
	})
}

func (s *profileService) List(ctx context.Context) ([]models.Person, error) {
	return dispatch.DoValue(ctx, s.db, func(ctx context.Context) ([]models.Person, error) {
		return s.profiles.List(ctx)
	})
}
