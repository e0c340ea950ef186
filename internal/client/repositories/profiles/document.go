package profiles

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/simpletemp/internal/client/docstore"
	"github.com/dmitrijs2005/simpletemp/internal/client/models"
	"github.com/dmitrijs2005/simpletemp/internal/common"
	"github.com/dmitrijs2005/simpletemp/internal/cryptox"
)

// Document type and property names of profile documents.
const (
	// DocType tags profile documents.
	DocType = "profile"

	// Properties of a profile document.
	PropID         = "profile_id"
	PropName       = "profile_name"
	PropBirthYear  = "profile_birth_year"
	PropStreet     = "profile_street"
	PropCity       = "profile_city"
	PropState      = "profile_state"
	PropZip        = "profile_zip"
	PropConditions = "profile_conditions"
)

// DocumentRepository implements Repository over a docstore.Store.
type DocumentRepository struct {
	store docstore.Store
}

// NewDocumentRepository returns a Repository keeping profiles in store.
func NewDocumentRepository(store docstore.Store) *DocumentRepository {
	return &DocumentRepository{store: store}
}

func (r *DocumentRepository) Save(ctx context.Context, p *models.Person) error {
	if p.ID == "" {
		p.ID = cryptox.RandomString(models.PersonIDLength)
	}

	doc := docstore.NewDocument("", DocType)
	existing, err := r.find(ctx, p.ID)
	switch {
	case err == nil:
		doc.ID = existing.ID
	case !errors.Is(err, common.ErrNotFound):
		return err
	}

	doc.Set(PropID, p.ID)
	doc.Set(PropName, p.Name)
	if p.BirthYear != 0 {
		doc.Set(PropBirthYear, p.BirthYear)
	}
	doc.Set(PropStreet, p.Street)
	doc.Set(PropCity, p.City)
	doc.Set(PropState, p.State)
	doc.Set(PropZip, p.Zip)

	conditions := make([]string, len(p.Conditions))
	for i, c := range p.Conditions {
		conditions[i] = string(c)
	}
	doc.Set(PropConditions, conditions)

	if err := r.store.Save(ctx, doc); err != nil {
		return fmt.Errorf("failed to save profile[%s]: %w", p.ID, err)
	}
	return nil
}

func (r *DocumentRepository) Get(ctx context.Context, id string) (*models.Person, error) {
	doc, err := r.find(ctx, id)
	if err != nil {
		return nil, err
	}
	p := decode(doc)
	return &p, nil
}

func (r *DocumentRepository) List(ctx context.Context) ([]models.Person, error) {
	docs, err := r.store.Query(ctx, docstore.Query{Type: DocType})
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	result := make([]models.Person, 0, len(docs))
	for _, d := range docs {
		result = append(result, decode(d))
	}
	return result, nil
}

// find returns the unique document for profile id.
func (r *DocumentRepository) find(ctx context.Context, id string) (*docstore.Document, error) {
	docs, err := r.store.Query(ctx, docstore.Query{
		Type:   DocType,
		Equals: map[string]string{PropID: id},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get profile[%s]: %w", id, err)
	}
	switch len(docs) {
	case 0:
		return nil, fmt.Errorf("profile[%s]: %w", id, common.ErrNotFound)
	case 1:
		return docs[0], nil
	default:
		return nil, fmt.Errorf("%w: %d documents for profile[%s]", common.ErrIntegrity, len(docs), id)
	}
}

func decode(d *docstore.Document) models.Person {
	p := models.Person{
		ID:     d.String(PropID),
		Name:   d.String(PropName),
		Street: d.String(PropStreet),
		City:   d.String(PropCity),
		State:  d.String(PropState),
		Zip:    d.String(PropZip),
	}
	if y, ok := d.Float(PropBirthYear); ok {
		p.BirthYear = int(y)
	}
	for _, c := range d.Strings(PropConditions) {
		p.Conditions = append(p.Conditions, models.Condition(c))
	}
	return p
}
