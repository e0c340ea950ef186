package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/simpletemp/internal/client/docstore"
	"github.com/dmitrijs2005/simpletemp/internal/client/models"
)

// Document type and property names of report documents.
const (
	// DocType tags report documents.
	DocType = "report"

	// Properties of a report document. PropLocation is absent for reports
	// without coordinates.
	PropAppName     = "report_app_name"
	PropAppID       = "report_app_id"
	PropPersonID    = "report_person_id"
	PropLocation    = "report_location"
	PropTimestamp   = "report_timestamp"
	PropTemperature = "report_temperature"
	PropSymptoms    = "report_symptoms"
)

// DocumentRepository implements Repository over a docstore.Store.
type DocumentRepository struct {
	store docstore.Store
}

// NewDocumentRepository returns a Repository keeping reports in store.
func NewDocumentRepository(store docstore.Store) *DocumentRepository {
	return &DocumentRepository{store: store}
}

func (r *DocumentRepository) Add(ctx context.Context, rep *models.Report) error {
	if rep.Timestamp.IsZero() {
		rep.Timestamp = time.Now()
	}

	doc := Encode(rep)
	if err := r.store.Save(ctx, doc); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	rep.ID = doc.ID
	return nil
}

func (r *DocumentRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Report, error) {
	docs, err := r.store.Query(ctx, docstore.Query{
		Type:   DocType,
		Equals: map[string]string{PropPersonID: ownerID},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	result := make([]models.Report, 0, len(docs))
	for _, d := range docs {
		rep, err := Decode(d)
		if err != nil {
			return nil, err
		}
		result = append(result, rep)
	}
	return result, nil
}

func (r *DocumentRepository) Recent(ctx context.Context, ownerID string) ([]models.Sample, error) {
	list, err := r.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	samples := make([]models.Sample, len(list))
	for i, rep := range list {
		samples[i] = models.Sample{Timestamp: rep.Timestamp, Temperature: rep.Temperature}
	}
	return samples, nil
}

// Encode builds the document for rep. The location property is omitted
// when rep has no location.
func Encode(rep *models.Report) *docstore.Document {
	doc := docstore.NewDocument(rep.ID, DocType)
	doc.Set(PropAppName, rep.AppName)
	doc.Set(PropAppID, rep.AppID)
	doc.Set(PropPersonID, rep.OwnerID)
	doc.Set(PropTimestamp, rep.Timestamp.UTC().Format(time.RFC3339))
	doc.Set(PropTemperature, rep.Temperature)

	symptoms := make([]string, len(rep.Symptoms))
	for i, s := range rep.Symptoms {
		symptoms[i] = string(s)
	}
	doc.Set(PropSymptoms, symptoms)

	if rep.Location != nil {
		doc.Set(PropLocation, []float64{rep.Location.Lat, rep.Location.Long})
	}
	return doc
}

func Decode(d *docstore.Document) (models.Report, error) {
	rep := models.Report{
		ID:      d.ID,
		AppName: d.String(PropAppName),
		AppID:   d.String(PropAppID),
		OwnerID: d.String(PropPersonID),
	}
	rep.Temperature, _ = d.Float(PropTemperature)

	if ts := d.String(PropTimestamp); ts != "" {
		t, err := time.Parse(time.RFC3339, ts)
		if err != nil {
			return models.Report{}, fmt.Errorf("report[%s] timestamp: %w", d.ID, err)
		}
		rep.Timestamp = t
	}

	for _, s := range d.Strings(PropSymptoms) {
		rep.Symptoms = append(rep.Symptoms, models.Symptom(s))
	}

	if loc, ok := d.Props[PropLocation].([]any); ok && len(loc) == 2 {
		lat, ok1 := loc[0].(float64)
		long, ok2 := loc[1].(float64)
		if ok1 && ok2 {
			rep.Location = &models.Location{Lat: lat, Long: long}
		}
	}
	return rep, nil
}
