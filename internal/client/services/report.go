package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/simpletemp/internal/client/models"
	"github.com/dmitrijs2005/simpletemp/internal/client/repositories/reports"
	"github.com/dmitrijs2005/simpletemp/internal/dispatch"
	"github.com/dmitrijs2005/simpletemp/internal/logging"
)

// Syncer starts a replication pass without waiting for it.
type Syncer interface {
	Sync(ctx context.Context)
}

// ReportInput is what the user enters for one report.
type ReportInput struct {
	ProfileID   string
	Temperature float64
	Fahrenheit  bool
	Symptoms    []models.Symptom
	Location    *models.Location
	Timestamp   time.Time
}

type ReportService interface {
	// Record stores a report for the profile under hashed ids and, when a
	// location was captured, triggers a sync. A sync problem never fails
	// Record.
	Record(ctx context.Context, in ReportInput) (*models.Report, error)

	// Recent returns the temperature history of a profile.
	Recent(ctx context.Context, profileID string) ([]models.Sample, error)
}

type reportService struct {
	appName string
	auth    AuthManager
	reports reports.Repository
	db      *dispatch.Queue
	syncer  Syncer
	log     logging.Logger
}

func NewReportService(appName string, auth AuthManager, reports reports.Repository, db *dispatch.Queue, syncer Syncer, log logging.Logger) ReportService {
	return &reportService{appName: appName, auth: auth, reports: reports, db: db, syncer: syncer, log: log}
}

func (s *reportService) Record(ctx context.Context, in ReportInput) (*models.Report, error) {
	ownerID, err := s.auth.Hash(in.ProfileID)
	if err != nil {
		return nil, fmt.Errorf("profile id hashing error: %w", err)
	}
	appID, err := s.auth.HashedAppID()
	if err != nil {
		return nil, fmt.Errorf("app id error: %w", err)
	}

	temp := in.Temperature
	if in.Fahrenheit {
		temp = models.FahrenheitToCelsius(temp)
	}

	rep := &models.Report{
		AppName:     s.appName,
		AppID:       appID,
		OwnerID:     ownerID,
		Location:    in.Location,
		Temperature: temp,
		Symptoms:    in.Symptoms,
		Timestamp:   in.Timestamp,
	}

	err = s.db.Do(ctx, func(ctx context.Context) error {
		return s.reports.Add(ctx, rep)
	})
	if err != nil {
		return nil, fmt.Errorf("report saving error: %w", err)
	}
	s.log.Debug(ctx, "report saved", "id", rep.ID, "has_location", rep.Location != nil)

	if rep.Location != nil && s.syncer != nil {
		s.syncer.Sync(ctx)
	}
	return rep, nil
}

func (s *reportService) Recent(ctx context.Context, profileID string) ([]models.Sample, error) {
	ownerID, err := s.auth.Hash(profileID)
	if err != nil {
		return nil, fmt.Errorf("profile id hashing error: %w", err)
	}
	return dispatch.DoValue(ctx, s.db, func(ctx context.Context) ([]models.Sample, error) {
		return s.reports.Recent(ctx, ownerID)
	})
}
