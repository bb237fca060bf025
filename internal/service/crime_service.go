package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"crimewatch/api/internal/geo"
	"crimewatch/api/internal/ids"
	"crimewatch/api/internal/models"
	"crimewatch/api/internal/repository"
)

// NearbyRadiusKm is the fixed radius for the nearby-report query.
const NearbyRadiusKm = 1.0

var (
	ErrMissingCoordinates = errors.New("Geolocation is required to report a crime.")
	ErrMissingReporter    = errors.New("reporter is required")
)

// CrimeStore is the persistence contract the service works against.
type CrimeStore interface {
	Create(ctx context.Context, crime models.Crime) error
	List(ctx context.Context) ([]models.Crime, error)
	GetByID(ctx context.Context, id string) (models.Crime, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	UpdateStatus(ctx context.Context, id string, status string) error
	DeleteByID(ctx context.Context, id string) error
	ListByReporter(ctx context.Context, userID string) ([]models.Crime, error)
}

type CrimeService struct {
	store CrimeStore
	log   zerolog.Logger
}

func NewCrimeService(store CrimeStore, log zerolog.Logger) *CrimeService {
	return &CrimeService{store: store, log: log}
}

type ReportInput struct {
	CrimeType   string
	Description string
	Location    string
	Latitude    *float64
	Longitude   *float64
	ReportedBy  string
}

// Report validates and persists a new crime report. Both coordinates are
// required; records without them are rejected before reaching the store.
func (s *CrimeService) Report(ctx context.Context, input ReportInput) (models.Crime, error) {
	if input.Latitude == nil || input.Longitude == nil {
		return models.Crime{}, ErrMissingCoordinates
	}
	if input.ReportedBy == "" {
		return models.Crime{}, ErrMissingReporter
	}

	crime := models.Crime{
		ID:          ids.New(),
		CrimeType:   input.CrimeType,
		Description: input.Description,
		Location:    input.Location,
		Latitude:    *input.Latitude,
		Longitude:   *input.Longitude,
		ReportedAt:  time.Now().UTC(),
		Status:      models.StatusPending,
		ReportedBy:  input.ReportedBy,
	}

	if err := s.store.Create(ctx, crime); err != nil {
		return models.Crime{}, err
	}

	s.log.Info().
		Str("crime_id", crime.ID).
		Str("crime_type", crime.CrimeType).
		Msg("crime report created")

	return crime, nil
}

func (s *CrimeService) ListAll(ctx context.Context) ([]models.Crime, error) {
	return s.store.List(ctx)
}

func (s *CrimeService) GetByID(ctx context.Context, id string) (models.Crime, error) {
	return s.store.GetByID(ctx, id)
}

func (s *CrimeService) ListByReporter(ctx context.Context, userID string) ([]models.Crime, error) {
	return s.store.ListByReporter(ctx, userID)
}

// Nearby returns every report within NearbyRadiusKm of the query point,
// preserving the store's enumeration order. Every record is scored; there is
// no spatial index.
func (s *CrimeService) Nearby(ctx context.Context, lat, lon float64) ([]models.Crime, error) {
	crimes, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	nearby := make([]models.Crime, 0, len(crimes))
	for _, crime := range crimes {
		if geo.Distance(crime.Latitude, crime.Longitude, lat, lon) <= NearbyRadiusKm {
			nearby = append(nearby, crime)
		}
	}
	return nearby, nil
}

// UpdateStatus sets a report's status and returns the updated record.
func (s *CrimeService) UpdateStatus(ctx context.Context, id string, status string) (models.Crime, error) {
	if err := s.store.UpdateStatus(ctx, id, status); err != nil {
		return models.Crime{}, err
	}
	return s.store.GetByID(ctx, id)
}

// Delete removes a report permanently. Missing ids surface the store's
// not-found error.
func (s *CrimeService) Delete(ctx context.Context, id string) error {
	exists, err := s.store.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return repository.ErrCrimeNotFound
	}
	return s.store.DeleteByID(ctx, id)
}
