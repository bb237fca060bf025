package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"crimewatch/api/internal/models"
	"crimewatch/api/internal/repository"
)

// fakeCrimeStore keeps reports in insertion order, matching the enumeration
// guarantee of the SQL store.
type fakeCrimeStore struct {
	mu     sync.Mutex
	crimes []models.Crime
}

func (f *fakeCrimeStore) Create(_ context.Context, crime models.Crime) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.crimes = append(f.crimes, crime)
	return nil
}

func (f *fakeCrimeStore) List(_ context.Context) ([]models.Crime, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Crime, len(f.crimes))
	copy(out, f.crimes)
	return out, nil
}

func (f *fakeCrimeStore) GetByID(_ context.Context, id string) (models.Crime, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, crime := range f.crimes {
		if crime.ID == id {
			return crime, nil
		}
	}
	return models.Crime{}, repository.ErrCrimeNotFound
}

func (f *fakeCrimeStore) ExistsByID(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, crime := range f.crimes {
		if crime.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCrimeStore) UpdateStatus(_ context.Context, id string, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.crimes {
		if f.crimes[i].ID == id {
			f.crimes[i].Status = status
			return nil
		}
	}
	return repository.ErrCrimeNotFound
}

func (f *fakeCrimeStore) DeleteByID(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.crimes {
		if f.crimes[i].ID == id {
			f.crimes = append(f.crimes[:i], f.crimes[i+1:]...)
			return nil
		}
	}
	return repository.ErrCrimeNotFound
}

func (f *fakeCrimeStore) ListByReporter(_ context.Context, userID string) ([]models.Crime, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Crime
	for _, crime := range f.crimes {
		if crime.ReportedBy == userID {
			out = append(out, crime)
		}
	}
	return out, nil
}

func newTestService(store CrimeStore) *CrimeService {
	return NewCrimeService(store, zerolog.Nop())
}

func ptr(v float64) *float64 { return &v }

func TestReport(t *testing.T) {
	store := &fakeCrimeStore{}
	svc := newTestService(store)

	crime, err := svc.Report(context.Background(), ReportInput{
		CrimeType:   "theft",
		Description: "stolen bicycle",
		Location:    "5th and Main",
		Latitude:    ptr(40.7),
		Longitude:   ptr(-74.0),
		ReportedBy:  "user-1",
	})
	if err != nil {
		t.Fatalf("report: %v", err)
	}

	if crime.ID == "" {
		t.Error("expected server-assigned id")
	}
	if crime.Status != models.StatusPending {
		t.Errorf("status = %q, want %q", crime.Status, models.StatusPending)
	}
	if crime.ReportedAt.IsZero() {
		t.Error("expected reportedAt to be set")
	}
	if len(store.crimes) != 1 {
		t.Fatalf("expected 1 stored report, got %d", len(store.crimes))
	}
}

func TestReportMissingCoordinates(t *testing.T) {
	tests := []struct {
		name string
		lat  *float64
		lon  *float64
	}{
		{"both missing", nil, nil},
		{"latitude missing", nil, ptr(-74.0)},
		{"longitude missing", ptr(40.7), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeCrimeStore{}
			svc := newTestService(store)

			_, err := svc.Report(context.Background(), ReportInput{
				Latitude:   tt.lat,
				Longitude:  tt.lon,
				ReportedBy: "user-1",
			})
			if !errors.Is(err, ErrMissingCoordinates) {
				t.Fatalf("expected ErrMissingCoordinates, got %v", err)
			}
			if len(store.crimes) != 0 {
				t.Error("rejected report must not reach the store")
			}
		})
	}
}

func TestNearbyThreshold(t *testing.T) {
	// Pure-longitude offsets at the equator: 1 degree is ~111.195 km, so
	// these place reports at roughly 0.5, 1.0, and 1.5 km from the origin.
	store := &fakeCrimeStore{crimes: []models.Crime{
		{ID: "half-km", Latitude: 0, Longitude: 0.004497},
		{ID: "one-km", Latitude: 0, Longitude: 0.008993},
		{ID: "one-and-half-km", Latitude: 0, Longitude: 0.013490},
	}}
	svc := newTestService(store)

	nearby, err := svc.Nearby(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("nearby: %v", err)
	}

	if len(nearby) != 2 {
		t.Fatalf("expected 2 reports within 1 km, got %d", len(nearby))
	}
	// Enumeration order of the store is preserved, no distance sort.
	if nearby[0].ID != "half-km" || nearby[1].ID != "one-km" {
		t.Errorf("unexpected order: %s, %s", nearby[0].ID, nearby[1].ID)
	}
}

func TestNearbyEmptyStore(t *testing.T) {
	svc := newTestService(&fakeCrimeStore{})

	nearby, err := svc.Nearby(context.Background(), 51.5, -0.12)
	if err != nil {
		t.Fatalf("nearby: %v", err)
	}
	if len(nearby) != 0 {
		t.Errorf("expected empty result, got %d reports", len(nearby))
	}
}

func TestUpdateStatus(t *testing.T) {
	store := &fakeCrimeStore{crimes: []models.Crime{
		{ID: "c1", Status: models.StatusPending},
	}}
	svc := newTestService(store)

	crime, err := svc.UpdateStatus(context.Background(), "c1", "RESOLVED")
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if crime.Status != "RESOLVED" {
		t.Errorf("status = %q, want RESOLVED", crime.Status)
	}

	if _, err := svc.UpdateStatus(context.Background(), "missing", "RESOLVED"); !errors.Is(err, repository.ErrCrimeNotFound) {
		t.Errorf("expected ErrCrimeNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	store := &fakeCrimeStore{crimes: []models.Crime{{ID: "c1"}}}
	svc := newTestService(store)

	if err := svc.Delete(context.Background(), "c1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(store.crimes) != 0 {
		t.Error("report should be removed permanently")
	}

	if err := svc.Delete(context.Background(), "c1"); !errors.Is(err, repository.ErrCrimeNotFound) {
		t.Errorf("expected ErrCrimeNotFound, got %v", err)
	}
}

func TestListByReporter(t *testing.T) {
	store := &fakeCrimeStore{crimes: []models.Crime{
		{ID: "c1", ReportedBy: "alice"},
		{ID: "c2", ReportedBy: "bob"},
		{ID: "c3", ReportedBy: "alice"},
	}}
	svc := newTestService(store)

	crimes, err := svc.ListByReporter(context.Background(), "alice")
	if err != nil {
		t.Fatalf("list by reporter: %v", err)
	}
	if len(crimes) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(crimes))
	}
}
