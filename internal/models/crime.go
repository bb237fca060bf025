package models

import "time"

// StatusPending is the status every report carries until an admin changes it.
// Other statuses are free-form strings assigned through the admin API.
const StatusPending = "PENDING"

type Crime struct {
	ID          string
	CrimeType   string
	Description string
	Location    string
	Latitude    float64
	Longitude   float64
	ReportedAt  time.Time
	Status      string
	ReportedBy  string
}
