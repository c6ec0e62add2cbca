package models

import (
	"time"

	"github.com/google/uuid"
)

// CandidateReport is an existing report returned by a similarity search,
// considered a possible duplicate of a report being created. Candidates
// are restricted server-side to the requested radius and look-back
// window; callers never re-filter by those bounds.
type CandidateReport struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	CreatedAt         time.Time `json:"created_at"`
	DistanceMeters    float64   `json:"distance_meters"`
	ConfirmationCount int       `json:"confirmation_count"`
	Images            []string  `json:"images"`
	ReporterName      string    `json:"reporter_name"`
	ReporterAvatar    string    `json:"reporter_avatar,omitempty"`
	Priority          string    `json:"priority"`
	Status            string    `json:"status"`
}

// SimilarQuery are the parameters of a similarity search around a coordinate.
// CategoryID and TypeID narrow the search when set.
type SimilarQuery struct {
	Latitude      float64
	Longitude     float64
	RadiusMeters  int
	LookbackHours int
	CategoryID    *uuid.UUID
	TypeID        *uuid.UUID
}
