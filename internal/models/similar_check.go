package models

import (
	"time"
)

// SimilarCheck records one similarity search run for a user during report
// creation. Used for duplicate-detection stats.
type SimilarCheck struct {
	ID              int64     `json:"id"`
	UserID          string    `json:"user_id"`
	Latitude        float64   `json:"latitude"`
	Longitude       float64   `json:"longitude"`
	CandidatesFound int       `json:"candidates_found"`
	CheckedAt       time.Time `json:"checked_at"`
}
