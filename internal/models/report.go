package models

import (
	"time"

	"github.com/google/uuid"
)

// Report statuses. Deleted reports stay in the table but are excluded
// from listings and similarity searches.
const (
	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusResolved   = "resolved"
	StatusDeleted    = "deleted"
)

// Report priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Location is the structured place of a report: a coordinate plus
// free-text sub-fields describing the exact spot.
type Location struct {
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	Address        string  `json:"address,omitempty"`
	ReferencePoint string  `json:"reference_point,omitempty"`
	Building       string  `json:"building,omitempty"`
	Floor          string  `json:"floor,omitempty"`
	Room           string  `json:"room,omitempty"`
	AdditionalInfo string  `json:"additional_info,omitempty"`
}

// Report is an incident report filed by a user.
type Report struct {
	ID             uuid.UUID  `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	CategoryID     *uuid.UUID `json:"category_id,omitempty"`
	TypeID         *uuid.UUID `json:"type_id,omitempty"`
	Priority       string     `json:"priority"`
	Status         string     `json:"status"`
	Visibility     string     `json:"visibility"`
	AssignedTo     string     `json:"assigned_to,omitempty"`
	ReporterID     string     `json:"reporter_id"`
	ReporterName   string     `json:"reporter_name"`
	ReporterAvatar string     `json:"reporter_avatar,omitempty"`
	Images         []string   `json:"images"`
	Location       Location   `json:"location"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
