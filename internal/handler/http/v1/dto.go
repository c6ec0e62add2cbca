package v1

import (
	"time"

	"github.com/google/uuid"
)

// LocationDTO is the structured place of a report.
// @Description Structured report location
type LocationDTO struct {
	Latitude       float64 `json:"latitude" validate:"required,latitude"`
	Longitude      float64 `json:"longitude" validate:"required,longitude"`
	Address        string  `json:"address,omitempty"`
	ReferencePoint string  `json:"reference_point,omitempty"`
	Building       string  `json:"building,omitempty"`
	Floor          string  `json:"floor,omitempty"`
	Room           string  `json:"room,omitempty"`
	AdditionalInfo string  `json:"additional_info,omitempty"`
}

// CreateReportRequest is the report-creation payload. Images are raw
// base64 payloads uploaded to media storage before the record is
// persisted. When skip_similar_check is false the server runs the
// similar-report detection first and answers 409 with candidates.
// @Description Report creation request
type CreateReportRequest struct {
	Title            string       `json:"title" validate:"required,min=2,max=255"`
	Description      string       `json:"description,omitempty"`
	CategoryID       *uuid.UUID   `json:"category_id,omitempty"`
	TypeID           *uuid.UUID   `json:"type_id,omitempty"`
	Priority         string       `json:"priority,omitempty" validate:"omitempty,oneof=low medium high urgent"`
	Visibility       string       `json:"visibility,omitempty" validate:"omitempty,oneof=public private"`
	AssignedTo       string       `json:"assigned_to,omitempty"`
	ReporterID       string       `json:"reporter_id" validate:"required"`
	ReporterName     string       `json:"reporter_name" validate:"required"`
	ReporterAvatar   string       `json:"reporter_avatar,omitempty"`
	Images           []string     `json:"images,omitempty" validate:"omitempty,dive,base64"`
	Location         *LocationDTO `json:"location" validate:"required"`
	SkipSimilarCheck bool         `json:"skip_similar_check,omitempty"`
}

// UpdateReportRequest is the report-update payload.
// @Description Report update request
type UpdateReportRequest struct {
	Title       string       `json:"title" validate:"required,min=2,max=255"`
	Description string       `json:"description,omitempty"`
	CategoryID  *uuid.UUID   `json:"category_id,omitempty"`
	TypeID      *uuid.UUID   `json:"type_id,omitempty"`
	Priority    string       `json:"priority" validate:"required,oneof=low medium high urgent"`
	Status      string       `json:"status" validate:"required,oneof=open in_progress resolved"`
	Visibility  string       `json:"visibility" validate:"required,oneof=public private"`
	AssignedTo  string       `json:"assigned_to,omitempty"`
	Images      []string     `json:"images,omitempty"`
	Location    *LocationDTO `json:"location" validate:"required"`
}

// ReportResponse is the report representation returned by the API.
// @Description Report representation
type ReportResponse struct {
	ID             uuid.UUID   `json:"id"`
	Title          string      `json:"title"`
	Description    string      `json:"description,omitempty"`
	CategoryID     *uuid.UUID  `json:"category_id,omitempty"`
	TypeID         *uuid.UUID  `json:"type_id,omitempty"`
	Priority       string      `json:"priority"`
	Status         string      `json:"status"`
	Visibility     string      `json:"visibility"`
	AssignedTo     string      `json:"assigned_to,omitempty"`
	ReporterID     string      `json:"reporter_id"`
	ReporterName   string      `json:"reporter_name"`
	ReporterAvatar string      `json:"reporter_avatar,omitempty"`
	Images         []string    `json:"images"`
	Location       LocationDTO `json:"location"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// CandidateResponse is a possible duplicate of the report being created.
// @Description Similar-report candidate
type CandidateResponse struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	DistanceMeters    float64   `json:"distance_meters"`
	ConfirmationCount int       `json:"confirmation_count"`
	Images            []string  `json:"images"`
	ReporterName      string    `json:"reporter_name"`
	ReporterAvatar    string    `json:"reporter_avatar,omitempty"`
	Priority          string    `json:"priority"`
	Status            string    `json:"status"`
}

// SimilarReportsResponse is returned with status 409 when the
// similar-report gate opens during creation.
// @Description Similar reports found during creation
type SimilarReportsResponse struct {
	Message    string               `json:"message"`
	Candidates []*CandidateResponse `json:"candidates"`
}

// ConfirmReportRequest identifies the confirming user.
// @Description Report confirmation request
type ConfirmReportRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

// ConfirmReportResponse carries the confirmation count after a confirm.
// @Description Report confirmation response
type ConfirmReportResponse struct {
	ReportID          uuid.UUID `json:"report_id"`
	UserID            string    `json:"user_id"`
	ConfirmationCount int       `json:"confirmation_count"`
}

// StatsResponse carries duplicate-detection usage stats.
// @Description Stats response
type StatsResponse struct {
	UserCount int `json:"user_count"`
}
