package server

import (
	"time"

	"setmore-schedules/models"
)

// ErrorResponse defines the JSON structure for error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

type DateRange struct {
	First time.Time `json:"first"`
	Last  time.Time `json:"last"`
}

// UploadResponse carries every report derived from one uploaded export.
type UploadResponse struct {
	BatchID    string              `json:"batch_id"`
	Event      string              `json:"event"`
	DateRange  *DateRange          `json:"date_range"`
	Bookings   []models.Booking    `json:"bookings"`
	Bars       *models.Schedule    `json:"bars"`
	BBQ        *models.Schedule    `json:"bbq"`
	ShirtSizes []models.ValueCount `json:"shirt_sizes"`
}

type EventsResponse struct {
	Events []string `json:"events"`
}
