package models

import "time"

// Column names of the Setmore booking export.
const (
	FieldStatus      = "Status"
	FieldDate        = "Appointment date"
	FieldTimeRange   = "Appointment time"
	FieldCustomer    = "Customer name"
	FieldService     = "Service/class/event"
	FieldShirtSize   = "Fest shirt size"
	StatusConfirmed  = "Confirmed"
	TimeRangeDivider = " - "
)

// RawBooking is one exported row keyed by column header.
// Columns the export did not contain are absent from the map.
type RawBooking map[string]string

// Get returns the value of a column and whether the column was present.
func (r RawBooking) Get(field string) (string, bool) {
	v, ok := r[field]
	return v, ok
}

// Clone returns an independent copy of the row.
func (r RawBooking) Clone() RawBooking {
	out := make(RawBooking, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Booking is a confirmed booking after cleaning.
type Booking struct {
	Timestamp time.Time `json:"timestamp"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	ShirtSize string    `json:"shirt_size"`
}
