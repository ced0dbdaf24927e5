package services

import (
	"errors"
	"strings"
	"time"

	"setmore-schedules/config"
	"setmore-schedules/models"
	"setmore-schedules/utils"
)

// startTimeLayouts parse the start of an appointment time range, e.g. "6:00 PM".
var startTimeLayouts = []string{"3:04 PM", "3:04PM"}

// Cleaner turns raw export rows into confirmed, timestamped bookings.
type Cleaner struct {
	logger         *utils.Logger
	dateLayouts    []string
	shirtSizeField string
}

// NewCleaner creates a Cleaner for the given event profile.
func NewCleaner(logger *utils.Logger, profile config.EventProfile) *Cleaner {
	profile = profile.WithDefaults()
	return &Cleaner{
		logger:         logger,
		dateLayouts:    profile.DateLayouts,
		shirtSizeField: profile.ShirtSizeField,
	}
}

// Clean keeps the confirmed rows in input order and derives each booking's
// timestamp. The first malformed row aborts the batch with a *MalformedInputError.
func (c *Cleaner) Clean(raw []models.RawBooking) ([]models.Booking, error) {
	result := make([]models.Booking, 0, len(raw))

	for i, r := range raw {
		row := i + 1

		status, ok := r.Get(models.FieldStatus)
		if !ok {
			return nil, missing(row, models.FieldStatus)
		}
		if status != models.StatusConfirmed {
			c.logger.Debug("[cleaner] Skipping row %d with status %q", row, status)
			continue
		}

		b, err := c.cleanRow(row, r)
		if err != nil {
			c.logger.Error("[cleaner] %v", err)
			return nil, err
		}
		result = append(result, b)
	}

	c.logger.Info("[cleaner] Cleaned %d → %d bookings (dropped %d unconfirmed)",
		len(raw), len(result), len(raw)-len(result))
	return result, nil
}

func (c *Cleaner) cleanRow(row int, r models.RawBooking) (models.Booking, error) {
	fields := make(map[string]string, 4)
	for _, f := range []string{models.FieldDate, models.FieldTimeRange, models.FieldCustomer, models.FieldService} {
		v, ok := r.Get(f)
		if !ok {
			return models.Booking{}, missing(row, f)
		}
		fields[f] = v
	}

	day, err := c.parseDate(fields[models.FieldDate])
	if err != nil {
		return models.Booking{}, &MalformedInputError{Row: row, Field: models.FieldDate, Value: fields[models.FieldDate], Err: err}
	}

	start := startOfRange(fields[models.FieldTimeRange])
	clock, err := parseClock(start)
	if err != nil {
		return models.Booking{}, &MalformedInputError{Row: row, Field: models.FieldTimeRange, Value: fields[models.FieldTimeRange], Err: err}
	}

	shirt, _ := r.Get(c.shirtSizeField)
	return models.Booking{
		Timestamp: combine(day, clock),
		Name:      fields[models.FieldCustomer],
		Category:  fields[models.FieldService],
		ShirtSize: shirt,
	}, nil
}

func (c *Cleaner) parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range c.dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = errors.New("no date layouts configured")
	}
	return time.Time{}, lastErr
}

// startOfRange returns the part of "6:00 PM - 6:30 PM" before the divider.
func startOfRange(s string) string {
	start, _, _ := strings.Cut(s, models.TimeRangeDivider)
	return start
}

func parseClock(s string) (time.Time, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	var lastErr error
	for _, layout := range startTimeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// combine takes the calendar date of day and the wall clock of clock.
// Timestamps are naive: they always carry time.UTC as a placeholder zone.
func combine(day, clock time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, clock.Hour(), clock.Minute(), clock.Second(), 0, time.UTC)
}

func missing(row int, field string) error {
	return &MalformedInputError{Row: row, Field: field, Err: ErrMissingField}
}
