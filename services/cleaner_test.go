package services

import (
	"errors"
	"io"
	"testing"
	"time"

	"setmore-schedules/config"
	"setmore-schedules/models"
	"setmore-schedules/utils"
)

func newTestLogger() *utils.Logger { return utils.NewLoggerTo(io.Discard, utils.LevelDebug) }

func newTestCleaner() *Cleaner { return NewCleaner(newTestLogger(), config.BeerFestival()) }

func row(status, date, timeRange, name, category, shirt string) models.RawBooking {
	return models.RawBooking{
		models.FieldStatus:    status,
		models.FieldDate:      date,
		models.FieldTimeRange: timeRange,
		models.FieldCustomer:  name,
		models.FieldService:   category,
		models.FieldShirtSize: shirt,
		"Booking ID":          "abc123",
		"Email":               "someone@example.com",
	}
}

func TestCleanerFiltersConfirmed(t *testing.T) {
	raw := []models.RawBooking{
		row("Confirmed", "2024-07-05", "6:00 PM - 6:30 PM", "Alice", "Beer", "M"),
		row("Cancelled", "2024-07-05", "6:00 PM - 6:30 PM", "Carl", "Beer", "L"),
		row("confirmed", "2024-07-05", "6:00 PM - 6:30 PM", "Dana", "Beer", "S"),
		row("Confirmed", "2024-07-06", "11:30 AM - 12:00 PM", "Bob", "Gin", ""),
	}

	cleaned, err := newTestCleaner().Clean(raw)
	if err != nil {
		t.Fatalf("Clean: unexpected error %v", err)
	}
	if len(cleaned) != 2 {
		t.Fatalf("expected 2 confirmed bookings, got %d", len(cleaned))
	}
	if cleaned[0].Name != "Alice" || cleaned[1].Name != "Bob" {
		t.Errorf("input order not preserved: got %q, %q", cleaned[0].Name, cleaned[1].Name)
	}
}

func TestCleanerDerivesTimestamp(t *testing.T) {
	tests := []struct {
		date      string
		timeRange string
		want      time.Time
	}{
		{"2024-07-05", "6:00 PM - 6:30 PM", time.Date(2024, 7, 5, 18, 0, 0, 0, time.UTC)},
		{"2024-07-05", "12:00 PM - 12:30 PM", time.Date(2024, 7, 5, 12, 0, 0, 0, time.UTC)},
		{"2024-07-05", "12:15 AM - 1:00 AM", time.Date(2024, 7, 5, 0, 15, 0, 0, time.UTC)},
		{"Jul 6, 2024", "09:45 am - 10:15 am", time.Date(2024, 7, 6, 9, 45, 0, 0, time.UTC)},
		{"2024-07-06 00:00:00", "7:30 PM - 8:00 PM", time.Date(2024, 7, 6, 19, 30, 0, 0, time.UTC)},
		{"07/06/2024", "7:30 PM", time.Date(2024, 7, 6, 19, 30, 0, 0, time.UTC)},
	}

	c := newTestCleaner()
	for _, tt := range tests {
		cleaned, err := c.Clean([]models.RawBooking{row("Confirmed", tt.date, tt.timeRange, "A", "Beer", "M")})
		if err != nil {
			t.Errorf("Clean(%q, %q): unexpected error %v", tt.date, tt.timeRange, err)
			continue
		}
		if got := cleaned[0].Timestamp; !got.Equal(tt.want) {
			t.Errorf("Clean(%q, %q) timestamp = %v; want %v", tt.date, tt.timeRange, got, tt.want)
		}
	}
}

func TestCleanerRenamesFields(t *testing.T) {
	cleaned, err := newTestCleaner().Clean([]models.RawBooking{
		row("Confirmed", "2024-07-05", "6:00 PM - 6:30 PM", "Alice", "Cider", "XL"),
	})
	if err != nil {
		t.Fatalf("Clean: unexpected error %v", err)
	}

	b := cleaned[0]
	if b.Name != "Alice" || b.Category != "Cider" || b.ShirtSize != "XL" {
		t.Errorf("unexpected booking %+v", b)
	}
}

func TestCleanerMissingShirtSizeIsEmpty(t *testing.T) {
	r := row("Confirmed", "2024-07-05", "6:00 PM - 6:30 PM", "Alice", "Beer", "")
	delete(r, models.FieldShirtSize)

	cleaned, err := newTestCleaner().Clean([]models.RawBooking{r})
	if err != nil {
		t.Fatalf("Clean: unexpected error %v", err)
	}
	if cleaned[0].ShirtSize != "" {
		t.Errorf("ShirtSize: got %q, want empty", cleaned[0].ShirtSize)
	}
}

func TestCleanerRejectsMalformedRows(t *testing.T) {
	tests := []struct {
		name      string
		row       models.RawBooking
		wantRow   int
		wantField string
	}{
		{"bad date", row("Confirmed", "not a date", "6:00 PM - 6:30 PM", "A", "Beer", ""), 2, models.FieldDate},
		{"bad time", row("Confirmed", "2024-07-05", "18:00 - 18:30", "A", "Beer", ""), 2, models.FieldTimeRange},
		{"empty time", row("Confirmed", "2024-07-05", "", "A", "Beer", ""), 2, models.FieldTimeRange},
	}

	for _, tt := range tests {
		raw := []models.RawBooking{
			row("Confirmed", "2024-07-05", "6:00 PM - 6:30 PM", "ok", "Beer", ""),
			tt.row,
		}
		_, err := newTestCleaner().Clean(raw)

		var mie *MalformedInputError
		if !errors.As(err, &mie) {
			t.Errorf("%s: expected *MalformedInputError, got %v", tt.name, err)
			continue
		}
		if mie.Row != tt.wantRow || mie.Field != tt.wantField {
			t.Errorf("%s: got row %d field %q; want row %d field %q", tt.name, mie.Row, mie.Field, tt.wantRow, tt.wantField)
		}
		var pe *time.ParseError
		if !errors.As(err, &pe) {
			t.Errorf("%s: expected wrapped *time.ParseError, got %v", tt.name, mie.Err)
		}
	}
}

func TestCleanerMissingRequiredField(t *testing.T) {
	noStatus := row("Confirmed", "2024-07-05", "6:00 PM - 6:30 PM", "A", "Beer", "")
	delete(noStatus, models.FieldStatus)

	noName := row("Confirmed", "2024-07-05", "6:00 PM - 6:30 PM", "A", "Beer", "")
	delete(noName, models.FieldCustomer)

	// Unconfirmed rows are not inspected beyond their status.
	cancelledNoName := row("Cancelled", "", "", "", "", "")
	delete(cancelledNoName, models.FieldCustomer)

	c := newTestCleaner()
	for _, tt := range []struct {
		raw       models.RawBooking
		wantField string
	}{
		{noStatus, models.FieldStatus},
		{noName, models.FieldCustomer},
	} {
		_, err := c.Clean([]models.RawBooking{tt.raw})
		if !errors.Is(err, ErrMissingField) {
			t.Errorf("expected ErrMissingField for %q, got %v", tt.wantField, err)
			continue
		}
		var mie *MalformedInputError
		errors.As(err, &mie)
		if mie.Field != tt.wantField {
			t.Errorf("Field: got %q, want %q", mie.Field, tt.wantField)
		}
	}

	if _, err := c.Clean([]models.RawBooking{cancelledNoName}); err != nil {
		t.Errorf("cancelled row without name: unexpected error %v", err)
	}
}

func TestCleanerEmptyInput(t *testing.T) {
	cleaned, err := newTestCleaner().Clean(nil)
	if err != nil {
		t.Fatalf("Clean(nil): unexpected error %v", err)
	}
	if len(cleaned) != 0 {
		t.Errorf("expected no bookings, got %d", len(cleaned))
	}
}

func TestMalformedInputErrorMessage(t *testing.T) {
	err := &MalformedInputError{Row: 3, Field: models.FieldDate, Value: "soon", Err: errors.New("bad")}
	want := `row 3: "Appointment date": cannot parse "soon": bad`
	if err.Error() != want {
		t.Errorf("Error() = %q; want %q", err.Error(), want)
	}
}
