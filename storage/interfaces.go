package storage

import (
	"context"

	"github.com/google/uuid"

	"setmore-schedules/models"
)

// Export is everything derived from one processed upload.
type Export struct {
	BatchID  uuid.UUID
	Event    string
	Bookings []models.Booking
	Reports  *models.Reports
}

// ExportWriter is the interface any output backend must satisfy.
type ExportWriter interface {
	Write(ctx context.Context, e *Export) error
	Close() error
}

// scheduleSheets pairs each schedule with the title it is exported under.
func scheduleSheets(e *Export) []namedSchedule {
	return []namedSchedule{
		{title: "Bars", schedule: e.Reports.Bars},
		{title: "BBQ", schedule: e.Reports.BBQ},
	}
}

type namedSchedule struct {
	title    string
	schedule *models.Schedule
}

// scheduleHeader is the header row shared by the tabular exporters.
func scheduleHeader(s *models.Schedule) []string {
	return append([]string{"Timestamp", "Time"}, s.Columns...)
}

func scheduleRecord(r models.ScheduleRow) []string {
	return append([]string{r.Timestamp.Format(timestampLayout), r.Time}, r.Cells...)
}

const timestampLayout = "2006-01-02 15:04:05"
