package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"setmore-schedules/models"
)

// floatingLayout writes DTSTART/DTEND without a zone, matching the naive
// booking timestamps.
const floatingLayout = "20060102T150405"

// ICSWriter exports every filled schedule cell as a calendar event.
type ICSWriter struct {
	path string
	slot time.Duration
	now  func() time.Time
}

// NewICSWriter writes to path; each event lasts slot.
func NewICSWriter(path string, slot time.Duration) (*ICSWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("ics: create output dir: %w", err)
	}
	if slot <= 0 {
		slot = 30 * time.Minute
	}
	return &ICSWriter{path: path, slot: slot, now: time.Now}, nil
}

func (w *ICSWriter) Write(ctx context.Context, e *Export) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.WriteFile(w.path, []byte(w.Calendar(e).Serialize()), 0644)
}

// Calendar builds the calendar for an export without writing it.
func (w *ICSWriter) Calendar(e *Export) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//setmore-schedules//" + e.Event + "//EN")
	cal.SetXWRCalName(e.Event)

	stamp := w.now().UTC()
	for _, s := range scheduleSheets(e) {
		w.addSchedule(cal, e, s.title, s.schedule, stamp)
	}
	return cal
}

func (w *ICSWriter) addSchedule(cal *ics.Calendar, e *Export, title string, s *models.Schedule, stamp time.Time) {
	for i, row := range s.Rows {
		for j, names := range row.Cells {
			if names == "" {
				continue
			}

			label := s.Columns[j]
			if len(s.Columns) == 1 {
				label = title
			}

			uid := fmt.Sprintf("%s-%s-%d-%d@setmore-schedules", e.BatchID, strings.ToLower(title), i, j)
			event := cal.AddEvent(uid)
			event.SetDtStampTime(stamp)
			event.SetProperty(ics.ComponentPropertyDtStart, row.Timestamp.Format(floatingLayout))
			event.SetProperty(ics.ComponentPropertyDtEnd, row.Timestamp.Add(w.slot).Format(floatingLayout))
			event.SetSummary(label + ": " + names)
			event.SetDescription(fmt.Sprintf("%s shift at %s", title, row.Time))
			event.SetProperty(ics.ComponentPropertyCategories, title)
		}
	}
}

func (w *ICSWriter) Close() error {
	return nil
}
