package models

import "time"

// Schedule is a wide per-timeslot table: one row per distinct slot,
// one text cell per column.
type Schedule struct {
	Columns []string      `json:"columns"`
	Rows    []ScheduleRow `json:"rows"`
}

// ScheduleRow holds the rendered cells of one slot, aligned with Schedule.Columns.
type ScheduleRow struct {
	Timestamp time.Time `json:"timestamp"`
	Time      string    `json:"time"`
	Cells     []string  `json:"cells"`
}

// Cell returns the rendered cell for the named column, or "" if the column is unknown.
func (s *Schedule) Cell(row int, column string) string {
	for i, c := range s.Columns {
		if c == column {
			return s.Rows[row].Cells[i]
		}
	}
	return ""
}

// Days returns the distinct calendar dates covered by the schedule, ascending.
func (s *Schedule) Days() []time.Time {
	var days []time.Time
	for _, r := range s.Rows {
		d := dateOf(r.Timestamp)
		if len(days) == 0 || !days[len(days)-1].Equal(d) {
			days = append(days, d)
		}
	}
	return days
}

// OnDate returns the rows falling on the calendar date of day, keeping all columns.
func (s *Schedule) OnDate(day time.Time) *Schedule {
	want := dateOf(day)
	out := &Schedule{Columns: s.Columns, Rows: []ScheduleRow{}}
	for _, r := range s.Rows {
		if dateOf(r.Timestamp).Equal(want) {
			out.Rows = append(out.Rows, r)
		}
	}
	return out
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ValueCount is one bucket of an attribute frequency table.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Reports bundles everything derived from one upload.
type Reports struct {
	Bars       *Schedule    `json:"bars"`
	BBQ        *Schedule    `json:"bbq"`
	ShirtSizes []ValueCount `json:"shirt_sizes"`
}
