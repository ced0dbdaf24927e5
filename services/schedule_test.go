package services

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"setmore-schedules/models"
)

var barOrder = CategoryOrder{"Beer": 0, "Cider": 1, "Ticket": 2, "Gin": 3}

func at(day, hour, minute int) time.Time {
	return time.Date(2024, 7, day, hour, minute, 0, 0, time.UTC)
}

func booking(ts time.Time, name, category string) models.Booking {
	return models.Booking{Timestamp: ts, Name: name, Category: category}
}

func TestBuildScheduleJoinsNamesInInputOrder(t *testing.T) {
	s := BuildSchedule([]models.Booking{
		booking(at(5, 18, 0), "Alice", "Beer"),
		booking(at(5, 18, 0), "Bob", "Beer"),
	}, NotInCategories("BBQ", "bbq"), barOrder)

	if len(s.Rows) != 1 {
		t.Fatalf("rows: got %d, want 1", len(s.Rows))
	}
	if s.Rows[0].Time != "18:00" {
		t.Errorf("Time: got %q, want %q", s.Rows[0].Time, "18:00")
	}
	if got := s.Cell(0, "Beer"); got != "Alice, Bob" {
		t.Errorf("Beer cell: got %q, want %q", got, "Alice, Bob")
	}
}

func TestBuildScheduleColumnOrderFollowsRank(t *testing.T) {
	s := BuildSchedule([]models.Booking{
		booking(at(5, 18, 0), "Gina", "Gin"),
		booking(at(5, 18, 0), "Ben", "Beer"),
	}, nil, barOrder)

	want := []string{"Beer", "Gin"}
	if !reflect.DeepEqual(s.Columns, want) {
		t.Errorf("Columns: got %v, want %v", s.Columns, want)
	}
	if !reflect.DeepEqual(s.Rows[0].Cells, []string{"Ben", "Gina"}) {
		t.Errorf("Cells: got %v", s.Rows[0].Cells)
	}
}

func TestBuildScheduleUnrankedCategoriesGoLast(t *testing.T) {
	s := BuildSchedule([]models.Booking{
		booking(at(5, 18, 0), "Zed", "Whisky"),
		booking(at(5, 18, 0), "Amy", "Absinthe"),
		booking(at(5, 18, 0), "Cy", "Cider"),
		booking(at(5, 18, 30), "Bo", "Beer"),
	}, nil, barOrder)

	want := []string{"Beer", "Cider", "Absinthe", "Whisky"}
	if !reflect.DeepEqual(s.Columns, want) {
		t.Errorf("Columns: got %v, want %v", s.Columns, want)
	}
	if got := s.Cell(0, "Whisky"); got != "Zed" {
		t.Errorf("Whisky cell: got %q, want %q", got, "Zed")
	}
}

func TestBuildScheduleRowsSortedAndMissingCellsEmpty(t *testing.T) {
	s := BuildSchedule([]models.Booking{
		booking(at(6, 12, 0), "Late", "Cider"),
		booking(at(5, 19, 30), "Early", "Beer"),
		booking(at(5, 19, 0), "Earliest", "Beer"),
	}, nil, barOrder)

	var times []string
	for _, r := range s.Rows {
		times = append(times, r.Time)
	}
	if !reflect.DeepEqual(times, []string{"19:00", "19:30", "12:00"}) {
		t.Errorf("row times: got %v", times)
	}
	if got := s.Cell(2, "Beer"); got != "" {
		t.Errorf("missing cell: got %q, want empty", got)
	}
	if got := s.Cell(0, "Cider"); got != "" {
		t.Errorf("missing cell: got %q, want empty", got)
	}
}

func TestBuildScheduleColumnHomogeneity(t *testing.T) {
	s := BuildSchedule([]models.Booking{
		booking(at(5, 18, 0), "A", "Beer"),
		booking(at(5, 18, 0), "B", "Beer"),
		booking(at(5, 18, 30), "C", "Beer"),
		booking(at(5, 19, 0), "D", "Gin"),
	}, nil, barOrder)

	wantBeer := []string{"A, B", "C", ""}
	for i, want := range wantBeer {
		if got := s.Cell(i, "Beer"); got != want {
			t.Errorf("Beer row %d: got %q, want %q", i, got, want)
		}
	}
	for i, r := range s.Rows {
		if len(r.Cells) != len(s.Columns) {
			t.Errorf("row %d: %d cells for %d columns", i, len(r.Cells), len(s.Columns))
		}
	}
}

func TestBuildScheduleSingleColumnMode(t *testing.T) {
	s := BuildSchedule([]models.Booking{
		booking(at(5, 17, 0), "Upper", "BBQ"),
		booking(at(5, 17, 30), "Lower", "bbq"),
		booking(at(5, 17, 30), "Mixed", "Bbq"),
		booking(at(5, 17, 30), "Beer fan", "Beer"),
	}, InCategories("BBQ", "bbq"), nil)

	if !reflect.DeepEqual(s.Columns, []string{SingleColumn}) {
		t.Fatalf("Columns: got %v", s.Columns)
	}
	if len(s.Rows) != 2 {
		t.Fatalf("rows: got %d, want 2", len(s.Rows))
	}
	if s.Rows[0].Cells[0] != "Upper" || s.Rows[1].Cells[0] != "Lower" {
		t.Errorf("cells: got %q, %q", s.Rows[0].Cells[0], s.Rows[1].Cells[0])
	}
}

func TestBuildScheduleDistinctInstantsNeverMerge(t *testing.T) {
	base := at(5, 18, 0)
	s := BuildSchedule([]models.Booking{
		booking(base, "A", "Beer"),
		booking(base.Add(20*time.Second), "B", "Beer"),
	}, nil, barOrder)

	if len(s.Rows) != 2 {
		t.Fatalf("rows: got %d, want 2", len(s.Rows))
	}
	if s.Rows[0].Time != s.Rows[1].Time {
		t.Errorf("expected equal display times, got %q and %q", s.Rows[0].Time, s.Rows[1].Time)
	}
}

func TestBuildScheduleEmpty(t *testing.T) {
	s := BuildSchedule(nil, nil, barOrder)
	if s == nil || len(s.Rows) != 0 || len(s.Columns) != 0 {
		t.Errorf("expected empty schedule, got %+v", s)
	}

	s = BuildSchedule([]models.Booking{booking(at(5, 18, 0), "A", "Beer")}, InCategories("BBQ"), nil)
	if len(s.Rows) != 0 {
		t.Errorf("expected no rows after filtering, got %d", len(s.Rows))
	}
}

func TestBuildScheduleKeepsEveryName(t *testing.T) {
	bookings := []models.Booking{
		booking(at(5, 18, 0), "A", "Beer"),
		booking(at(5, 18, 0), "B", "Gin"),
		booking(at(5, 18, 0), "A", "Beer"),
		booking(at(5, 18, 30), "C", "Beer"),
		booking(at(6, 18, 0), "D", "Rum"),
		booking(at(6, 18, 0), "E", "Rum"),
	}
	s := BuildSchedule(bookings, nil, barOrder)

	want := make(map[string]int)
	for _, b := range bookings {
		want[slotEntry(b.Timestamp, b.Category, b.Name)]++
	}

	got := make(map[string]int)
	for _, r := range s.Rows {
		for j, c := range r.Cells {
			if c == "" {
				continue
			}
			for _, name := range strings.Split(c, ", ") {
				got[slotEntry(r.Timestamp, s.Columns[j], name)]++
			}
		}
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("names in cells: got %v, want %v", got, want)
	}
}

func slotEntry(ts time.Time, category, name string) string {
	return ts.Format(time.RFC3339Nano) + "|" + category + "|" + name
}

func TestBuildScheduleYearsOutsideNanosecondRange(t *testing.T) {
	early := time.Date(1500, 1, 2, 18, 0, 0, 0, time.UTC)
	late := time.Date(2500, 1, 2, 18, 0, 0, 0, time.UTC)
	s := BuildSchedule([]models.Booking{
		booking(late, "Late", "Beer"),
		booking(early, "Early", "Beer"),
		booking(at(5, 18, 0), "Now", "Beer"),
		booking(early, "Early2", "Beer"),
	}, nil, barOrder)

	if len(s.Rows) != 3 {
		t.Fatalf("rows: got %d, want 3", len(s.Rows))
	}
	for i, want := range []time.Time{early, at(5, 18, 0), late} {
		if !s.Rows[i].Timestamp.Equal(want) {
			t.Errorf("row %d: got %v, want %v", i, s.Rows[i].Timestamp, want)
		}
	}
	if got := s.Cell(0, "Beer"); got != "Early, Early2" {
		t.Errorf("first cell: got %q, want %q", got, "Early, Early2")
	}
}

func TestScheduleDayPartition(t *testing.T) {
	s := BuildSchedule([]models.Booking{
		booking(at(5, 18, 0), "Fri", "Beer"),
		booking(at(6, 18, 0), "Sat", "Beer"),
		booking(at(6, 19, 0), "Sat2", "Beer"),
	}, nil, barOrder)

	days := s.Days()
	if len(days) != 2 {
		t.Fatalf("days: got %d, want 2", len(days))
	}
	if days[1].Weekday() != time.Saturday {
		t.Errorf("second day: got %v, want Saturday", days[1].Weekday())
	}
	sat := s.OnDate(days[1])
	if len(sat.Rows) != 2 || sat.Rows[0].Cells[0] != "Sat" {
		t.Errorf("Saturday rows: got %+v", sat.Rows)
	}
}
