package services

import (
	"math"
	"sort"
	"strings"
	"time"

	"setmore-schedules/models"
)

// SingleColumn labels the only column of a schedule built without a category order.
const SingleColumn = "Name"

// cellSeparator joins the names sharing one slot and category.
const cellSeparator = ", "

// CategoryFilter selects the bookings a schedule is built from.
type CategoryFilter func(category string) bool

// InCategories matches the listed spellings exactly.
func InCategories(names ...string) CategoryFilter {
	set := toSet(names)
	return func(category string) bool {
		_, ok := set[category]
		return ok
	}
}

// NotInCategories matches everything except the listed spellings.
func NotInCategories(names ...string) CategoryFilter {
	set := toSet(names)
	return func(category string) bool {
		_, ok := set[category]
		return !ok
	}
}

// CategoryOrder ranks categories; lower ranks come first.
//
// Categories missing from the order are unranked. They still get a column,
// placed after every ranked column, and unranked columns are ordered by name.
type CategoryOrder map[string]int

func (o CategoryOrder) rank(category string) int {
	if r, ok := o[category]; ok {
		return r
	}
	return math.MaxInt
}

type slotKey struct {
	at       time.Time
	category string
}

// BuildSchedule groups the bookings accepted by filter into one row per
// distinct timestamp. With an order, every observed category becomes a column
// (ranked first, then unranked); with a nil order all bookings share the
// SingleColumn column. Names keep their input order within a cell.
func BuildSchedule(bookings []models.Booking, filter CategoryFilter, order CategoryOrder) *models.Schedule {
	pivot := order != nil

	slots := make(map[time.Time]time.Time)
	groups := make(map[slotKey][]string)
	seenCategory := make(map[string]struct{})
	var categories []string

	for _, b := range bookings {
		if filter != nil && !filter(b.Category) {
			continue
		}

		// UTC() drops the zone pointer and monotonic reading so equal instants share a key.
		at := b.Timestamp.UTC()
		if _, ok := slots[at]; !ok {
			slots[at] = b.Timestamp
		}

		category := SingleColumn
		if pivot {
			category = b.Category
		}
		if _, ok := seenCategory[category]; !ok {
			seenCategory[category] = struct{}{}
			categories = append(categories, category)
		}

		key := slotKey{at: at, category: category}
		groups[key] = append(groups[key], b.Name)
	}

	schedule := &models.Schedule{Columns: []string{}, Rows: []models.ScheduleRow{}}
	if len(slots) == 0 {
		return schedule
	}

	if pivot {
		sortCategories(categories, order)
	}
	schedule.Columns = categories

	times := make([]time.Time, 0, len(slots))
	for at := range slots {
		times = append(times, at)
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })

	// Collect the names of every cell first, then render column by column.
	cells := make([][][]string, len(times))
	for i, at := range times {
		cells[i] = make([][]string, len(categories))
		for j, category := range categories {
			cells[i][j] = groups[slotKey{at: at, category: category}]
		}
	}
	rendered := make([][]string, len(times))
	for i := range rendered {
		rendered[i] = make([]string, len(categories))
	}
	for j := range categories {
		renderColumn(cells, rendered, j)
	}

	for i, at := range times {
		ts := slots[at]
		schedule.Rows = append(schedule.Rows, models.ScheduleRow{
			Timestamp: ts,
			Time:      ts.Format("15:04"),
			Cells:     rendered[i],
		})
	}
	return schedule
}

// sortCategories orders ranked categories by rank and the rest by name after them.
func sortCategories(categories []string, order CategoryOrder) {
	sort.SliceStable(categories, func(i, j int) bool {
		ri, rj := order.rank(categories[i]), order.rank(categories[j])
		if ri != rj {
			return ri < rj
		}
		return categories[i] < categories[j]
	})
}

// renderColumn turns column j into text. When any cell of the column holds
// several names the whole column is rendered as joined lists.
func renderColumn(cells [][][]string, out [][]string, j int) {
	joined := false
	for i := range cells {
		if len(cells[i][j]) > 1 {
			joined = true
			break
		}
	}

	for i := range cells {
		names := cells[i][j]
		switch {
		case joined:
			out[i][j] = strings.Join(names, cellSeparator)
		case len(names) == 1:
			out[i][j] = names[0]
		default:
			out[i][j] = ""
		}
	}
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}
