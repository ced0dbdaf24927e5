package services

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"setmore-schedules/models"
)

// Printer writes a console overview of one processed upload.
type Printer struct {
	w io.Writer
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) Print(proc *Processor, r *models.Reports) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Fprintf(p.w, "\n\033[1;35m%s\033[0m\n", sep)
	fmt.Fprintf(p.w, "\033[1;35m  🍺 %s BOOKINGS\033[0m\n", strings.ToUpper(proc.Event()))
	fmt.Fprintf(p.w, "\033[1;35m%s\033[0m\n\n", sep)

	// Overview
	fmt.Fprintf(p.w, "\033[1;33m  Overview\033[0m\n")
	fmt.Fprintf(p.w, "  %s\n", thin)
	fmt.Fprintf(p.w, "  Batch              : %s\n", proc.BatchID())
	fmt.Fprintf(p.w, "  Confirmed bookings : \033[1m%d\033[0m\n", len(proc.Data()))
	if first, last, ok := proc.DateRange(); ok {
		fmt.Fprintf(p.w, "  Dates              : %s to %s\n",
			first.Format("2006-01-02"), last.Format("2006-01-02"))
	}
	fmt.Fprintln(p.w)

	p.printSchedule("Bars", r.Bars, thin)
	p.printSchedule("BBQ", r.BBQ, thin)

	fmt.Fprintf(p.w, "\033[1;33m  T-shirts\033[0m\n")
	fmt.Fprintf(p.w, "  %s\n", thin)
	if len(r.ShirtSizes) == 0 {
		fmt.Fprintf(p.w, "  No shirt sizes recorded\n")
	}
	for _, vc := range r.ShirtSizes {
		label := vc.Value
		if label == "" {
			label = "(none)"
		}
		bar := strings.Repeat("█", vc.Count)
		fmt.Fprintf(p.w, "  %-10s %s (%d)\n", truncate(label, 10), bar, vc.Count)
	}

	fmt.Fprintf(p.w, "\n\033[1;35m%s\033[0m\n\n", sep)
}

// printSchedule prints one table per calendar day, the way the bookings page
// splits each schedule into day sections.
func (p *Printer) printSchedule(title string, s *models.Schedule, thin string) {
	fmt.Fprintf(p.w, "\033[1;33m  %s\033[0m\n", title)
	fmt.Fprintf(p.w, "  %s\n", thin)
	if len(s.Rows) == 0 {
		fmt.Fprintf(p.w, "  No bookings\n\n")
		return
	}

	for _, day := range s.Days() {
		fmt.Fprintf(p.w, "  \033[1m%s\033[0m\n", day.Format("Monday 2 Jan"))
		fmt.Fprintf(p.w, "  %-6s", "Time")
		for _, c := range s.Columns {
			fmt.Fprintf(p.w, " │ %-18s", truncate(c, 18))
		}
		fmt.Fprintln(p.w)
		for _, row := range s.OnDate(day).Rows {
			fmt.Fprintf(p.w, "  %-6s", row.Time)
			for _, cell := range row.Cells {
				fmt.Fprintf(p.w, " │ %-18s", truncate(cell, 18))
			}
			fmt.Fprintln(p.w)
		}
		fmt.Fprintln(p.w)
	}
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-3]) + "..."
}
