package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// CSVWriter exports each report of an upload as its own CSV file in a directory.
type CSVWriter struct {
	dir string
}

// NewCSVWriter creates the output directory if needed.
func NewCSVWriter(dir string) (*CSVWriter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}
	return &CSVWriter{dir: dir}, nil
}

// Write produces bars.csv, bbq.csv, shirt_sizes.csv and bookings.csv.
func (c *CSVWriter) Write(ctx context.Context, e *Export) error {
	for _, s := range scheduleSheets(e) {
		if err := ctx.Err(); err != nil {
			return err
		}
		records := [][]string{scheduleHeader(s.schedule)}
		for _, r := range s.schedule.Rows {
			records = append(records, scheduleRecord(r))
		}
		if err := c.writeFile(strings.ToLower(s.title)+".csv", records); err != nil {
			return err
		}
	}

	sizes := [][]string{{"Shirt size", "Count"}}
	for _, vc := range e.Reports.ShirtSizes {
		sizes = append(sizes, []string{vc.Value, strconv.Itoa(vc.Count)})
	}
	if err := c.writeFile("shirt_sizes.csv", sizes); err != nil {
		return err
	}

	bookings := [][]string{{"Timestamp", "Name", "Category", "Shirt size"}}
	for _, b := range e.Bookings {
		bookings = append(bookings, []string{b.Timestamp.Format(timestampLayout), b.Name, b.Category, b.ShirtSize})
	}
	return c.writeFile("bookings.csv", bookings)
}

func (c *CSVWriter) writeFile(name string, records [][]string) error {
	path := filepath.Join(c.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		_ = f.Close()
		return fmt.Errorf("csv: write %q: %w", path, err)
	}
	return f.Close()
}

// Close is a no-op; every file is closed as soon as it is written.
func (c *CSVWriter) Close() error {
	return nil
}
