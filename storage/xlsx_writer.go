package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// XLSXWriter exports an upload as a single workbook with one sheet per report.
type XLSXWriter struct {
	path string
}

func NewXLSXWriter(path string) (*XLSXWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("xlsx: create output dir: %w", err)
	}
	return &XLSXWriter{path: path}, nil
}

// Write saves sheets Bars, BBQ, Shirts and Bookings to the workbook path.
func (x *XLSXWriter) Write(ctx context.Context, e *Export) error {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("xlsx: header style: %w", err)
	}

	first := true
	addSheet := func(name string, rows [][]any) error {
		if first {
			if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
				return fmt.Errorf("xlsx: rename sheet: %w", err)
			}
			first = false
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("xlsx: add sheet %q: %w", name, err)
		}

		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(name, cell, &row); err != nil {
				return fmt.Errorf("xlsx: sheet %q row %d: %w", name, i+1, err)
			}
		}
		return f.SetRowStyle(name, 1, 1, bold)
	}

	for _, s := range scheduleSheets(e) {
		if err := ctx.Err(); err != nil {
			return err
		}
		rows := [][]any{toAny(scheduleHeader(s.schedule))}
		for _, r := range s.schedule.Rows {
			rows = append(rows, toAny(scheduleRecord(r)))
		}
		if err := addSheet(s.title, rows); err != nil {
			return err
		}
	}

	sizes := [][]any{{"Shirt size", "Count"}}
	for _, vc := range e.Reports.ShirtSizes {
		sizes = append(sizes, []any{vc.Value, vc.Count})
	}
	if err := addSheet("Shirts", sizes); err != nil {
		return err
	}

	bookings := [][]any{{"Timestamp", "Name", "Category", "Shirt size"}}
	for _, b := range e.Bookings {
		bookings = append(bookings, []any{b.Timestamp.Format(timestampLayout), b.Name, b.Category, b.ShirtSize})
	}
	if err := addSheet("Bookings", bookings); err != nil {
		return err
	}

	if err := f.SaveAs(x.path); err != nil {
		return fmt.Errorf("xlsx: save %q: %w", x.path, err)
	}
	return nil
}

func (x *XLSXWriter) Close() error {
	return nil
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
