package storage

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"setmore-schedules/models"
)

const utf8BOM = "\ufeff"

// ErrUnsupportedFormat is returned for input files that are neither CSV nor XLSX.
var ErrUnsupportedFormat = errors.New("unsupported input format")

// ReadFile loads a booking export from disk, choosing the decoder by extension.
func ReadFile(path string) ([]models.RawBooking, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("input: open %q: %w", path, err)
	}
	defer f.Close()

	return Read(f, filepath.Ext(path))
}

// Read decodes a booking export from r; ext is ".csv" or ".xlsx".
func Read(r io.Reader, ext string) ([]models.RawBooking, error) {
	switch strings.ToLower(ext) {
	case ".csv":
		return ReadCSV(r)
	case ".xlsx":
		return ReadXLSX(r)
	default:
		return nil, fmt.Errorf("input: %w: %q", ErrUnsupportedFormat, ext)
	}
}

// ReadCSV decodes a comma-separated export whose first row is the header.
// Every data row must have as many fields as the header.
func ReadCSV(r io.Reader) ([]models.RawBooking, error) {
	br := bufio.NewReader(r)
	if lead, err := br.Peek(len(utf8BOM)); err == nil && string(lead) == utf8BOM {
		_, _ = br.Discard(len(utf8BOM))
	}
	cr := csv.NewReader(br)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []models.RawBooking{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("csv: read header: %w", err)
	}
	header = normaliseHeader(header)

	var rows []models.RawBooking
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: read row %d: %w", len(rows)+1, err)
		}
		rows = append(rows, toRaw(header, record))
	}
	if rows == nil {
		rows = []models.RawBooking{}
	}
	return rows, nil
}

// ReadXLSX decodes the first sheet of a workbook whose first row is the header.
// Blank rows are skipped and short rows are padded with empty cells.
func ReadXLSX(r io.Reader) ([]models.RawBooking, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("xlsx: open: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return []models.RawBooking{}, nil
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("xlsx: read sheet %q: %w", sheets[0], err)
	}

	rows := []models.RawBooking{}
	if len(records) == 0 {
		return rows, nil
	}

	header := normaliseHeader(records[0])
	for _, record := range records[1:] {
		if isBlank(record) {
			continue
		}
		if len(record) > len(header) {
			return nil, fmt.Errorf("xlsx: row %d has %d cells, header has %d", len(rows)+1, len(record), len(header))
		}
		rows = append(rows, toRaw(header, record))
	}
	return rows, nil
}

func normaliseHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		out[i] = strings.TrimSpace(h)
	}
	return out
}

func toRaw(header, record []string) models.RawBooking {
	raw := make(models.RawBooking, len(header))
	for i, h := range header {
		if i < len(record) {
			raw[h] = record[i]
		} else {
			raw[h] = ""
		}
	}
	return raw
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
