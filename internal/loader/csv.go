// Package loader reads tabular news data into records.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"newsir/internal/domain"
)

// ReadCSV parses CSV with a header row. Each following row becomes a record
// keyed by header name; rows shorter than the header leave the trailing
// fields absent.
func ReadCSV(r io.Reader) ([]domain.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("csv: missing header row")
		}
		return nil, fmt.Errorf("csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	// strip a UTF-8 byte order mark left by spreadsheet exports
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var records []domain.Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv row %d: %w", len(records)+2, err)
		}
		rec := make(domain.Record, len(header))
		for i, name := range header {
			if i >= len(row) {
				break
			}
			rec[name] = strings.TrimSpace(row[i])
		}
		records = append(records, rec)
	}
	return records, nil
}

// LoadCSV reads the CSV file at path.
func LoadCSV(path string) ([]domain.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	records, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}
