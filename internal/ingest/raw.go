package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// RawRecord is one row of the scraper's CSV export, untouched. Any field may
// be empty or carry the scraper's "N/A" sentinel.
type RawRecord struct {
	Name           string
	Designation    string
	Email          string
	Phone          string
	Education      string
	AreaOfInterest string
	ProfileLink    string
	ImageURL       string
}

// LoadCSV reads the scraper export at path. Column order is taken from the
// header row, so the scraper is free to reorder or add columns.
func LoadCSV(path string) ([]RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open raw export: %w", err)
	}
	defer f.Close()

	return readRecords(csv.NewReader(f))
}

func readRecords(r *csv.Reader) ([]RawRecord, error) {
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	if _, ok := cols["Name"]; !ok {
		return nil, fmt.Errorf("raw export has no Name column")
	}

	field := func(row []string, name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	var records []RawRecord
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		records = append(records, RawRecord{
			Name:           field(row, "Name"),
			Designation:    field(row, "Designation"),
			Email:          field(row, "Email"),
			Phone:          field(row, "Phone"),
			Education:      field(row, "Education"),
			AreaOfInterest: field(row, "Area_of_Interest"),
			ProfileLink:    field(row, "Profile_Link"),
			ImageURL:       field(row, "Image_URL"),
		})
	}

	return records, nil
}
