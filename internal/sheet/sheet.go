// Package sheet parses the directory spreadsheet CSV export into records.
//
// Column names come from the header row and are resolved to Record fields
// once, here, so the rest of the system only sees typed records.
package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"quilthub/internal/model"
)

// ErrMalformed is wrapped by every parse failure.
var ErrMalformed = errors.New("malformed document")

type field int

const (
	fieldName field = iota
	fieldCategory
	fieldLocation
	fieldBio
	fieldPhotoURL
	fieldWebsite
	fieldInstagram
	fieldFacebook
)

// headers maps normalized header text to a record field.
var headers = map[string]field{
	"resource/business name": fieldName,
	"business name":          fieldName,
	"name":                   fieldName,
	"category":               fieldCategory,
	"resource type":          fieldCategory,
	"location":               fieldLocation,
	"city/state":             fieldLocation,
	"bio":                    fieldBio,
	"description":            fieldBio,
	"about":                  fieldBio,
	"photo url":              fieldPhotoURL,
	"photo":                  fieldPhotoURL,
	"image url":              fieldPhotoURL,
	"website":                fieldWebsite,
	"website url":            fieldWebsite,
	"instagram":              fieldInstagram,
	"facebook":               fieldFacebook,
}

// Parse reads a CSV document whose first row is the header.
// Rows with only blank cells are skipped. Short rows are padded with empty
// values and unknown columns are ignored.
func Parse(r io.Reader) ([]model.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	head, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: missing header row", ErrMalformed)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	columns, err := mapColumns(head)
	if err != nil {
		return nil, err
	}

	var out []model.Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}

		if blank(row) {
			continue
		}
		out = append(out, buildRecord(columns, row))
	}
	return out, nil
}

// ParseString is a convenience wrapper around Parse.
func ParseString(doc string) ([]model.Record, error) {
	return Parse(strings.NewReader(doc))
}

// mapColumns returns, for each header cell, the field it feeds or -1.
// The first matching column wins when a field appears twice.
func mapColumns(head []string) ([]field, error) {
	columns := make([]field, len(head))
	seen := make(map[field]bool, len(head))
	for i, h := range head {
		f, ok := headers[normalizeHeader(h)]
		if !ok || seen[f] {
			columns[i] = -1
			continue
		}
		seen[f] = true
		columns[i] = f
	}
	if !seen[fieldName] {
		return nil, fmt.Errorf("%w: no business name column", ErrMalformed)
	}
	return columns, nil
}

func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\uFEFF")
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.TrimSuffix(h, ":")
	return strings.TrimSpace(h)
}

func buildRecord(columns []field, row []string) model.Record {
	var rec model.Record
	for i, f := range columns {
		if f < 0 || i >= len(row) {
			continue
		}
		v := strings.TrimSpace(row[i])
		switch f {
		case fieldName:
			rec.Name = v
		case fieldCategory:
			rec.Category = v
		case fieldLocation:
			rec.Location = v
		case fieldBio:
			rec.Bio = v
		case fieldPhotoURL:
			rec.PhotoURL = v
		case fieldWebsite:
			rec.Website = v
		case fieldInstagram:
			rec.Instagram = v
		case fieldFacebook:
			rec.Facebook = v
		}
	}
	return rec
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
