// internal/app/system/csvutil/people.go
package csvutil

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrTooManyRows is returned when a file has more data rows than allowed.
var ErrTooManyRows = errors.New("csv has too many rows")

// PersonRow is one data row of a people CSV. Values are trimmed but
// otherwise as written; personval does the real normalization.
//
// Columns, in order: first name, last name, kind, document number, grade.
// Only the first two are required on every row.
type PersonRow struct {
	Line           int    `json:"line"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Kind           string `json:"kind,omitempty"`
	DocumentNumber string `json:"document_number,omitempty"`
	Grade          string `json:"grade,omitempty"`
}

// RowError describes a row that could not be turned into a PersonRow.
type RowError struct {
	Line   int      `json:"line"`
	Reason string   `json:"reason"`
	Raw    []string `json:"raw,omitempty"`
}

// ParseOptions tunes ParsePeopleCSV. MaxRows 0 means unlimited.
type ParseOptions struct {
	MaxRows int
}

// DefaultParseOptions caps a file at MaxRows data rows.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{MaxRows: MaxRows}
}

// ParseResult holds the rows that parsed and the ones that did not.
type ParseResult struct {
	Rows   []PersonRow `json:"rows"`
	Errors []RowError  `json:"errors"`
}

func (r *ParseResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// Summary renders up to maxShow row errors as one plain-text message.
func (r *ParseResult) Summary(maxShow int) string {
	if !r.HasErrors() {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d row(s) are invalid.", len(r.Errors))
	shown := min(maxShow, len(r.Errors))
	for _, e := range r.Errors[:shown] {
		fmt.Fprintf(&b, " Line %d: %s.", e.Line, e.Reason)
	}
	if rest := len(r.Errors) - shown; rest > 0 {
		fmt.Fprintf(&b, " ...and %d more.", rest)
	}
	return b.String()
}

var headerNames = map[string]bool{
	"first name": true, "first_name": true, "firstname": true, "nombre": true, "nombres": true,
}

func isHeader(rec []string) bool {
	return len(rec) > 0 && headerNames[strings.ToLower(strings.TrimSpace(rec[0]))]
}

func cell(rec []string, i int) string {
	if i < len(rec) {
		return strings.TrimSpace(rec[i])
	}
	return ""
}

// ParsePeopleCSV reads a people CSV. A header row is detected by its
// first cell and skipped, a UTF-8 BOM is ignored, and blank rows are
// dropped. Rows missing a name or repeating a document number already
// seen in the file are reported in Errors, not returned as Rows.
//
// The returned error is reserved for unreadable input and ErrTooManyRows.
func ParsePeopleCSV(r io.Reader, opts ParseOptions) (ParseResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	res := ParseResult{Rows: []PersonRow{}, Errors: []RowError{}}
	seenDocs := map[string]int{}
	records := 0
	data := 0

	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return ParseResult{}, fmt.Errorf("read csv: %w", err)
		}
		records++
		line, _ := reader.FieldPos(0)
		if records == 1 && len(rec) > 0 {
			rec[0] = strings.TrimPrefix(rec[0], "\ufeff")
			if isHeader(rec) {
				continue
			}
		}
		if blank(rec) {
			continue
		}

		data++
		if opts.MaxRows > 0 && data > opts.MaxRows {
			return ParseResult{}, ErrTooManyRows
		}

		row := PersonRow{
			Line:           line,
			FirstName:      cell(rec, 0),
			LastName:       cell(rec, 1),
			Kind:           cell(rec, 2),
			DocumentNumber: cell(rec, 3),
			Grade:          cell(rec, 4),
		}
		switch {
		case row.FirstName == "":
			res.Errors = append(res.Errors, RowError{Line: line, Reason: "missing first name", Raw: rec})
			continue
		case row.LastName == "":
			res.Errors = append(res.Errors, RowError{Line: line, Reason: "missing last name", Raw: rec})
			continue
		}
		if doc := strings.ToUpper(row.DocumentNumber); doc != "" {
			if first, dup := seenDocs[doc]; dup {
				res.Errors = append(res.Errors, RowError{
					Line:   line,
					Reason: fmt.Sprintf("duplicate document number (first seen on line %d)", first),
					Raw:    rec,
				})
				continue
			}
			seenDocs[doc] = line
		}
		res.Rows = append(res.Rows, row)
	}
	return res, nil
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
