// internal/app/features/people/import.go
package people

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/dalemusser/stratalibrary/internal/app/features/shared/api"
	peoplestore "github.com/dalemusser/stratalibrary/internal/app/store/people"
	"github.com/dalemusser/stratalibrary/internal/app/system/csvutil"
	"github.com/dalemusser/stratalibrary/internal/app/system/entityval"
	"github.com/dalemusser/stratalibrary/internal/app/system/kindresolve"
	"github.com/dalemusser/stratalibrary/internal/app/system/limits"
	"github.com/dalemusser/stratalibrary/internal/app/system/personval"
	"github.com/dalemusser/stratalibrary/internal/app/system/timeouts"
	"github.com/dalemusser/stratalibrary/internal/app/system/workers"
	"github.com/dalemusser/waffle/pantry/query"
	"go.uber.org/zap"
)

// importWorkers bounds concurrent inserts during a committed import.
const importWorkers = 8

type importRow struct {
	Line int `json:"line"`
	validateResponse
	ID    string `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}

type importReport struct {
	Committed   bool               `json:"committed"`
	Valid       int                `json:"valid"`
	Invalid     int                `json:"invalid"`
	Created     int                `json:"created"`
	Rows        []importRow        `json:"rows"`
	ParseErrors []csvutil.RowError `json:"parse_errors"`
}

// HandleImport validates a people CSV row by row. The file is sent either
// as the raw body (text/csv) or as the "csv" field of a multipart form.
//
// Without ?commit=true nothing is stored and the report comes back with
// 200. With it, the import is all-or-nothing at validation time: any
// unparseable or invalid row rejects the whole file with 422. Otherwise
// every row is inserted and the report lists the new IDs; rows that fail
// to insert (e.g. a document number already on file) carry an error.
func (h *Handler) HandleImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxImportUpload)

	src, closeSrc, err := csvSource(r)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "read import upload", err, "Upload a CSV file as the request body or the \"csv\" form field.")
		return
	}
	defer closeSrc()

	parsed, err := csvutil.ParsePeopleCSV(src, csvutil.DefaultParseOptions())
	if errors.Is(err, csvutil.ErrTooManyRows) {
		h.ErrLog.LogBadRequest(w, r, "import too large", err, "The file has too many rows.")
		return
	}
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse import csv", err, "The file is not valid CSV.")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Batch(), h.Log, "people import")
	defer cancel()

	cat, err := h.catalog(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load person types", err, "Could not load person types.")
		return
	}

	report := importReport{
		Rows:        make([]importRow, len(parsed.Rows)),
		ParseErrors: parsed.Errors,
	}
	outcomes := make([]personval.Outcome, len(parsed.Rows))
	for i, row := range parsed.Rows {
		out := validateRow(row, cat)
		outcomes[i] = out
		report.Rows[i] = importRow{Line: row.Line, validateResponse: newValidateResponse(out)}
		if out.Result.IsValid {
			report.Valid++
		} else {
			report.Invalid++
		}
	}

	vid := api.ValidationIDOf(w)
	h.Log.Info("people import validated",
		zap.String("validation_id", vid),
		zap.Int("rows", len(parsed.Rows)),
		zap.Int("valid", report.Valid),
		zap.Int("invalid", report.Invalid),
		zap.Int("parse_errors", len(parsed.Errors)),
	)

	if query.Get(r, "commit") != "true" {
		api.WriteJSON(w, http.StatusOK, report)
		return
	}
	if report.Invalid > 0 || parsed.HasErrors() || len(parsed.Rows) == 0 {
		api.WriteJSON(w, http.StatusUnprocessableEntity, report)
		return
	}

	h.insertAll(ctx, outcomes, report.Rows)
	report.Committed = true
	for _, row := range report.Rows {
		if row.ID != "" {
			report.Created++
		}
	}
	h.Log.Info("people import committed",
		zap.String("validation_id", vid),
		zap.Int("created", report.Created),
		zap.Int("failed", len(report.Rows)-report.Created),
	)

	status := http.StatusCreated
	if report.Created < len(report.Rows) {
		status = http.StatusOK
	}
	api.WriteJSON(w, status, report)
}

// insertAll stores every outcome, recording the new ID or the failure on
// the matching row. One failed insert does not stop the others.
func (h *Handler) insertAll(ctx context.Context, outcomes []personval.Outcome, rows []importRow) {
	err := workers.Each(ctx, importWorkers, len(outcomes), func(ctx context.Context, i int) {
		p, err := h.Store.Create(ctx, outcomes[i].Cleaned.ToModel(outcomes[i].Resolution))
		switch {
		case errors.Is(err, peoplestore.ErrDuplicateDocument):
			rows[i].Error = "A person with this document number already exists."
		case err != nil:
			h.Log.Error("import insert failed", zap.Int("line", rows[i].Line), zap.Error(err))
			rows[i].Error = "Could not save this row."
		default:
			rows[i].ID = p.ID.Hex()
		}
	})
	if err != nil {
		for i := range rows {
			if rows[i].ID == "" && rows[i].Error == "" {
				rows[i].Error = "Import timed out before this row was saved."
			}
		}
	}
}

// validateRow maps a CSV row onto a draft and validates it. The kind
// column may hold a built-in kind name or the name of a person type; a
// value that is neither is reported on the kind field.
func validateRow(row csvutil.PersonRow, cat kindresolve.Catalog) personval.Outcome {
	d := personval.Draft{
		FirstName:      row.FirstName,
		LastName:       row.LastName,
		DocumentNumber: row.DocumentNumber,
		Grade:          row.Grade,
	}

	unknownKind := false
	if row.Kind != "" {
		if _, ok := kindresolve.KnownKind(row.Kind); ok {
			d.KindName = row.Kind
		} else if pt, ok := catalogByName(cat, row.Kind); ok {
			d.KindRef = pt
		} else {
			unknownKind = true
		}
	}

	out := personval.Validate(d, cat)
	if unknownKind {
		fieldErrs := entityval.FieldErrors{"kind": "Kind is not a known kind or person type."}
		for k, v := range out.Result.FieldErrors {
			fieldErrs[k] = v
		}
		out.Result = entityval.Aggregate(fieldErrs, out.Result.RuleViolations)
	}
	return out
}

// catalogByName returns the hex id of the entry named name, ignoring case.
func catalogByName(cat kindresolve.Catalog, name string) (string, bool) {
	name = strings.TrimSpace(name)
	for _, pt := range cat {
		if strings.EqualFold(strings.TrimSpace(pt.Name), name) {
			return pt.ID.Hex(), true
		}
	}
	return "", false
}

// csvSource returns the uploaded CSV stream and a func that releases it.
func csvSource(r *http.Request) (io.Reader, func(), error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(limits.MaxImportUpload); err != nil {
			return nil, nil, err
		}
		file, _, err := r.FormFile("csv")
		if err != nil {
			return nil, nil, err
		}
		return file, func() { _ = file.Close() }, nil
	}
	return r.Body, func() {}, nil
}
