package people_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/stratalibrary/internal/app/system/csvutil"
	"github.com/dalemusser/stratalibrary/internal/app/system/entityval"
	"github.com/dalemusser/stratalibrary/internal/app/system/kindresolve"
	"github.com/dalemusser/stratalibrary/internal/domain/models"
	"github.com/dalemusser/stratalibrary/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type importBody struct {
	Committed bool `json:"committed"`
	Valid     int  `json:"valid"`
	Invalid   int  `json:"invalid"`
	Created   int  `json:"created"`
	Rows      []struct {
		Line       int                        `json:"line"`
		Resolution kindresolve.Resolution     `json:"resolution"`
		Result     entityval.ValidationResult `json:"result"`
		ID         string                     `json:"id"`
		Error      string                     `json:"error"`
	} `json:"rows"`
	ParseErrors []csvutil.RowError `json:"parse_errors"`
}

func csvRequest(target, body string) *http.Request {
	req := httptest.NewRequest("POST", target, strings.NewReader(body))
	req.Header.Set("Content-Type", "text/csv")
	return req
}

func TestHandleImport_DryRun(t *testing.T) {
	librarian := models.PersonType{ID: primitive.NewObjectID(), Name: "Bibliotecario"}
	h, _ := newStatelessHandler(fakeCatalog{types: []models.PersonType{librarian}})

	csv := `First Name,Last Name,Kind,Document,Grade
Ana,López,student,,5
Rosa,Díaz,bibliotecario,,
Marta,Gómez,alumno,,
Pablo,Ruiz,astronaut,,
,Sosa,,,`

	rec := serve(h, csvRequest("/import", csv))
	rec.AssertStatus(t, http.StatusOK)

	var got importBody
	rec.DecodeJSON(t, &got)
	if got.Committed || got.Valid != 2 || got.Invalid != 2 {
		t.Fatalf("report = committed %v valid %d invalid %d", got.Committed, got.Valid, got.Invalid)
	}
	if len(got.ParseErrors) != 1 || got.ParseErrors[0].Line != 6 {
		t.Errorf("parse errors = %+v", got.ParseErrors)
	}

	byLine := map[int]int{}
	for i, r := range got.Rows {
		byLine[r.Line] = i
	}
	if r := got.Rows[byLine[3]]; r.Resolution.Kind != models.PersonKindCustom {
		t.Errorf("line 3 kind = %s, want custom", r.Resolution.Kind)
	}
	if r := got.Rows[byLine[4]]; r.Result.FieldErrors["grade"] == "" {
		t.Errorf("line 4 should miss a grade: %+v", r.Result)
	}
	if r := got.Rows[byLine[5]]; r.Result.FieldErrors["kind"] == "" {
		t.Errorf("line 5 should flag the unknown kind: %+v", r.Result)
	}
}

func TestHandleImport_CommitRejectsInvalidFile(t *testing.T) {
	h, _ := newStatelessHandler(fakeCatalog{})

	rec := serve(h, csvRequest("/import?commit=true", "Ana,Ana,,,3\nLuis,Pérez,teacher,12345678,"))
	rec.AssertStatus(t, http.StatusUnprocessableEntity)

	var got importBody
	rec.DecodeJSON(t, &got)
	if got.Committed || got.Created != 0 || got.Invalid != 1 {
		t.Errorf("report = %+v", got)
	}
}

func TestHandleImport_BadUploads(t *testing.T) {
	h, _ := newStatelessHandler(fakeCatalog{})

	rec := serve(h, csvRequest("/import", "\"Ana,López"))
	rec.AssertStatus(t, http.StatusBadRequest)

	req := httptest.NewRequest("POST", "/import", strings.NewReader("--x--"))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	rec = serve(h, req)
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestHandleImport_Multipart(t *testing.T) {
	h, _ := newStatelessHandler(fakeCatalog{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("csv", "people.csv")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	_, _ = fw.Write([]byte("Ana,López,student,,5\n"))
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	req := httptest.NewRequest("POST", "/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := serve(h, req)
	rec.AssertStatus(t, http.StatusOK)

	var got importBody
	rec.DecodeJSON(t, &got)
	if got.Valid != 1 {
		t.Errorf("report = %+v", got)
	}
}

func TestHandleImport_Commit(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreatePersonType(ctx, "Bibliotecario", "Library staff")
	existing := fx.CreatePerson(ctx, "Old", "Record", models.PersonKindTeacher, "")
	if _, err := fx.DB().Collection("people").UpdateByID(ctx, existing.ID,
		bson.M{"$set": bson.M{"document_number": "99999999"}}); err != nil {
		t.Fatalf("set document: %v", err)
	}

	csv := `Ana,López,student,,5
Rosa,Díaz,Bibliotecario,12345678,
Luis,Pérez,teacher,99999999,`

	rec := serve(h, csvRequest("/import?commit=true", csv))
	rec.AssertStatus(t, http.StatusOK)

	var got importBody
	rec.DecodeJSON(t, &got)
	if !got.Committed || got.Created != 2 {
		t.Fatalf("report = committed %v created %d", got.Committed, got.Created)
	}
	for _, r := range got.Rows {
		if r.Line == 3 && !strings.Contains(r.Error, "document number") {
			t.Errorf("line 3 error = %q, want duplicate document", r.Error)
		}
	}

	n, err := fx.DB().Collection("people").CountDocuments(ctx, bson.M{"kind": models.PersonKindCustom, "kind_label": "Library staff"})
	if err != nil || n != 1 {
		t.Errorf("custom people stored = %d, %v", n, err)
	}
}
