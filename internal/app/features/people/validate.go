// internal/app/features/people/validate.go
package people

import (
	"context"
	"net/http"

	"github.com/dalemusser/stratalibrary/internal/app/features/shared/api"
	"github.com/dalemusser/stratalibrary/internal/app/system/entityval"
	"github.com/dalemusser/stratalibrary/internal/app/system/kindresolve"
	"github.com/dalemusser/stratalibrary/internal/app/system/personval"
	"github.com/dalemusser/stratalibrary/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type validateResponse struct {
	Resolution  kindresolve.Resolution     `json:"resolution"`
	Result      entityval.ValidationResult `json:"result"`
	Summary     entityval.Summary          `json:"summary"`
	Cleaned     personval.Draft            `json:"cleaned"`
	Diagnostics []personval.Diagnostic     `json:"diagnostics"`
}

func newValidateResponse(out personval.Outcome) validateResponse {
	diags := out.Diagnostics
	if diags == nil {
		diags = []personval.Diagnostic{}
	}
	return validateResponse{
		Resolution:  out.Resolution,
		Result:      out.Result,
		Summary:     entityval.Summarize(out.Result),
		Cleaned:     out.Cleaned,
		Diagnostics: diags,
	}
}

// HandleValidate resolves the posted draft's kind and validates it without
// storing anything.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	d, ok := h.readDraft(w, r)
	if !ok {
		return
	}
	out, ok := h.validate(w, r, d)
	if !ok {
		return
	}
	api.WriteJSON(w, http.StatusOK, newValidateResponse(out))
}

func (h *Handler) readDraft(w http.ResponseWriter, r *http.Request) (personval.Draft, bool) {
	var d personval.Draft
	if err := api.ReadJSON(w, r, &d); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode person draft", err, "Request body must be a JSON person.")
		return personval.Draft{}, false
	}
	return d, true
}

// catalog takes a snapshot of person_types for one request.
func (h *Handler) catalog(ctx context.Context) (kindresolve.Catalog, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()
	types, err := h.Types.All(ctx)
	if err != nil {
		return nil, err
	}
	return kindresolve.Catalog(types), nil
}

// validate runs the pipeline against a fresh catalog snapshot. On false
// the error response has already been written.
func (h *Handler) validate(w http.ResponseWriter, r *http.Request, d personval.Draft) (personval.Outcome, bool) {
	cat, err := h.catalog(r.Context())
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load person types", err, "Could not load person types.")
		return personval.Outcome{}, false
	}
	out := personval.Validate(d, cat)

	vid := api.ValidationIDOf(w)
	h.Log.Debug("person validated",
		zap.String("validation_id", vid),
		zap.String("kind", string(out.Resolution.Kind)),
		zap.String("confidence", string(out.Resolution.Confidence)),
		zap.String("strategy", out.Resolution.Strategy),
		zap.Bool("valid", out.Result.IsValid),
		zap.Int("field_errors", len(out.Result.FieldErrors)),
		zap.Int("rule_violations", len(out.Result.RuleViolations)),
	)
	for _, dg := range out.Diagnostics {
		h.Log.Info("person diagnostic",
			zap.String("validation_id", vid),
			zap.String("code", dg.Code),
			zap.String("message", dg.Message),
		)
	}
	return out, true
}
