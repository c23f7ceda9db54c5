// internal/app/features/resources/validate.go
package resources

import (
	"net/http"

	"github.com/dalemusser/stratalibrary/internal/app/features/shared/api"
	"github.com/dalemusser/stratalibrary/internal/app/system/entityval"
	"github.com/dalemusser/stratalibrary/internal/app/system/htmlsanitize"
	"github.com/dalemusser/stratalibrary/internal/app/system/resourceval"
	"github.com/dalemusser/stratalibrary/internal/domain/models"
	"go.uber.org/zap"
)

type kindInfo struct {
	Kind   models.ResourceKind `json:"kind"`
	Label  string              `json:"label"`
	Fields []resourceval.Field `json:"fields"`
}

// ServeKinds lists every resource kind with the fields a form should show
// for it.
func (h *Handler) ServeKinds(w http.ResponseWriter, r *http.Request) {
	out := make([]kindInfo, 0, len(models.ResourceKinds))
	for _, k := range models.ResourceKinds {
		fields, err := resourceval.ApplicableFields(k)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "field table missing kind", err, "Could not list resource kinds.")
			return
		}
		out = append(out, kindInfo{Kind: k, Label: k.Label(), Fields: fields})
	}
	api.WriteJSON(w, http.StatusOK, out)
}

type validateResponse struct {
	Result  entityval.ValidationResult `json:"result"`
	Summary entityval.Summary          `json:"summary"`
	Cleaned resourceval.Draft          `json:"cleaned"`
}

// HandleValidate runs the pipeline over the posted draft without storing
// anything. An invalid draft is still a 200: the verdict is in the body.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	d, ok := h.readDraft(w, r)
	if !ok {
		return
	}
	out := h.validate(w, d)
	api.WriteJSON(w, http.StatusOK, validateResponse{
		Result:  out.Result,
		Summary: entityval.Summarize(out.Result),
		Cleaned: out.Cleaned,
	})
}

func (h *Handler) readDraft(w http.ResponseWriter, r *http.Request) (resourceval.Draft, bool) {
	var d resourceval.Draft
	if err := api.ReadJSON(w, r, &d); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode resource draft", err, "Request body must be a JSON resource.")
		return resourceval.Draft{}, false
	}
	return d, true
}

// validate sanitizes notes and runs the pipeline, logging the verdict.
func (h *Handler) validate(w http.ResponseWriter, d resourceval.Draft) resourceval.Outcome {
	d.Notes = htmlsanitize.NotesPtr(d.Notes)
	out := resourceval.Validate(d)

	h.Log.Debug("resource validated",
		zap.String("validation_id", api.ValidationIDOf(w)),
		zap.String("kind", string(out.Kind)),
		zap.Bool("valid", out.Result.IsValid),
		zap.Int("field_errors", len(out.Result.FieldErrors)),
		zap.Int("rule_violations", len(out.Result.RuleViolations)),
	)
	return out
}
