// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/stratalibrary/internal/app/features/shared/api"
	"go.uber.org/zap"
)

// body is the JSON shape of every error response.
type body struct {
	Error        string `json:"error"`
	ValidationID string `json:"validation_id,omitempty"`
}

// ErrorLogger logs handler failures and writes the matching JSON error
// response. userMsg is what the client sees; err and msg only go to the
// log.
type ErrorLogger struct {
	Log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{Log: logger}
}

func (e *ErrorLogger) write(w http.ResponseWriter, status int, userMsg string) {
	api.WriteJSON(w, status, body{Error: userMsg, ValidationID: api.ValidationIDOf(w)})
}

func (e *ErrorLogger) fields(r *http.Request, w http.ResponseWriter, err error) []zap.Field {
	fs := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	}
	if id := api.ValidationIDOf(w); id != "" {
		fs = append(fs, zap.String("validation_id", id))
	}
	if err != nil {
		fs = append(fs, zap.Error(err))
	}
	return fs
}

// LogServerError logs at Error and responds 500.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg string) {
	e.Log.Error(msg, e.fields(r, w, err)...)
	e.write(w, http.StatusInternalServerError, userMsg)
}

// LogBadRequest logs at Warn and responds 400.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg string) {
	e.Log.Warn(msg, e.fields(r, w, err)...)
	e.write(w, http.StatusBadRequest, userMsg)
}

// LogNotFound logs at Info and responds 404.
func (e *ErrorLogger) LogNotFound(w http.ResponseWriter, r *http.Request, msg string, userMsg string) {
	e.Log.Info(msg, e.fields(r, w, nil)...)
	e.write(w, http.StatusNotFound, userMsg)
}

// LogConflict logs at Info and responds 409.
func (e *ErrorLogger) LogConflict(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg string) {
	e.Log.Info(msg, e.fields(r, w, err)...)
	e.write(w, http.StatusConflict, userMsg)
}
