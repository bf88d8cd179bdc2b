package web

// errors.go turns pipeline and request errors into JSON responses.
//
// Codes:
//
//	REQ001 - Bad request: missing file, bad form or unknown export format
//	FILE001 - File too large: body exceeds UPLOAD_MAX_FILE_SIZE
//	FILE002 - Invalid file: data or filter file could not be parsed
//	VAL005 - Column not found: filter names columns the file does not have
//	EXP001 - Export failed: the table could not be written
//	INT001 - Internal error

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/nconklindev/zempic/internal/logging"
	"github.com/nconklindev/zempic/internal/slimmer"
)

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Message string   `json:"message"`
	Action  string   `json:"action,omitempty"`
	Code    string   `json:"code"`
	Missing []string `json:"missing,omitempty"`
}

// requestError is a problem with the request itself rather than its files.
type requestError struct {
	status  int
	code    string
	message string
	err     error
}

func (e *requestError) Error() string {
	if e.err != nil {
		return e.message + ": " + e.err.Error()
	}
	return e.message
}

func (e *requestError) Unwrap() error {
	return e.err
}

func badRequest(message string, err error) error {
	return &requestError{status: http.StatusBadRequest, code: "REQ001", message: message, err: err}
}

func tooLarge(err error) error {
	return &requestError{status: http.StatusRequestEntityTooLarge, code: "FILE001", message: "file too large", err: err}
}

// mapError picks the status code and user-facing body for err.
func mapError(err error) (int, ErrorResponse) {
	var (
		reqErr   *requestError
		parseErr *slimmer.ParseError
		valErr   *slimmer.ValidationError
		serErr   *slimmer.SerializationError
	)

	switch {
	case errors.As(err, &reqErr):
		return reqErr.status, ErrorResponse{
			Error:   reqErr.Error(),
			Message: reqErr.message,
			Code:    reqErr.code,
		}
	case errors.As(err, &parseErr):
		return http.StatusUnprocessableEntity, ErrorResponse{
			Error:   parseErr.Error(),
			Message: "Could not parse file " + parseErr.File,
			Action:  "Upload a valid CSV or Excel file, or a UTF-8 text filter list",
			Code:    "FILE002",
		}
	case errors.As(err, &valErr):
		return http.StatusUnprocessableEntity, ErrorResponse{
			Error:   valErr.Error(),
			Message: "Your filter is asking for columns not present in the file",
			Action:  "Edit the filter list or pick columns from the file",
			Code:    "VAL005",
			Missing: valErr.Missing,
		}
	case errors.As(err, &serErr):
		return http.StatusInternalServerError, ErrorResponse{
			Error:   serErr.Error(),
			Message: "The export could not be written",
			Action:  "Try the other export format",
			Code:    "EXP001",
		}
	default:
		return http.StatusInternalServerError, ErrorResponse{
			Error:   err.Error(),
			Message: "Something went wrong",
			Code:    "INT001",
		}
	}
}

// respondError logs err and writes its mapped JSON body.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := mapError(err)

	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	logging.FromContext(r.Context()).Log(r.Context(), level, "request error",
		"path", r.URL.Path,
		"status", status,
		"code", body.Code,
		"error", err.Error(),
	)

	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
