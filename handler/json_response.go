package handler

import (
	"encoding/json"
	"errors"
	"maps"
	"net/http"
)

// Envelope is the body of every JSON answer: exactly one of Data or Error.
type Envelope struct {
	Data  any       `json:"data,omitempty"`
	Error *APIError `json:"error,omitempty"`
}

// APIError carries the translation key of the failure in Code. Fields is set
// for validation errors only.
type APIError struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Fields  map[string][]string `json:"fields,omitempty"`
}

// JSONResponse renders an Envelope. Its methods return modified copies.
type JSONResponse struct {
	status int
	body   Envelope
}

// JSON answers 200 with v as data.
func JSON(v any) JSONResponse {
	return JSONResponse{status: http.StatusOK, body: Envelope{Data: v}}
}

// JSONError classifies err like the page error handler does. Messages of
// server errors are never exposed.
func JSONError(err error) JSONResponse {
	info := ClassifyError(err)
	apiErr := &APIError{Code: info.Key, Message: http.StatusText(info.StatusCode)}

	var valErr ValidationError
	if errors.As(err, &valErr) && len(valErr) > 0 {
		apiErr.Message = valErr.Error()
		apiErr.Fields = maps.Clone(map[string][]string(valErr))
	}
	return JSONResponse{status: info.StatusCode, body: Envelope{Error: apiErr}}
}

func (j JSONResponse) WithStatus(status int) JSONResponse {
	j.status = status
	return j
}

// WithMessage replaces the error message, typically with a translation.
// It has no effect on data responses.
func (j JSONResponse) WithMessage(msg string) JSONResponse {
	if j.body.Error != nil && msg != "" {
		e := *j.body.Error
		e.Message = msg
		j.body.Error = &e
	}
	return j
}

func (j JSONResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}
