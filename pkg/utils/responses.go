package utils

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope every endpoint answers with. Status mirrors
// whether the HTTP code is below 400.
type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

func ResponseJSON(w http.ResponseWriter, code int, message string, data, errs any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(Response{
		Status:  code < http.StatusBadRequest,
		Message: message,
		Data:    data,
		Errors:  errs,
	})
}

func ResponseSuccess(w http.ResponseWriter, message string, data any) {
	ResponseJSON(w, http.StatusOK, message, data, nil)
}

func ResponseCreated(w http.ResponseWriter, message string, data any) {
	ResponseJSON(w, http.StatusCreated, message, data, nil)
}

// ResponseError writes a failure envelope. errs carries per-field reasons
// and may be nil.
func ResponseError(w http.ResponseWriter, code int, message string, errs any) {
	ResponseJSON(w, code, message, nil, errs)
}
