// Package response provides helpers for writing consistent JSON HTTP
// responses.
//
// Success responses carry the resource itself (a book, a list of
// students...). Error responses always look like:
//
//	{ "status": "error", "error": "book not found", "request_id": "..." }
package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Response is the envelope used for error cases and small status bodies.
type Response struct {
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// WriteJSON writes data JSON-encoded with the given HTTP status code.
// Headers must be set before WriteHeader, so the order here matters.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// NoContent writes a bodiless 204.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// GeneralError wraps any Go error into the error envelope.
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// ValidationError converts the field errors reported by the validator
// into a single human-readable Response, e.g.
//
//	field title is required, field birthdate must be a date (YYYY-MM-DD)
func ValidationError(errs validator.ValidationErrors) Response {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is required", e.Field()))
		case "datetime":
			msgs = append(msgs, fmt.Sprintf("field %s must be a date (YYYY-MM-DD)", e.Field()))
		case "min", "gte":
			msgs = append(msgs, fmt.Sprintf("field %s must be at least %s%s", e.Field(), e.Param(), unit(e)))
		case "max", "lte":
			msgs = append(msgs, fmt.Sprintf("field %s must be at most %s%s", e.Field(), e.Param(), unit(e)))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}

	return Response{
		Status: StatusError,
		Error:  strings.Join(msgs, ", "),
	}
}

func unit(e validator.FieldError) string {
	if e.Kind() == reflect.String {
		return " characters long"
	}
	return ""
}

// WithRequestID stamps the request id on the envelope.
func (r Response) WithRequestID(id string) Response {
	r.RequestID = id
	return r
}
