// Package request decodes and validates incoming request data.
//
// Bodies decode into static request structs: unknown fields, trailing
// data and empty bodies are rejected before a handler touches storage.
package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/julienschmidt/httprouter"
)

// MaxBodyBytes caps the size of a JSON body.
const MaxBodyBytes = 1 << 20

var (
	// ErrEmptyBody is returned by DecodeJSON when the body has no content.
	ErrEmptyBody = errors.New("request body is empty")

	// ErrBodyTooLarge is returned by DecodeJSON when the body is longer
	// than MaxBodyBytes.
	ErrBodyTooLarge = fmt.Errorf("request body exceeds %d bytes", MaxBodyBytes)

	// ErrInvalidID is returned by ParseID for anything but a positive integer.
	ErrInvalidID = errors.New("invalid id: must be a positive integer")
)

var validate = newValidator()

// newValidator reports field errors under their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// DecodeJSON reads exactly one JSON value from r.Body into dst.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()

	var tooLarge *http.MaxBytesError
	if err := dec.Decode(dst); err != nil {
		switch {
		case errors.Is(err, io.EOF):
			return ErrEmptyBody
		case errors.As(err, &tooLarge):
			return ErrBodyTooLarge
		}
		return fmt.Errorf("malformed request body: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if errors.As(err, &tooLarge) {
			return ErrBodyTooLarge
		}
		return errors.New("malformed request body: unexpected data after the JSON object")
	}
	return nil
}

// Validate checks the validate tags of v. Field failures come back as
// validator.ValidationErrors.
func Validate(v any) error {
	return validate.Struct(v)
}

// ParseID reads the :id route parameter.
func ParseID(ps httprouter.Params) (int64, error) {
	id, err := strconv.ParseInt(ps.ByName("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}
