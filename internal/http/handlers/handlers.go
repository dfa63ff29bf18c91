// Package handlers holds what the resource handlers share: turning
// decode, validation and storage failures into error responses.
//
// Each resource lives in its own subpackage (book, student) and exposes
// closure factories: a function that receives the dependencies once at
// startup and returns the httprouter.Handle called for every request.
//
//	router.GET("/api/v1/books/:id", book.GetByID(store, log))
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/aanand-mishra/library-api/internal/http/middleware"
	"github.com/aanand-mishra/library-api/internal/storage"
	"github.com/aanand-mishra/library-api/internal/utils/request"
	"github.com/aanand-mishra/library-api/internal/utils/response"
)

// DecodeAndValidate decodes the body into dst and checks its validate
// tags. On failure it writes a 422 response and returns false.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, log *zap.Logger, dst any) bool {
	if err := request.DecodeJSON(w, r, dst); err != nil {
		Invalid(w, r, log, err)
		return false
	}
	if err := request.Validate(dst); err != nil {
		Invalid(w, r, log, err)
		return false
	}
	return true
}

// Invalid writes a 422 for input the handler refuses to process, or a
// 413 when the body exceeded request.MaxBodyBytes.
func Invalid(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	requestID := middleware.RequestIDFromContext(r.Context())
	log.Info("invalid request", zap.String("request.id", requestID), zap.Error(err))

	status := http.StatusUnprocessableEntity
	resp := response.GeneralError(err)
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		resp = response.ValidationError(verrs)
	case errors.Is(err, request.ErrBodyTooLarge):
		status = http.StatusRequestEntityTooLarge
	}
	write(w, log, requestID, status, resp.WithRequestID(requestID))
}

// ErrTimeout is reported to the client when the request deadline passed
// before storage answered.
var ErrTimeout = errors.New("request timed out")

// StorageFailure maps a storage error to its response: 404 for
// storage.ErrNotFound, 422 for storage.ErrDuplicate, 503 when the
// request deadline was exceeded and 500 with the underlying cause for
// anything else.
func StorageFailure(w http.ResponseWriter, r *http.Request, log *zap.Logger, msg string, err error) {
	requestID := middleware.RequestIDFromContext(r.Context())

	status := http.StatusInternalServerError
	resp := response.GeneralError(err)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, storage.ErrDuplicate):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusServiceUnavailable
		resp = response.GeneralError(ErrTimeout)
	}

	if status == http.StatusInternalServerError {
		log.Error(msg, zap.String("request.id", requestID), zap.Error(err))
	} else {
		log.Info(msg, zap.String("request.id", requestID), zap.Error(err))
	}
	write(w, log, requestID, status, resp.WithRequestID(requestID))
}

// JSON writes a success body and logs a failed write.
func JSON(w http.ResponseWriter, r *http.Request, log *zap.Logger, status int, data any) {
	write(w, log, middleware.RequestIDFromContext(r.Context()), status, data)
}

func write(w http.ResponseWriter, log *zap.Logger, requestID string, status int, data any) {
	if err := response.WriteJSON(w, status, data); err != nil {
		log.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}
