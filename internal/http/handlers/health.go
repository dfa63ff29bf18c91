package handlers

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"

	"github.com/aanand-mishra/library-api/internal/http/middleware"
	"github.com/aanand-mishra/library-api/internal/utils/response"
)

// Pinger is implemented by storage.Storage.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health handles GET /healthz: 200 when the database answers a ping,
// 503 otherwise.
func Health(db Pinger, log *zap.Logger) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		requestID := middleware.RequestIDFromContext(r.Context())
		if err := db.Ping(r.Context()); err != nil {
			log.Error("health check failed", zap.String("request.id", requestID), zap.Error(err))
			write(w, log, requestID, http.StatusServiceUnavailable, response.GeneralError(err).WithRequestID(requestID))
			return
		}
		write(w, log, requestID, http.StatusOK, response.Response{Status: response.StatusOK})
	}
}
