// Package middleware holds the httprouter.Handle wrappers applied to
// every route, and the http.Handler wrappers (RequestID, CORS) placed
// around the router itself.
package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"

	"github.com/aanand-mishra/library-api/internal/metrics"
	"github.com/aanand-mishra/library-api/internal/utils/response"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

type contextKey string

const requestIDKey contextKey = "request.id"

// Middleware wraps a handle with extra behaviour.
type Middleware func(httprouter.Handle) httprouter.Handle

// Chain is a stack of middlewares; the first one is the outermost.
type Chain []Middleware

// Then wraps h with every middleware of the chain.
func (c Chain) Then(h httprouter.Handle) httprouter.Handle {
	for i := len(c) - 1; i >= 0; i-- {
		h = c[i](h)
	}
	return h
}

// RequestIDFromContext returns the id set by RequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithRequestID returns a copy of ctx carrying id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID reuses a well-formed incoming X-Request-ID or generates a
// new one, and echoes it on the response. It wraps the whole router so
// unmatched routes carry the header too.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(WithRequestID(r.Context(), id)))
	})
}

// CORS allows any origin on every response.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		SetCORSHeaders(w.Header())
		next.ServeHTTP(w, r)
	})
}

// SetCORSHeaders writes the CORS response headers.
func SetCORSHeaders(h http.Header) {
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type, "+RequestIDHeader)
	h.Set("Access-Control-Expose-Headers", RequestIDHeader)
}

// Logger writes one access log line per request once it completes.
func Logger(log *zap.Logger) Middleware {
	return func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			start := time.Now()
			rec := wrap(w)
			next(rec, r, ps)
			log.Info("request",
				zap.String("request.id", RequestIDFromContext(r.Context())),
				zap.String("request.method", r.Method),
				zap.String("request.path", r.URL.Path),
				zap.String("request.agent", r.UserAgent()),
				zap.Int("response.status", rec.Status()),
				zap.Int("response.bytes", rec.Bytes()),
				zap.Duration("request.duration", time.Since(start)),
			)
		}
	}
}

// Recover turns a panic into a 500 response and an error log.
func Recover(log *zap.Logger) Middleware {
	return func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			defer func() {
				if p := recover(); p != nil {
					requestID := RequestIDFromContext(r.Context())
					log.Error("panic occurred", zap.String("request.id", requestID), zap.Any("error", p))
					resp := response.Response{
						Status:    response.StatusError,
						Error:     "failed to process the request",
						RequestID: requestID,
					}
					if err := response.WriteJSON(w, http.StatusInternalServerError, resp); err != nil {
						log.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
					}
				}
			}()
			next(w, r, ps)
		}
	}
}

// Timeout bounds the request context with d. Storage calls observe the
// deadline and handlers answer 503 once it has passed.
func Timeout(d time.Duration) Middleware {
	return func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next(w, r.WithContext(ctx), ps)
		}
	}
}

// Metrics records count, latency and in-flight requests under route,
// the registered pattern rather than the concrete path.
func Metrics(reg *metrics.Registry, route string) Middleware {
	return func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			reg.HTTPRequestsInFlight.Inc()
			defer reg.HTTPRequestsInFlight.Dec()

			start := time.Now()
			rec := wrap(w)
			next(rec, r, ps)
			reg.RecordHTTPRequest(r.Method, route, strconv.Itoa(rec.Status()), time.Since(start))
		}
	}
}
