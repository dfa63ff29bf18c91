// Package router wires the handlers and middlewares into one
// http.Handler.
//
// Route table:
//
//	GET    /healthz
//	GET    /metrics                  (when metrics are enabled)
//	GET    /api/v1/books
//	POST   /api/v1/books
//	GET    /api/v1/books/:id
//	PATCH  /api/v1/books/:id
//	DELETE /api/v1/books/:id
//	GET    /api/v1/students
//	POST   /api/v1/students
//	GET    /api/v1/students/:id
//	PATCH  /api/v1/students/:id
//	DELETE /api/v1/students/:id
package router

import (
	"errors"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"

	"github.com/aanand-mishra/library-api/internal/http/handlers"
	"github.com/aanand-mishra/library-api/internal/http/handlers/book"
	"github.com/aanand-mishra/library-api/internal/http/handlers/student"
	"github.com/aanand-mishra/library-api/internal/http/middleware"
	"github.com/aanand-mishra/library-api/internal/metrics"
	"github.com/aanand-mishra/library-api/internal/storage"
	"github.com/aanand-mishra/library-api/internal/utils/response"
)

// BasePath prefixes every resource route.
const BasePath = "/api/v1"

// Options are the router dependencies. Metrics may be nil, in which
// case nothing is recorded and no metrics endpoint is exposed. A zero
// RequestTimeout leaves request contexts unbounded.
type Options struct {
	Store          storage.Storage
	Logger         *zap.Logger
	Metrics        *metrics.Registry
	MetricsPath    string
	RequestTimeout time.Duration
}

type routes struct {
	router *httprouter.Router
	opts   Options
}

// New returns the application's http.Handler. Request ids and CORS
// headers are applied outside the router so every response carries
// them, including 404, 405, preflight and metrics responses.
func New(opts Options) http.Handler {
	rt := &routes{router: httprouter.New(), opts: opts}
	rt.router.RedirectTrailingSlash = true
	rt.router.GlobalOPTIONS = http.HandlerFunc(preflight)
	rt.router.NotFound = http.HandlerFunc(notFound)
	rt.router.MethodNotAllowed = http.HandlerFunc(methodNotAllowed)

	log, store := opts.Logger, opts.Store

	rt.handle(http.MethodGet, "/healthz", handlers.Health(store, log))

	rt.handle(http.MethodGet, BasePath+"/books", book.GetList(store, log))
	rt.handle(http.MethodPost, BasePath+"/books", book.New(store, log))
	rt.handle(http.MethodGet, BasePath+"/books/:id", book.GetByID(store, log))
	rt.handle(http.MethodPatch, BasePath+"/books/:id", book.Update(store, log))
	rt.handle(http.MethodDelete, BasePath+"/books/:id", book.Delete(store, log))

	rt.handle(http.MethodGet, BasePath+"/students", student.GetList(store, log))
	rt.handle(http.MethodPost, BasePath+"/students", student.New(store, log))
	rt.handle(http.MethodGet, BasePath+"/students/:id", student.GetByID(store, log))
	rt.handle(http.MethodPatch, BasePath+"/students/:id", student.Update(store, log))
	rt.handle(http.MethodDelete, BasePath+"/students/:id", student.Delete(store, log))

	if opts.Metrics != nil && opts.MetricsPath != "" {
		rt.router.Handler(http.MethodGet, opts.MetricsPath, opts.Metrics.Handler())
	}

	return middleware.RequestID(middleware.CORS(rt.router))
}

// handle registers h behind the standard middleware stack. The route
// pattern, not the concrete URL, labels the metrics.
func (rt *routes) handle(method, path string, h httprouter.Handle) {
	var chain middleware.Chain
	if rt.opts.Metrics != nil {
		chain = append(chain, middleware.Metrics(rt.opts.Metrics, path))
	}
	chain = append(chain, middleware.Logger(rt.opts.Logger), middleware.Recover(rt.opts.Logger))
	if rt.opts.RequestTimeout > 0 {
		chain = append(chain, middleware.Timeout(rt.opts.RequestTimeout))
	}
	rt.router.Handle(method, path, chain.Then(h))
}

func preflight(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	resp := response.GeneralError(errors.New("route not found")).
		WithRequestID(middleware.RequestIDFromContext(r.Context()))
	_ = response.WriteJSON(w, http.StatusNotFound, resp)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	resp := response.GeneralError(errors.New("method not allowed")).
		WithRequestID(middleware.RequestIDFromContext(r.Context()))
	_ = response.WriteJSON(w, http.StatusMethodNotAllowed, resp)
}
