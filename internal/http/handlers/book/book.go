// Package book contains the HTTP handlers of the Book resource.
//
// Every handler is built by a factory that captures its dependencies:
//
//	router.POST("/api/v1/books", book.New(store, log))
//
// New(store, log) runs once at startup; the returned closure runs on
// every request.
package book

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"

	"github.com/aanand-mishra/library-api/internal/http/handlers"
	"github.com/aanand-mishra/library-api/internal/http/middleware"
	"github.com/aanand-mishra/library-api/internal/storage"
	"github.com/aanand-mishra/library-api/internal/types"
	"github.com/aanand-mishra/library-api/internal/utils/request"
	"github.com/aanand-mishra/library-api/internal/utils/response"
)

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /api/v1/books.
//
// Request body:
//
//	{ "title": "Dune", "author": "Herbert", "year": 1965, "is_published": true }
//
// detail and description are optional. Responds 201 with the stored
// book, 422 on invalid input, 500 when the insert fails.
// ─────────────────────────────────────────────────────────────────────────────
func New(store storage.Books, log *zap.Logger) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		var req types.CreateBookRequest
		if !handlers.DecodeAndValidate(w, r, log, &req) {
			return
		}

		created, err := store.CreateBook(r.Context(), req.Book())
		if err != nil {
			handlers.StorageFailure(w, r, log, "failed to create book", err)
			return
		}

		log.Info("book created",
			zap.String("request.id", middleware.RequestIDFromContext(r.Context())),
			zap.Int64("book.id", created.ID))
		handlers.JSON(w, r, log, http.StatusCreated, created)
	}
}

// GetList handles GET /api/v1/books and returns every book, [] when
// there are none.
func GetList(store storage.Books, log *zap.Logger) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		books, err := store.ListBooks(r.Context())
		if err != nil {
			handlers.StorageFailure(w, r, log, "failed to list books", err)
			return
		}
		handlers.JSON(w, r, log, http.StatusOK, books)
	}
}

// GetByID handles GET /api/v1/books/:id.
func GetByID(store storage.Books, log *zap.Logger) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		id, err := request.ParseID(ps)
		if err != nil {
			handlers.Invalid(w, r, log, err)
			return
		}

		b, err := store.GetBook(r.Context(), id)
		if err != nil {
			handlers.StorageFailure(w, r, log, "failed to get book", err)
			return
		}
		handlers.JSON(w, r, log, http.StatusOK, b)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PATCH /api/v1/books/:id.
//
// Only the fields present in the body are written; the others keep
// their stored values:
//
//	{ "year": 1966 }
//
// Responds 200 with the refreshed book, 404 when the id is unknown,
// 422 on invalid input.
// ─────────────────────────────────────────────────────────────────────────────
func Update(store storage.Books, log *zap.Logger) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		id, err := request.ParseID(ps)
		if err != nil {
			handlers.Invalid(w, r, log, err)
			return
		}

		var patch types.UpdateBookRequest
		if !handlers.DecodeAndValidate(w, r, log, &patch) {
			return
		}

		updated, err := store.UpdateBook(r.Context(), id, patch)
		if err != nil {
			handlers.StorageFailure(w, r, log, "failed to update book", err)
			return
		}

		log.Info("book updated",
			zap.String("request.id", middleware.RequestIDFromContext(r.Context())),
			zap.Int64("book.id", id))
		handlers.JSON(w, r, log, http.StatusOK, updated)
	}
}

// Delete handles DELETE /api/v1/books/:id. Responds 204 with no body.
func Delete(store storage.Books, log *zap.Logger) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		id, err := request.ParseID(ps)
		if err != nil {
			handlers.Invalid(w, r, log, err)
			return
		}

		if err := store.DeleteBook(r.Context(), id); err != nil {
			handlers.StorageFailure(w, r, log, "failed to delete book", err)
			return
		}

		log.Info("book deleted",
			zap.String("request.id", middleware.RequestIDFromContext(r.Context())),
			zap.Int64("book.id", id))
		response.NoContent(w)
	}
}
