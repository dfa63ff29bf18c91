// Package student contains the HTTP handlers of the Student resource.
//
// Handlers are closure factories, the same pattern as package book:
//
//	router.POST("/api/v1/students", student.New(store, log))
package student

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
// New handles POST /api/v1/students.
//
// Request body (all fields required):
//
//	{
//	  "first_name": "Ada", "last_name": "Lovelace", "student_id": "S-001",
//	  "birthdate": "1815-12-10", "gender": "female"
//	}
//
// Success: 201 with the stored student.
// Errors:  422 on invalid input or an already used student_id,
// 500 when the insert fails.
// ─────────────────────────────────────────────────────────────────────────────
func New(store storage.Students, log *zap.Logger) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		var req types.CreateStudentRequest
		if !handlers.DecodeAndValidate(w, r, log, &req) {
			return
		}

		created, err := store.CreateStudent(r.Context(), req.Student())
		if err != nil {
			handlers.StorageFailure(w, r, log, "failed to create student", err)
			return
		}

		log.Info("student created",
			zap.String("request.id", middleware.RequestIDFromContext(r.Context())),
			zap.Int64("student.id", created.ID))
		handlers.JSON(w, r, log, http.StatusCreated, created)
	}
}

// GetList handles GET /api/v1/students.
func GetList(store storage.Students, log *zap.Logger) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		students, err := store.ListStudents(r.Context())
		if err != nil {
			handlers.StorageFailure(w, r, log, "failed to list students", err)
			return
		}
		handlers.JSON(w, r, log, http.StatusOK, students)
	}
}

// GetByID handles GET /api/v1/students/:id.
func GetByID(store storage.Students, log *zap.Logger) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		id, err := request.ParseID(ps)
		if err != nil {
			handlers.Invalid(w, r, log, err)
			return
		}

		st, err := store.GetStudent(r.Context(), id)
		if err != nil {
			handlers.StorageFailure(w, r, log, "failed to get student", err)
			return
		}
		handlers.JSON(w, r, log, http.StatusOK, st)
	}
}

// Update handles PATCH /api/v1/students/:id with a sparse body.
func Update(store storage.Students, log *zap.Logger) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		id, err := request.ParseID(ps)
		if err != nil {
			handlers.Invalid(w, r, log, err)
			return
		}

		var patch types.UpdateStudentRequest
		if !handlers.DecodeAndValidate(w, r, log, &patch) {
			return
		}

		updated, err := store.UpdateStudent(r.Context(), id, patch)
		if err != nil {
			handlers.StorageFailure(w, r, log, "failed to update student", err)
			return
		}

		log.Info("student updated",
			zap.String("request.id", middleware.RequestIDFromContext(r.Context())),
			zap.Int64("student.id", id))
		handlers.JSON(w, r, log, http.StatusOK, updated)
	}
}

// Delete handles DELETE /api/v1/students/:id.
func Delete(store storage.Students, log *zap.Logger) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		id, err := request.ParseID(ps)
		if err != nil {
			handlers.Invalid(w, r, log, err)
			return
		}

		if err := store.DeleteStudent(r.Context(), id); err != nil {
			handlers.StorageFailure(w, r, log, "failed to delete student", err)
			return
		}

		log.Info("student deleted",
			zap.String("request.id", middleware.RequestIDFromContext(r.Context())),
			zap.Int64("student.id", id))
		response.NoContent(w)
	}
}
