// Package storage defines the Storage interface, the contract any
// database backend must satisfy to serve the books and students
// resources, together with the errors handlers translate into HTTP
// statuses and the transaction boundary used by every write.
package storage

import (
	"context"
	"errors"

	"github.com/aanand-mishra/library-api/internal/types"
)

var (
	// ErrNotFound is returned when an id does not resolve to a row.
	// Writes return it before any mutation has been applied.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a write would violate a unique key,
	// e.g. a second student with the same student_id.
	ErrDuplicate = errors.New("record already exists")
)

// Books is the persistence contract for the books table.
type Books interface {
	// ListBooks returns every book ordered by id. The slice is empty, not
	// nil, when the table has no rows.
	ListBooks(ctx context.Context) ([]types.Book, error)

	// GetBook fetches a single book or returns ErrNotFound.
	GetBook(ctx context.Context, id int64) (types.Book, error)

	// CreateBook inserts b and returns the stored row with its new id.
	CreateBook(ctx context.Context, b types.Book) (types.Book, error)

	// UpdateBook overwrites only the fields present in patch and returns
	// the refreshed row.
	UpdateBook(ctx context.Context, id int64, patch types.UpdateBookRequest) (types.Book, error)

	// DeleteBook removes the row or returns ErrNotFound.
	DeleteBook(ctx context.Context, id int64) error
}

// Students is the persistence contract for the students table.
type Students interface {
	ListStudents(ctx context.Context) ([]types.Student, error)
	GetStudent(ctx context.Context, id int64) (types.Student, error)
	CreateStudent(ctx context.Context, s types.Student) (types.Student, error)
	UpdateStudent(ctx context.Context, id int64, patch types.UpdateStudentRequest) (types.Student, error)
	DeleteStudent(ctx context.Context, id int64) error
}

// Storage is everything the HTTP layer needs from the database.
type Storage interface {
	Books
	Students

	// Ping reports whether the database is reachable.
	Ping(ctx context.Context) error

	// Close releases the connection pool.
	Close() error
}
