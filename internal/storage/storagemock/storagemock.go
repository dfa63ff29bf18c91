// Package storagemock provides a storage.Storage whose behaviour is set
// per test through function fields. A nil field panics when called, so
// a test only sets the methods it expects to be used.
package storagemock

import (
	"context"

	"github.com/aanand-mishra/library-api/internal/storage"
	"github.com/aanand-mishra/library-api/internal/types"
)

var _ storage.Storage = (*Storage)(nil)

type Storage struct {
	ListBooksFunc  func(ctx context.Context) ([]types.Book, error)
	GetBookFunc    func(ctx context.Context, id int64) (types.Book, error)
	CreateBookFunc func(ctx context.Context, b types.Book) (types.Book, error)
	UpdateBookFunc func(ctx context.Context, id int64, patch types.UpdateBookRequest) (types.Book, error)
	DeleteBookFunc func(ctx context.Context, id int64) error

	ListStudentsFunc  func(ctx context.Context) ([]types.Student, error)
	GetStudentFunc    func(ctx context.Context, id int64) (types.Student, error)
	CreateStudentFunc func(ctx context.Context, s types.Student) (types.Student, error)
	UpdateStudentFunc func(ctx context.Context, id int64, patch types.UpdateStudentRequest) (types.Student, error)
	DeleteStudentFunc func(ctx context.Context, id int64) error

	PingFunc func(ctx context.Context) error
}

func (m *Storage) ListBooks(ctx context.Context) ([]types.Book, error) {
	return m.ListBooksFunc(ctx)
}

func (m *Storage) GetBook(ctx context.Context, id int64) (types.Book, error) {
	return m.GetBookFunc(ctx, id)
}

func (m *Storage) CreateBook(ctx context.Context, b types.Book) (types.Book, error) {
	return m.CreateBookFunc(ctx, b)
}

func (m *Storage) UpdateBook(ctx context.Context, id int64, patch types.UpdateBookRequest) (types.Book, error) {
	return m.UpdateBookFunc(ctx, id, patch)
}

func (m *Storage) DeleteBook(ctx context.Context, id int64) error {
	return m.DeleteBookFunc(ctx, id)
}

func (m *Storage) ListStudents(ctx context.Context) ([]types.Student, error) {
	return m.ListStudentsFunc(ctx)
}

func (m *Storage) GetStudent(ctx context.Context, id int64) (types.Student, error) {
	return m.GetStudentFunc(ctx, id)
}

func (m *Storage) CreateStudent(ctx context.Context, s types.Student) (types.Student, error) {
	return m.CreateStudentFunc(ctx, s)
}

func (m *Storage) UpdateStudent(ctx context.Context, id int64, patch types.UpdateStudentRequest) (types.Student, error) {
	return m.UpdateStudentFunc(ctx, id, patch)
}

func (m *Storage) DeleteStudent(ctx context.Context, id int64) error {
	return m.DeleteStudentFunc(ctx, id)
}

// Ping succeeds when PingFunc is not set.
func (m *Storage) Ping(ctx context.Context) error {
	if m.PingFunc == nil {
		return nil
	}
	return m.PingFunc(ctx)
}

func (m *Storage) Close() error { return nil }
