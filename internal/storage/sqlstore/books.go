package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aanand-mishra/library-api/internal/storage"
	"github.com/aanand-mishra/library-api/internal/types"
)

const bookColumns = "id, title, author, year, is_published, detail, description"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (types.Book, error) {
	var b types.Book
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.Year, &b.IsPublished, &b.Detail, &b.Description)
	return b, err
}

// getBook reads one row. With lock set the row stays locked until the
// surrounding transaction ends.
func (s *Store) getBook(ctx context.Context, q querier, id int64, lock bool) (types.Book, error) {
	b, err := scanBook(q.QueryRowContext(ctx,
		s.rebind(s.locking("SELECT "+bookColumns+" FROM books WHERE id = ?", lock)), id))
	if errors.Is(err, sql.ErrNoRows) {
		return types.Book{}, fmt.Errorf("no book found with id %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return types.Book{}, fmt.Errorf("getBook: scan: %w", err)
	}
	return b, nil
}

// ListBooks returns all books in insertion order.
func (s *Store) ListBooks(ctx context.Context) (books []types.Book, err error) {
	defer func(start time.Time) { s.observe("list_books", start, err) }(time.Now())

	rows, err := s.db.QueryContext(ctx, "SELECT "+bookColumns+" FROM books ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("ListBooks: query: %w", err)
	}
	defer rows.Close()

	books = make([]types.Book, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("ListBooks: scan row: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListBooks: rows iteration: %w", err)
	}
	return books, nil
}

// GetBook fetches one book by primary key.
func (s *Store) GetBook(ctx context.Context, id int64) (b types.Book, err error) {
	defer func(start time.Time) { s.observe("get_book", start, err) }(time.Now())
	return s.getBook(ctx, s.db, id, false)
}

// CreateBook inserts b in its own transaction and returns the stored row.
func (s *Store) CreateBook(ctx context.Context, b types.Book) (created types.Book, err error) {
	defer func(start time.Time) { s.observe("create_book", start, err) }(time.Now())

	err = storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var id int64
		err := tx.QueryRowContext(ctx, s.rebind(
			`INSERT INTO books (title, author, year, is_published, detail, description)
			 VALUES (?, ?, ?, ?, ?, ?) RETURNING id`),
			b.Title, b.Author, b.Year, b.IsPublished, b.Detail, b.Description,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("CreateBook: insert: %w", s.classify(err))
		}
		created, err = s.getBook(ctx, tx, id, false)
		return err
	})
	if err != nil {
		return types.Book{}, err
	}
	return created, nil
}

// UpdateBook applies patch to the book with the given id. Only the
// columns present in patch appear in the UPDATE statement.
func (s *Store) UpdateBook(ctx context.Context, id int64, patch types.UpdateBookRequest) (updated types.Book, err error) {
	defer func(start time.Time) { s.observe("update_book", start, err) }(time.Now())

	err = storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		current, err := s.getBook(ctx, tx, id, true)
		if err != nil {
			return err
		}
		if patch.IsEmpty() {
			updated = current
			return nil
		}

		sets, args := bookAssignments(patch)
		args = append(args, id)
		query := "UPDATE books SET " + strings.Join(sets, ", ") + " WHERE id = ?"
		if _, err := tx.ExecContext(ctx, s.rebind(query), args...); err != nil {
			return fmt.Errorf("UpdateBook: exec: %w", s.classify(err))
		}

		// current was read under a row lock, so the stored row is
		// exactly current with the patch applied.
		patch.Apply(&current)
		updated = current
		return nil
	})
	if err != nil {
		return types.Book{}, err
	}
	return updated, nil
}

func bookAssignments(p types.UpdateBookRequest) (sets []string, args []any) {
	if p.Title != nil {
		sets, args = append(sets, "title = ?"), append(args, *p.Title)
	}
	if p.Author != nil {
		sets, args = append(sets, "author = ?"), append(args, *p.Author)
	}
	if p.Year != nil {
		sets, args = append(sets, "year = ?"), append(args, *p.Year)
	}
	if p.IsPublished != nil {
		sets, args = append(sets, "is_published = ?"), append(args, *p.IsPublished)
	}
	if p.Detail != nil {
		sets, args = append(sets, "detail = ?"), append(args, *p.Detail)
	}
	if p.Description != nil {
		sets, args = append(sets, "description = ?"), append(args, *p.Description)
	}
	return sets, args
}

// DeleteBook removes the book with the given id.
func (s *Store) DeleteBook(ctx context.Context, id int64) (err error) {
	defer func(start time.Time) { s.observe("delete_book", start, err) }(time.Now())

	return storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, s.rebind("DELETE FROM books WHERE id = ?"), id)
		if err != nil {
			return fmt.Errorf("DeleteBook: exec: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("DeleteBook: rows affected: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("no book found with id %d: %w", id, storage.ErrNotFound)
		}
		return nil
	})
}
