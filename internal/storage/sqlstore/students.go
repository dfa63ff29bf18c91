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

const studentColumns = "id, first_name, last_name, student_id, birthdate, gender"

func scanStudent(row rowScanner) (types.Student, error) {
	var st types.Student
	err := row.Scan(&st.ID, &st.FirstName, &st.LastName, &st.StudentID, &st.Birthdate, &st.Gender)
	return st, err
}

func (s *Store) getStudent(ctx context.Context, q querier, id int64, lock bool) (types.Student, error) {
	st, err := scanStudent(q.QueryRowContext(ctx,
		s.rebind(s.locking("SELECT "+studentColumns+" FROM students WHERE id = ?", lock)), id))
	if errors.Is(err, sql.ErrNoRows) {
		return types.Student{}, fmt.Errorf("no student found with id %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return types.Student{}, fmt.Errorf("getStudent: scan: %w", err)
	}
	return st, nil
}

func (s *Store) ListStudents(ctx context.Context) (students []types.Student, err error) {
	defer func(start time.Time) { s.observe("list_students", start, err) }(time.Now())

	rows, err := s.db.QueryContext(ctx, "SELECT "+studentColumns+" FROM students ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("ListStudents: query: %w", err)
	}
	defer rows.Close()

	students = make([]types.Student, 0)
	for rows.Next() {
		st, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("ListStudents: scan row: %w", err)
		}
		students = append(students, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListStudents: rows iteration: %w", err)
	}
	return students, nil
}

func (s *Store) GetStudent(ctx context.Context, id int64) (st types.Student, err error) {
	defer func(start time.Time) { s.observe("get_student", start, err) }(time.Now())
	return s.getStudent(ctx, s.db, id, false)
}

// CreateStudent inserts st. A student_id that already exists yields
// storage.ErrDuplicate and nothing is written.
func (s *Store) CreateStudent(ctx context.Context, st types.Student) (created types.Student, err error) {
	defer func(start time.Time) { s.observe("create_student", start, err) }(time.Now())

	err = storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var id int64
		err := tx.QueryRowContext(ctx, s.rebind(
			`INSERT INTO students (first_name, last_name, student_id, birthdate, gender)
			 VALUES (?, ?, ?, ?, ?) RETURNING id`),
			st.FirstName, st.LastName, st.StudentID, st.Birthdate, st.Gender,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("CreateStudent: insert: %w", s.classify(err))
		}
		created, err = s.getStudent(ctx, tx, id, false)
		return err
	})
	if err != nil {
		return types.Student{}, err
	}
	return created, nil
}

// UpdateStudent applies patch to the student with the given id.
func (s *Store) UpdateStudent(ctx context.Context, id int64, patch types.UpdateStudentRequest) (updated types.Student, err error) {
	defer func(start time.Time) { s.observe("update_student", start, err) }(time.Now())

	err = storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		current, err := s.getStudent(ctx, tx, id, true)
		if err != nil {
			return err
		}
		if patch.IsEmpty() {
			updated = current
			return nil
		}

		sets, args := studentAssignments(patch)
		args = append(args, id)
		query := "UPDATE students SET " + strings.Join(sets, ", ") + " WHERE id = ?"
		if _, err := tx.ExecContext(ctx, s.rebind(query), args...); err != nil {
			return fmt.Errorf("UpdateStudent: exec: %w", s.classify(err))
		}

		// current was read under a row lock, so the stored row is
		// exactly current with the patch applied.
		patch.Apply(&current)
		updated = current
		return nil
	})
	if err != nil {
		return types.Student{}, err
	}
	return updated, nil
}

func studentAssignments(p types.UpdateStudentRequest) (sets []string, args []any) {
	if p.FirstName != nil {
		sets, args = append(sets, "first_name = ?"), append(args, *p.FirstName)
	}
	if p.LastName != nil {
		sets, args = append(sets, "last_name = ?"), append(args, *p.LastName)
	}
	if p.StudentID != nil {
		sets, args = append(sets, "student_id = ?"), append(args, *p.StudentID)
	}
	if p.Birthdate != nil {
		sets, args = append(sets, "birthdate = ?"), append(args, *p.Birthdate)
	}
	if p.Gender != nil {
		sets, args = append(sets, "gender = ?"), append(args, *p.Gender)
	}
	return sets, args
}

func (s *Store) DeleteStudent(ctx context.Context, id int64) (err error) {
	defer func(start time.Time) { s.observe("delete_student", start, err) }(time.Now())

	return storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, s.rebind("DELETE FROM students WHERE id = ?"), id)
		if err != nil {
			return fmt.Errorf("DeleteStudent: exec: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("DeleteStudent: rows affected: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("no student found with id %d: %w", id, storage.ErrNotFound)
		}
		return nil
	})
}
