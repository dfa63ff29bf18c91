package sqlstore

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	// Registers the "pgx" database/sql driver.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// pgUniqueViolation is SQLSTATE unique_violation.
const pgUniqueViolation = "23505"

var postgresDialect = dialect{
	name: "pgx",
	schema: []string{
		`CREATE TABLE IF NOT EXISTS books (
			id           BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
			title        TEXT    NOT NULL,
			author       TEXT    NOT NULL,
			year         INTEGER NOT NULL,
			is_published BOOLEAN NOT NULL DEFAULT FALSE,
			detail       TEXT,
			description  TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS students (
			id         BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
			first_name TEXT NOT NULL,
			last_name  TEXT NOT NULL,
			student_id TEXT NOT NULL UNIQUE,
			birthdate  TEXT NOT NULL,
			gender     TEXT NOT NULL
		)`,
	},
	numbered: true,
	rowLock:  "FOR UPDATE",
	isUniqueViolation: func(err error) bool {
		var pgErr *pgconn.PgError
		return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
	},
}
