package sqlstore

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

// SQLite allows one writer at a time, so the pool is capped at a single
// connection and concurrent requests queue on it instead of failing
// with SQLITE_BUSY.
var sqliteDialect = dialect{
	name: "sqlite3",
	schema: []string{
		`CREATE TABLE IF NOT EXISTS books (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			title        TEXT    NOT NULL,
			author       TEXT    NOT NULL,
			year         INTEGER NOT NULL,
			is_published BOOLEAN NOT NULL DEFAULT 0,
			detail       TEXT,
			description  TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS students (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			first_name TEXT NOT NULL,
			last_name  TEXT NOT NULL,
			student_id TEXT NOT NULL UNIQUE,
			birthdate  TEXT NOT NULL,
			gender     TEXT NOT NULL
		)`,
	},
	isUniqueViolation: func(err error) bool {
		var se sqlite3.Error
		if !errors.As(err, &se) {
			return false
		}
		return se.ExtendedCode == sqlite3.ErrConstraintUnique ||
			se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	},
	singleWriter: true,
}
