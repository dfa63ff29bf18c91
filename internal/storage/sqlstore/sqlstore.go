// Package sqlstore implements storage.Storage on top of database/sql.
//
// The same queries serve SQLite (github.com/mattn/go-sqlite3) and
// PostgreSQL (github.com/jackc/pgx/v5/stdlib). They are written with ?
// placeholders and rebound to $n for PostgreSQL; everything else that
// differs between the two engines lives in a dialect.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/aanand-mishra/library-api/internal/config"
	"github.com/aanand-mishra/library-api/internal/metrics"
	"github.com/aanand-mishra/library-api/internal/storage"
)

var _ storage.Storage = (*Store)(nil)

// querier is implemented by *sql.DB and *sql.Tx, so row helpers work
// with or without a transaction.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// dialect captures what differs between the supported engines.
type dialect struct {
	name string

	// schema is executed statement by statement at startup; every
	// statement must be idempotent.
	schema []string

	// numbered placeholders ($1, $2...) instead of ?.
	numbered bool

	// isUniqueViolation classifies driver errors.
	isUniqueViolation func(err error) bool

	// singleWriter caps the pool at one connection.
	singleWriter bool

	// rowLock is appended to a SELECT that must lock the rows it reads.
	// Empty when the engine serializes writers anyway.
	rowLock string
}

// Store is the database/sql implementation of storage.Storage.
// A single *sql.DB is a connection pool safe for concurrent use.
type Store struct {
	db      *sql.DB
	dialect dialect
	log     *zap.Logger
	metrics *metrics.Registry
}

// New opens the database described by cfg, verifies it is reachable and
// creates the tables if they do not exist yet. reg may be nil.
func New(ctx context.Context, cfg config.Storage, log *zap.Logger, reg *metrics.Registry) (*Store, error) {
	var d dialect
	switch cfg.Driver {
	case config.DriverSQLite:
		d = sqliteDialect
	case config.DriverPostgres:
		d = postgresDialect
	default:
		return nil, fmt.Errorf("sqlstore.New: unsupported driver %q", cfg.Driver)
	}

	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("sqlstore.New: open db: %w", err)
	}

	if d.singleWriter {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlstore.New: database unreachable: %w", err)
	}

	for _, stmt := range d.schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlstore.New: create schema: %w", err)
		}
	}

	if log == nil {
		log = zap.NewNop()
	}
	log.Debug("storage ready", zap.String("storage.driver", d.name))

	return &Store{db: db, dialect: d, log: log, metrics: reg}, nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// rebind rewrites ? placeholders into $1, $2... when the dialect needs it.
// Queries in this package never contain a literal question mark.
func (s *Store) rebind(query string) string {
	if !s.dialect.numbered {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// locking appends the dialect's row lock to query when lock is set.
func (s *Store) locking(query string, lock bool) string {
	if !lock || s.dialect.rowLock == "" {
		return query
	}
	return query + " " + s.dialect.rowLock
}

// classify turns driver errors into storage sentinels where one applies.
func (s *Store) classify(err error) error {
	if err == nil {
		return nil
	}
	if s.dialect.isUniqueViolation(err) {
		return fmt.Errorf("%w: %v", storage.ErrDuplicate, err)
	}
	return err
}

// observe records the outcome of op and logs storage failures.
func (s *Store) observe(op string, start time.Time, err error) {
	status := "ok"
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrNotFound):
		status = "not_found"
	case errors.Is(err, storage.ErrDuplicate):
		status = "duplicate"
	default:
		status = "error"
		s.log.Error("storage operation failed", zap.String("storage.op", op), zap.Error(err))
	}
	if s.metrics != nil {
		s.metrics.RecordStorageOperation(op, status, time.Since(start))
	}
}
