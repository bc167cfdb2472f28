package sqlaccess

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/nlimpid/sqlaccess/bind"
	"github.com/nlimpid/sqlaccess/dberr"
	"github.com/nlimpid/sqlaccess/query"
	"github.com/nlimpid/sqlaccess/scanner"
)

// Handle prepares statements. It is satisfied by *sql.DB, *sql.Tx,
// *sql.Conn, *sqlx.DB and *sqlx.Tx.
type Handle interface {
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

// DB runs built statements on a Handle. It holds no connection state of
// its own and is safe for concurrent use when the handle is.
type DB struct {
	h        Handle
	driver   string
	registry *bind.Registry
	log      *slog.Logger
}

// Option configures a DB.
type Option func(*DB)

// WithDriver sets the driver name used to pick the placeholder style.
// Without it statements keep "?" placeholders.
func WithDriver(name string) Option {
	return func(db *DB) { db.driver = name }
}

// WithRegistry replaces bind.Default as the value binder registry.
func WithRegistry(r *bind.Registry) Option {
	return func(db *DB) { db.registry = r }
}

// WithLogger sets the logger for statement and failure records.
func WithLogger(l *slog.Logger) Option {
	return func(db *DB) { db.log = l }
}

// New returns a DB running statements on h.
func New(h Handle, opts ...Option) *DB {
	db := &DB{
		h:        h,
		registry: bind.Default,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

// prepare binds the arguments of q, rewrites its placeholders and prepares
// it. Binding happens first so unbindable values never reach the handle.
func (db *DB) prepare(ctx context.Context, op string, q query.Query) (*sql.Stmt, []any, string, error) {
	params, err := db.registry.BindAll(q.Args)
	if err != nil {
		return nil, nil, "", err
	}
	args, err := params.Args()
	if err != nil {
		return nil, nil, "", err
	}

	q = query.Rebind(db.driver, q)
	db.log.DebugContext(ctx, "prepare statement", "op", op, "query", q.SQL, "args", len(args))

	stmt, err := db.h.PrepareContext(ctx, q.SQL)
	if err != nil {
		return nil, nil, q.SQL, db.fail(ctx, op, q.SQL, err)
	}
	return stmt, args, q.SQL, nil
}

// fetch runs a select and extracts the requested columns. With one set it
// stops after the first row.
func (db *DB) fetch(ctx context.Context, op string, q query.Query, columns []string, one bool) ([]scanner.Row, error) {
	stmt, args, text, err := db.prepare(ctx, op, q)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx, args...)
	if err != nil {
		return nil, db.fail(ctx, op, text, err)
	}
	defer rows.Close()

	if one {
		row, err := scanner.ExtractOne(rows, columns)
		if err != nil {
			return nil, db.fail(ctx, op, text, err)
		}
		if row == nil {
			return nil, nil
		}
		return []scanner.Row{row}, nil
	}

	out, err := scanner.ExtractAll(rows, columns)
	if err != nil {
		return nil, db.fail(ctx, op, text, err)
	}
	return out, nil
}

// exec runs a write statement and reports the number of affected rows.
func (db *DB) exec(ctx context.Context, op string, q query.Query) (int64, error) {
	stmt, args, text, err := db.prepare(ctx, op, q)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	res, err := stmt.ExecContext(ctx, args...)
	if err != nil {
		return 0, db.fail(ctx, op, text, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, db.fail(ctx, op, text, err)
	}
	return n, nil
}

// fail logs err and wraps it as an execution failure of the statement.
func (db *DB) fail(ctx context.Context, op, text string, err error) error {
	db.log.ErrorContext(ctx, "statement failed", "op", op, "query", text, "error", err)
	var ee *dberr.ExecutionError
	if errors.As(err, &ee) {
		return err
	}
	return &dberr.ExecutionError{Op: op, Query: text, Err: err}
}
