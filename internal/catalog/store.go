// Package catalog runs the fixed set of named lookups against the student
// database.
//
// Arguments are bound verbatim as strings. Parameter typing and validation are
// left to the database: a non-numeric teacher id simply matches nothing, and a
// driver failure is returned as a *QueryError.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/jmoiron/sqlx"

	"github.com/leapstack-labs/lookup/internal/result"

	// pgx database/sql driver, registered as "pgx".
	_ "github.com/jackc/pgx/v5/stdlib"
	// sqlite driver, registered as "sqlite".
	_ "modernc.org/sqlite"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

var (
	// ErrUnknownQuery is returned by Run for names not in the catalog.
	ErrUnknownQuery = errors.New("unknown query")
	// ErrArgumentCount is returned by Run when the argument count does not match the query.
	ErrArgumentCount = errors.New("wrong number of arguments")
	// ErrDatabaseMissing is returned by Open when the sqlite file is absent or unreadable.
	ErrDatabaseMissing = errors.New("database file not found")
	// ErrUnsupportedDriver is returned by Open for drivers other than sqlite and pgx.
	ErrUnsupportedDriver = errors.New("unsupported driver")
)

// QueryError wraps a driver failure while running a named query.
type QueryError struct {
	Name string
	Err  error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query %s: %v", e.Name, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// Options configures Open.
type Options struct {
	Driver   string
	Database string
	// ReadWrite opens sqlite databases writable and allows creating the file.
	ReadWrite bool
	Logger    *slog.Logger
}

// Store owns the database handle and executes catalog queries.
type Store struct {
	db     *sql.DB
	driver string
	logger *slog.Logger
}

// New wraps an existing connection. driver selects the placeholder style.
func New(db *sql.DB, driver string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{db: db, driver: driver, logger: logger}
}

// Open connects to the database described by opts and pings it once.
func Open(ctx context.Context, opts Options) (*Store, error) {
	var dsn string
	switch opts.Driver {
	case DriverSQLite, "":
		opts.Driver = DriverSQLite
		if !opts.ReadWrite {
			if err := checkReadable(opts.Database); err != nil {
				return nil, err
			}
			dsn = opts.Database + "?mode=ro"
		} else {
			dsn = opts.Database
		}
	case DriverPostgres:
		dsn = opts.Database
	default:
		return nil, fmt.Errorf("%s: %w", opts.Driver, ErrUnsupportedDriver)
	}

	db, err := sql.Open(opts.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := New(db, opts.Driver, opts.Logger)
	s.logger.Debug("database opened", "driver", opts.Driver, "read_write", opts.ReadWrite)
	return s, nil
}

func checkReadable(path string) error {
	if path == "" {
		return fmt.Errorf("no database path: %w", ErrDatabaseMissing)
	}
	f, err := os.Open(path) // #nosec G304 -- path comes from the operator's configuration.
	if err != nil {
		return fmt.Errorf("%s: %w", path, ErrDatabaseMissing)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		return fmt.Errorf("%s: %w", path, ErrDatabaseMissing)
	}
	return nil
}

// DB returns the underlying connection.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Driver returns the driver name the store was opened with.
func (s *Store) Driver() string {
	return s.driver
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		s.logger.Debug("closing database connection")
		return s.db.Close()
	}
	return nil
}

// Run executes the named query with args bound in order and returns the
// fully materialised result set.
func (s *Store) Run(ctx context.Context, name string, args []string) (*result.Set, error) {
	q, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrUnknownQuery)
	}
	if len(args) != q.Arity {
		return nil, fmt.Errorf("%s takes %d, got %d: %w", name, q.Arity, len(args), ErrArgumentCount)
	}
	if s.db == nil {
		return nil, &QueryError{Name: name, Err: errors.New("database connection not established")}
	}

	params := make([]any, len(args))
	for i, a := range args {
		params[i] = a
	}

	s.logger.Debug("running query", "name", name, "args", len(args))

	//nolint:rowserrcheck // rows.Err() is checked by result.FromRows
	rows, err := s.db.QueryContext(ctx, s.rebind(q.SQL), params...)
	if err != nil {
		return nil, &QueryError{Name: name, Err: err}
	}
	defer func() { _ = rows.Close() }()

	set, err := result.FromRows(rows)
	if err != nil {
		return nil, &QueryError{Name: name, Err: err}
	}

	s.logger.Debug("query finished", "name", name, "records", set.Len())
	return set, nil
}

// rebind rewrites ? placeholders into the bind style of the store's driver,
// $1, $2, ... for postgres.
func (s *Store) rebind(query string) string {
	return sqlx.Rebind(sqlx.BindType(s.driver), query)
}
