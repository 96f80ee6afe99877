package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Predefined errors for store operations
var (
	ErrInvalidID          = errors.New("store: malformed identifier")
	ErrInvalidSortField   = errors.New("store: unsupported sort field")
	ErrPageOutOfRange     = errors.New("store: page out of range")
	ErrCategoryNameExists = errors.New("store: category name already exists")
	ErrCategorySlugExists = errors.New("store: category slug already exists")
	ErrProductSlugExists  = errors.New("store: product slug already exists")
)

const (
	productsTable   = "catalog.products"
	categoriesTable = "catalog.categories"

	uniqueViolation = "23505"
)

// PostgresStore implements ProductStorer, CategoryStorer and
// ReferenceCodeStorer on top of PostgreSQL.
type PostgresStore struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewPostgresStore creates a new PostgresStore instance.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db, now: time.Now}
}

func (s *PostgresStore) builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

func (s *PostgresStore) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// Ping checks that the database is reachable.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	if s.db == nil {
		return nil
	}
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("store: failed to close database: %w", err)
	}
	return nil
}

// constraintViolated reports whether err is a unique violation on a
// constraint whose name contains one of the given names.
func constraintViolated(err error, names ...string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != uniqueViolation {
		return false
	}
	for _, name := range names {
		if strings.Contains(pqErr.Constraint, name) {
			return true
		}
	}
	return false
}
