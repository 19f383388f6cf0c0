package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nionems/bachata-hub-sub002/pkg/listing"
)

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Store implements listing.Store using PostgreSQL. Each listing is a
// document row: moderation fields as columns, the kind-specific payload as
// jsonb.
type Store struct {
	db DBTX
}

// New creates a new PostgreSQL store
func New(db DBTX) *Store {
	return &Store{db: db}
}

// NewWithPool creates a new PostgreSQL store with a connection pool
func NewWithPool(pool *pgxpool.Pool) *Store {
	return &Store{db: pool}
}

var _ listing.Store = (*Store)(nil)

const listingColumns = `
	id, kind, status, created_at, submitted_at, updated_at,
	reviewed_at, reviewed_by, review_notes, published, payload`

func (s *Store) handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("listing already exists")
		case "23502": // not_null_violation
			return fmt.Errorf("required field %s is missing", pgErr.ColumnName)
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - database migration required")
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return listing.ErrNotFound
	}

	return fmt.Errorf("%w: %s: %v", listing.ErrStoreUnavailable, operation, err)
}

func scanListing(row pgx.Row) (*listing.Listing, error) {
	var l listing.Listing
	err := row.Scan(
		&l.ID, &l.Kind, &l.Status, &l.CreatedAt, &l.SubmittedAt, &l.UpdatedAt,
		&l.ReviewedAt, &l.ReviewedBy, &l.ReviewNotes, &l.Published, &l.Payload)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *Store) GetByID(ctx context.Context, collection string, id uuid.UUID) (*listing.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE collection = $1 AND id = $2`

	l, err := scanListing(s.db.QueryRow(ctx, query, collection, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, listing.ErrNotFound
		}
		return nil, s.handlePostgresError("get listing", err)
	}
	return l, nil
}

func (s *Store) List(ctx context.Context, collection string) ([]*listing.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings
		WHERE collection = $1
		ORDER BY COALESCE(created_at, submitted_at, updated_at) DESC NULLS LAST`

	rows, err := s.db.Query(ctx, query, collection)
	if err != nil {
		return nil, s.handlePostgresError("list listings", err)
	}
	defer rows.Close()

	return collectRows(rows)
}

func (s *Store) QueryByField(ctx context.Context, collection, field string, value any) ([]*listing.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings
		WHERE collection = $1 AND payload->>$2 = $3`

	rows, err := s.db.Query(ctx, query, collection, field, fmt.Sprint(value))
	if err != nil {
		return nil, s.handlePostgresError("query listings", err)
	}
	defer rows.Close()

	return collectRows(rows)
}

func (s *Store) Insert(ctx context.Context, collection string, l *listing.Listing) (uuid.UUID, error) {
	id := l.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	query := `
		INSERT INTO listings (
			collection, id, kind, status, created_at, submitted_at, updated_at,
			reviewed_at, reviewed_by, review_notes, published, payload
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := s.db.Exec(ctx, query,
		collection, id, l.Kind, l.Status, l.CreatedAt, l.SubmittedAt, l.UpdatedAt,
		l.ReviewedAt, l.ReviewedBy, l.ReviewNotes, l.Published, l.Payload)
	if err != nil {
		return uuid.Nil, s.handlePostgresError("insert listing", err)
	}

	return id, nil
}

func (s *Store) Update(ctx context.Context, collection string, l *listing.Listing) error {
	query := `
		UPDATE listings SET
			kind = $3, status = $4, created_at = $5, submitted_at = $6,
			updated_at = $7, reviewed_at = $8, reviewed_by = $9,
			review_notes = $10, published = $11, payload = $12
		WHERE collection = $1 AND id = $2`

	tag, err := s.db.Exec(ctx, query,
		collection, l.ID, l.Kind, l.Status, l.CreatedAt, l.SubmittedAt,
		l.UpdatedAt, l.ReviewedAt, l.ReviewedBy, l.ReviewNotes, l.Published, l.Payload)
	if err != nil {
		return s.handlePostgresError("update listing", err)
	}
	if tag.RowsAffected() == 0 {
		return listing.ErrNotFound
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, collection string, id uuid.UUID) error {
	query := `DELETE FROM listings WHERE collection = $1 AND id = $2`

	tag, err := s.db.Exec(ctx, query, collection, id)
	if err != nil {
		return s.handlePostgresError("delete listing", err)
	}
	if tag.RowsAffected() == 0 {
		return listing.ErrNotFound
	}

	return nil
}

func collectRows(rows pgx.Rows) ([]*listing.Listing, error) {
	var listings []*listing.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return listings, nil
}
