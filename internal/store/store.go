package store

import (
	"database/sql"
	"errors"
	"math"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrArtistNotFound signals the referenced artist does not exist.
	ErrArtistNotFound = errors.New("artist not found")
	// ErrConcertNotFound signals the referenced concert does not exist.
	ErrConcertNotFound = errors.New("concert not found")
	// ErrNoFieldsToUpdate indicates an update payload carried no updatable fields.
	// This is a caller mistake, never a database failure.
	ErrNoFieldsToUpdate = errors.New("no fields to update")
	// ErrUserExists signals the email is already registered.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials indicates a login failure.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUnauthorized indicates an invalid or missing identity.
	ErrUnauthorized = errors.New("unauthorized")
)

// Concert status values. The column is an open string; these are the
// values the dashboard queries care about.
const (
	StatusPlanned   = "Planned"
	StatusConfirmed = "Confirmed"
	StatusCancelled = "Cancelled"
)

// Store provides persistence backed by Postgres.
type Store struct {
	db *sql.DB
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Pagination describes one page of a listing.
type Pagination struct {
	Page         int  `json:"page"`
	Limit        int  `json:"limit"`
	TotalRecords int  `json:"total_records"`
	TotalPages   int  `json:"total_pages"`
	HasNext      bool `json:"has_next"`
	HasPrev      bool `json:"has_prev"`
}

// normalizePageLimit clamps pagination parameters: page is at least 1 and
// an out-of-range limit resets to the default page size of 10.
func normalizePageLimit(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}

func paginationFor(page, limit, totalRecords int) Pagination {
	totalPages := int(math.Ceil(float64(totalRecords) / float64(limit)))
	return Pagination{
		Page:         page,
		Limit:        limit,
		TotalRecords: totalRecords,
		TotalPages:   totalPages,
		HasNext:      page < totalPages,
		HasPrev:      page > 1,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
