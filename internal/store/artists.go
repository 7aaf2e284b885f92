package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Artist is a performer managed on the platform. TotalConcerts is computed
// at read time for single-artist lookups and never stored.
type Artist struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Genre         string  `json:"genre"`
	Country       string  `json:"country"`
	Popularity    int     `json:"popularity"`
	ImageURL      *string `json:"image_url"`
	Biography     *string `json:"biography"`
	TotalConcerts *int64  `json:"total_concerts,omitempty"`
}

// NewArtist carries the fields accepted on artist creation.
type NewArtist struct {
	Name       string
	Genre      string
	Country    string
	Popularity *int
	ImageURL   *string
	Biography  *string
}

// ArtistUpdate carries a partial update; nil fields are left untouched.
type ArtistUpdate struct {
	Name       *string
	Genre      *string
	Country    *string
	Popularity *int
	ImageURL   *string
	Biography  *string
}

const defaultPopularity = 50

// ListArtists returns one page of artists ordered by descending popularity.
func (s *Store) ListArtists(ctx context.Context, page, limit int) ([]Artist, Pagination, error) {
	page, limit = normalizePageLimit(page, limit)
	offset := (page - 1) * limit

	var totalRecords int
	if err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM artists
	`).Scan(&totalRecords); err != nil {
		return nil, Pagination{}, fmt.Errorf("count artists: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, genre, country, popularity, image_url, biography
		FROM artists
		ORDER BY popularity DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, Pagination{}, fmt.Errorf("select artists: %w", err)
	}
	defer rows.Close()

	var artists []Artist
	for rows.Next() {
		var a Artist
		if err := rows.Scan(&a.ID, &a.Name, &a.Genre, &a.Country, &a.Popularity, &a.ImageURL, &a.Biography); err != nil {
			return nil, Pagination{}, fmt.Errorf("scan artist: %w", err)
		}
		artists = append(artists, a)
	}
	if err := rows.Err(); err != nil {
		return nil, Pagination{}, fmt.Errorf("iterate artists: %w", err)
	}

	return artists, paginationFor(page, limit, totalRecords), nil
}

// GetArtist returns a single artist with its concert count, or ErrArtistNotFound.
func (s *Store) GetArtist(ctx context.Context, id int64) (*Artist, error) {
	var a Artist
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, genre, country, popularity, image_url, biography
		FROM artists
		WHERE id = $1
	`, id).Scan(&a.ID, &a.Name, &a.Genre, &a.Country, &a.Popularity, &a.ImageURL, &a.Biography)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArtistNotFound
		}
		return nil, fmt.Errorf("select artist: %w", err)
	}

	var totalConcerts int64
	if err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM concerts
		WHERE artist_id = $1
	`, id).Scan(&totalConcerts); err != nil {
		return nil, fmt.Errorf("count concerts: %w", err)
	}
	a.TotalConcerts = &totalConcerts

	return &a, nil
}

// CreateArtist inserts a new artist and returns its id. Popularity defaults
// to 50 when the caller does not supply one.
func (s *Store) CreateArtist(ctx context.Context, artist NewArtist) (int64, error) {
	popularity := defaultPopularity
	if artist.Popularity != nil {
		popularity = *artist.Popularity
	}

	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO artists (name, genre, country, popularity, image_url, biography)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, artist.Name, artist.Genre, artist.Country, popularity, artist.ImageURL, artist.Biography).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert artist: %w", err)
	}

	return id, nil
}

// UpdateArtist applies a partial update, touching only the supplied fields.
// Returns ErrNoFieldsToUpdate before issuing any statement when the update
// is empty, and ErrArtistNotFound when no row matched.
func (s *Store) UpdateArtist(ctx context.Context, id int64, upd ArtistUpdate) error {
	var (
		sets []string
		args []any
	)
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.Name != nil {
		set("name", *upd.Name)
	}
	if upd.Genre != nil {
		set("genre", *upd.Genre)
	}
	if upd.Country != nil {
		set("country", *upd.Country)
	}
	if upd.Popularity != nil {
		set("popularity", *upd.Popularity)
	}
	if upd.ImageURL != nil {
		set("image_url", *upd.ImageURL)
	}
	if upd.Biography != nil {
		set("biography", *upd.Biography)
	}

	if len(sets) == 0 {
		return ErrNoFieldsToUpdate
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE artists SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update artist: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update artist rows affected: %w", err)
	}
	if affected == 0 {
		return ErrArtistNotFound
	}

	return nil
}
