package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Concert is a scheduled or historical event for an artist.
type Concert struct {
	ID                  int64     `json:"id"`
	ArtistID            int64     `json:"artist_id"`
	EventName           string    `json:"event_name"`
	Venue               string    `json:"venue"`
	City                string    `json:"city"`
	Country             string    `json:"country"`
	Date                time.Time `json:"date"`
	Status              string    `json:"status"`
	ProjectedAttendance *int64    `json:"projected_attendance"`
	ActualAttendance    *int64    `json:"actual_attendance"`
	ProductionCosts     *int64    `json:"production_costs"`
	BoxOfficeRevenue    *int64    `json:"box_office_revenue"`
	Latitude            *float64  `json:"latitude"`
	Longitude           *float64  `json:"longitude"`
}

// ConcertSummary is a concert row joined with its artist's name, as served
// by list endpoints.
type ConcertSummary struct {
	Concert
	ArtistName string `json:"artist_name"`
}

// ConcertDetails is a concert joined with the artist columns exposed on
// single-concert lookups.
type ConcertDetails struct {
	Concert
	ArtistName    string `json:"artist_name"`
	ArtistGenre   string `json:"artist_genre"`
	ArtistCountry string `json:"artist_country"`
}

// NewConcert carries the fields accepted on concert creation.
type NewConcert struct {
	ArtistID            int64
	EventName           string
	Venue               string
	City                string
	Country             string
	Date                time.Time
	Status              string
	ProjectedAttendance *int64
	ActualAttendance    *int64
	ProductionCosts     *int64
	BoxOfficeRevenue    *int64
	Latitude            *float64
	Longitude           *float64
}

// ConcertUpdate carries a partial update; nil fields are left untouched.
type ConcertUpdate struct {
	ArtistID            *int64
	EventName           *string
	Venue               *string
	City                *string
	Country             *string
	Date                *time.Time
	Status              *string
	ProjectedAttendance *int64
	ActualAttendance    *int64
	ProductionCosts     *int64
	BoxOfficeRevenue    *int64
	Latitude            *float64
	Longitude           *float64
}

const concertColumns = `
	c.id, c.artist_id, c.event_name, c.venue, c.city, c.country, c.date, c.status,
	c.projected_attendance, c.actual_attendance, c.production_costs, c.box_office_revenue,
	c.latitude, c.longitude`

func scanConcert(row interface{ Scan(...any) error }, c *Concert, extra ...any) error {
	dest := []any{
		&c.ID, &c.ArtistID, &c.EventName, &c.Venue, &c.City, &c.Country, &c.Date, &c.Status,
		&c.ProjectedAttendance, &c.ActualAttendance, &c.ProductionCosts, &c.BoxOfficeRevenue,
		&c.Latitude, &c.Longitude,
	}
	dest = append(dest, extra...)
	return row.Scan(dest...)
}

// ListConcerts returns one page of concerts ordered by descending date,
// optionally filtered to a single artist. Each row carries the artist name
// from the join.
func (s *Store) ListConcerts(ctx context.Context, page, limit int, artistID *int64) ([]ConcertSummary, Pagination, error) {
	page, limit = normalizePageLimit(page, limit)
	offset := (page - 1) * limit

	where := ""
	var args []any
	if artistID != nil {
		where = " WHERE c.artist_id = $1"
		args = append(args, *artistID)
	}

	var totalRecords int
	countQuery := `
		SELECT COUNT(c.id)
		FROM concerts c
		JOIN artists a ON c.artist_id = a.id` + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&totalRecords); err != nil {
		return nil, Pagination{}, fmt.Errorf("count concerts: %w", err)
	}

	query := `
		SELECT` + concertColumns + `, a.name AS artist_name
		FROM concerts c
		JOIN artists a ON c.artist_id = a.id` + where +
		fmt.Sprintf(`
		ORDER BY c.date DESC
		LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, Pagination{}, fmt.Errorf("select concerts: %w", err)
	}
	defer rows.Close()

	var concerts []ConcertSummary
	for rows.Next() {
		var c ConcertSummary
		if err := scanConcert(rows, &c.Concert, &c.ArtistName); err != nil {
			return nil, Pagination{}, fmt.Errorf("scan concert: %w", err)
		}
		concerts = append(concerts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, Pagination{}, fmt.Errorf("iterate concerts: %w", err)
	}

	return concerts, paginationFor(page, limit, totalRecords), nil
}

// GetConcert returns a single concert with artist details, or ErrConcertNotFound.
func (s *Store) GetConcert(ctx context.Context, id int64) (*ConcertDetails, error) {
	var c ConcertDetails
	err := scanConcert(s.db.QueryRowContext(ctx, `
		SELECT`+concertColumns+`,
			a.name AS artist_name, a.genre AS artist_genre, a.country AS artist_country
		FROM concerts c
		JOIN artists a ON c.artist_id = a.id
		WHERE c.id = $1
	`, id), &c.Concert, &c.ArtistName, &c.ArtistGenre, &c.ArtistCountry)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrConcertNotFound
		}
		return nil, fmt.Errorf("select concert: %w", err)
	}

	return &c, nil
}

// CreateConcert inserts a new concert and returns its id. Status defaults to
// Planned when empty. A nonexistent artist_id trips the foreign-key
// constraint and surfaces as ErrArtistNotFound.
func (s *Store) CreateConcert(ctx context.Context, concert NewConcert) (int64, error) {
	status := concert.Status
	if status == "" {
		status = StatusPlanned
	}

	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO concerts (artist_id, event_name, venue, city, country, date, status,
		                      projected_attendance, actual_attendance, production_costs,
		                      box_office_revenue, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`, concert.ArtistID, concert.EventName, concert.Venue, concert.City, concert.Country,
		concert.Date, status, concert.ProjectedAttendance, concert.ActualAttendance,
		concert.ProductionCosts, concert.BoxOfficeRevenue, concert.Latitude, concert.Longitude,
	).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, ErrArtistNotFound
		}
		return 0, fmt.Errorf("insert concert: %w", err)
	}

	return id, nil
}

// UpdateConcert applies a partial update over every concert field except id.
// Same contract as UpdateArtist: ErrNoFieldsToUpdate on an empty update,
// ErrConcertNotFound when no row matched, ErrArtistNotFound when a supplied
// artist_id does not resolve.
func (s *Store) UpdateConcert(ctx context.Context, id int64, upd ConcertUpdate) error {
	var (
		sets []string
		args []any
	)
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.ArtistID != nil {
		set("artist_id", *upd.ArtistID)
	}
	if upd.EventName != nil {
		set("event_name", *upd.EventName)
	}
	if upd.Venue != nil {
		set("venue", *upd.Venue)
	}
	if upd.City != nil {
		set("city", *upd.City)
	}
	if upd.Country != nil {
		set("country", *upd.Country)
	}
	if upd.Date != nil {
		set("date", *upd.Date)
	}
	if upd.Status != nil {
		set("status", *upd.Status)
	}
	if upd.ProjectedAttendance != nil {
		set("projected_attendance", *upd.ProjectedAttendance)
	}
	if upd.ActualAttendance != nil {
		set("actual_attendance", *upd.ActualAttendance)
	}
	if upd.ProductionCosts != nil {
		set("production_costs", *upd.ProductionCosts)
	}
	if upd.BoxOfficeRevenue != nil {
		set("box_office_revenue", *upd.BoxOfficeRevenue)
	}
	if upd.Latitude != nil {
		set("latitude", *upd.Latitude)
	}
	if upd.Longitude != nil {
		set("longitude", *upd.Longitude)
	}

	if len(sets) == 0 {
		return ErrNoFieldsToUpdate
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE concerts SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrArtistNotFound
		}
		return fmt.Errorf("update concert: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update concert rows affected: %w", err)
	}
	if affected == 0 {
		return ErrConcertNotFound
	}

	return nil
}
