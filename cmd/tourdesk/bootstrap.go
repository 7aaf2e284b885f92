package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"tourdesk/internal/store"
)

// bootstrapDemoData seeds a small roster of artists and concerts so the
// dashboard has something to aggregate on a fresh database. It is a no-op
// when the artists table already has rows.
func bootstrapDemoData(ctx context.Context, db *sql.DB, dataStore *store.Store) error {
	artistsTableExists, err := tableExists(ctx, db, "artists")
	if err != nil {
		return fmt.Errorf("check artists table: %w", err)
	}
	if !artistsTableExists {
		return nil
	}

	var count int
	if err := db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM artists
	`).Scan(&count); err != nil {
		return fmt.Errorf("count artists: %w", err)
	}
	if count > 0 {
		return nil
	}

	intPtr := func(v int) *int { return &v }
	i64Ptr := func(v int64) *int64 { return &v }
	f64Ptr := func(v float64) *float64 { return &v }
	strPtr := func(v string) *string { return &v }

	type seedConcert struct {
		EventName string
		Venue     string
		City      string
		Country   string
		Date      time.Time
		Status    string
		Projected *int64
		Actual    *int64
		Costs     *int64
		Revenue   *int64
		Latitude  *float64
		Longitude *float64
	}

	type seedArtist struct {
		Artist   store.NewArtist
		Concerts []seedConcert
	}

	roster := []seedArtist{
		{
			Artist: store.NewArtist{
				Name:       "Taylor Swift",
				Genre:      "Pop",
				Country:    "United States",
				Popularity: intPtr(99),
				Biography:  strPtr("American singer-songwriter known for narrative lyrics."),
			},
			Concerts: []seedConcert{
				{
					EventName: "Eras Tour",
					Venue:     "Estadio Azteca",
					City:      "Mexico City",
					Country:   "Mexico",
					Date:      time.Date(2025, 8, 24, 20, 0, 0, 0, time.UTC),
					Status:    store.StatusConfirmed,
					Projected: i64Ptr(85000),
					Actual:    i64Ptr(87000),
					Costs:     i64Ptr(2500000),
					Revenue:   i64Ptr(9800000),
					Latitude:  f64Ptr(19.3029),
					Longitude: f64Ptr(-99.1505),
				},
			},
		},
		{
			Artist: store.NewArtist{
				Name:       "Bad Bunny",
				Genre:      "Reggaeton",
				Country:    "Puerto Rico",
				Popularity: intPtr(98),
			},
			Concerts: []seedConcert{
				{
					EventName: "Most Wanted Tour",
					Venue:     "Foro Sol",
					City:      "Mexico City",
					Country:   "Mexico",
					Date:      time.Date(2025, 12, 5, 21, 0, 0, 0, time.UTC),
					Status:    store.StatusConfirmed,
					Projected: i64Ptr(65000),
					Actual:    i64Ptr(60000),
					Costs:     i64Ptr(1200000),
					Revenue:   i64Ptr(5400000),
				},
				{
					EventName: "Most Wanted Tour",
					Venue:     "Estadio BBVA",
					City:      "Monterrey",
					Country:   "Mexico",
					Date:      time.Date(2026, 2, 14, 21, 0, 0, 0, time.UTC),
					Status:    store.StatusPlanned,
					Projected: i64Ptr(50000),
				},
			},
		},
		{
			Artist: store.NewArtist{
				Name:       "Coldplay",
				Genre:      "Alternative Rock",
				Country:    "United Kingdom",
				Popularity: intPtr(88),
			},
			Concerts: []seedConcert{
				{
					EventName: "Music of the Spheres",
					Venue:     "Wembley Stadium",
					City:      "London",
					Country:   "United Kingdom",
					Date:      time.Date(2025, 6, 12, 19, 30, 0, 0, time.UTC),
					Status:    store.StatusConfirmed,
					Projected: i64Ptr(90000),
					Actual:    i64Ptr(88500),
					Costs:     i64Ptr(3100000),
					Revenue:   i64Ptr(7600000),
				},
			},
		},
		{
			Artist: store.NewArtist{
				Name:       "Peso Pluma",
				Genre:      "Corridos Tumbados",
				Country:    "Mexico",
				Popularity: intPtr(85),
			},
			Concerts: []seedConcert{
				{
					EventName: "Exodo Tour",
					Venue:     "Arena Monterrey",
					City:      "Monterrey",
					Country:   "Mexico",
					Date:      time.Date(2025, 4, 3, 21, 0, 0, 0, time.UTC),
					Status:    store.StatusCancelled,
				},
			},
		},
	}

	for _, entry := range roster {
		artistID, err := dataStore.CreateArtist(ctx, entry.Artist)
		if err != nil {
			return fmt.Errorf("seed artist %q: %w", entry.Artist.Name, err)
		}

		for _, c := range entry.Concerts {
			if _, err := dataStore.CreateConcert(ctx, store.NewConcert{
				ArtistID:            artistID,
				EventName:           c.EventName,
				Venue:               c.Venue,
				City:                c.City,
				Country:             c.Country,
				Date:                c.Date,
				Status:              c.Status,
				ProjectedAttendance: c.Projected,
				ActualAttendance:    c.Actual,
				ProductionCosts:     c.Costs,
				BoxOfficeRevenue:    c.Revenue,
				Latitude:            c.Latitude,
				Longitude:           c.Longitude,
			}); err != nil {
				return fmt.Errorf("seed concert %q: %w", c.EventName, err)
			}
		}
	}

	return nil
}

type queryRower interface {
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

func tableExists(ctx context.Context, q queryRower, table string) (bool, error) {
	var name sql.NullString
	if err := q.QueryRowContext(ctx, `SELECT to_regclass($1)`, table).Scan(&name); err != nil {
		return false, err
	}
	return name.Valid, nil
}
