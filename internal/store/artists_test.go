package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestNormalizePageLimit(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		wantPage  int
		wantLimit int
	}{
		{name: "valid passthrough", page: 2, limit: 25, wantPage: 2, wantLimit: 25},
		{name: "zero page", page: 0, limit: 10, wantPage: 1, wantLimit: 10},
		{name: "negative page", page: -3, limit: 10, wantPage: 1, wantLimit: 10},
		{name: "zero limit", page: 1, limit: 0, wantPage: 1, wantLimit: 10},
		{name: "limit too large", page: 1, limit: 200, wantPage: 1, wantLimit: 10},
		{name: "limit at upper bound", page: 1, limit: 100, wantPage: 1, wantLimit: 100},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			page, limit := normalizePageLimit(tc.page, tc.limit)
			if page != tc.wantPage || limit != tc.wantLimit {
				t.Fatalf("normalizePageLimit(%d, %d) = (%d, %d), want (%d, %d)",
					tc.page, tc.limit, page, limit, tc.wantPage, tc.wantLimit)
			}
		})
	}
}

func TestPaginationFor(t *testing.T) {
	tests := []struct {
		name         string
		page, limit  int
		totalRecords int
		wantPages    int
		wantNext     bool
		wantPrev     bool
	}{
		{name: "empty table", page: 1, limit: 10, totalRecords: 0, wantPages: 0},
		{name: "single page", page: 1, limit: 10, totalRecords: 1, wantPages: 1},
		{name: "middle page", page: 2, limit: 10, totalRecords: 25, wantPages: 3, wantNext: true, wantPrev: true},
		{name: "last page", page: 3, limit: 10, totalRecords: 25, wantPages: 3, wantPrev: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			p := paginationFor(tc.page, tc.limit, tc.totalRecords)
			if p.TotalPages != tc.wantPages {
				t.Fatalf("TotalPages = %d, want %d", p.TotalPages, tc.wantPages)
			}
			if p.HasNext != tc.wantNext || p.HasPrev != tc.wantPrev {
				t.Fatalf("HasNext/HasPrev = %v/%v, want %v/%v", p.HasNext, p.HasPrev, tc.wantNext, tc.wantPrev)
			}
			if p.TotalRecords != tc.totalRecords {
				t.Fatalf("TotalRecords = %d, want %d", p.TotalRecords, tc.totalRecords)
			}
		})
	}
}

func TestListArtistsClampsOutOfRangeParams(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT COUNT(*)
		FROM artists
	`)).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, name, genre, country, popularity, image_url, biography
		FROM artists
		ORDER BY popularity DESC
		LIMIT $1 OFFSET $2
	`)).
		WithArgs(10, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "genre", "country", "popularity", "image_url", "biography"}).
			AddRow(int64(1), "X", "Pop", "Spain", 10, nil, nil))

	artists, pagination, err := s.ListArtists(context.Background(), -1, 500)
	if err != nil {
		t.Fatalf("ListArtists error: %v", err)
	}

	if len(artists) != 1 {
		t.Fatalf("expected 1 artist, got %d", len(artists))
	}
	if artists[0].Name != "X" || artists[0].Popularity != 10 {
		t.Fatalf("unexpected artist row: %+v", artists[0])
	}
	if pagination.Page != 1 || pagination.Limit != 10 {
		t.Fatalf("expected clamped page=1 limit=10, got page=%d limit=%d", pagination.Page, pagination.Limit)
	}
	if pagination.TotalRecords != 1 || pagination.TotalPages != 1 {
		t.Fatalf("unexpected pagination: %+v", pagination)
	}
	if pagination.HasNext || pagination.HasPrev {
		t.Fatalf("expected no next/prev page, got %+v", pagination)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetArtistIncludesConcertCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, name, genre, country, popularity, image_url, biography
		FROM artists
		WHERE id = $1
	`)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "genre", "country", "popularity", "image_url", "biography"}).
			AddRow(int64(7), "Coldplay", "Alternative Rock", "United Kingdom", 88, nil, nil))

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT COUNT(*)
		FROM concerts
		WHERE artist_id = $1
	`)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(3)))

	artist, err := s.GetArtist(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetArtist error: %v", err)
	}

	if artist.TotalConcerts == nil || *artist.TotalConcerts != 3 {
		t.Fatalf("expected total_concerts 3, got %v", artist.TotalConcerts)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetArtistNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, name, genre, country, popularity, image_url, biography
		FROM artists
		WHERE id = $1
	`)).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "genre", "country", "popularity", "image_url", "biography"}))

	_, err = s.GetArtist(context.Background(), 99)
	if !errors.Is(err, ErrArtistNotFound) {
		t.Fatalf("expected ErrArtistNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateArtistDefaultsPopularity(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO artists (name, genre, country, popularity, image_url, biography)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`)).
		WithArgs("Rosalia", "Flamenco Pop", "Spain", 50, nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(12)))

	id, err := s.CreateArtist(context.Background(), NewArtist{
		Name:    "Rosalia",
		Genre:   "Flamenco Pop",
		Country: "Spain",
	})
	if err != nil {
		t.Fatalf("CreateArtist error: %v", err)
	}
	if id != 12 {
		t.Fatalf("expected id 12, got %d", id)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateArtistKeepsExplicitPopularity(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	popularity := 92

	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO artists (name, genre, country, popularity, image_url, biography)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`)).
		WithArgs("Drake", "Hip Hop", "Canada", 92, nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(4)))

	if _, err := s.CreateArtist(context.Background(), NewArtist{
		Name:       "Drake",
		Genre:      "Hip Hop",
		Country:    "Canada",
		Popularity: &popularity,
	}); err != nil {
		t.Fatalf("CreateArtist error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateArtistTouchesOnlySuppliedFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	name := "New Name"
	popularity := 70

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE artists SET name = $1, popularity = $2 WHERE id = $3`)).
		WithArgs("New Name", 70, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = s.UpdateArtist(context.Background(), 5, ArtistUpdate{Name: &name, Popularity: &popularity})
	if err != nil {
		t.Fatalf("UpdateArtist error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateArtistEmptyUpdateNeverTouchesDB(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	err = s.UpdateArtist(context.Background(), 5, ArtistUpdate{})
	if !errors.Is(err, ErrNoFieldsToUpdate) {
		t.Fatalf("expected ErrNoFieldsToUpdate, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateArtistNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	name := "Ghost"

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE artists SET name = $1 WHERE id = $2`)).
		WithArgs("Ghost", int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = s.UpdateArtist(context.Background(), 404, ArtistUpdate{Name: &name})
	if !errors.Is(err, ErrArtistNotFound) {
		t.Fatalf("expected ErrArtistNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
