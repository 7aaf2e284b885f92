package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"tourdesk/internal/auth"
	"tourdesk/internal/store"
)

// ArtistStore captures the artist operations needed by the HTTP handlers.
type ArtistStore interface {
	ListArtists(ctx context.Context, page, limit int) ([]store.Artist, store.Pagination, error)
	GetArtist(ctx context.Context, id int64) (*store.Artist, error)
	CreateArtist(ctx context.Context, artist store.NewArtist) (int64, error)
	UpdateArtist(ctx context.Context, id int64, upd store.ArtistUpdate) error
}

// ConcertStore captures the concert operations needed by the HTTP handlers.
type ConcertStore interface {
	ListConcerts(ctx context.Context, page, limit int, artistID *int64) ([]store.ConcertSummary, store.Pagination, error)
	GetConcert(ctx context.Context, id int64) (*store.ConcertDetails, error)
	CreateConcert(ctx context.Context, concert store.NewConcert) (int64, error)
	UpdateConcert(ctx context.Context, id int64, upd store.ConcertUpdate) error
}

// StatsStore computes the consolidated dashboard aggregates.
type StatsStore interface {
	Statistics(ctx context.Context) (*store.Statistics, error)
}

// UserStore captures the account operations behind the auth endpoints.
type UserStore interface {
	CreateUser(ctx context.Context, email, password string) (int64, error)
	Authenticate(ctx context.Context, email, password string) (int64, error)
	GetUser(ctx context.Context, id int64) (*store.User, error)
}

// Server wires HTTP handlers to the underlying store.
type Server struct {
	artists  ArtistStore
	concerts ConcertStore
	stats    StatsStore
	users    UserStore
	tokens   *auth.Issuer
	validate *validator.Validate
}

// New configures a Server over the given store implementations.
func New(artists ArtistStore, concerts ConcertStore, stats StatsStore, users UserStore, tokens *auth.Issuer) *Server {
	return &Server{
		artists:  artists,
		concerts: concerts,
		stats:    stats,
		users:    users,
		tokens:   tokens,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Routes exposes the HTTP handlers.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)

	// Artist routes
	mux.HandleFunc("GET /api/artists", s.handleListArtists)
	mux.HandleFunc("GET /api/artists/{id}", s.handleGetArtist)
	mux.HandleFunc("POST /api/artists", s.handleCreateArtist)
	mux.HandleFunc("PUT /api/artists/{id}", s.handleUpdateArtist)

	// Concert routes
	mux.HandleFunc("GET /api/concerts", s.handleListConcerts)
	mux.HandleFunc("GET /api/concerts/{id}", s.handleGetConcert)
	mux.HandleFunc("POST /api/concerts", s.handleCreateConcert)
	mux.HandleFunc("PUT /api/concerts/{id}", s.handleUpdateConcert)

	// Dashboard
	mux.HandleFunc("GET /api/statistics", s.handleStatistics)

	// Accounts
	mux.HandleFunc("POST /api/auth/signup", s.handleSignup)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("GET /api/auth/me", s.handleMe)

	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
	}{Status: "ok"})
}

type errorResponse struct {
	Error string `json:"error"`
}

type listResponse struct {
	Success    bool             `json:"success"`
	Data       any              `json:"data"`
	Pagination store.Pagination `json:"pagination"`
}

type createdResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    map[string]int64 `json:"data"`
}

type updatedResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type dataResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// decodeValid decodes the request body into dst and runs struct validation.
// It writes the error response itself and reports whether the request may
// proceed.
func (s *Server) decodeValid(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return false
	}
	return true
}

// pathID parses the {id} path segment. A non-numeric id is a 400.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return 0, false
	}
	return id, true
}

// queryInt reads an integer query parameter, falling back to def when the
// parameter is absent. Out-of-range values are left for the store to clamp.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
