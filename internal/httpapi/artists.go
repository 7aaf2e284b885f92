package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"tourdesk/internal/store"
)

type createArtistRequest struct {
	Name       string  `json:"name" validate:"required,min=1,max=100"`
	Genre      string  `json:"genre" validate:"required,max=50"`
	Country    string  `json:"country" validate:"required,max=50"`
	Popularity *int    `json:"popularity" validate:"omitempty,gte=0,lte=100"`
	ImageURL   *string `json:"image_url" validate:"omitempty,max=500"`
	Biography  *string `json:"biography"`
}

type updateArtistRequest struct {
	Name       *string `json:"name" validate:"omitempty,min=1,max=100"`
	Genre      *string `json:"genre" validate:"omitempty,max=50"`
	Country    *string `json:"country" validate:"omitempty,max=50"`
	Popularity *int    `json:"popularity" validate:"omitempty,gte=0,lte=100"`
	ImageURL   *string `json:"image_url" validate:"omitempty,max=500"`
	Biography  *string `json:"biography"`
}

func (s *Server) handleListArtists(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", 1)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid page"})
		return
	}
	limit, err := queryInt(r, "limit", 10)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid limit"})
		return
	}

	artists, pagination, err := s.artists.ListArtists(r.Context(), page, limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	if artists == nil {
		artists = []store.Artist{}
	}

	writeJSON(w, http.StatusOK, listResponse{Success: true, Data: artists, Pagination: pagination})
}

func (s *Server) handleGetArtist(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	artist, err := s.artists.GetArtist(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrArtistNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: fmt.Sprintf("artist with id %d not found", id)})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, artist)
}

func (s *Server) handleCreateArtist(w http.ResponseWriter, r *http.Request) {
	var req createArtistRequest
	if !s.decodeValid(w, r, &req) {
		return
	}

	id, err := s.artists.CreateArtist(r.Context(), store.NewArtist{
		Name:       req.Name,
		Genre:      req.Genre,
		Country:    req.Country,
		Popularity: req.Popularity,
		ImageURL:   req.ImageURL,
		Biography:  req.Biography,
	})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, createdResponse{
		Success: true,
		Message: "artist created successfully",
		Data:    map[string]int64{"id": id},
	})
}

func (s *Server) handleUpdateArtist(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	// Existence check up front so a missing artist is a 404 regardless of
	// what the body contains.
	if _, err := s.artists.GetArtist(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrArtistNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: fmt.Sprintf("artist with id %d not found", id)})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	var req updateArtistRequest
	if !s.decodeValid(w, r, &req) {
		return
	}

	err := s.artists.UpdateArtist(r.Context(), id, store.ArtistUpdate{
		Name:       req.Name,
		Genre:      req.Genre,
		Country:    req.Country,
		Popularity: req.Popularity,
		ImageURL:   req.ImageURL,
		Biography:  req.Biography,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNoFieldsToUpdate):
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "no valid fields to update"})
		case errors.Is(err, store.ErrArtistNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse{Error: fmt.Sprintf("artist with id %d not found", id)})
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		}
		return
	}

	writeJSON(w, http.StatusOK, updatedResponse{Success: true, Message: "artist updated successfully"})
}
