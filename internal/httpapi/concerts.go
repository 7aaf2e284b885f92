package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"tourdesk/internal/store"
)

type createConcertRequest struct {
	ArtistID            int64     `json:"artist_id" validate:"required"`
	EventName           string    `json:"event_name" validate:"required,max=150"`
	Venue               string    `json:"venue" validate:"required,max=100"`
	City                string    `json:"city" validate:"required,max=100"`
	Country             string    `json:"country" validate:"required,max=100"`
	Date                time.Time `json:"date" validate:"required"`
	Status              *string   `json:"status" validate:"omitempty,max=50"`
	ProjectedAttendance *int64    `json:"projected_attendance" validate:"omitempty,gte=0"`
	ActualAttendance    *int64    `json:"actual_attendance" validate:"omitempty,gte=0"`
	ProductionCosts     *int64    `json:"production_costs" validate:"omitempty,gte=0"`
	BoxOfficeRevenue    *int64    `json:"box_office_revenue" validate:"omitempty,gte=0"`
	Latitude            *float64  `json:"latitude"`
	Longitude           *float64  `json:"longitude"`
}

type updateConcertRequest struct {
	ArtistID            *int64     `json:"artist_id" validate:"omitempty,gt=0"`
	EventName           *string    `json:"event_name" validate:"omitempty,min=1,max=150"`
	Venue               *string    `json:"venue" validate:"omitempty,min=1,max=100"`
	City                *string    `json:"city" validate:"omitempty,min=1,max=100"`
	Country             *string    `json:"country" validate:"omitempty,min=1,max=100"`
	Date                *time.Time `json:"date"`
	Status              *string    `json:"status" validate:"omitempty,max=50"`
	ProjectedAttendance *int64     `json:"projected_attendance" validate:"omitempty,gte=0"`
	ActualAttendance    *int64     `json:"actual_attendance" validate:"omitempty,gte=0"`
	ProductionCosts     *int64     `json:"production_costs" validate:"omitempty,gte=0"`
	BoxOfficeRevenue    *int64     `json:"box_office_revenue" validate:"omitempty,gte=0"`
	Latitude            *float64   `json:"latitude"`
	Longitude           *float64   `json:"longitude"`
}

func (s *Server) handleListConcerts(w http.ResponseWriter, r *http.Request) {
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

	var artistID *int64
	if raw := r.URL.Query().Get("artist_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid artist_id"})
			return
		}
		artistID = &id
	}

	concerts, pagination, err := s.concerts.ListConcerts(r.Context(), page, limit, artistID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	if concerts == nil {
		concerts = []store.ConcertSummary{}
	}

	writeJSON(w, http.StatusOK, listResponse{Success: true, Data: concerts, Pagination: pagination})
}

func (s *Server) handleGetConcert(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	concert, err := s.concerts.GetConcert(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrConcertNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: fmt.Sprintf("concert with id %d not found", id)})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, concert)
}

func (s *Server) handleCreateConcert(w http.ResponseWriter, r *http.Request) {
	var req createConcertRequest
	if !s.decodeValid(w, r, &req) {
		return
	}

	status := ""
	if req.Status != nil {
		status = *req.Status
	}

	id, err := s.concerts.CreateConcert(r.Context(), store.NewConcert{
		ArtistID:            req.ArtistID,
		EventName:           req.EventName,
		Venue:               req.Venue,
		City:                req.City,
		Country:             req.Country,
		Date:                req.Date,
		Status:              status,
		ProjectedAttendance: req.ProjectedAttendance,
		ActualAttendance:    req.ActualAttendance,
		ProductionCosts:     req.ProductionCosts,
		BoxOfficeRevenue:    req.BoxOfficeRevenue,
		Latitude:            req.Latitude,
		Longitude:           req.Longitude,
	})
	if err != nil {
		// A dangling artist_id is the caller's mistake, not a server fault.
		if errors.Is(err, store.ErrArtistNotFound) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("artist with id %d does not exist", req.ArtistID)})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, createdResponse{
		Success: true,
		Message: "concert created successfully",
		Data:    map[string]int64{"id": id},
	})
}

func (s *Server) handleUpdateConcert(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if _, err := s.concerts.GetConcert(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrConcertNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: fmt.Sprintf("concert with id %d not found", id)})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	var req updateConcertRequest
	if !s.decodeValid(w, r, &req) {
		return
	}

	err := s.concerts.UpdateConcert(r.Context(), id, store.ConcertUpdate{
		ArtistID:            req.ArtistID,
		EventName:           req.EventName,
		Venue:               req.Venue,
		City:                req.City,
		Country:             req.Country,
		Date:                req.Date,
		Status:              req.Status,
		ProjectedAttendance: req.ProjectedAttendance,
		ActualAttendance:    req.ActualAttendance,
		ProductionCosts:     req.ProductionCosts,
		BoxOfficeRevenue:    req.BoxOfficeRevenue,
		Latitude:            req.Latitude,
		Longitude:           req.Longitude,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNoFieldsToUpdate):
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "no valid fields to update"})
		case errors.Is(err, store.ErrArtistNotFound):
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "artist does not exist"})
		case errors.Is(err, store.ErrConcertNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse{Error: fmt.Sprintf("concert with id %d not found", id)})
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		}
		return
	}

	writeJSON(w, http.StatusOK, updatedResponse{Success: true, Message: "concert updated successfully"})
}
