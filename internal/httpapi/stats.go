package httpapi

import "net/http"

func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := s.stats.Statistics(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, dataResponse{Success: true, Data: stats})
}
