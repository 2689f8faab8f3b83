package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/andy00614/sury-questions/internal/model"
	"github.com/andy00614/sury-questions/internal/service"
)

// AdminHandler handles dashboard endpoints
type AdminHandler struct {
	statsSvc *service.StatsService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(statsSvc *service.StatsService) *AdminHandler {
	return &AdminHandler{statsSvc: statsSvc}
}

// Statistics handles GET /api/admin/statistics
func (h *AdminHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsSvc.Dashboard(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch statistics")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    stats,
	})
}

// Distribution handles GET /api/admin/questions/{id}/distribution
func (h *AdminHandler) Distribution(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid question id")
		return
	}

	dist, err := h.statsSvc.Distribution(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrUnknownQuestion):
			writeError(w, http.StatusNotFound, "question not found")
		case errors.Is(err, service.ErrNoDistribution):
			writeError(w, http.StatusBadRequest, "question has no options")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to fetch distribution")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    dist,
	})
}
