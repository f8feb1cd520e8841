package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/sprintingbug/agricheck/internal/model"
	"github.com/sprintingbug/agricheck/internal/service"
)

// GetProfile handles GET /api/v1/users/me
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetProfile(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "user not found")
			return
		}
		log.Printf("Error getting profile: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// UpdateProfile handles PUT /api/v1/users/me
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), userIDFromContext(r.Context()), req.Name)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "user not found")
			return
		}
		log.Printf("Error updating profile: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// GetUserStats handles GET /api/v1/users/me/stats
func (h *Handler) GetUserStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetUserStats(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		log.Printf("Error getting user stats: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
