package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/sprintingbug/agricheck/internal/service"
)

// Handler handles HTTP requests
type Handler struct {
	service service.ServiceInterface
}

// NewHandler creates a new handler instance
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// SuggestPlaces handles GET /api/v1/places/suggest
func (h *Handler) SuggestPlaces(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}

	response, err := h.service.SuggestPlaces(r.Context(), query)
	if err != nil {
		if errors.Is(err, service.ErrEmptyQuery) {
			writeError(w, http.StatusBadRequest, "query parameter 'q' is required")
			return
		}
		log.Printf("Error suggesting places: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// GetWeather handles GET /api/v1/weather
func (h *Handler) GetWeather(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("q")
	if key == "" {
		writeError(w, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}

	report, err := h.service.WeatherByKey(r.Context(), key)
	if err != nil {
		if errors.Is(err, service.ErrEmptyQuery) {
			writeError(w, http.StatusBadRequest, "query parameter 'q' is required")
			return
		}
		// the failure message carries the upstream status or cause; the
		// client shows it next to its retry affordance
		log.Printf("Error fetching weather: %v", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
