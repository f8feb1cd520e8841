package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sprintingbug/agricheck/internal/model"
	"github.com/sprintingbug/agricheck/internal/service"
)

// RecordScan handles POST /api/v1/scans
func (h *Handler) RecordScan(w http.ResponseWriter, r *http.Request) {
	var req model.ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ImagePath == "" {
		writeError(w, http.StatusBadRequest, "image_path is required")
		return
	}

	scan, err := h.service.RecordScan(r.Context(), userIDFromContext(r.Context()), req)
	if err != nil {
		log.Printf("Error recording scan: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, scan)
}

// ScanHistory handles GET /api/v1/scans
func (h *Handler) ScanHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit parameter")
			return
		}
	}

	offset := 0
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		var err error
		offset, err = strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			writeError(w, http.StatusBadRequest, "invalid offset parameter")
			return
		}
	}

	history, err := h.service.ScanHistory(r.Context(), userIDFromContext(r.Context()), limit, offset)
	if err != nil {
		log.Printf("Error listing scans: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, history)
}

// GetScan handles GET /api/v1/scans/{id}
func (h *Handler) GetScan(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	scan, err := h.service.GetScan(r.Context(), userIDFromContext(r.Context()), vars["id"])
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeError(w, http.StatusNotFound, "scan not found")
			return
		}
		log.Printf("Error getting scan: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, scan)
}
