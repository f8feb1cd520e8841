package api

import (
	"github.com/gorilla/mux"
	"github.com/sprintingbug/agricheck/internal/config"
	"github.com/sprintingbug/agricheck/internal/service"
	"github.com/sprintingbug/agricheck/internal/stats"
	"golang.org/x/time/rate"
)

// NewRouter creates a new HTTP router
func NewRouter(svc service.ServiceInterface, statsCollector *stats.Collector, cfg config.ServerConfig) *mux.Router {
	handler := NewHandler(svc)
	statsHandler := NewStatsHandler(statsCollector)
	suggestLimiter := rate.NewLimiter(rate.Limit(cfg.SuggestRatePerSec), cfg.SuggestBurst)

	router := mux.NewRouter()

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// API v1
	v1 := router.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/places/suggest", RateLimit(suggestLimiter, handler.SuggestPlaces)).Methods("GET")
	v1.HandleFunc("/weather", handler.GetWeather).Methods("GET")
	v1.HandleFunc("/auth/register", handler.Register).Methods("POST")
	v1.HandleFunc("/auth/login", handler.Login).Methods("POST")
	v1.HandleFunc("/auth/forgot/questions", handler.SecurityQuestions).Methods("POST")
	v1.HandleFunc("/auth/forgot/verify", handler.VerifySecurityAnswer).Methods("POST")
	v1.HandleFunc("/auth/forgot/reset", handler.ResetPassword).Methods("POST")
	v1.HandleFunc("/stats", statsHandler.GetStats).Methods("GET")

	// Authenticated routes
	authed := v1.NewRoute().Subrouter()
	authed.Use(handler.RequireAuth)
	authed.HandleFunc("/users/me", handler.GetProfile).Methods("GET")
	authed.HandleFunc("/users/me", handler.UpdateProfile).Methods("PUT")
	authed.HandleFunc("/users/me/stats", handler.GetUserStats).Methods("GET")
	authed.HandleFunc("/users/me/security-questions", handler.SetSecurityQuestions).Methods("PUT")
	authed.HandleFunc("/scans", handler.RecordScan).Methods("POST")
	authed.HandleFunc("/scans", handler.ScanHistory).Methods("GET")
	authed.HandleFunc("/scans/{id}", handler.GetScan).Methods("GET")

	return router
}
