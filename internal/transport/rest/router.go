// Package rest exposes the survey and admin HTTP API.
package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"github.com/andy00614/sury-questions/internal/service"
	"github.com/andy00614/sury-questions/internal/transport/rest/handler"
	"github.com/andy00614/sury-questions/pkg/logger"
)

// Container holds all dependencies for the router
type Container struct {
	SurveyService *service.SurveyService
	StatsService  *service.StatsService
	Logger        *logger.Logger
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	surveyHandler := handler.NewSurveyHandler(c.SurveyService)
	adminHandler := handler.NewAdminHandler(c.StatsService)

	r.Use(requestIDMiddleware(c.Logger))
	r.Use(corsMiddleware)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/survey", surveyHandler.Submit).Methods("POST", "OPTIONS")
	api.HandleFunc("/survey/questions", surveyHandler.Questions).Methods("GET", "OPTIONS")
	api.HandleFunc("/survey/stats", surveyHandler.Stats).Methods("GET", "OPTIONS")

	api.HandleFunc("/admin/statistics", adminHandler.Statistics).Methods("GET", "OPTIONS")
	api.HandleFunc("/admin/questions/{id}/distribution", adminHandler.Distribution).Methods("GET", "OPTIONS")

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
