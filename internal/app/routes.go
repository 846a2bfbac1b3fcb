package app

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Booking form
	r.HandleFunc("/api/citas", deps.CitaHandler.Submit).Methods("POST")

	// Administrative operations
	r.HandleFunc("/api/citas", deps.CitaHandler.List).Methods("GET")
	r.HandleFunc("/api/citas", deps.CitaHandler.Clear).Methods("DELETE")
	r.HandleFunc("/api/citas/count", deps.CitaHandler.Count).Methods("GET")
	r.HandleFunc("/api/citas/export", deps.ExportHandler.Download).Methods("GET")

	r.Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})).Methods("GET")
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods("GET")
}
