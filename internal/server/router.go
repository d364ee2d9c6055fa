// Package server assembles the HTTP router for the record store API.
package server

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/agencydesk/api-agency/internal/agent"
	"github.com/agencydesk/api-agency/internal/clientrec"
	"github.com/agencydesk/api-agency/internal/commission"
	"github.com/agencydesk/api-agency/internal/lead"
	"github.com/agencydesk/api-agency/internal/metrics"
	"github.com/agencydesk/api-agency/internal/policy"
	"github.com/agencydesk/api-agency/internal/update"
)

type Config struct {
	DB        *gorm.DB
	AgentRate float64
	Logger    *slog.Logger
	// Metrics is optional; tests leave it nil to avoid registering
	// collectors twice on the default registry.
	Metrics *metrics.Metrics
}

// NewRouter mounts every route of the API.
func NewRouter(cfg Config) *mux.Router {
	agentHandler := agent.NewHandler(cfg.DB)
	clientHandler := clientrec.NewHandler(cfg.DB)
	leadHandler := lead.NewHandler(cfg.DB)
	policyHandler := policy.NewHandler(cfg.DB)
	commissionHandler := commission.NewHandler(cfg.DB, cfg.AgentRate, cfg.Logger)
	updateHandler := update.NewHandler(cfg.DB)

	r := mux.NewRouter()

	r.HandleFunc("/agents", agentHandler.Create).Methods("POST")
	r.HandleFunc("/agents", agentHandler.List).Methods("GET")
	r.HandleFunc("/agents/{id}", agentHandler.Get).Methods("GET")
	r.HandleFunc("/agents/{id}", agentHandler.Update).Methods("PATCH")
	r.HandleFunc("/agents/{id}", agentHandler.Delete).Methods("DELETE")

	r.HandleFunc("/clients", clientHandler.Create).Methods("POST")
	r.HandleFunc("/clients", clientHandler.List).Methods("GET")
	r.HandleFunc("/clients/{id}", clientHandler.Get).Methods("GET")
	r.HandleFunc("/clients/{id}", clientHandler.Update).Methods("PATCH")
	r.HandleFunc("/clients/{id}", clientHandler.Delete).Methods("DELETE")

	r.HandleFunc("/leads", leadHandler.Create).Methods("POST")
	r.HandleFunc("/leads", leadHandler.List).Methods("GET")
	r.HandleFunc("/leads/{id}", leadHandler.Get).Methods("GET")
	r.HandleFunc("/leads/{id}", leadHandler.Update).Methods("PATCH")
	r.HandleFunc("/leads/{id}", leadHandler.Delete).Methods("DELETE")

	r.HandleFunc("/policies", policyHandler.Create).Methods("POST")
	r.HandleFunc("/policies", policyHandler.List).Methods("GET")
	r.HandleFunc("/policies/{id}", policyHandler.Get).Methods("GET")
	r.HandleFunc("/policies/{id}", policyHandler.Update).Methods("PATCH")
	r.HandleFunc("/policies/{id}", policyHandler.Delete).Methods("DELETE")

	// Derived views must be registered before the {id} route.
	r.HandleFunc("/commissions/stats", commissionHandler.Stats).Methods("GET")
	r.HandleFunc("/commissions/stats/by-type", commissionHandler.Breakdown).Methods("GET")
	r.HandleFunc("/commissions/weekly/by-agent/{id}", commissionHandler.WeeklyByAgent).Methods("GET")
	r.HandleFunc("/commissions", commissionHandler.Create).Methods("POST")
	r.HandleFunc("/commissions", commissionHandler.List).Methods("GET")
	r.HandleFunc("/commissions/{id}", commissionHandler.Get).Methods("GET")
	r.HandleFunc("/commissions/{id}", commissionHandler.Update).Methods("PATCH")
	r.HandleFunc("/commissions/{id}", commissionHandler.Delete).Methods("DELETE")

	r.HandleFunc("/updates", updateHandler.Create).Methods("POST")
	r.HandleFunc("/updates", updateHandler.List).Methods("GET")
	r.HandleFunc("/updates/{id}", updateHandler.Get).Methods("GET")
	r.HandleFunc("/updates/{id}", updateHandler.Update).Methods("PATCH")
	r.HandleFunc("/updates/{id}", updateHandler.Delete).Methods("DELETE")

	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")

	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware)
	}
	return r
}
