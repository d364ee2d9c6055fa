package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/agencydesk/api-agency/internal/agent"
	"github.com/agencydesk/api-agency/internal/aggregate"
	"github.com/agencydesk/api-agency/internal/clientrec"
	"github.com/agencydesk/api-agency/internal/commission"
	"github.com/agencydesk/api-agency/internal/jobs"
	"github.com/agencydesk/api-agency/internal/lead"
	"github.com/agencydesk/api-agency/internal/metrics"
	"github.com/agencydesk/api-agency/internal/policy"
	"github.com/agencydesk/api-agency/internal/server"
	"github.com/agencydesk/api-agency/internal/storage"
	"github.com/agencydesk/api-agency/internal/update"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	db, err := storage.Connect()
	if err != nil {
		log.Fatal("failed to connect to database: ", err)
	}

	if err := db.AutoMigrate(
		&agent.Agent{},
		&clientrec.Client{},
		&lead.Lead{},
		&policy.Policy{},
		&commission.Commission{},
		&update.Update{},
	); err != nil {
		log.Fatal("failed to migrate schema: ", err)
	}

	agentRate := aggregate.DefaultAgentRate
	if raw := os.Getenv("AGENT_SPLIT_RATE"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v > 0 && v <= 1 {
			agentRate = v
		} else {
			logger.Warn("ignoring invalid AGENT_SPLIT_RATE", "value", raw)
		}
	}

	router := server.NewRouter(server.Config{
		DB:        db,
		AgentRate: agentRate,
		Logger:    logger,
		Metrics:   metrics.New(nil),
	})

	manager := jobs.NewManager(db, logger)
	if err := manager.Setup(); err != nil {
		log.Fatal("failed to set up jobs: ", err)
	}
	manager.Start()

	handler := cors.New(cors.Options{
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE"},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(router)

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	srv := &http.Server{Addr: addr, Handler: handler}

	go func() {
		logger.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed: ", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown", "err", err)
	}
	manager.Stop()
}
