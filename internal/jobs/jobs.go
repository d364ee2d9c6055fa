// Package jobs runs the scheduled maintenance work of the service.
package jobs

import (
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/agencydesk/api-agency/internal/policy"
)

// Manager owns the cron scheduler.
type Manager struct {
	cron     *cron.Cron
	policies *policy.Repository
	logger   *slog.Logger
}

func NewManager(db *gorm.DB, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		cron:     cron.New(),
		policies: policy.NewRepository(db),
		logger:   logger,
	}
}

// Setup registers the scheduled jobs. Nightly at 02:00 the expiry sweep flips
// active policies past their expiry date to expired.
func (m *Manager) Setup() error {
	_, err := m.cron.AddFunc("0 2 * * *", m.runExpirySweep)
	return err
}

func (m *Manager) Start() {
	m.cron.Start()
}

func (m *Manager) Stop() {
	m.cron.Stop()
}

func (m *Manager) runExpirySweep() {
	n, err := m.policies.ExpireOverdue(time.Now())
	if err != nil {
		m.logger.Error("policy expiry sweep failed", "err", err)
		return
	}
	if n > 0 {
		m.logger.Info("policy expiry sweep finished", "expired", n)
	}
}
