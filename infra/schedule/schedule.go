// Package schedule runs the bank's recurring jobs on a cron scheduler.
package schedule

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/amirasaad/banking/pkg/service/bank"
	"github.com/robfig/cron/v3"
)

// Scheduler triggers the monthly interest run on a cron spec.
type Scheduler struct {
	cron   *cron.Cron
	bank   *bank.Service
	spec   string
	logger *slog.Logger
}

// New creates a scheduler around the bank service. The spec is a cron
// expression or one of cron's descriptors such as @monthly.
func New(svc *bank.Service, spec string, logger *slog.Logger) *Scheduler {
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelInfo))
	c := cron.New(cron.WithChain(cron.Recover(cronLogger)))
	return &Scheduler{
		cron:   c,
		bank:   svc,
		spec:   spec,
		logger: logger.With("component", "schedule"),
	}
}

// Start registers the accrual job and starts the scheduler. An invalid
// spec fails here, before anything is scheduled.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.runMonthly); err != nil {
		return fmt.Errorf("schedule monthly processing %q: %w", s.spec, err)
	}
	s.logger.Info("monthly processing scheduled", "spec", s.spec)
	s.cron.Start()
	return nil
}

func (s *Scheduler) runMonthly() {
	affected, err := s.bank.RunMonthlyProcessing(context.Background())
	if err != nil {
		s.logger.Error("monthly processing failed", "error", err)
		return
	}
	s.logger.Info("monthly processing ran", "affected", affected)
}

// Stop stops the scheduler. The returned context is done once any running
// job has finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}
