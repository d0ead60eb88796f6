package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/amirasaad/banking/infra/boot"
	"github.com/amirasaad/banking/infra/schedule"
	log "github.com/charmbracelet/log"
)

// accruald runs the monthly interest and penalty accrual on a cron
// schedule. The schedule comes from BANK_ACCRUAL_SPEC and defaults
// to @monthly.
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	deps, err := boot.Initialize()
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	logger := deps.Logger

	scheduler := schedule.New(deps.Bank, deps.Config.Accrual.Spec, logger)
	if err := scheduler.Start(); err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutdown signal received, stopping scheduler")
	<-scheduler.Stop().Done()
	logger.Info("scheduler stopped")
	return nil
}
