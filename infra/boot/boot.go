// Package boot assembles the application: configuration, logger, storage
// and the bank service, in that order.
package boot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/amirasaad/banking/infra/textstore"
	"github.com/amirasaad/banking/pkg/config"
	"github.com/amirasaad/banking/pkg/exchange"
	"github.com/amirasaad/banking/pkg/repository"
	"github.com/amirasaad/banking/pkg/service/bank"
)

// Deps holds everything a command needs to run.
type Deps struct {
	Config    *config.App
	Logger    *slog.Logger
	Store     repository.Store
	Converter exchange.Converter
	Bank      *bank.Service
}

// Initialize loads configuration, sets up the logger, opens the store and
// restores the bank's persisted state.
func Initialize(envFiles ...string) (*Deps, error) {
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger := setupLogger(cfg.Log)

	store, err := textstore.New(cfg.Data.Dir, logger)
	if err != nil {
		return nil, err
	}
	converter := exchange.NewStaticConverter()

	svc := bank.New(store, converter, logger)
	if err := svc.Load(context.Background()); err != nil {
		return nil, fmt.Errorf("restore state: %w", err)
	}

	return &Deps{
		Config:    cfg,
		Logger:    logger,
		Store:     store,
		Converter: converter,
		Bank:      svc,
	}, nil
}
