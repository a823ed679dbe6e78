package main

import (
	"context"
	"fmt"
	"os"

	"github.com/SscSPs/portfolio_tracker/internal/adapters/brokers"
	"github.com/SscSPs/portfolio_tracker/internal/core/services"
	portssvc "github.com/SscSPs/portfolio_tracker/internal/core/ports/services"
	"github.com/SscSPs/portfolio_tracker/internal/platform/config"
	"github.com/SscSPs/portfolio_tracker/internal/repositories/database/pgsql"
	"github.com/SscSPs/portfolio_tracker/pkg/database"
	"github.com/charmbracelet/glamour"
	"github.com/jackc/pgx/v5/pgxpool"
)

// app is the short lived wiring of one command run.
type app struct {
	cfg      *config.Config
	pool     *pgxpool.Pool
	services *portssvc.ServiceContainer
}

func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
	if err != nil {
		return nil, err
	}
	enabled := cfg.EnabledBrokers
	if len(enabled) == 0 {
		enabled = brokers.KnownBrokers()
	}
	registry, err := brokers.NewRegistry(enabled)
	if err != nil {
		pool.Close()
		return nil, err
	}
	return &app{
		cfg:      cfg,
		pool:     pool,
		services: services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(pool), registry),
	}, nil
}

func (a *app) Close() { a.pool.Close() }

// printMarkdown renders md for the terminal, falling back to the raw text.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
