package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/smartcity/gateway/internal/config"
	"github.com/smartcity/gateway/internal/domain"
	"github.com/smartcity/gateway/internal/mockbackend"
	"github.com/smartcity/gateway/internal/repository/memory"
	"github.com/smartcity/gateway/internal/repository/postgres"
)

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "Run the four mock backends",
	Long:  `Serve the fixed-table air (SOAP), traffic (GraphQL), mobility (REST) and energy (gRPC) services for local development.`,
	RunE:  runBackends,
}

func runBackends(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	logger := cfg.NewLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, closeRepo := transportRepository(ctx, cfg.Mock.DatabaseURL, logger)
	defer closeRepo()

	green := color.New(color.FgGreen)
	for _, b := range []struct{ name, addr string }{
		{"Air (SOAP)", cfg.Mock.AirAddr},
		{"Traffic (GraphQL)", cfg.Mock.TrafficAddr},
		{"Mobility (REST)", cfg.Mock.MobilityAddr},
		{"Energy (gRPC)", cfg.Mock.EnergyAddr},
	} {
		green.Print("    ▶ ")
		fmt.Printf("%-18s %s\n", b.name, b.addr)
	}
	fmt.Println()

	return mockbackend.Run(ctx, cfg.Mock, repo, logger)
}

// transportRepository uses PostgreSQL when a database URL is configured and
// reachable, and the in-memory table otherwise.
func transportRepository(ctx context.Context, dsn string, logger *slog.Logger) (domain.TransportRepository, func()) {
	fallback := memory.NewTransportRepository(memory.DefaultTransports())
	if dsn == "" {
		return fallback, func() {}
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(connectCtx, dsn)
	if err == nil {
		err = pool.Ping(connectCtx)
	}
	if err != nil {
		logger.Warn("could not connect to database, running with in-memory transports", "error", err)
		if pool != nil {
			pool.Close()
		}
		return fallback, func() {}
	}

	repo := postgres.NewTransportRepository(pool)
	if err := repo.EnsureSchema(connectCtx); err != nil {
		logger.Warn("transports schema unavailable, running with in-memory transports", "error", err)
		pool.Close()
		return fallback, func() {}
	}
	if err := repo.Seed(connectCtx, memory.DefaultTransports()); err != nil {
		logger.Warn("could not seed transports", "error", err)
	}

	logger.Info("connected to PostgreSQL", "table", "transports")
	return repo, pool.Close
}
