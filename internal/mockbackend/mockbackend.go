// Package mockbackend runs the four fixed-table backend services the gateway
// fronts: air quality (SOAP), traffic (GraphQL), mobility (REST) and energy (gRPC).
package mockbackend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"google.golang.org/grpc"

	"github.com/smartcity/gateway/internal/config"
	"github.com/smartcity/gateway/internal/domain"
)

// Run starts every backend on its configured address and blocks until ctx is
// cancelled or one of them fails to serve. repo backs the mobility service.
func Run(ctx context.Context, cfg config.MockConfig, repo domain.TransportRepository, logger *slog.Logger) error {
	apps := []struct {
		name string
		addr string
		app  *fiber.App
	}{
		{"air", cfg.AirAddr, NewAirApp(logger)},
		{"traffic", cfg.TrafficAddr, NewTrafficApp(logger)},
		{"mobility", cfg.MobilityAddr, NewMobilityApp(repo, logger)},
	}

	energyLn, err := net.Listen("tcp", cfg.EnergyAddr)
	if err != nil {
		return fmt.Errorf("mockbackend: listen energy on %s: %w", cfg.EnergyAddr, err)
	}
	energySrv := NewEnergyServer(logger)

	errCh := make(chan error, len(apps)+1)
	var wg sync.WaitGroup

	for _, a := range apps {
		wg.Add(1)
		go func(name, addr string, app *fiber.App) {
			defer wg.Done()
			logger.Info("mock backend listening", "backend", name, "addr", addr)
			if err := app.Listen(addr); err != nil {
				errCh <- fmt.Errorf("mockbackend: %s: %w", name, err)
			}
		}(a.name, a.addr, a.app)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("mock backend listening", "backend", "energy", "addr", cfg.EnergyAddr)
		if err := energySrv.Serve(energyLn); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errCh <- fmt.Errorf("mockbackend: energy: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
	}

	logger.Info("stopping mock backends")
	for _, a := range apps {
		if err := a.app.ShutdownWithTimeout(5 * time.Second); err != nil {
			logger.Warn("mock backend shutdown", "backend", a.name, "error", err)
		}
	}
	energySrv.GracefulStop()
	wg.Wait()

	return runErr
}
