package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/smartcity/gateway/internal/config"
	"github.com/smartcity/gateway/internal/delivery/http"
)

const banner = `
   ___                 _      ___ _ _
  / __|_ __  __ _ _ _| |_   / __(_) |_ _  _
  \__ \ '  \/ _' | '_|  _| | (__| |  _| || |
  |___/_|_|_\__,_|_|  \__|  \___|_|\__|\_, |
                                       |__/
`

const version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:           "server",
	Short:         "Smart City gateway",
	Long:          `Aggregates the air, traffic, mobility and energy backends behind one HTTP API with a chat endpoint.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP gateway",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, backendsCmd, diagnoseCmd, askCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	logger := cfg.NewLogger()

	color.New(color.FgCyan).Print(banner)
	color.New(color.FgHiBlack).Printf("    version: %s\n\n", version)

	green := color.New(color.FgGreen)
	green.Print("    ▶ ")
	fmt.Printf("HTTP:      :%s\n", cfg.Port)
	green.Print("    ▶ ")
	fmt.Printf("Engine:    %s\n", cfg.EngineProvider)
	green.Print("    ▶ ")
	fmt.Printf("Intents:   %s\n\n", cfg.IntentMatch)

	gw, err := newGateway(cfg, logger)
	if err != nil {
		return err
	}
	defer gw.Close()

	app := http.NewApp(http.AppConfig{
		WriteTimeout: cfg.InferenceTimeout + 10*time.Second,
		AccessLog:    true,
		Logger:       logger,
	})
	http.SetupRoutes(app, gw.dependencies(), gw.metrics)

	// Only a failed bind is fatal
	listenErr := make(chan error, 1)
	go func() {
		logger.Info("gateway listening", "port", cfg.Port)
		listenErr <- app.Listen(":" + cfg.Port)
	}()

	// Wait for interrupt signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-listenErr:
		if err != nil {
			return fmt.Errorf("gateway: listen on :%s: %w", cfg.Port, err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down gateway")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		logger.Warn("gateway forced to shutdown", "error", err)
	}
	logger.Info("gateway exited gracefully")
	return nil
}
