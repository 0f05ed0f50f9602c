package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/smartcity/gateway/internal/config"
	"github.com/smartcity/gateway/internal/service"
)

var errUnhealthy = errors.New("one or more backends are unreachable")

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose",
	Short: "Probe every backend",
	Long:  `Query each backend with a known sample key and report which ones answer.`,
	RunE:  runDiagnose,
}

func runDiagnose(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	cfg.LogLevel = "error"
	logger := cfg.NewLogger()

	gw, err := newGateway(cfg, logger)
	if err != nil {
		return err
	}
	defer gw.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	report := gw.diagnostics.Check(ctx)
	printReport(cmd.OutOrStdout(), report)

	if !report.Healthy {
		return errUnhealthy
	}
	return nil
}

func printReport(w io.Writer, report service.Report) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	gray := color.New(color.FgHiBlack)

	for _, b := range report.Backends {
		if b.Healthy {
			green.Fprint(w, "    ✔ ")
			fmt.Fprintf(w, "%-9s", b.Backend)
			gray.Fprintf(w, " %dms\n", b.LatencyMS)
			continue
		}
		red.Fprint(w, "    ✘ ")
		fmt.Fprintf(w, "%-9s", b.Backend)
		red.Fprintf(w, " %s", b.Kind)
		gray.Fprintf(w, " %s\n", b.Error)
	}
}
