package main

import (
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/smartcity/gateway/internal/config"
)

var askVerbose bool

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer one question without the HTTP layer",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().BoolVarP(&askVerbose, "verbose", "v", false, "print detected areas and the aggregated context")
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if !askVerbose {
		cfg.LogLevel = "error"
	}
	logger := cfg.NewLogger()

	gw, err := newGateway(cfg, logger)
	if err != nil {
		return err
	}
	defer gw.Close()

	result, err := gw.chat.Ask(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}

	if askVerbose {
		gray := color.New(color.FgHiBlack)
		keywords := make([]string, len(result.Areas))
		for i, a := range result.Areas {
			keywords[i] = a.Keyword + "→" + a.RoadID
		}
		gray.Fprintf(cmd.OutOrStdout(), "areas:   %s\n", strings.Join(keywords, ", "))
		gray.Fprintf(cmd.OutOrStdout(), "context: %s\n", result.Context.String())
		gray.Fprintf(cmd.OutOrStdout(), "outcome: %s\n\n", result.Outcome)
	}

	color.New(color.FgCyan).Fprintln(cmd.OutOrStdout(), result.Response)
	return nil
}
