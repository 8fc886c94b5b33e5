package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var cfgPath string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "coldreach",
		Short: "Grounded cold-outreach email generation behind a secure proxy",
		Long: "coldreach mediates all traffic to the generative API through a validating\n" +
			"proxy gateway and runs a two-stage retrieval-then-generation pipeline that\n" +
			"drafts outreach emails with explicit source attribution.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to YAML config file")
	root.AddCommand(newServeCmd(), newGenerateCmd())
	return root
}

func buildLogger() (*zap.Logger, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}
