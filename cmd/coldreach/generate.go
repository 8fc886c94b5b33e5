package main

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/coldreach/coldreach/internal/adapters"
	"github.com/coldreach/coldreach/internal/config"
	"github.com/coldreach/coldreach/internal/core"
	"github.com/coldreach/coldreach/internal/core/domain"
)

func newGenerateCmd() *cobra.Command {
	var (
		company    string
		names      string
		titles     string
		gatewayURL string
		screenshot string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Run one search-then-draft pass against the gateway",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}

			logger, err := buildLogger()
			if err != nil {
				return err
			}
			defer logger.Sync()

			input := domain.RunInput{Company: company, Names: names, Titles: titles}
			if screenshot != "" {
				shot, err := loadScreenshot(screenshot)
				if err != nil {
					return err
				}
				input.Screenshot = shot
			}

			client := adapters.NewGatewayClient(gatewayURL)
			svc := core.NewOutreachService(client, logger, cfg.StageTimeout())

			stop := startStatusTicker(cmd.OutOrStdout())
			result, runErr := svc.Execute(cmd.Context(), input)
			stop()

			if runErr != nil {
				var re *core.RunError
				if errors.As(runErr, &re) {
					color.New(color.FgRed).Fprintln(cmd.OutOrStdout(), re.UserMessage())
				} else {
					color.New(color.FgRed).Fprintln(cmd.OutOrStdout(), "An error occurred while generating emails.")
				}
				return runErr
			}

			fmt.Fprintln(cmd.OutOrStdout(), result.Output)
			return nil
		},
	}

	cmd.Flags().StringVar(&company, "company", "", "target company domain or name (required)")
	cmd.Flags().StringVar(&names, "names", "", "comma-delimited prospect first names (required)")
	cmd.Flags().StringVar(&titles, "titles", "", "comma-delimited job titles, same order as names (required)")
	cmd.Flags().StringVar(&gatewayURL, "gateway", "http://localhost:8080", "base URL of the proxy gateway")
	cmd.Flags().StringVar(&screenshot, "screenshot", "", "optional path to a screenshot image to attach")
	return cmd
}

func loadScreenshot(path string) (*domain.Screenshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading screenshot: %w", err)
	}
	return &domain.Screenshot{
		MimeType: http.DetectContentType(data),
		Data:     base64.StdEncoding.EncodeToString(data),
	}, nil
}

// statusMessages rotate on the terminal while a run is in flight. Cosmetic
// only; the run neither reads nor waits on them.
var statusMessages = []string{
	"Scanning the news wires...",
	"Convincing the model to stop hallucinating...",
	"Teaching AI to write like a human...",
	"Making emails that don't sound like robots...",
	"Checking sources twice...",
	"Channeling Gage's sales energy...",
}

// startStatusTicker prints a rotating status line every two seconds. The
// returned stop function cancels the ticker and must be called on every exit
// path from a run.
func startStatusTicker(w io.Writer) func() {
	done := make(chan struct{})
	finished := make(chan struct{})

	go func() {
		defer close(finished)
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()

		dim := color.New(color.FgCyan)
		i := 0
		dim.Fprintln(w, statusMessages[i])
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				i = (i + 1) % len(statusMessages)
				dim.Fprintln(w, statusMessages[i])
			}
		}
	}()

	return func() {
		close(done)
		<-finished
	}
}
