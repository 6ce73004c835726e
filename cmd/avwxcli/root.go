package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/hangarline/avwx-etl/internal/adapter/avwx"
	"github.com/hangarline/avwx-etl/internal/domain"
	"github.com/hangarline/avwx-etl/internal/observability"
)

var (
	flagJSON    bool
	flagBaseURL string
	flagTimeout time.Duration
	flagTZ      string
)

var rootCmd = &cobra.Command{
	Use:           "avwxcli",
	Short:         "Fetch and decode METAR/TAF data from the Aviation Weather Center",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "print the enriched record as JSON")
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "https://aviationweather.gov/api/data", "weather API base URL")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 10*time.Second, "request timeout")
	rootCmd.PersistentFlags().StringVar(&flagTZ, "tz", "", "IANA timezone for local times (default: system)")

	rootCmd.AddCommand(metarCmd)
	rootCmd.AddCommand(tafCmd)
}

func newFetcher() *avwx.Client {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return avwx.NewClient(flagBaseURL, flagTimeout, observability.NewMetrics(), logger)
}

func newEnricher() (*domain.Enricher, error) {
	loc := time.Local
	if flagTZ != "" {
		var err error
		loc, err = time.LoadLocation(flagTZ)
		if err != nil {
			return nil, fmt.Errorf("invalid timezone %q: %w", flagTZ, err)
		}
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return domain.NewEnricher(loc, logger), nil
}
