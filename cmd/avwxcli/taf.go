package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hangarline/avwx-etl/internal/domain"
)

var tafCmd = &cobra.Command{
	Use:   "taf <station>",
	Short: "Fetch and decode the latest TAF for a station",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		station := strings.ToUpper(args[0])

		enricher, err := newEnricher()
		if err != nil {
			return err
		}

		raw, ok, err := newFetcher().FetchTAF(context.Background(), station)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no current forecast for %s", station)
		}

		fc := enricher.EnrichForecast(raw)
		if flagJSON {
			return printJSON(cmd.OutOrStdout(), fc)
		}
		printForecast(cmd.OutOrStdout(), fc)
		return nil
	},
}

func printForecast(w io.Writer, fc domain.EnrichedForecast) {
	headerColor.Fprintln(w, fc.StationID+" TAF")

	if fc.IssuedAt != nil {
		printField(w, "Issued", fc.IssuedAt.Local)
	}
	if fc.ValidFrom != nil && fc.ValidTo != nil {
		printField(w, "Valid", fc.ValidFrom.LocalShort+" – "+fc.ValidTo.LocalShort)
	}

	for i, p := range fc.Periods {
		fmt.Fprintln(w)
		label := fmt.Sprintf("Period %d", i+1)
		if p.FlightCategory != nil {
			fmt.Fprintf(w, "%s %s\n", labelColor.Sprintf("%-15s", label), categoryColor(*p.FlightCategory).Sprint(*p.FlightCategory))
		} else {
			labelColor.Fprintf(w, "%-15s\n", label)
		}
		printField(w, "", p.Summary)
	}

	if fc.RawText != "" {
		fmt.Fprintln(w)
		printField(w, "Raw", fc.RawText)
	}
}
