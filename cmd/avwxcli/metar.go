package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hangarline/avwx-etl/internal/domain"
)

var metarCmd = &cobra.Command{
	Use:   "metar <station>",
	Short: "Fetch and decode the latest METAR for a station",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		station := strings.ToUpper(args[0])

		enricher, err := newEnricher()
		if err != nil {
			return err
		}

		raw, ok, err := newFetcher().FetchMETAR(context.Background(), station)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no current observation for %s", station)
		}

		obs := enricher.EnrichObservation(raw)
		if flagJSON {
			return printJSON(cmd.OutOrStdout(), obs)
		}
		printObservation(cmd.OutOrStdout(), obs)
		return nil
	},
}

func printObservation(w io.Writer, obs domain.EnrichedObservation) {
	name := obs.StationID
	if obs.StationName != "" {
		name = fmt.Sprintf("%s (%s)", obs.StationID, obs.StationName)
	}
	headerColor.Fprintln(w, name)

	if obs.ObservedAt != nil {
		printField(w, "Observed", obs.ObservedAt.Local)
	}
	if obs.FlightCategory != nil {
		fmt.Fprintf(w, "%s %s\n", labelColor.Sprintf("%-15s", "Category"), categoryColor(*obs.FlightCategory).Sprint(*obs.FlightCategory))
	}
	if obs.TempC != nil {
		printField(w, "Temperature", fmt.Sprintf("%.1f °C", *obs.TempC))
	}
	if obs.DewpointC != nil {
		printField(w, "Dewpoint", fmt.Sprintf("%.1f °C", *obs.DewpointC))
	}
	if obs.HumidityPct != nil {
		printField(w, "Humidity", fmt.Sprintf("%.1f %%", *obs.HumidityPct))
	}
	printField(w, "Wind", windText(obs))
	if obs.VisibilitySM != nil {
		printField(w, "Visibility", fmt.Sprintf("%g SM", *obs.VisibilitySM))
	}
	if obs.AltimeterInHg != nil {
		printField(w, "Altimeter", fmt.Sprintf("%.2f inHg", *obs.AltimeterInHg))
	}
	if obs.WxDecoded != nil {
		printField(w, "Weather", *obs.WxDecoded)
	}
	for i, layer := range obs.CloudLayers {
		label := ""
		if i == 0 {
			label = "Clouds"
		}
		printField(w, label, cloudText(layer))
	}
	if obs.RawText != "" {
		printField(w, "Raw", obs.RawText)
	}
}

func windText(obs domain.EnrichedObservation) string {
	if obs.WindSpeedKt == nil {
		return "calm"
	}
	var b strings.Builder
	if obs.WindVariable || obs.WindDirDeg == nil {
		b.WriteString("variable")
	} else {
		fmt.Fprintf(&b, "%d° (%s)", *obs.WindDirDeg, domain.Cardinal(float64(*obs.WindDirDeg)))
	}
	fmt.Fprintf(&b, " at %g kt", *obs.WindSpeedKt)
	if obs.WindGustKt != nil {
		fmt.Fprintf(&b, " gusting %g kt", *obs.WindGustKt)
	}
	return b.String()
}

func cloudText(layer domain.CloudLayer) string {
	text := layer.CoverText
	if layer.BaseText != nil {
		text += " @ " + *layer.BaseText
	}
	if layer.TypeText != nil {
		text += " (" + *layer.TypeText + ")"
	}
	return text
}
