package main

import (
	"encoding/json"
	"io"

	"github.com/fatih/color"
)

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	labelColor  = color.New(color.FgHiBlack)
)

// categoryColor returns the conventional chart color for a flight
// category: VFR green, MVFR blue, IFR red, LIFR magenta.
func categoryColor(category string) *color.Color {
	switch category {
	case "VFR":
		return color.New(color.FgGreen, color.Bold)
	case "MVFR":
		return color.New(color.FgBlue, color.Bold)
	case "IFR":
		return color.New(color.FgRed, color.Bold)
	case "LIFR":
		return color.New(color.FgMagenta, color.Bold)
	default:
		return color.New(color.FgWhite)
	}
}

func printField(w io.Writer, label, value string) {
	if value == "" {
		return
	}
	labelColor.Fprintf(w, "%-15s", label)
	io.WriteString(w, " "+value+"\n")
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
