// Command avwxcli fetches and decodes aviation weather from the
// Aviation Weather Center API for one-off lookups.
//
// Usage:
//
//	avwxcli metar KBOS
//	avwxcli taf KBOS --json
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
