// Package main provides the leafdex CLI application.
// leafdex runs the plant discovery reward engine and manages its
// PostgreSQL database.
package main

import (
	"os"

	"github.com/leafdex/leafdex/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
