// Package main is the entry point for the quote collector CLI.
//
// The collector scrapes quote sources, runs the cleaning and
// deduplication pipeline, and writes the dataset the API service loads
// at startup. It runs offline, typically from a cron job or by hand
// before a dataset refresh.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}
