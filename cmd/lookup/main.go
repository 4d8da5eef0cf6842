// Package main provides the lookup CLI for querying the student database.
package main

import (
	"os"

	"github.com/leapstack-labs/lookup/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
