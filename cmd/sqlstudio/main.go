// Package main provides the sqlstudio CLI entry point.
package main

import (
	"os"

	"github.com/renatotuller/rt-sql-studio/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
