// Package main provides the entry point for the rove CLI.
package main

import (
	"os"

	"github.com/rovenotes/rove/cmd/rove/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
