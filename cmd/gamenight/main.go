// Package main is the entry point for the gamenight CLI.
package main

import (
	"os"

	"github.com/runger/gamenight/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
