// Package main is the entry point for minimute.
package main

import (
	"github.com/minimute-app/minimute/internal/cli"
)

func main() {
	// Failures were already shown to the user; the exit code is always 0.
	_ = cli.Execute()
}
