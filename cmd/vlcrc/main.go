package main

import (
	"fmt"
	"os"

	"vlcrc/internal/tui"
)

var (
	version = "dev"
)

// Entry point for the application
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, tui.ErrorStyle.Render(err.Error()))
		os.Exit(1)
	}
}
