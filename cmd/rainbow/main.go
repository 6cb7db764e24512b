package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

func init() {
	// Query the terminal background before any Bubble Tea program reads
	// stdin, so the OSC 11 reply cannot land in the picker's input.
	_ = lipgloss.HasDarkBackground()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
