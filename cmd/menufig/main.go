package main

import (
	"os"

	"github.com/FredHutch/menu-driven-figure/cmd/menufig/commands"
	"github.com/fatih/color"
)

func main() {
	if err := commands.Execute(); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}
