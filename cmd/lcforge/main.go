package main

import (
	"os"

	"lcforge/cmd/lcforge/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
