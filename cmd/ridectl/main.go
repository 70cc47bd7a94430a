package main

import (
	"os"

	"ride-match-service/cmd/ridectl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
