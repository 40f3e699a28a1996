package main

import (
	"os"

	"github.com/amruth-sn/anvil/internal/commands"
)

func main() {
	rootCmd := commands.RootCmd()

	rootCmd.AddCommand(commands.ComposeCmd())
	rootCmd.AddCommand(commands.ServicesCmd())
	rootCmd.AddCommand(commands.ValidateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
