// Package cmd provides the command-line interface for fswsim.
package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use: "fswsim",
	Short: "fswsim emulates a spacecraft on-board computer and its " +
		"bus-attached components.",
	Long: `fswsim runs spacecraft flight-software simulations. It emulates ` +
		`the on-board computer bus (uart, i2c, gpio) and dispatches every ` +
		`component at its own rate on a deterministic simulation clock.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Environment variables can be supplied through a .env file.
func Execute() {
	_ = godotenv.Load()

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
