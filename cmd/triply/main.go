package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/triply/triply-go/cmd/triply/commands"
)

func main() {
	// Best effort; a missing .env file is fine.
	_ = godotenv.Load()

	var rootCmd = &cobra.Command{
		Use:   "triply",
		Short: "Trip planning client",
		Long:  "CLI client for the Triply trip-planning service",
	}

	rootCmd.AddCommand(commands.NewRegisterCmd())
	rootCmd.AddCommand(commands.NewLoginCmd())
	rootCmd.AddCommand(commands.NewLogoutCmd())
	rootCmd.AddCommand(commands.NewWhoamiCmd())
	rootCmd.AddCommand(commands.NewPlanCmd())
	rootCmd.AddCommand(commands.NewShowCmd())
	rootCmd.AddCommand(commands.NewTripsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
