package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewTripsCmd creates the trips command
func NewTripsCmd() *cobra.Command {
	var take int

	cmd := &cobra.Command{
		Use:   "trips",
		Short: "List your trips, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp()
			if err != nil {
				return err
			}
			defer app.Close()

			summaries, err := app.Client.ListTrips(context.Background(), take)
			if err != nil {
				return fmt.Errorf("failed to list trips: %w", err)
			}

			if len(summaries) == 0 {
				fmt.Println("No trips yet. Run 'triply plan' to create one.")
				return nil
			}

			for _, s := range summaries {
				fmt.Printf("%s  %s", s.ID, s.Destination)
				if s.DepartDate != "" {
					fmt.Printf("  %s", s.DepartDate)
					if s.ReturnDate != "" {
						fmt.Printf(" to %s", s.ReturnDate)
					}
				}
				fmt.Println()
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&take, "take", 20, "Maximum number of trips to list (1-100)")
	return cmd
}
