package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/triply/triply-go/internal/models"
)

// NewPlanCmd creates the plan command
func NewPlanCmd() *cobra.Command {
	var (
		destination string
		depart      string
		returnDate  string
		preference  string
		theme       string
		localTravel string
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Request a new trip plan",
		Long:  "Send the trip form to the advisor and print the resulting trip id and share link",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp()
			if err != nil {
				return err
			}
			defer app.Close()

			req := &models.TripRequest{
				Destination: destination,
				DepartTime:  depart,
				ReturnTime:  returnDate,
				Preference:  models.TravelPreference(preference),
				Theme:       models.TravelTheme(theme),
				LocalTravel: models.LocalTravel(localTravel),
			}

			result, err := app.Client.CreateTrip(context.Background(), req)
			if err != nil {
				return fmt.Errorf("failed to create trip: %w", err)
			}

			fmt.Printf("Trip created: %s\n", result.TripID)
			shareURL := result.ShareURL
			if shareURL == "" {
				shareURL = app.Cfg.AppBase + "/trip/" + result.TripID
			}
			fmt.Printf("Share link:   %s\n", shareURL)

			// The advisor sometimes answers with the full itinerary inline;
			// render it right away instead of making the user run show.
			if trip, ok := app.Client.CachedTrip(result.CacheKey); ok {
				fmt.Println()
				renderTrip(cmd.OutOrStdout(), trip, false)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&destination, "destination", "", "Where to go")
	cmd.Flags().StringVar(&depart, "depart", "", "Departure date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&returnDate, "return", "", "Return date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&preference, "preference", string(models.PreferenceCompact),
		"Pacing: CompactTravel, RelaxedTravel, or HybridTravel")
	cmd.Flags().StringVar(&theme, "theme", string(models.ThemeLeisure),
		"Theme: LeisureTravel, CultureTravel, NatureTravel, AdventureTravel, BusinessTravel, or ShoppingTravel")
	cmd.Flags().StringVar(&localTravel, "local-travel", string(models.LocalPublic),
		"Local travel: SelfDriving, PublicTransportation, or Taxi")
	_ = cmd.MarkFlagRequired("destination")
	_ = cmd.MarkFlagRequired("depart")
	_ = cmd.MarkFlagRequired("return")
	return cmd
}
