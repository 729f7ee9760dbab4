package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/triply/triply-go/internal/client"
)

// NewShowCmd creates the show command
func NewShowCmd() *cobra.Command {
	var timeline bool

	cmd := &cobra.Command{
		Use:   "show <trip-id>",
		Short: "Fetch and display a trip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp()
			if err != nil {
				return err
			}
			defer app.Close()

			tripID := args[0]
			trip, err := app.Client.GetTrip(context.Background(), tripID)
			if err != nil {
				// The session guard already ran for a structured 401; the
				// string parse covers errors that lost their type on the way.
				status := 0
				var apiErr *client.APIError
				if errors.As(err, &apiErr) {
					status = apiErr.Status
				} else {
					status = client.ParseHTTPStatus(err.Error())
				}
				switch status {
				case http.StatusUnauthorized:
					return errors.New("session expired, run 'triply login'")
				case http.StatusNotFound:
					return errors.New("Trip not found.")
				}
				return fmt.Errorf("failed to fetch trip: %w", err)
			}

			renderTrip(cmd.OutOrStdout(), trip, timeline)
			fmt.Fprintf(cmd.OutOrStdout(), "\nShare link: %s/trip/%s\n", app.Cfg.AppBase, tripID)
			return nil
		},
	}

	cmd.Flags().BoolVar(&timeline, "timeline", false, "Render one merged timeline instead of day sections")
	return cmd
}
