package commands

import (
	"fmt"
	"io"

	"github.com/triply/triply-go/internal/models"
)

// renderTrip prints a trip either as day sections or, with timeline set, as
// one merged list ordered by time.
func renderTrip(w io.Writer, trip *models.Trip, timeline bool) {
	fmt.Fprintf(w, "%s\n", models.DestinationGuess(trip))
	if trip.Advice != "" {
		fmt.Fprintf(w, "%s\n", trip.Advice)
	}

	if timeline {
		for _, event := range models.FlattenItinerary(trip) {
			fmt.Fprintf(w, "  %s %s  %s", event.Date, event.Time, event.Title)
			renderItemDetail(w, event.ScheduleItem)
		}
		return
	}

	for _, day := range trip.Itinerary {
		fmt.Fprintf(w, "\nDay %d (%s)\n", day.Day, day.Date)
		if day.Summary != nil && *day.Summary != "" {
			fmt.Fprintf(w, "  %s\n", *day.Summary)
		}
		for _, item := range day.Schedule {
			fmt.Fprintf(w, "  %s  %s", item.Time, item.Title)
			renderItemDetail(w, item)
		}
	}
}

func renderItemDetail(w io.Writer, item models.ScheduleItem) {
	fmt.Fprintf(w, " [%s]", item.Category)
	if item.DurationMinutes > 0 {
		fmt.Fprintf(w, " (%d min)", item.DurationMinutes)
	}
	fmt.Fprintln(w)

	if item.Place.Name != "" {
		fmt.Fprintf(w, "      at %s", item.Place.Name)
		if item.Place.Area != nil && *item.Place.Area != "" {
			fmt.Fprintf(w, ", %s", *item.Place.Area)
		}
		fmt.Fprintln(w)
	}
	if item.TransportMode != models.TransportNone {
		fmt.Fprintf(w, "      by %s\n", item.TransportMode)
	}
	if item.Notes != nil && *item.Notes != "" {
		fmt.Fprintf(w, "      note: %s\n", *item.Notes)
	}
}
