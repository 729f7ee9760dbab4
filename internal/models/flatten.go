package models

import (
	"sort"
	"time"
)

// flatTimeLayout matches itinerary times like "2026-01-02 08:00 AM".
const flatTimeLayout = "2006-01-02 03:04 PM"

// FlatEvent is a schedule item lifted out of its day for timeline rendering.
type FlatEvent struct {
	TS   time.Time
	Date string
	ScheduleItem
}

// FlattenItinerary merges every day's schedule into one list ordered by
// parsed timestamp. Items whose time cannot be parsed keep a zero timestamp
// and sort first. The per-day source order is preserved for equal keys.
func FlattenItinerary(trip *Trip) []FlatEvent {
	var events []FlatEvent
	for _, day := range trip.Itinerary {
		for _, item := range day.Schedule {
			ts, err := time.Parse(flatTimeLayout, day.Date+" "+item.Time)
			if err != nil {
				ts = time.Time{}
			}
			events = append(events, FlatEvent{TS: ts, Date: day.Date, ScheduleItem: item})
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].TS.Before(events[j].TS)
	})
	return events
}

// DestinationGuess derives a display title from the first schedule item's
// place, falling back to "Trip" when the itinerary is empty.
func DestinationGuess(trip *Trip) string {
	if trip == nil || len(trip.Itinerary) == 0 || len(trip.Itinerary[0].Schedule) == 0 {
		return "Trip"
	}
	place := trip.Itinerary[0].Schedule[0].Place
	if place.MapQuery != nil && *place.MapQuery != "" {
		return *place.MapQuery
	}
	if place.Name != "" {
		return place.Name
	}
	return "Trip"
}
