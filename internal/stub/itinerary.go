package stub

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// cannedItinerary builds a fixed-shape itinerary in the server naming
// convention (PascalCase keys), with the same quirks real backends have
// shown: shouty enum values, legacy free-text durations, and the occasional
// item without a place.
func cannedItinerary(destination, departDate, returnDate string) map[string]any {
	days := tripDays(departDate, returnDate)

	itinerary := make([]any, 0, len(days))
	for i, date := range days {
		itinerary = append(itinerary, map[string]any{
			"Day":      i + 1,
			"Date":     date,
			"Summary":  fmt.Sprintf("Day %d in %s", i+1, destination),
			"Schedule": cannedSchedule(destination),
		})
	}

	return map[string]any{
		"Advice":    fmt.Sprintf("Enjoy %s! Book popular spots a day ahead and keep an eye on the weather.", destination),
		"Itinerary": itinerary,
	}
}

func cannedSchedule(destination string) []any {
	return []any{
		map[string]any{
			"Time":          "08:30 AM",
			"Title":         "Breakfast near the waterfront",
			"Transfer":      "Walk",
			"Duration":      "1h",
			"Category":      "FOOD",
			"TransportMode": "WALK",
			"Place": map[string]any{
				"Name":     "Waterfront Cafe",
				"Area":     "City Centre",
				"MapQuery": destination + " waterfront cafe",
			},
		},
		map[string]any{
			"Time":            "10:00 AM",
			"Title":           destination + " Museum",
			"Transfer":        "Bus",
			"DurationMinutes": 120,
			"Category":        "LANDMARK",
			"TransportMode":   "BUS",
			"Place": map[string]any{
				"Name":     destination + " Museum",
				"MapQuery": destination + " museum",
			},
		},
		// No place on purpose: the client substitutes the title.
		map[string]any{
			"Time":          "01:00 PM",
			"Title":         "City Walk",
			"Transfer":      "",
			"Duration":      "1.5h",
			"Category":      "ACTIVITY",
			"TransportMode": "NONE",
		},
		map[string]any{
			"Time":            "07:00 PM",
			"Title":           "Dinner and rest",
			"Transfer":        "Taxi",
			"DurationMinutes": 90,
			"Category":        "food",
			"TransportMode":   "taxi",
			"Place": map[string]any{
				"Name": "Old Quarter Bistro",
			},
			"Notes": "Reservation recommended",
		},
	}
}

// tripDays expands the date range into per-day dates, capped at five days.
// Unparseable dates fall back to a two-day trip starting today.
func tripDays(departDate, returnDate string) []string {
	depart, err := time.Parse(dateLayout, departDate)
	if err != nil {
		depart = time.Now()
	}
	ret, err := time.Parse(dateLayout, returnDate)
	if err != nil {
		ret = depart.AddDate(0, 0, 1)
	}

	count := int(ret.Sub(depart).Hours()/24) + 1
	if count < 1 {
		count = 1
	}
	if count > 5 {
		count = 5
	}

	days := make([]string, count)
	for i := range days {
		days[i] = depart.AddDate(0, 0, i).Format(dateLayout)
	}
	return days
}
