package itinerary

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/triply/triply-go/internal/models"
)

// Backends have shipped these enums with drifting capitalization and naming.
// Lookup is over trimmed, lower-cased input; anything outside the table
// resolves to the default instead of failing.

var categoryTable = map[string]models.Category{
	"food":      models.CategoryFood,
	"landmark":  models.CategoryLandmark,
	"transport": models.CategoryTransport,
	"hotel":     models.CategoryHotel,
	"nature":    models.CategoryNature,
	"shopping":  models.CategoryShopping,
	"activity":  models.CategoryActivity,
	"rest":      models.CategoryRest,
	"other":     models.CategoryOther,
}

var transportModeTable = map[string]models.TransportMode{
	"none":      models.TransportNone,
	"walk":      models.TransportWalk,
	"bus":       models.TransportBus,
	"taxi":      models.TransportTaxi,
	"train":     models.TransportTrain,
	"car":       models.TransportCar,
	"ferry":     models.TransportFerry,
	"cablecar":  models.TransportCableCar,
	"cable_car": models.TransportCableCar,
	"cable car": models.TransportCableCar,
	"flight":    models.TransportFlight,
	"plane":     models.TransportFlight,
}

// CoerceCategory maps any raw string onto the closed Category set.
func CoerceCategory(raw string) models.Category {
	if c, ok := categoryTable[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return c
	}
	return models.CategoryOther
}

// CoerceTransportMode maps any raw string onto the closed TransportMode set.
func CoerceTransportMode(raw string) models.TransportMode {
	if m, ok := transportModeTable[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return m
	}
	return models.TransportNone
}

var (
	hoursPattern   = regexp.MustCompile(`(\d+(\.\d+)?)\s*h`)
	minutesPattern = regexp.MustCompile(`(\d+)\s*m`)
)

// GuessMinutes parses free-text durations like "2h", "1.5h" or "45m". Hours
// win over minutes; anything unrecognized is 0.
func GuessMinutes(s string) int {
	t := strings.ToLower(s)
	if m := hoursPattern.FindStringSubmatch(t); m != nil {
		hours, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			return int(math.Round(hours * 60))
		}
	}
	if m := minutesPattern.FindStringSubmatch(t); m != nil {
		minutes, err := strconv.Atoi(m[1])
		if err == nil {
			return minutes
		}
	}
	return 0
}
