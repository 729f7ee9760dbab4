package itinerary

import (
	"testing"

	"github.com/triply/triply-go/internal/models"
)

func TestCoerceCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  models.Category
	}{
		{name: "canonical", input: "Food", want: models.CategoryFood},
		{name: "upper case", input: "FOOD", want: models.CategoryFood},
		{name: "lower case", input: "landmark", want: models.CategoryLandmark},
		{name: "surrounding whitespace", input: "  Hotel  ", want: models.CategoryHotel},
		{name: "unknown token", input: "bogus", want: models.CategoryOther},
		{name: "empty string", input: "", want: models.CategoryOther},
		{name: "mixed case", input: "sHoPpInG", want: models.CategoryShopping},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := CoerceCategory(tt.input); got != tt.want {
				t.Errorf("CoerceCategory(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCoerceTransportMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  models.TransportMode
	}{
		{name: "canonical", input: "Bus", want: models.TransportBus},
		{name: "upper case", input: "TRAIN", want: models.TransportTrain},
		{name: "snake case cable car", input: "cable_car", want: models.TransportCableCar},
		{name: "spaced cable car", input: "cable car", want: models.TransportCableCar},
		{name: "plane alias", input: "Plane", want: models.TransportFlight},
		{name: "unknown token", input: "teleport", want: models.TransportNone},
		{name: "empty string", input: "", want: models.TransportNone},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := CoerceTransportMode(tt.input); got != tt.want {
				t.Errorf("CoerceTransportMode(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestGuessMinutes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  int
	}{
		{input: "2h", want: 120},
		{input: "1.5h", want: 90},
		{input: "45m", want: 45},
		{input: "", want: 0},
		{input: "garbage", want: 0},
		{input: "2H", want: 120},
		{input: "2 h", want: 120},
		{input: "30 min", want: 30},
		// Hours win even when a minutes token is also present.
		{input: "1h 30m", want: 60},
		{input: "0.25h", want: 15},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := GuessMinutes(tt.input); got != tt.want {
				t.Errorf("GuessMinutes(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}
