package validation

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/triply/triply-go/internal/models"
)

var (
	// Validate is a shared validator instance
	Validate *validator.Validate
)

func init() {
	Validate = validator.New()

	// Register custom validators for the trip request enums. Registration
	// only fails for empty tag names, so a failure here is a programming
	// error.
	if err := Validate.RegisterValidation("travel_preference", validateTravelPreference); err != nil {
		panic(fmt.Sprintf("failed to register travel_preference validator: %v", err))
	}
	if err := Validate.RegisterValidation("travel_theme", validateTravelTheme); err != nil {
		panic(fmt.Sprintf("failed to register travel_theme validator: %v", err))
	}
	if err := Validate.RegisterValidation("local_travel", validateLocalTravel); err != nil {
		panic(fmt.Sprintf("failed to register local_travel validator: %v", err))
	}
	if err := Validate.RegisterValidation("trip_date", validateTripDate); err != nil {
		panic(fmt.Sprintf("failed to register trip_date validator: %v", err))
	}
}

// validateTravelPreference validates that a string is a valid TravelPreference enum value
func validateTravelPreference(fl validator.FieldLevel) bool {
	switch models.TravelPreference(fl.Field().String()) {
	case models.PreferenceCompact, models.PreferenceRelaxed, models.PreferenceHybrid:
		return true
	default:
		return false
	}
}

// validateTravelTheme validates that a string is a valid TravelTheme enum value
func validateTravelTheme(fl validator.FieldLevel) bool {
	switch models.TravelTheme(fl.Field().String()) {
	case models.ThemeLeisure, models.ThemeCulture, models.ThemeNature,
		models.ThemeAdventure, models.ThemeBusiness, models.ThemeShopping:
		return true
	default:
		return false
	}
}

// validateLocalTravel validates that a string is a valid LocalTravel enum value
func validateLocalTravel(fl validator.FieldLevel) bool {
	switch models.LocalTravel(fl.Field().String()) {
	case models.LocalSelfDriving, models.LocalPublic, models.LocalTaxi:
		return true
	default:
		return false
	}
}

// validateTripDate accepts calendar dates like "2026-01-02".
func validateTripDate(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}

// TripRequest validates an outgoing trip request before it is posted.
func TripRequest(req *models.TripRequest) error {
	if err := Validate.Struct(req); err != nil {
		return fmt.Errorf("invalid trip request: %w", err)
	}
	return nil
}
