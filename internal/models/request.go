package models

// TravelPreference is the pacing the user asked for.
type TravelPreference string

const (
	PreferenceCompact TravelPreference = "CompactTravel"
	PreferenceRelaxed TravelPreference = "RelaxedTravel"
	PreferenceHybrid  TravelPreference = "HybridTravel"
)

// TravelTheme is the overall flavour of the trip.
type TravelTheme string

const (
	ThemeLeisure   TravelTheme = "LeisureTravel"
	ThemeCulture   TravelTheme = "CultureTravel"
	ThemeNature    TravelTheme = "NatureTravel"
	ThemeAdventure TravelTheme = "AdventureTravel"
	ThemeBusiness  TravelTheme = "BusinessTravel"
	ThemeShopping  TravelTheme = "ShoppingTravel"
)

// LocalTravel is how the user moves around once at the destination.
type LocalTravel string

const (
	LocalSelfDriving LocalTravel = "SelfDriving"
	LocalPublic      LocalTravel = "PublicTransportation"
	LocalTaxi        LocalTravel = "Taxi"
)

// TripRequest is the form payload sent to the advisor endpoint. Field names
// are part of the wire contract and must not change.
type TripRequest struct {
	Destination string           `json:"destination" validate:"required"`
	DepartTime  string           `json:"departTime" validate:"required,trip_date"`
	ReturnTime  string           `json:"returnTime" validate:"required,trip_date"`
	Preference  TravelPreference `json:"preference" validate:"travel_preference"`
	Theme       TravelTheme      `json:"theme" validate:"travel_theme"`
	LocalTravel LocalTravel      `json:"localTravel" validate:"local_travel"`
}

// CreateTripResult is what trip creation hands back to the caller.
type CreateTripResult struct {
	TripID   string
	ShareURL string
	// CacheKey is set when the create response already carried a full
	// itinerary and it was cached for first display. Empty otherwise.
	CacheKey string
}
