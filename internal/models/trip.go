package models

// Category classifies a schedule item. Unknown input values collapse to
// CategoryOther during normalization.
type Category string

const (
	CategoryFood      Category = "Food"
	CategoryLandmark  Category = "Landmark"
	CategoryTransport Category = "Transport"
	CategoryHotel     Category = "Hotel"
	CategoryNature    Category = "Nature"
	CategoryShopping  Category = "Shopping"
	CategoryActivity  Category = "Activity"
	CategoryRest      Category = "Rest"
	CategoryOther     Category = "Other"
)

// TransportMode is how the traveller reaches a schedule item. Unknown input
// values collapse to TransportNone during normalization.
type TransportMode string

const (
	TransportNone     TransportMode = "None"
	TransportWalk     TransportMode = "Walk"
	TransportBus      TransportMode = "Bus"
	TransportTaxi     TransportMode = "Taxi"
	TransportTrain    TransportMode = "Train"
	TransportCar      TransportMode = "Car"
	TransportFerry    TransportMode = "Ferry"
	TransportCableCar TransportMode = "CableCar"
	TransportFlight   TransportMode = "Flight"
)

// Place is where a schedule item happens. Name is always non-empty after
// normalization; the remaining fields may be nil.
type Place struct {
	Name     string   `json:"name"`
	Area     *string  `json:"area"`
	Address  *string  `json:"address"`
	Lat      *float64 `json:"lat"`
	Lng      *float64 `json:"lng"`
	MapQuery *string  `json:"mapQuery"`
}

// ScheduleItem is a single entry in a day's schedule.
type ScheduleItem struct {
	Time            string        `json:"time"`
	Title           string        `json:"title"`
	Transfer        string        `json:"transfer"`
	DurationMinutes int           `json:"durationMinutes"`
	Category        Category      `json:"category"`
	TransportMode   TransportMode `json:"transportMode"`
	Place           Place         `json:"place"`
	Parking         *string       `json:"parking"`
	Notes           *string       `json:"notes"`
}

// DayPlan is one day of an itinerary. Schedule keeps the intra-day order the
// server sent; the normalizer never re-sorts it.
type DayPlan struct {
	Day      int            `json:"day"`
	Date     string         `json:"date"`
	Summary  *string        `json:"summary"`
	Schedule []ScheduleItem `json:"schedule"`
}

// Trip is the canonical itinerary model every payload shape normalizes into.
type Trip struct {
	Advice    string    `json:"advice"`
	Itinerary []DayPlan `json:"itinerary"`
}

// TripSummary is one record of the trip listing endpoint. Records without an
// id are dropped before they ever become a TripSummary.
type TripSummary struct {
	ID          string `json:"id"`
	Destination string `json:"destination"`
	DepartDate  string `json:"departDate"`
	ReturnDate  string `json:"returnDate"`
	CreatedAt   string `json:"createdAt"`
}
