// Package itinerary turns loosely shaped trip payloads into the canonical
// model. Different backend versions disagree on field naming: one emits
// PascalCase keys ("Itinerary", "Category"), another lowerCamel ("itinerary",
// "category"), and the two conventions can mix freely across nesting levels.
// Normalization reconciles the keys first, then coerces enums and durations,
// and only then validates the result.
package itinerary

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/triply/triply-go/internal/models"
)

// ValidationError reports the first field that could not be coerced into the
// canonical schema.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Normalize decodes a raw JSON payload and normalizes it into a Trip.
func Normalize(raw []byte) (*models.Trip, error) {
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, &ValidationError{Field: "$", Message: "payload is not valid JSON"}
	}
	return NormalizeValue(payload)
}

// NormalizeValue normalizes an already-decoded payload into a Trip.
func NormalizeValue(payload any) (*models.Trip, error) {
	root, ok := payload.(map[string]any)
	if !ok {
		return nil, &ValidationError{Field: "$", Message: "payload is not an object"}
	}

	trip := &models.Trip{
		Advice:    stringOr(pick(root, "Advice", "advice"), ""),
		Itinerary: []models.DayPlan{},
	}

	for i, rawDay := range arrayOr(pick(root, "Itinerary", "itinerary")) {
		path := fmt.Sprintf("itinerary[%d]", i)
		day, err := normalizeDay(rawDay, path)
		if err != nil {
			return nil, err
		}
		trip.Itinerary = append(trip.Itinerary, *day)
	}
	return trip, nil
}

func normalizeDay(raw any, path string) (*models.DayPlan, error) {
	rec, ok := raw.(map[string]any)
	if !ok {
		return nil, &ValidationError{Field: path, Message: "day is not an object"}
	}

	dayNum, ok := intFrom(pick(rec, "Day", "day"))
	if !ok {
		return nil, &ValidationError{Field: path + ".day", Message: "integer day number is required"}
	}
	date, ok := pick(rec, "Date", "date").(string)
	if !ok {
		return nil, &ValidationError{Field: path + ".date", Message: "date string is required"}
	}

	day := &models.DayPlan{
		Day:      dayNum,
		Date:     date,
		Summary:  stringPtr(pick(rec, "Summary", "summary")),
		Schedule: []models.ScheduleItem{},
	}

	for i, rawItem := range arrayOr(pick(rec, "Schedule", "schedule")) {
		item, err := normalizeItem(rawItem, fmt.Sprintf("%s.schedule[%d]", path, i))
		if err != nil {
			return nil, err
		}
		day.Schedule = append(day.Schedule, *item)
	}
	return day, nil
}

func normalizeItem(raw any, path string) (*models.ScheduleItem, error) {
	rec, ok := raw.(map[string]any)
	if !ok {
		return nil, &ValidationError{Field: path, Message: "schedule item is not an object"}
	}

	timeStr, ok := pick(rec, "Time", "time").(string)
	if !ok || timeStr == "" {
		return nil, &ValidationError{Field: path + ".time", Message: "non-empty time is required"}
	}
	title, ok := pick(rec, "Title", "title").(string)
	if !ok || title == "" {
		return nil, &ValidationError{Field: path + ".title", Message: "non-empty title is required"}
	}

	minutes, err := resolveDuration(rec, path)
	if err != nil {
		return nil, err
	}

	item := &models.ScheduleItem{
		Time:            timeStr,
		Title:           title,
		Transfer:        stringOr(pick(rec, "Transfer", "transfer"), ""),
		DurationMinutes: minutes,
		Category:        CoerceCategory(stringOr(pick(rec, "Category", "category"), "")),
		TransportMode:   CoerceTransportMode(stringOr(pick(rec, "TransportMode", "transportMode"), "")),
		Place:           normalizePlace(pick(rec, "Place", "place"), title),
		Parking:         stringPtr(pick(rec, "Parking", "parking")),
		Notes:           stringPtr(pick(rec, "Notes", "notes")),
	}
	return item, nil
}

// resolveDuration prefers a numeric durationMinutes over the legacy free-text
// duration field.
func resolveDuration(rec map[string]any, path string) (int, error) {
	if v := pick(rec, "DurationMinutes", "durationMinutes"); v != nil {
		if n, ok := v.(float64); ok {
			if n < 0 || n != math.Trunc(n) {
				return 0, &ValidationError{Field: path + ".durationMinutes", Message: "must be a non-negative integer"}
			}
			return int(n), nil
		}
	}
	if text, ok := pick(rec, "Duration", "duration").(string); ok {
		return GuessMinutes(text), nil
	}
	return 0, nil
}

// normalizePlace keeps a structured place only when it carries a usable name;
// otherwise the item's own title stands in as name and map query.
func normalizePlace(raw any, title string) models.Place {
	if rec, ok := raw.(map[string]any); ok {
		if name, ok := pick(rec, "Name", "name").(string); ok && strings.TrimSpace(name) != "" {
			return models.Place{
				Name:     name,
				Area:     stringPtr(pick(rec, "Area", "area")),
				Address:  stringPtr(pick(rec, "Address", "address")),
				Lat:      floatPtr(pick(rec, "Lat", "lat")),
				Lng:      floatPtr(pick(rec, "Lng", "lng")),
				MapQuery: stringPtr(pick(rec, "MapQuery", "mapQuery")),
			}
		}
	}
	query := title
	return models.Place{Name: title, MapQuery: &query}
}

// pick reconciles the two naming conventions for one field: the server
// convention key wins when present, else the client convention key.
func pick(rec map[string]any, serverKey, clientKey string) any {
	if v, ok := rec[serverKey]; ok && v != nil {
		return v
	}
	if v, ok := rec[clientKey]; ok && v != nil {
		return v
	}
	return nil
}

func stringOr(v any, fallback string) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fallback
}

func stringPtr(v any) *string {
	if s, ok := v.(string); ok {
		return &s
	}
	return nil
}

func floatPtr(v any) *float64 {
	if f, ok := v.(float64); ok {
		return &f
	}
	return nil
}

func intFrom(v any) (int, bool) {
	f, ok := v.(float64)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

func arrayOr(v any) []any {
	if arr, ok := v.([]any); ok {
		return arr
	}
	return nil
}
