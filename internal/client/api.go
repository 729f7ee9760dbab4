package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/triply/triply-go/internal/itinerary"
	"github.com/triply/triply-go/internal/models"
	"github.com/triply/triply-go/internal/validation"
)

// CreateTrip validates the request form values and posts them to the advisor.
// The server is authoritative for the trip id; a response without one is
// fatal. When the response already carries a full itinerary and a scratch
// cache is attached, the normalized trip is cached for first display.
func (c *Client) CreateTrip(ctx context.Context, req *models.TripRequest) (*models.CreateTripResult, error) {
	if err := validation.TripRequest(req); err != nil {
		return nil, err
	}

	body, err := c.Do(ctx, http.MethodPost, "/api/Advisor", req, nil)
	if err != nil {
		return nil, err
	}

	var resp map[string]any
	_ = json.Unmarshal(body, &resp)

	tripID, _ := resp["tripId"].(string)
	if tripID == "" {
		return nil, errors.New("Trip created but tripId missing")
	}

	result := &models.CreateTripResult{TripID: tripID}
	if shareURL, ok := resp["shareUrl"].(string); ok {
		result.ShareURL = shareURL
	}

	if c.scratch != nil {
		if trip, nerr := itinerary.NormalizeValue(resp); nerr == nil && len(trip.Itinerary) > 0 {
			result.CacheKey = c.scratch.Put(trip)
		}
	}
	return result, nil
}

// GetTrip fetches a trip by id and normalizes the payload into the canonical
// model, whichever naming convention the backend answered in.
func (c *Client) GetTrip(ctx context.Context, tripID string) (*models.Trip, error) {
	body, err := c.Do(ctx, http.MethodGet, "/api/Trips/"+url.PathEscape(tripID), nil, nil)
	if err != nil {
		return nil, err
	}
	return itinerary.Normalize(body)
}

// ListTrips returns up to take trip summaries, newest first per the server's
// ordering. take is clamped to [1,100]; records without an id are dropped.
func (c *Client) ListTrips(ctx context.Context, take int) ([]models.TripSummary, error) {
	if take < 1 {
		take = 1
	}
	if take > 100 {
		take = 100
	}

	query := url.Values{"take": []string{strconv.Itoa(take)}}
	body, err := c.Do(ctx, http.MethodGet, "/api/Trips", nil, query)
	if err != nil {
		return nil, err
	}

	var raw []any
	if err := json.Unmarshal(body, &raw); err != nil {
		return []models.TripSummary{}, nil
	}

	summaries := make([]models.TripSummary, 0, len(raw))
	for _, entry := range raw {
		rec, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		id, _ := rec["id"].(string)
		if id == "" {
			continue
		}
		summaries = append(summaries, models.TripSummary{
			ID:          id,
			Destination: stringField(rec, "destination"),
			DepartDate:  stringField(rec, "departDate"),
			ReturnDate:  stringField(rec, "returnDate"),
			CreatedAt:   stringField(rec, "createdAt"),
		})
	}
	return summaries, nil
}

// CachedTrip returns a trip stashed by the create-response fast path.
func (c *Client) CachedTrip(key string) (*models.Trip, bool) {
	if c.scratch == nil || key == "" {
		return nil, false
	}
	return c.scratch.Get(key)
}

func stringField(rec map[string]any, key string) string {
	s, _ := rec[key].(string)
	return s
}
