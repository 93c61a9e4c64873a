package itinerary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/FACorreiaa/go-itinerary-planner/internal/types"
)

var errBadShape = errors.New("model reply does not match the itinerary shape")

// cleanJSONResponse strips markdown code fences and any prose around the
// outermost JSON object.
func cleanJSONResponse(response string) string {
	response = strings.TrimSpace(response)

	if strings.HasPrefix(response, "```json") {
		response = strings.TrimPrefix(response, "```json")
	} else if strings.HasPrefix(response, "```") {
		response = strings.TrimPrefix(response, "```")
	}
	response = strings.TrimSuffix(response, "```")
	response = strings.TrimSpace(response)

	firstBrace := strings.Index(response, "{")
	if firstBrace == -1 {
		return response
	}
	lastBrace := strings.LastIndex(response, "}")
	if lastBrace <= firstBrace {
		return response
	}
	return strings.TrimSpace(response[firstBrace : lastBrace+1])
}

// parseGeneratedItinerary turns a model reply into a normalized itinerary for
// req. Replies with fewer days than requested, or an empty day, are rejected
// so the caller can fall back.
func parseGeneratedItinerary(reply string, req types.GenerateItineraryRequest) (types.Itinerary, error) {
	var doc types.Document
	if err := json.Unmarshal([]byte(cleanJSONResponse(reply)), &doc); err != nil {
		return types.Itinerary{}, fmt.Errorf("failed to parse model reply: %w", err)
	}
	if doc == nil {
		return types.Itinerary{}, fmt.Errorf("%w: reply is not an object", errBadShape)
	}

	it := Normalize(doc)
	// zero or negative day counts ask for an empty plan
	want := max(req.NumberOfDays, 0)
	if len(it.DayPlans) < want {
		return types.Itinerary{}, fmt.Errorf("%w: got %d days, want %d", errBadShape, len(it.DayPlans), want)
	}
	it.DayPlans = it.DayPlans[:want]
	for i, d := range it.DayPlans {
		if d.Day != i+1 {
			return types.Itinerary{}, fmt.Errorf("%w: day %d at position %d", errBadShape, d.Day, i+1)
		}
		if len(d.Activities) == 0 {
			return types.Itinerary{}, fmt.Errorf("%w: day %d has no activities", errBadShape, d.Day)
		}
	}

	it.Source = req.Source
	it.Destination = req.Destination
	it.NumberOfDays = req.NumberOfDays
	it.Notes = req.Notes
	if strings.TrimSpace(it.TripName) == "" {
		it.TripName = fmt.Sprintf("Trip from %s to %s", req.Source, req.Destination)
	}
	it.FallbackUsed = false
	it.ID, it.OwnerID, it.CreatedAt, it.UpdatedAt = "", "", nil, nil
	return it, nil
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
