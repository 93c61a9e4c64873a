package itinerary

import (
	"fmt"

	"github.com/FACorreiaa/go-itinerary-planner/internal/types"
)

const itineraryJSONShape = `{
  "tripName": "string",
  "source": "string",
  "destination": "string",
  "numberOfDays": 1,
  "dayPlans": [
    {
      "day": 1,
      "activities": [
        {"time": "09:00 AM", "description": "string", "location": "string", "notes": "string"}
      ],
      "accommodation": "string",
      "transportation": "string",
      "notes": "string"
    }
  ],
  "recommendations": {
    "dining": ["string"],
    "attractions": ["string"],
    "shopping": ["string"],
    "transportation": ["string"]
  },
  "estimatedBudget": "string"
}`

func getItineraryPrompt(req types.GenerateItineraryRequest) string {
	notes := req.Notes
	if notes == "" {
		notes = "None"
	}
	return fmt.Sprintf(`
You are an expert travel planner. Create a %d-day travel itinerary for a trip from %s to %s.

Traveler notes and preferences: %s

Requirements:
- Return exactly %d entries in "dayPlans", numbered 1 to %d with no gaps.
- Every day must have at least 3 activities spread across the morning, afternoon and evening, each with a time label.
- Give each day an accommodation suggestion and how to get around that day.
- Include dining, attractions, shopping and transportation recommendations for %s.
- Give an overall budget estimate per person as a human readable string.

Respond with a single JSON object matching this structure exactly. No markdown, no commentary:
%s
`, req.NumberOfDays, req.Source, req.Destination, notes,
		req.NumberOfDays, req.NumberOfDays, req.Destination, itineraryJSONShape)
}
