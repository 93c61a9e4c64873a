package itinerary

import (
	"fmt"

	"github.com/FACorreiaa/go-itinerary-planner/internal/types"
)

const fallbackDailyBudgetUSD = 75

// FallbackItinerary builds the deterministic template used whenever AI
// generation is unavailable or unparseable.
func FallbackItinerary(req types.GenerateItineraryRequest) types.Itinerary {
	dest := req.Destination
	days := make([]types.DayPlan, 0, max(req.NumberOfDays, 0))
	for day := 1; day <= req.NumberOfDays; day++ {
		days = append(days, types.DayPlan{
			Day: day,
			Activities: []types.Activity{
				{Time: "08:00 AM", Description: fmt.Sprintf("Breakfast at a local cafe in %s", dest), Location: fmt.Sprintf("%s city center", dest)},
				{Time: "10:00 AM", Description: fmt.Sprintf("Visit a famous landmark in %s", dest), Location: dest},
				{Time: "01:00 PM", Description: "Lunch at a popular local restaurant", Location: fmt.Sprintf("%s downtown", dest)},
				{Time: "03:00 PM", Description: fmt.Sprintf("Browse the local markets of %s", dest), Location: fmt.Sprintf("%s market district", dest)},
				{Time: "07:00 PM", Description: "Dinner featuring regional cuisine", Location: dest},
				{Time: "09:00 PM", Description: fmt.Sprintf("Evening stroll and entertainment in %s", dest), Location: dest},
			},
			Accommodation:  fmt.Sprintf("Hotel in central %s", dest),
			Transportation: "Local taxis, ride-hailing or public transport",
		})
	}

	return types.Itinerary{
		TripName:     fmt.Sprintf("Trip from %s to %s", req.Source, dest),
		Source:       req.Source,
		Destination:  dest,
		NumberOfDays: req.NumberOfDays,
		Notes:        req.Notes,
		DayPlans:     days,
		Recommendations: types.Recommendations{
			Dining: []string{
				fmt.Sprintf("Traditional %s restaurant", dest),
				"Popular street food stalls",
				"Rooftop dining with a city view",
			},
			Attractions: []string{
				fmt.Sprintf("Historic old town of %s", dest),
				"City museum",
				"Main public park",
				"Central market",
				"Scenic viewpoint",
			},
			Shopping: []string{
				"Local handicraft market",
				"Main shopping mall",
			},
			Transportation: []string{
				"Ride-hailing apps",
				"Public buses",
				"Rental car",
			},
		},
		EstimatedBudget: fallbackBudget(req.NumberOfDays),
		FallbackUsed:    true,
	}
}

func fallbackBudget(days int) string {
	unit := "days"
	if days == 1 {
		unit = "day"
	}
	return fmt.Sprintf("Approximately $%d per person for %d %s (about $%d per day)",
		fallbackDailyBudgetUSD*days, days, unit, fallbackDailyBudgetUSD)
}
