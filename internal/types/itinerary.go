package types

import (
	"time"
)

// Document is the loose JSON shape exchanged with the document stores.
// Stored documents may follow any of the historical itinerary layouts.
type Document map[string]any

// StoredDocument is a Document plus the fields assigned by the store.
type StoredDocument struct {
	ID        string
	OwnerID   string
	CreatedAt time.Time
	UpdatedAt time.Time
	Body      Document
}

// Itinerary is the canonical travel plan.
type Itinerary struct {
	ID              string          `json:"id,omitempty"`
	OwnerID         string          `json:"ownerId,omitempty"`
	TripName        string          `json:"tripName" validate:"required"`
	Source          string          `json:"source" validate:"required"`
	Destination     string          `json:"destination" validate:"required"`
	NumberOfDays    int             `json:"numberOfDays" validate:"min=1"`
	Notes           string          `json:"notes"`
	DayPlans        []DayPlan       `json:"dayPlans"`
	Recommendations Recommendations `json:"recommendations"`
	EstimatedBudget string          `json:"estimatedBudget"`
	CreatedAt       *time.Time      `json:"createdAt,omitempty"`
	UpdatedAt       *time.Time      `json:"updatedAt,omitempty"`
	FallbackUsed    bool            `json:"fallbackUsed"`
}

// DayPlan is one day of an itinerary. Day is 1-based.
type DayPlan struct {
	Day            int        `json:"day"`
	Date           string     `json:"date,omitempty"`
	Activities     []Activity `json:"activities"`
	Accommodation  string     `json:"accommodation"`
	Transportation string     `json:"transportation"`
	Notes          string     `json:"notes,omitempty"`
}

// Activity is a single entry of a day. Time is a display label, not a timestamp.
type Activity struct {
	Time        string `json:"time"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Notes       string `json:"notes,omitempty"`
}

// Recommendations holds the display labels of every recommendation category.
type Recommendations struct {
	Dining         []string `json:"dining"`
	Attractions    []string `json:"attractions"`
	Shopping       []string `json:"shopping"`
	Transportation []string `json:"transportation"`
}

// VisibleDays returns the day plans a reader should page through. A partially
// generated plan may disagree with NumberOfDays; the smaller of the two wins.
func (it Itinerary) VisibleDays() []DayPlan {
	n := len(it.DayPlans)
	if it.NumberOfDays >= 0 && it.NumberOfDays < n {
		n = it.NumberOfDays
	}
	return it.DayPlans[:n]
}

// Clone returns a deep copy so memoized values cannot be mutated by callers.
func (it Itinerary) Clone() Itinerary {
	out := it
	if it.DayPlans != nil {
		out.DayPlans = make([]DayPlan, len(it.DayPlans))
		for i, d := range it.DayPlans {
			out.DayPlans[i] = d
			if d.Activities != nil {
				out.DayPlans[i].Activities = append([]Activity(nil), d.Activities...)
			}
		}
	}
	out.Recommendations = Recommendations{
		Dining:         cloneStrings(it.Recommendations.Dining),
		Attractions:    cloneStrings(it.Recommendations.Attractions),
		Shopping:       cloneStrings(it.Recommendations.Shopping),
		Transportation: cloneStrings(it.Recommendations.Transportation),
	}
	if it.CreatedAt != nil {
		t := *it.CreatedAt
		out.CreatedAt = &t
	}
	if it.UpdatedAt != nil {
		t := *it.UpdatedAt
		out.UpdatedAt = &t
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}

// GenerateItineraryRequest carries the inputs of an AI generation.
type GenerateItineraryRequest struct {
	Source       string `json:"source" validate:"required"`
	Destination  string `json:"destination" validate:"required"`
	NumberOfDays int    `json:"numberOfDays" validate:"required,min=1,max=30"`
	Notes        string `json:"notes,omitempty" validate:"max=2000"`
}
