package itinerary

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/FACorreiaa/go-itinerary-planner/internal/types"
)

// Normalize reconciles any stored or generated itinerary shape into the
// canonical form. It performs no I/O and never fails: unusable values
// degrade to empty ones.
func Normalize(doc types.Document) types.Itinerary {
	it := types.Itinerary{
		ID:              textField(doc["id"]),
		OwnerID:         textField(doc["ownerId"]),
		TripName:        textField(doc["tripName"]),
		Source:          textField(doc["source"]),
		Destination:     textField(doc["destination"]),
		NumberOfDays:    intField(doc["numberOfDays"]),
		Notes:           textField(doc["notes"]),
		EstimatedBudget: textField(doc["estimatedBudget"]),
		FallbackUsed:    boolField(doc["fallbackUsed"]),
		CreatedAt:       timeField(doc["createdAt"]),
		UpdatedAt:       timeField(doc["updatedAt"]),
	}

	rawDays := asSlice(doc["dayPlans"])
	it.DayPlans = make([]types.DayPlan, 0, len(rawDays))
	for i, raw := range rawDays {
		it.DayPlans = append(it.DayPlans, normalizeDayPlan(raw, i))
	}
	sort.SliceStable(it.DayPlans, func(i, j int) bool {
		return it.DayPlans[i].Day < it.DayPlans[j].Day
	})
	if it.NumberOfDays <= 0 {
		it.NumberOfDays = len(it.DayPlans)
	}

	it.Recommendations = normalizeRecommendations(doc)
	return it
}

// NormalizeItinerary re-runs normalization over an already typed itinerary,
// keeping the store-assigned fields.
func NormalizeItinerary(it types.Itinerary) types.Itinerary {
	out := Normalize(ToDocument(it))
	out.ID = it.ID
	out.OwnerID = it.OwnerID
	out.CreatedAt = it.CreatedAt
	out.UpdatedAt = it.UpdatedAt
	return out
}

// ToDocument converts an itinerary body into the store shape. Store-assigned
// fields are left out and recommendations are always nested.
func ToDocument(it types.Itinerary) types.Document {
	days := make([]any, 0, len(it.DayPlans))
	for _, d := range it.DayPlans {
		acts := make([]any, 0, len(d.Activities))
		for _, a := range d.Activities {
			acts = append(acts, map[string]any{
				"time":        a.Time,
				"description": a.Description,
				"location":    a.Location,
				"notes":       a.Notes,
			})
		}
		days = append(days, map[string]any{
			"day":            d.Day,
			"date":           d.Date,
			"activities":     acts,
			"accommodation":  d.Accommodation,
			"transportation": d.Transportation,
			"notes":          d.Notes,
		})
	}

	return types.Document{
		"tripName":     it.TripName,
		"source":       it.Source,
		"destination":  it.Destination,
		"numberOfDays": it.NumberOfDays,
		"notes":        it.Notes,
		"dayPlans":     days,
		"recommendations": map[string]any{
			string(types.CategoryDining):         stringsToAny(it.Recommendations.Dining),
			string(types.CategoryAttractions):    stringsToAny(it.Recommendations.Attractions),
			string(types.CategoryShopping):       stringsToAny(it.Recommendations.Shopping),
			string(types.CategoryTransportation): stringsToAny(it.Recommendations.Transportation),
		},
		"estimatedBudget": it.EstimatedBudget,
		"fallbackUsed":    it.FallbackUsed,
	}
}

func normalizeDayPlan(raw any, index int) types.DayPlan {
	m, ok := asMap(raw)
	if !ok {
		return types.DayPlan{Day: index + 1, Activities: []types.Activity{}}
	}

	day := intField(m["day"])
	if day <= 0 {
		day = index + 1
	}

	rawActs := asSlice(m["activities"])
	acts := make([]types.Activity, 0, len(rawActs))
	for _, ra := range rawActs {
		acts = append(acts, normalizeActivity(ra))
	}

	return types.DayPlan{
		Day:            day,
		Date:           textField(m["date"]),
		Activities:     acts,
		Accommodation:  textField(m["accommodation"]),
		Transportation: textField(m["transportation"]),
		Notes:          textField(m["notes"]),
	}
}

// normalizeActivity prefers description over the legacy name key.
func normalizeActivity(raw any) types.Activity {
	if s, ok := raw.(string); ok {
		return types.Activity{Description: s}
	}
	m, ok := asMap(raw)
	if !ok {
		return types.Activity{}
	}
	desc := textField(m["description"])
	if desc == "" {
		desc = textField(m["name"])
	}
	return types.Activity{
		Time:        textField(m["time"]),
		Description: desc,
		Location:    textField(m["location"]),
		Notes:       textField(m["notes"]),
	}
}

func normalizeRecommendations(doc types.Document) types.Recommendations {
	src, ok := asMap(doc["recommendations"])
	if !ok {
		// flattened legacy layout
		src = map[string]any(doc)
	}
	return types.Recommendations{
		Dining:         recommendationLabels(src, types.CategoryDining),
		Attractions:    recommendationLabels(src, types.CategoryAttractions),
		Shopping:       recommendationLabels(src, types.CategoryShopping),
		Transportation: recommendationLabels(src, types.CategoryTransportation),
	}
}

func recommendationLabels(src map[string]any, category types.RecommendationCategory) []string {
	raw := asSlice(src[string(category)])
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		out = append(out, types.ParseRecommendationItem(v).Label(category))
	}
	return out
}

func asSlice(v any) []any {
	switch val := v.(type) {
	case []any:
		return val
	case []string:
		return stringsToAny(val)
	case []map[string]any:
		out := make([]any, len(val))
		for i := range val {
			out[i] = val[i]
		}
		return out
	}
	return nil
}

func asMap(v any) (map[string]any, bool) {
	switch val := v.(type) {
	case map[string]any:
		return val, true
	case types.Document:
		return map[string]any(val), true
	}
	return nil, false
}

func stringsToAny(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}

// textField renders a scalar as display text. Objects contribute their name.
func textField(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case map[string]any:
		if name, ok := val["name"].(string); ok {
			return name
		}
		if desc, ok := val["description"].(string); ok {
			return desc
		}
		return ""
	case []any:
		parts := make([]string, 0, len(val))
		for _, p := range val {
			if s := textField(p); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

func intField(v any) int {
	switch val := v.(type) {
	case int:
		return val
	case int32:
		return int(val)
	case int64:
		return int(val)
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return 0
		}
		return int(val)
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return int(n)
		}
		if f, err := val.Float64(); err == nil {
			return int(f)
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return n
		}
	}
	return 0
}

func boolField(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		b, _ := strconv.ParseBool(val)
		return b
	}
	return false
}

func timeField(v any) *time.Time {
	switch val := v.(type) {
	case time.Time:
		if val.IsZero() {
			return nil
		}
		t := val
		return &t
	case *time.Time:
		return val
	case string:
		t, err := time.Parse(time.RFC3339Nano, val)
		if err != nil {
			return nil
		}
		return &t
	}
	return nil
}
