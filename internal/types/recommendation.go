package types

import (
	"fmt"
	"strings"
)

// RecommendationCategory names one of the four recommendation lists.
type RecommendationCategory string

const (
	CategoryDining         RecommendationCategory = "dining"
	CategoryAttractions    RecommendationCategory = "attractions"
	CategoryShopping       RecommendationCategory = "shopping"
	CategoryTransportation RecommendationCategory = "transportation"
)

// RecommendationCategories lists the categories in their display order.
var RecommendationCategories = []RecommendationCategory{
	CategoryDining,
	CategoryAttractions,
	CategoryShopping,
	CategoryTransportation,
}

// Placeholder is the label shown when an element carries no usable text.
func (c RecommendationCategory) Placeholder() string {
	switch c {
	case CategoryDining:
		return "Restaurant recommendation"
	case CategoryAttractions:
		return "Attraction recommendation"
	case CategoryShopping:
		return "Shopping recommendation"
	case CategoryTransportation:
		return "Transportation option"
	default:
		return "Recommendation"
	}
}

// RecommendationKind tags the shape a stored recommendation element had.
type RecommendationKind int

const (
	RecommendationUnknown RecommendationKind = iota
	RecommendationPlain                      // a bare string
	RecommendationNamed                      // an object with a name
	RecommendationTyped                      // an object with only a type
)

// RecommendationItem is a recommendation element in one of its stored shapes.
type RecommendationItem struct {
	Kind RecommendationKind
	Text string
}

// ParseRecommendationItem classifies a decoded JSON value.
func ParseRecommendationItem(v any) RecommendationItem {
	switch val := v.(type) {
	case string:
		return RecommendationItem{Kind: RecommendationPlain, Text: val}
	case map[string]any:
		if name := nonEmptyString(val["name"]); name != "" {
			return RecommendationItem{Kind: RecommendationNamed, Text: name}
		}
		if typ := nonEmptyString(val["type"]); typ != "" {
			return RecommendationItem{Kind: RecommendationTyped, Text: typ}
		}
	case Document:
		return ParseRecommendationItem(map[string]any(val))
	}
	return RecommendationItem{Kind: RecommendationUnknown}
}

// Label reduces the element to its display string for the given category.
// A type label is only meaningful for transportation.
func (r RecommendationItem) Label(category RecommendationCategory) string {
	switch r.Kind {
	case RecommendationPlain, RecommendationNamed:
		return r.Text
	case RecommendationTyped:
		if category == CategoryTransportation {
			return r.Text
		}
	}
	return category.Placeholder()
}

func nonEmptyString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case map[string]any, []any:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(val))
	}
}
