package domain_models

import (
	"fmt"
	"strings"

	"wayfarer/pkg/utils"
)

// Category is the closed set of experience kinds. The zero value marks an
// uncategorized map point (a hotel, a meeting spot).
type Category string

const (
	CategoryNone       Category = ""
	CategoryActivity   Category = "activity"
	CategoryScript     Category = "script"
	CategoryService    Category = "service"
	CategoryDining     Category = "dining"
	CategoryAttraction Category = "attraction"

	// CategoryItinerary selects the assistant plan instead of a catalog search.
	// No ExperienceItem ever carries it.
	CategoryItinerary Category = "itinerary"
)

// CatalogCategories lists the item categories in display order.
var CatalogCategories = []Category{
	CategoryActivity,
	CategoryScript,
	CategoryService,
	CategoryDining,
	CategoryAttraction,
}

// ParseCategory accepts the five item categories and "itinerary".
func ParseCategory(raw string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	switch c {
	case CategoryActivity, CategoryScript, CategoryService, CategoryDining, CategoryAttraction, CategoryItinerary:
		return c, nil
	default:
		return CategoryNone, fmt.Errorf("%w: %q", utils.ErrInvalidCategory, raw)
	}
}

// IsCatalog reports whether items can belong to c.
func (c Category) IsCatalog() bool {
	switch c {
	case CategoryActivity, CategoryScript, CategoryService, CategoryDining, CategoryAttraction:
		return true
	case CategoryNone, CategoryItinerary:
		return false
	default:
		return false
	}
}

// Label is the human name used by chat narration and exports.
func (c Category) Label() string {
	switch c {
	case CategoryActivity:
		return "activities"
	case CategoryScript:
		return "script games"
	case CategoryService:
		return "wellness services"
	case CategoryDining:
		return "dining"
	case CategoryAttraction:
		return "attractions"
	case CategoryItinerary:
		return "itinerary"
	case CategoryNone:
		return "map points"
	default:
		return string(c)
	}
}

// MarkerColor is the default pin color for items that do not carry their own.
func (c Category) MarkerColor() string {
	switch c {
	case CategoryActivity:
		return "#3b82f6"
	case CategoryScript:
		return "#8b5cf6"
	case CategoryService:
		return "#ec4899"
	case CategoryDining:
		return "#f97316"
	case CategoryAttraction:
		return "#10b981"
	case CategoryNone, CategoryItinerary:
		return "#6b7280"
	default:
		return "#6b7280"
	}
}
