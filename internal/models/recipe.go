package models

import "strings"

// DietFilter is the type for the DietFilter enum.
type DietFilter string

// DietFilter enum values.
const (
	DietAll        DietFilter = "all"
	DietVegetarian DietFilter = "vegetarian"
)

// TimeFilter is the type for the TimeFilter enum.
type TimeFilter string

// TimeFilter enum values.
const (
	TimeAll   TimeFilter = "all"
	TimeQuick TimeFilter = "quick"
)

// ParseDietFilter converts a form or query value into a DietFilter.
// Unknown values fall back to DietAll.
func ParseDietFilter(s string) DietFilter {
	if DietFilter(strings.ToLower(strings.TrimSpace(s))) == DietVegetarian {
		return DietVegetarian
	}
	return DietAll
}

// ParseTimeFilter converts a form or query value into a TimeFilter.
// Unknown values fall back to TimeAll.
func ParseTimeFilter(s string) TimeFilter {
	if TimeFilter(strings.ToLower(strings.TrimSpace(s))) == TimeQuick {
		return TimeQuick
	}
	return TimeAll
}

// SearchCriteria is what the user has entered in the search controls.
type SearchCriteria struct {
	IngredientText string     `json:"ingredient"`
	Diet           DietFilter `json:"diet"`
	Time           TimeFilter `json:"time"`
}

// NewSearchCriteria returns criteria with both filters set to "all".
func NewSearchCriteria() SearchCriteria {
	return SearchCriteria{Diet: DietAll, Time: TimeAll}
}

// Ingredient returns the trimmed ingredient text used for the query.
func (sc SearchCriteria) Ingredient() string {
	return strings.TrimSpace(sc.IngredientText)
}

// IsBlank reports whether there is nothing to search for.
func (sc SearchCriteria) IsBlank() bool {
	return sc.Ingredient() == ""
}

// RecipeSummary is the per-result data needed to render a card.
type RecipeSummary struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnail_url"`
	DetailURL    string `json:"detail_url"`
}
