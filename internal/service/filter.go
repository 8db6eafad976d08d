package service

import (
	"strings"

	"github.com/windoze95/saltybytes-recipe-ideas/internal/models"
)

// QuickLimit is how many results the "quick" time filter keeps.
const QuickLimit = 6

// vegetarianMarker is matched against titles. This is a title heuristic,
// not a dietary classification.
const vegetarianMarker = "vegetarian"

// FilterRecipes applies the diet filter and then the time filter to raw.
// It never reorders entries and never modifies raw.
func FilterRecipes(raw []models.RecipeSummary, diet models.DietFilter, pace models.TimeFilter) []models.RecipeSummary {
	filtered := raw

	if diet == models.DietVegetarian {
		filtered = make([]models.RecipeSummary, 0, len(raw))
		for _, r := range raw {
			if strings.Contains(strings.ToLower(r.Title), vegetarianMarker) {
				filtered = append(filtered, r)
			}
		}
	}

	if pace == models.TimeQuick && len(filtered) > QuickLimit {
		filtered = filtered[:QuickLimit:QuickLimit]
	}

	return filtered
}
