package testutil

import (
	"fmt"

	"github.com/windoze95/saltybytes-recipe-ideas/internal/mealdb"
	"github.com/windoze95/saltybytes-recipe-ideas/internal/models"
)

// TestMeals creates n meals with IDs "1".."n" and titles "Meal 1".."Meal n".
func TestMeals(n int) []mealdb.Meal {
	meals := make([]mealdb.Meal, n)
	for i := range meals {
		id := fmt.Sprintf("%d", i+1)
		meals[i] = mealdb.Meal{
			ID:        id,
			Name:      "Meal " + id,
			Thumbnail: "https://www.themealdb.com/images/media/meals/" + id + ".jpg",
		}
	}
	return meals
}

// SoupAndChili returns a small mixed list: one meat dish and one
// vegetarian dish.
func SoupAndChili() []mealdb.Meal {
	return []mealdb.Meal{
		{ID: "1", Name: "Chicken Soup", Thumbnail: "https://www.themealdb.com/images/media/meals/1.jpg"},
		{ID: "2", Name: "Vegetarian Chili", Thumbnail: "https://www.themealdb.com/images/media/meals/2.jpg"},
	}
}

// TestSummaries converts meals to RecipeSummary values the way the search
// service does with the mock source's detail links.
func TestSummaries(meals []mealdb.Meal) []models.RecipeSummary {
	src := &MockMealSource{}
	out := make([]models.RecipeSummary, len(meals))
	for i, m := range meals {
		out[i] = models.RecipeSummary{
			ID:           m.ID,
			Title:        m.Name,
			ThumbnailURL: m.Thumbnail,
			DetailURL:    src.DetailURL(m.ID),
		}
	}
	return out
}
