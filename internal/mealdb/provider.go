package mealdb

import (
	"context"
	"fmt"
)

// MealSource looks up meals by main ingredient.
type MealSource interface {
	// FilterByIngredient returns the meals using ingredient. A nil or empty
	// slice with a nil error means the service had no results.
	FilterByIngredient(ctx context.Context, ingredient string) ([]Meal, error)
	// DetailURL returns the public page for the meal with the given ID.
	DetailURL(id string) string
}

// Meal is a single entry of the filter endpoint response.
type Meal struct {
	ID        string `json:"idMeal"`
	Name      string `json:"strMeal"`
	Thumbnail string `json:"strMealThumb"`
}

// StatusError is returned when the service answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

// Error returns the error message.
func (e *StatusError) Error() string {
	return fmt.Sprintf("mealdb API returned status %d: %s", e.StatusCode, e.Body)
}
