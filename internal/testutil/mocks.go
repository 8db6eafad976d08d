package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/windoze95/saltybytes-recipe-ideas/internal/mealdb"
)

// --- MockMealSource ---

// MockMealSource is a mock implementation of mealdb.MealSource. It records
// every ingredient it is asked for.
type MockMealSource struct {
	FilterByIngredientFunc func(ctx context.Context, ingredient string) ([]mealdb.Meal, error)

	mu    sync.Mutex
	calls []string
}

func (m *MockMealSource) FilterByIngredient(ctx context.Context, ingredient string) ([]mealdb.Meal, error) {
	m.mu.Lock()
	m.calls = append(m.calls, ingredient)
	m.mu.Unlock()

	if m.FilterByIngredientFunc != nil {
		return m.FilterByIngredientFunc(ctx, ingredient)
	}
	return nil, fmt.Errorf("FilterByIngredient not configured")
}

func (m *MockMealSource) DetailURL(id string) string {
	return "https://www.themealdb.com/meal/" + id
}

// Calls returns the ingredients passed to FilterByIngredient so far.
func (m *MockMealSource) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// Returning configures the mock to answer every lookup with meals.
func (m *MockMealSource) Returning(meals []mealdb.Meal) *MockMealSource {
	m.FilterByIngredientFunc = func(ctx context.Context, ingredient string) ([]mealdb.Meal, error) {
		return meals, nil
	}
	return m
}

// Failing configures the mock to answer every lookup with err.
func (m *MockMealSource) Failing(err error) *MockMealSource {
	m.FilterByIngredientFunc = func(ctx context.Context, ingredient string) ([]mealdb.Meal, error) {
		return nil, err
	}
	return m
}
