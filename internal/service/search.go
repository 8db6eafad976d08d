package service

import (
	"context"
	"time"

	"github.com/windoze95/saltybytes-recipe-ideas/internal/config"
	"github.com/windoze95/saltybytes-recipe-ideas/internal/logger"
	"github.com/windoze95/saltybytes-recipe-ideas/internal/mealdb"
	"github.com/windoze95/saltybytes-recipe-ideas/internal/metrics"
	"github.com/windoze95/saltybytes-recipe-ideas/internal/models"
	"go.uber.org/zap"
)

// SearchService runs ingredient searches against the recipe service.
type SearchService struct {
	Cfg    *config.Config
	Source mealdb.MealSource
}

// NewSearchService creates a new SearchService.
func NewSearchService(cfg *config.Config, source mealdb.MealSource) *SearchService {
	return &SearchService{
		Cfg:    cfg,
		Source: source,
	}
}

// SearchRecipes performs one lookup for criteria and returns the resulting
// Success or Failure state. Faults are logged and collapsed into the
// generic failure message. Blank criteria return Idle without a request.
func (s *SearchService) SearchRecipes(ctx context.Context, criteria models.SearchCriteria) models.SearchResultState {
	if criteria.IsBlank() {
		return models.Idle()
	}
	ingredient := criteria.Ingredient()

	start := time.Now()
	meals, err := s.Source.FilterByIngredient(ctx, ingredient)
	elapsed := time.Since(start)

	if err != nil {
		metrics.ObserveSearch(metrics.OutcomeError, elapsed)
		logger.Get().Error("recipe lookup failed",
			zap.String("ingredient", ingredient),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
		return models.Failure(models.RequestFailedMessage)
	}

	if len(meals) == 0 {
		metrics.ObserveSearch(metrics.OutcomeNoResults, elapsed)
		return models.Failure(models.NoResultsMessage)
	}

	metrics.ObserveSearch(metrics.OutcomeSuccess, elapsed)
	recipes := FilterRecipes(s.toSummaries(meals), criteria.Diet, criteria.Time)
	return models.Success(recipes)
}

// toSummaries converts the wire meals into RecipeSummary values with
// their detail links.
func (s *SearchService) toSummaries(meals []mealdb.Meal) []models.RecipeSummary {
	summaries := make([]models.RecipeSummary, 0, len(meals))
	for _, m := range meals {
		summaries = append(summaries, models.RecipeSummary{
			ID:           m.ID,
			Title:        m.Name,
			ThumbnailURL: m.Thumbnail,
			DetailURL:    s.Source.DetailURL(m.ID),
		})
	}
	return summaries
}
