package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/windoze95/saltybytes-recipe-ideas/internal/models"
)

// criteriaFromQuery reads the i, diet and time query parameters. Unknown
// filter values fall back to "all".
func criteriaFromQuery(c *gin.Context) models.SearchCriteria {
	return models.SearchCriteria{
		IngredientText: c.Query("i"),
		Diet:           models.ParseDietFilter(c.Query("diet")),
		Time:           models.ParseTimeFilter(c.Query("time")),
	}
}
