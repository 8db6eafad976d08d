package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/saltybytes-recipe-ideas/internal/service"
)

// SearchHandler handles recipe search requests.
type SearchHandler struct {
	Service *service.SearchService
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{Service: searchService}
}

// SearchRecipes handles GET /v1/recipes/search?i=...&diet=...&time=...
// Failure states are part of the result and are returned with 200.
func (h *SearchHandler) SearchRecipes(c *gin.Context) {
	criteria := criteriaFromQuery(c)
	if criteria.IsBlank() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'i' is required"})
		return
	}

	state := h.Service.SearchRecipes(c.Request.Context(), criteria)
	c.JSON(http.StatusOK, state)
}
