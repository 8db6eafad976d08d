package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/saltybytes-recipe-ideas/internal/config"
	"github.com/windoze95/saltybytes-recipe-ideas/internal/models"
	"github.com/windoze95/saltybytes-recipe-ideas/internal/render"
	"github.com/windoze95/saltybytes-recipe-ideas/internal/service"
	"github.com/windoze95/saltybytes-recipe-ideas/internal/util"
	"github.com/windoze95/saltybytes-recipe-ideas/internal/view"
	"go.uber.org/zap"
)

// PageHandler serves the server-rendered search page.
type PageHandler struct {
	Service  *service.SearchService
	Palettes *config.Palettes
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(searchService *service.SearchService, palettes *config.Palettes) *PageHandler {
	return &PageHandler{Service: searchService, Palettes: palettes}
}

// ShowPage handles GET /?i=...&diet=...&time=...&theme=...
// Each request starts from a fresh view; with a non-blank ingredient it runs
// one search before rendering.
func (h *PageHandler) ShowPage(c *gin.Context) {
	criteria := criteriaFromQuery(c)

	v := view.New(h.Service, false)
	v.SetIngredient(criteria.IngredientText)
	v.SetDiet(criteria.Diet)
	v.SetTime(criteria.Time)
	if !models.ParseTheme(c.Query("theme")).Dark {
		v.ToggleTheme()
	}

	if v.Search(c.Request.Context()) {
		util.LoggerFromContext(c).Debug("page search",
			zap.String("ingredient", criteria.Ingredient()),
			zap.String("status", string(v.Snapshot().State.Status)),
		)
	}

	c.HTML(http.StatusOK, render.IndexTemplate, render.Build(v.Snapshot(), h.Palettes))
}
