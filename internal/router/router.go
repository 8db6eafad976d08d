package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/windoze95/saltybytes-recipe-ideas/internal/config"
	"github.com/windoze95/saltybytes-recipe-ideas/internal/handlers"
	"github.com/windoze95/saltybytes-recipe-ideas/internal/logger"
	"github.com/windoze95/saltybytes-recipe-ideas/internal/mealdb"
	"github.com/windoze95/saltybytes-recipe-ideas/internal/metrics"
	"github.com/windoze95/saltybytes-recipe-ideas/internal/middleware"
	"github.com/windoze95/saltybytes-recipe-ideas/internal/render"
	"github.com/windoze95/saltybytes-recipe-ideas/internal/service"
	"github.com/windoze95/saltybytes-recipe-ideas/internal/view"
	"github.com/windoze95/saltybytes-recipe-ideas/internal/ws"
)

// limiterExpiration is how long an idle per-IP bucket is kept.
const limiterExpiration = 3 * time.Minute

// App is the wired application: the HTTP engine plus the components whose
// background loops the caller must run.
type App struct {
	Engine   *gin.Engine
	Hub      *ws.Hub
	Sessions *view.Registry
	Limiter  *middleware.IPRateLimiter
}

// SetupRouter sets up the Gin router against the given recipe source.
func SetupRouter(cfg *config.Config, source mealdb.MealSource) *App {
	r := gin.New()
	r.Use(gin.Recovery())

	// Add request ID middleware for request correlation
	r.Use(logger.RequestIDMiddleware())
	r.Use(logger.AccessLog())
	r.Use(metrics.Middleware())
	r.Use(middleware.SecurityHeaders())

	r.SetHTMLTemplate(render.Templates())

	searchService := service.NewSearchService(cfg, source)
	limiter := middleware.NewIPRateLimiter(cfg.EnvVars.RateLimitRPS, limiterExpiration)
	sessions := view.NewRegistry(searchService, cfg.EnvVars.DiscardStaleResponses, cfg.EnvVars.SessionIdleTimeout)
	hub := ws.NewHub()
	sessions.SetInUse(func(id string) bool { return hub.ClientCount(id) > 0 })

	// Ping route for testing
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Server-rendered search page
	pageHandler := handlers.NewPageHandler(searchService, cfg.Theme)
	r.GET("/", middleware.RateLimitByIP(limiter), pageHandler.ShowPage)

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.EnvVars.AllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "OPTIONS"}

	api := r.Group("/v1")
	api.Use(cors.New(corsConfig))
	{
		// Search recipes by ingredient
		searchHandler := handlers.NewSearchHandler(searchService)
		api.GET("/recipes/search", middleware.RateLimitByIP(limiter), searchHandler.SearchRecipes)

		// Live search session over WebSocket
		liveHandler := ws.NewLiveHandler(hub, sessions, cfg.Theme, cfg.EnvVars.AllowedOrigins)
		api.GET("/ws/search", middleware.RateLimitByIP(limiter), liveHandler.HandleLiveSearch)
	}

	return &App{
		Engine:   r,
		Hub:      hub,
		Sessions: sessions,
		Limiter:  limiter,
	}
}
