package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/saltybytes-recipe-ideas/internal/config"
	"github.com/windoze95/saltybytes-recipe-ideas/internal/logger"
	"github.com/windoze95/saltybytes-recipe-ideas/internal/mealdb"
	"github.com/windoze95/saltybytes-recipe-ideas/internal/router"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout = 15 * time.Second
	sweepInterval   = time.Minute
)

// init is called before the main function.
func init() {
	// Initialize structured logger (dev mode if GIN_MODE != release)
	isDev := os.Getenv("GIN_MODE") != "release"
	logger.Init(isDev)

	// Configure the runtime
	ConfigureRuntime()
}

// Entry point for the recipe ideas server.
func main() {
	defer logger.Sync()

	// Load the config
	var cfg *config.Config
	if c, err := config.LoadConfig(); err != nil {
		logger.Get().Fatal("failed to load config", zap.Error(err))
	} else {
		cfg = c
	}

	// Check that all ENV variables are set
	if err := cfg.CheckConfigEnvFields(); err != nil {
		logger.Get().Fatal("missing required config fields", zap.Error(err))
	}

	// Load theme palettes, overlaid from YAML when configured
	cfg.Theme = config.DefaultPalettes()
	if cfg.EnvVars.ThemeFile != "" {
		palettes, err := config.LoadPalettes(cfg.EnvVars.ThemeFile)
		if err != nil {
			logger.Get().Fatal("failed to load theme palettes", zap.Error(err))
		}
		cfg.Theme = palettes
	}

	source := mealdb.NewClient(cfg.EnvVars.MealDBAPIURL, cfg.EnvVars.MealDBSiteURL, cfg.EnvVars.MealDBTimeout)

	// Create a new gin router
	gin.SetMode(gin.ReleaseMode)
	app := router.SetupRouter(cfg, source)

	if err := run(cfg, app); err != nil {
		logger.Get().Fatal("server error", zap.Error(err))
	}
	logger.Get().Info("server stopped gracefully")
}

// run serves HTTP and the background loops until SIGINT or SIGTERM.
func run(cfg *config.Config, app *router.App) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              ":" + cfg.EnvVars.Port,
		Handler:           app.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return app.Hub.Run(gctx) })
	g.Go(func() error { return app.Sessions.Run(gctx, sweepInterval) })
	g.Go(func() error { return app.Limiter.Run(gctx, sweepInterval) })

	// Run the server
	g.Go(func() error {
		logger.Get().Info("starting server", zap.String("port", cfg.EnvVars.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Get().Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// ConfigureRuntime sets the number of operating system threads.
func ConfigureRuntime() {
	nuCPU := runtime.NumCPU()
	runtime.GOMAXPROCS(nuCPU)
	logger.Get().Info("runtime configured", zap.Int("cpus", nuCPU))
}
