package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/smartshop/insights-service/config"
	"github.com/smartshop/insights-service/internal/database"
	"github.com/smartshop/insights-service/internal/handlers"
	"github.com/smartshop/insights-service/internal/middleware"
	"github.com/smartshop/insights-service/internal/telemetry"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := initLogger(cfg.Logging)

	logger.Info().Msg("Starting insights service")

	ctx := context.Background()

	shutdownTelemetry, err := telemetry.Init(ctx, telemetry.GetConfigFromEnv())
	if err != nil {
		logger.Warn().Err(err).Msg("Telemetry disabled")
		shutdownTelemetry = func(context.Context) error { return nil }
	}

	dbURL := config.GetDatabaseURL()
	if dbURL == "" {
		logger.Fatal().Msg("DATABASE_URL not set")
	}

	if err := database.Connect(
		ctx,
		dbURL,
		cfg.Database.MaxConnections,
		cfg.Database.MinConnections,
		cfg.Database.MaxConnLifetime,
		cfg.Database.MaxConnIdleTime,
	); err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close()

	logger.Info().Msg("Database connected")

	store := database.NewStore(database.Pool())
	handlers.InitEngines(store, store, engineConfigs(cfg.Engine))

	if cfg.Logging.Level == "info" || cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	setupMiddleware(router, cfg, logger)

	router.GET("/health", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/optimize-basket", handlers.OptimizeBasket)
	router.POST("/predict-prices", handlers.PredictPrices)
	router.POST("/recommendations", handlers.GetRecommendations)
	router.GET("/products", handlers.ListProducts)

	analytics := router.Group("/analytics")
	{
		analytics.GET("/market-trends", handlers.GetMarketTrends)
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info().Str("addr", addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Telemetry shutdown failed")
	}

	logger.Info().Msg("Server exited")
}

// engineConfigs maps the service config onto the per-engine policy structs,
// keeping the package defaults for knobs the config does not surface.
func engineConfigs(cfg config.EngineConfig) handlers.EngineConfigs {
	configs := handlers.DefaultEngineConfigs()

	if cfg.MaxBasketItems > 0 {
		configs.Optimizer.MaxBasketItems = cfg.MaxBasketItems
	}
	if cfg.BudgetComfortRatio > 0 {
		configs.Optimizer.BudgetComfortRatio = cfg.BudgetComfortRatio
	}
	if cfg.ConsolidationShare > 0 {
		configs.Optimizer.ConsolidationShare = cfg.ConsolidationShare
	}
	if cfg.HighDiscountThreshold > 0 {
		configs.Optimizer.HighDiscountThreshold = cfg.HighDiscountThreshold
		configs.Recommend.HighDiscountThreshold = cfg.HighDiscountThreshold
	}
	if cfg.TrendThreshold > 0 {
		configs.Forecast.TrendThreshold = cfg.TrendThreshold
	}
	if cfg.RetainThreshold > 0 {
		configs.Recommend.RetainThreshold = cfg.RetainThreshold
	}
	if cfg.DefaultPriceCeiling > 0 {
		configs.Recommend.DefaultPriceCeiling = cfg.DefaultPriceCeiling
	}

	return configs
}

func initLogger(cfg config.LoggingConfig) *zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var output io.Writer
	if cfg.Format == "json" {
		output = os.Stdout
	} else {
		output = zerolog.ConsoleWriter{Out: os.Stdout, NoColor: cfg.NoColor}
	}

	logger := zerolog.New(output).Level(level).With().Timestamp().Str("service", "insights-service").Logger()
	zlog.Logger = logger
	return &logger
}

func setupMiddleware(router *gin.Engine, cfg *config.Config, logger *zerolog.Logger) {
	router.Use(middleware.CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(middleware.RateLimitMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		BurstSize:         cfg.RateLimit.BurstSize,
	}))

	router.Use(func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		end := time.Now()
		latency := end.Sub(start)

		logger.Info().
			Str("method", c.Request.Method).
			Str("path", path).
			Str("query", query).
			Int("status", c.Writer.Status()).
			Dur("latency", latency).
			Str("ip", c.ClientIP()).
			Msg("HTTP request")
	})
}
