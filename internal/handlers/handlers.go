package handlers

import (
	"github.com/smartshop/insights-service/internal/analytics"
	"github.com/smartshop/insights-service/internal/catalog"
	"github.com/smartshop/insights-service/internal/forecast"
	"github.com/smartshop/insights-service/internal/optimizer"
	"github.com/smartshop/insights-service/internal/recommend"
)

// Global engine instances (initialized by the application)
var (
	catalogSource   catalog.Source
	basketOptimizer *optimizer.BasketOptimizer
	forecaster      *forecast.Forecaster
	scorer          *recommend.Scorer
	analyzer        *analytics.Analyzer
)

// EngineConfigs bundles the per-engine policy configuration.
type EngineConfigs struct {
	Optimizer *optimizer.Config
	Forecast  *forecast.Config
	Recommend *recommend.Config
}

// DefaultEngineConfigs returns the default policy for every engine.
func DefaultEngineConfigs() EngineConfigs {
	return EngineConfigs{
		Optimizer: optimizer.DefaultConfig(),
		Forecast:  forecast.DefaultConfig(),
		Recommend: recommend.DefaultConfig(),
	}
}

// InitEngines wires the insight engines over the given catalog providers.
// This should be called during application startup.
func InitEngines(source catalog.Source, history catalog.HistorySource, configs EngineConfigs) {
	catalogSource = source
	basketOptimizer = optimizer.NewBasketOptimizer(source, configs.Optimizer)
	forecaster = forecast.NewForecaster(history, configs.Forecast)
	scorer = recommend.NewScorer(source, configs.Recommend)
	analyzer = analytics.NewAnalyzer(source, history)
}
