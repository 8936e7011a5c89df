package forecast

// Config contains the policy knobs for trend forecasting. The 0.05 trend
// threshold and the confidence shape are policy constants, not derived.
type Config struct {
	TrendWindow int // Samples per trend half-window (recent vs older)
	FitWindow   int // Samples used for the linear extrapolation

	TrendThreshold float64 // Relative change classifying rising/falling

	MinConfidence            float64 // Confidence floor under high volatility
	ConfidenceVolatilityGain float64 // How hard volatility drags confidence down
}

// DefaultConfig returns the default forecasting policy: a two-week trend
// window split 7/7 and a 5-sample linear fit.
func DefaultConfig() *Config {
	return &Config{
		TrendWindow:              7,
		FitWindow:                5,
		TrendThreshold:           0.05,
		MinConfidence:            0.3,
		ConfidenceVolatilityGain: 10,
	}
}
