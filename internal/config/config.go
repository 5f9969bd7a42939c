package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	LogLevel string         `json:"log_level" yaml:"log_level"`
	Analysis AnalysisConfig `json:"analysis" yaml:"analysis"`
}

type AnalysisConfig struct {
	// WindowDays is the history window served by default
	WindowDays int `json:"window_days" yaml:"window_days"`

	// Glucose band boundaries in mg/dL. In-range is [Low, High] inclusive.
	LowThreshold  int `json:"low_threshold" yaml:"low_threshold"`
	HighThreshold int `json:"high_threshold" yaml:"high_threshold"`

	Detection       DetectionConfig      `json:"detection" yaml:"detection"`
	Risk            RiskConfig           `json:"risk" yaml:"risk"`
	Recommendations RecommendationConfig `json:"recommendations" yaml:"recommendations"`

	// PublishedCacheSize bounds the per-user published insights cache
	PublishedCacheSize int `json:"published_cache_size" yaml:"published_cache_size"`
}

type DetectionConfig struct {
	// Dawn phenomenon gate: readings with local hour in
	// [DawnStartHour, DawnEndHour] inclusive
	DawnStartHour     int     `json:"dawn_start_hour" yaml:"dawn_start_hour"`
	DawnEndHour       int     `json:"dawn_end_hour" yaml:"dawn_end_hour"`
	DawnMinReadings   int     `json:"dawn_min_readings" yaml:"dawn_min_readings"`
	DawnMeanThreshold float64 `json:"dawn_mean_threshold" yaml:"dawn_mean_threshold"`
	DawnConfidence    float64 `json:"dawn_confidence" yaml:"dawn_confidence"`

	// Post-meal spike gate: readings strictly between MinGap and MaxGap
	// after a meal, spike when the max exceeds the threshold
	PostMealMinGap         time.Duration `json:"post_meal_min_gap" yaml:"post_meal_min_gap"`
	PostMealMaxGap         time.Duration `json:"post_meal_max_gap" yaml:"post_meal_max_gap"`
	PostMealSpikeThreshold int           `json:"post_meal_spike_threshold" yaml:"post_meal_spike_threshold"`
	PostMealConfidence     float64       `json:"post_meal_confidence" yaml:"post_meal_confidence"`

	// Trend gate: finite difference over the last TrendLookback readings
	TrendLookback   int     `json:"trend_lookback" yaml:"trend_lookback"`
	TrendDelta      int     `json:"trend_delta" yaml:"trend_delta"`
	TrendConfidence float64 `json:"trend_confidence" yaml:"trend_confidence"`

	// Exercise impact windows strictly before and after each session
	ExerciseWindow             time.Duration `json:"exercise_window" yaml:"exercise_window"`
	ExerciseResponseConfidence float64       `json:"exercise_response_confidence" yaml:"exercise_response_confidence"`

	// ScaleConfidenceBySamples scales pattern confidence by sample size
	// instead of using the fixed per-kind constants
	ScaleConfidenceBySamples bool `json:"scale_confidence_by_samples" yaml:"scale_confidence_by_samples"`
}

type RiskConfig struct {
	HighStdDev     float64 `json:"high_stddev" yaml:"high_stddev"`
	ModerateStdDev float64 `json:"moderate_stddev" yaml:"moderate_stddev"`
	HighMean       float64 `json:"high_mean" yaml:"high_mean"`
}

type RecommendationConfig struct {
	TimeInRangeFloor float64 `json:"time_in_range_floor" yaml:"time_in_range_floor"` // percent
	HighAverage      float64 `json:"high_average" yaml:"high_average"`               // mg/dL
	HighCarbGrams    float64 `json:"high_carb_grams" yaml:"high_carb_grams"`
}

// Default returns the configuration with the source constants
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Analysis: AnalysisConfig{
			WindowDays:    30,
			LowThreshold:  70,
			HighThreshold: 180,
			Detection: DetectionConfig{
				DawnStartHour:              6,
				DawnEndHour:                9,
				DawnMinReadings:            5,
				DawnMeanThreshold:          140,
				DawnConfidence:             0.8,
				PostMealMinGap:             time.Hour,
				PostMealMaxGap:             3 * time.Hour,
				PostMealSpikeThreshold:     180,
				PostMealConfidence:         0.7,
				TrendLookback:              10,
				TrendDelta:                 5,
				TrendConfidence:            0.6,
				ExerciseWindow:             2 * time.Hour,
				ExerciseResponseConfidence: 0.75,
			},
			Risk: RiskConfig{
				HighStdDev:     50,
				ModerateStdDev: 30,
				HighMean:       180,
			},
			Recommendations: RecommendationConfig{
				TimeInRangeFloor: 70,
				HighAverage:      180,
				HighCarbGrams:    45,
			},
			PublishedCacheSize: 1024,
		},
	}
}

// Load reads a yaml file over the defaults
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	a := c.Analysis
	if a.WindowDays <= 0 {
		return fmt.Errorf("window_days must be positive, got %d", a.WindowDays)
	}
	if a.LowThreshold <= 0 || a.HighThreshold <= a.LowThreshold {
		return fmt.Errorf("glucose bands invalid: low=%d high=%d", a.LowThreshold, a.HighThreshold)
	}
	d := a.Detection
	if d.DawnStartHour < 0 || d.DawnEndHour > 23 || d.DawnEndHour < d.DawnStartHour {
		return fmt.Errorf("dawn hours invalid: start=%d end=%d", d.DawnStartHour, d.DawnEndHour)
	}
	if d.DawnMinReadings < 1 {
		return fmt.Errorf("dawn_min_readings must be at least 1, got %d", d.DawnMinReadings)
	}
	if d.PostMealMinGap <= 0 || d.PostMealMaxGap <= d.PostMealMinGap {
		return fmt.Errorf("post-meal window invalid: min=%s max=%s", d.PostMealMinGap, d.PostMealMaxGap)
	}
	if d.TrendLookback < 2 {
		return fmt.Errorf("trend_lookback must be at least 2, got %d", d.TrendLookback)
	}
	if d.ExerciseWindow <= 0 {
		return fmt.Errorf("exercise_window must be positive, got %s", d.ExerciseWindow)
	}
	for name, conf := range map[string]float64{
		"dawn_confidence":              d.DawnConfidence,
		"post_meal_confidence":         d.PostMealConfidence,
		"trend_confidence":             d.TrendConfidence,
		"exercise_response_confidence": d.ExerciseResponseConfidence,
	} {
		if conf < 0 || conf > 1 {
			return fmt.Errorf("%s must be in [0,1], got %v", name, conf)
		}
	}
	if a.Risk.ModerateStdDev <= 0 || a.Risk.HighStdDev <= a.Risk.ModerateStdDev {
		return fmt.Errorf("risk stddev thresholds invalid: moderate=%v high=%v", a.Risk.ModerateStdDev, a.Risk.HighStdDev)
	}
	if a.PublishedCacheSize <= 0 {
		return fmt.Errorf("published_cache_size must be positive, got %d", a.PublishedCacheSize)
	}
	return nil
}
