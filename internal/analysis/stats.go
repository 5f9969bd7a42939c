// Package analysis implements the glucose analytics pipeline: summary
// statistics, pattern detection, trend prediction, exercise impact,
// risk assessment and recommendation generation.
package analysis

import (
	"errors"
	"math"

	"github.com/mrcode/glucose-insights/internal/config"
	"github.com/mrcode/glucose-insights/internal/models"
)

// ErrNoReadings is returned by calculations that require at least one
// glucose reading
var ErrNoReadings = errors.New("no glucose readings in window")

// Statistics computes scalar summaries of a glucose series
type Statistics struct {
	low  int
	high int
}

func NewStatistics(cfg config.AnalysisConfig) *Statistics {
	return &Statistics{low: cfg.LowThreshold, high: cfg.HighThreshold}
}

// AverageLevel returns the arithmetic mean glucose level
func (s *Statistics) AverageLevel(readings []models.Reading) (float64, error) {
	if len(readings) == 0 {
		return 0, ErrNoReadings
	}

	var sum float64
	for _, r := range readings {
		sum += float64(r.Level)
	}
	return sum / float64(len(readings)), nil
}

// TimeInRange buckets each reading into below, in-range and above bands
// and returns the percentage of the total in each
func (s *Statistics) TimeInRange(readings []models.Reading) (models.TimeInRange, error) {
	if len(readings) == 0 {
		return models.TimeInRange{}, ErrNoReadings
	}

	var inRange, belowRange, aboveRange int
	for _, r := range readings {
		switch {
		case r.Level < s.low:
			belowRange++
		case r.Level > s.high:
			aboveRange++
		default:
			inRange++
		}
	}

	n := float64(len(readings))
	return models.TimeInRange{
		InRangePct:    float64(inRange) / n * 100,
		BelowRangePct: float64(belowRange) / n * 100,
		AboveRangePct: float64(aboveRange) / n * 100,
	}, nil
}

// StdDev returns the population standard deviation of the levels around
// the given mean
func StdDev(readings []models.Reading, mean float64) float64 {
	if len(readings) == 0 {
		return 0
	}

	var sumSq float64
	for _, r := range readings {
		diff := float64(r.Level) - mean
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq / float64(len(readings)))
}

// GMI returns the Glucose Management Indicator (estimated HbA1c)
// Formula: GMI = 3.31 + 0.02392 × mean glucose (mg/dL)
func GMI(mean float64) float64 {
	return 3.31 + 0.02392*mean
}

// CoefficientOfVariation returns the CV% for the given spread and mean
func CoefficientOfVariation(stddev, mean float64) float64 {
	if mean <= 0 {
		return 0
	}
	return stddev / mean * 100
}
