package analysis

import (
	"github.com/mrcode/glucose-insights/internal/config"
	"github.com/mrcode/glucose-insights/internal/models"
)

const trendHorizon = "Next 2 hours"

// TrendPredictor produces short-horizon directional forecasts from the
// most recent readings
type TrendPredictor struct {
	cfg config.DetectionConfig
}

func NewTrendPredictor(cfg config.DetectionConfig) *TrendPredictor {
	return &TrendPredictor{cfg: cfg}
}

// Predict computes a finite difference over the last readings of an
// ascending-ordered series. Fewer readings than the lookback, or a
// delta within the dead band, produce no prediction. At most one
// prediction is returned.
func (p *TrendPredictor) Predict(readings []models.Reading) []models.Prediction {
	if len(readings) < p.cfg.TrendLookback {
		return nil
	}

	recent := readings[len(readings)-p.cfg.TrendLookback:]
	trend := recent[len(recent)-1].Level - recent[0].Level

	var direction string
	switch {
	case trend > p.cfg.TrendDelta:
		direction = "rising"
	case trend < -p.cfg.TrendDelta:
		direction = "declining"
	default:
		return nil
	}

	return []models.Prediction{{
		Horizon:    trendHorizon,
		Direction:  direction,
		Confidence: p.cfg.TrendConfidence,
	}}
}
