package analysis

import (
	"fmt"
	"math"

	"github.com/mrcode/glucose-insights/internal/config"
	"github.com/mrcode/glucose-insights/internal/models"
)

// PatternDetector scans a glucose series plus correlated meal events
// for recurring named patterns
type PatternDetector struct {
	cfg config.DetectionConfig
}

func NewPatternDetector(cfg config.DetectionConfig) *PatternDetector {
	return &PatternDetector{cfg: cfg}
}

// Detect runs all detectors over the readings and meals. Meals may be
// nil when only the glucose stream is available. Every qualifying meal
// produces an independent pattern entry.
func (d *PatternDetector) Detect(readings []models.Reading, meals []models.Meal) []models.Pattern {
	var patterns []models.Pattern

	if p, ok := d.detectDawnPhenomenon(readings); ok {
		patterns = append(patterns, p)
	}
	patterns = append(patterns, d.detectPostMealSpikes(readings, meals)...)

	return patterns
}

// detectDawnPhenomenon looks for elevated early-morning readings. The
// minimum-reading floor keeps a small sample from triggering a
// clinical-sounding pattern.
func (d *PatternDetector) detectDawnPhenomenon(readings []models.Reading) (models.Pattern, bool) {
	var sum float64
	var count int
	for _, r := range readings {
		hour := r.Timestamp.Hour()
		if hour >= d.cfg.DawnStartHour && hour <= d.cfg.DawnEndHour {
			sum += float64(r.Level)
			count++
		}
	}

	if count < d.cfg.DawnMinReadings {
		return models.Pattern{}, false
	}

	mean := sum / float64(count)
	if mean <= d.cfg.DawnMeanThreshold {
		return models.Pattern{}, false
	}

	return models.Pattern{
		Kind: models.PatternDawnPhenomenon,
		Description: fmt.Sprintf("Early-morning glucose averages %.0f mg/dL across %d readings between %d:00 and %d:00",
			mean, count, d.cfg.DawnStartHour, d.cfg.DawnEndHour),
		Confidence: d.confidence(d.cfg.DawnConfidence, count),
	}, true
}

// detectPostMealSpikes checks readings strictly between the min and max
// gap after each meal (open interval on both ends)
func (d *PatternDetector) detectPostMealSpikes(readings []models.Reading, meals []models.Meal) []models.Pattern {
	var patterns []models.Pattern

	for _, meal := range meals {
		peak := 0
		count := 0
		for _, r := range readings {
			dt := r.Timestamp.Sub(meal.Timestamp)
			if dt <= d.cfg.PostMealMinGap || dt >= d.cfg.PostMealMaxGap {
				continue
			}
			count++
			if r.Level > peak {
				peak = r.Level
			}
		}

		if count == 0 || peak <= d.cfg.PostMealSpikeThreshold {
			continue
		}

		name := meal.Name
		if name == "" {
			name = meal.Timestamp.Format("Jan 2 15:04")
		}
		patterns = append(patterns, models.Pattern{
			Kind: models.PatternPostMealSpike,
			Description: fmt.Sprintf("Glucose peaked at %d mg/dL after meal %q (%.0fg carbs)",
				peak, name, meal.CarbsGrams),
			Confidence: d.confidence(d.cfg.PostMealConfidence, count),
		})
	}

	return patterns
}

// ExerciseResponsePattern describes a measured positive exercise effect
func (d *PatternDetector) ExerciseResponsePattern(impact ExerciseImpact) (models.Pattern, bool) {
	if !impact.ImprovesGlucose {
		return models.Pattern{}, false
	}

	return models.Pattern{
		Kind: models.PatternExerciseResponse,
		Description: fmt.Sprintf("Glucose drops an average of %d mg/dL in the two hours after exercise (%d sessions)",
			int(math.Round(impact.AverageImprovement)), impact.ExercisesAnalyzed),
		Confidence: d.confidence(d.cfg.ExerciseResponseConfidence, impact.ExercisesAnalyzed),
	}, true
}

// confidence applies optional sample-size scaling on top of the fixed
// per-kind constant. With scaling disabled (the default) the constant
// is returned unchanged.
func (d *PatternDetector) confidence(base float64, samples int) float64 {
	if !d.cfg.ScaleConfidenceBySamples {
		return base
	}
	scale := math.Min(1, float64(samples)/10)
	return base * scale
}
