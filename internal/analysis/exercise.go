package analysis

import (
	"time"

	"github.com/mrcode/glucose-insights/internal/config"
	"github.com/mrcode/glucose-insights/internal/models"
)

// ExerciseImpact measures the glucose delta attributable to exercise
type ExerciseImpact struct {
	// AverageImprovement is the mean of per-exercise improvements in
	// mg/dL; positive means glucose fell after exercise
	AverageImprovement float64 `json:"averageImprovement"`
	ImprovesGlucose    bool    `json:"improvesGlucose"`
	ExercisesAnalyzed  int     `json:"exercisesAnalyzed"`
}

// ExerciseAnalyzer compares glucose levels before and after exercise
// sessions
type ExerciseAnalyzer struct {
	window time.Duration
}

func NewExerciseAnalyzer(cfg config.DetectionConfig) *ExerciseAnalyzer {
	return &ExerciseAnalyzer{window: cfg.ExerciseWindow}
}

// Analyze gathers readings in the window strictly before and strictly
// after each exercise (0 < Δt < window on both sides, one convention
// for both directions). Exercises with an empty window on either side
// are skipped; the aggregate is the mean over the rest, 0 when none
// qualify.
func (a *ExerciseAnalyzer) Analyze(readings []models.Reading, exercises []models.Exercise) ExerciseImpact {
	var improvements []float64

	for _, ex := range exercises {
		var beforeSum, afterSum float64
		var beforeN, afterN int

		for _, r := range readings {
			dt := ex.Timestamp.Sub(r.Timestamp)
			switch {
			case dt > 0 && dt < a.window:
				beforeSum += float64(r.Level)
				beforeN++
			case dt < 0 && -dt < a.window:
				afterSum += float64(r.Level)
				afterN++
			}
		}

		if beforeN == 0 || afterN == 0 {
			continue
		}

		beforeMean := beforeSum / float64(beforeN)
		afterMean := afterSum / float64(afterN)
		improvements = append(improvements, beforeMean-afterMean)
	}

	impact := ExerciseImpact{ExercisesAnalyzed: len(improvements)}
	if len(improvements) == 0 {
		return impact
	}

	var total float64
	for _, imp := range improvements {
		total += imp
	}
	impact.AverageImprovement = total / float64(len(improvements))
	impact.ImprovesGlucose = impact.AverageImprovement > 0
	return impact
}
