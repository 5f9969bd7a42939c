package analysis

import (
	"fmt"
	"math"

	"github.com/mrcode/glucose-insights/internal/config"
	"github.com/mrcode/glucose-insights/internal/models"
)

// RecommendationGenerator maps insights into prioritized, actionable
// recommendation records. All rules are additive; nothing is
// deduplicated or ranked here.
type RecommendationGenerator struct {
	cfg config.RecommendationConfig
}

func NewRecommendationGenerator(cfg config.RecommendationConfig) *RecommendationGenerator {
	return &RecommendationGenerator{cfg: cfg}
}

// FromStatistics emits recommendations driven by time-in-range and the
// average level. Callers pass the reading count so an empty window
// never trips the time-in-range floor.
func (g *RecommendationGenerator) FromStatistics(tir models.TimeInRange, average float64, readingCount int) []models.Recommendation {
	var recs []models.Recommendation

	if readingCount > 0 && tir.InRangePct < g.cfg.TimeInRangeFloor {
		recs = append(recs, models.Recommendation{
			Category: models.CategoryGlucose,
			Title:    "Improve time in range",
			Description: fmt.Sprintf("Your glucose is in range %.1f%% of the time. Aim for at least %.0f%% by reviewing meal sizes and timing.",
				tir.InRangePct, g.cfg.TimeInRangeFloor),
			Priority:   models.PriorityHigh,
			Actionable: true,
		})
	}

	if average > g.cfg.HighAverage {
		recs = append(recs, models.Recommendation{
			Category: models.CategoryGlucose,
			Title:    "Lower average glucose",
			Description: fmt.Sprintf("Your average glucose is %.0f mg/dL, above the %.0f mg/dL target.",
				average, g.cfg.HighAverage),
			Priority:   models.PriorityHigh,
			Actionable: true,
		})
	}

	return recs
}

// FromMeals emits a single nutrition recommendation when any high-carb
// meal exists in the window, regardless of how many qualify
func (g *RecommendationGenerator) FromMeals(meals []models.Meal) []models.Recommendation {
	for _, meal := range meals {
		if meal.CarbsGrams > g.cfg.HighCarbGrams {
			return []models.Recommendation{{
				Category: models.CategoryNutrition,
				Title:    "Watch high-carb meals",
				Description: fmt.Sprintf("Some meals exceed %.0fg of carbohydrates. Consider splitting them or pairing carbs with protein and fiber.",
					g.cfg.HighCarbGrams),
				Priority:   models.PriorityMedium,
				Actionable: true,
			}}
		}
	}
	return nil
}

// FromExerciseImpact emits an exercise recommendation when the measured
// impact is positive, naming the average improvement rounded to an
// integer
func (g *RecommendationGenerator) FromExerciseImpact(impact ExerciseImpact) []models.Recommendation {
	if !impact.ImprovesGlucose {
		return nil
	}

	return []models.Recommendation{{
		Category: models.CategoryExercise,
		Title:    "Keep up the exercise",
		Description: fmt.Sprintf("Exercise lowers your glucose by an average of %d mg/dL. Maintaining your routine will help keep levels in range.",
			int(math.Round(impact.AverageImprovement))),
		Priority:   models.PriorityHigh,
		Actionable: true,
	}}
}
