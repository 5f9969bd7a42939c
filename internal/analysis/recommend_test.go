package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrcode/glucose-insights/internal/config"
	"github.com/mrcode/glucose-insights/internal/models"
)

func TestRecommendLowTimeInRange(t *testing.T) {
	g := NewRecommendationGenerator(config.Default().Analysis.Recommendations)

	tir := models.TimeInRange{InRangePct: 55.5, BelowRangePct: 10, AboveRangePct: 34.5}
	recs := g.FromStatistics(tir, 150, 20)

	require.Len(t, recs, 1)
	assert.Equal(t, models.CategoryGlucose, recs[0].Category)
	assert.Equal(t, models.PriorityHigh, recs[0].Priority)
	assert.True(t, recs[0].Actionable)
	assert.Contains(t, recs[0].Description, "55.5%")
}

func TestRecommendHighAverage(t *testing.T) {
	g := NewRecommendationGenerator(config.Default().Analysis.Recommendations)

	tir := models.TimeInRange{InRangePct: 80, BelowRangePct: 0, AboveRangePct: 20}
	recs := g.FromStatistics(tir, 195, 20)

	require.Len(t, recs, 1)
	assert.Contains(t, recs[0].Description, "195")
}

func TestRecommendBothStatisticsRules(t *testing.T) {
	g := NewRecommendationGenerator(config.Default().Analysis.Recommendations)

	tir := models.TimeInRange{InRangePct: 40, BelowRangePct: 5, AboveRangePct: 55}
	recs := g.FromStatistics(tir, 210, 20)
	assert.Len(t, recs, 2)
}

func TestRecommendNothingWhenHealthy(t *testing.T) {
	g := NewRecommendationGenerator(config.Default().Analysis.Recommendations)

	tir := models.TimeInRange{InRangePct: 85, BelowRangePct: 5, AboveRangePct: 10}
	assert.Empty(t, g.FromStatistics(tir, 120, 20))
}

func TestRecommendEmptyWindowSkipsTimeInRange(t *testing.T) {
	g := NewRecommendationGenerator(config.Default().Analysis.Recommendations)

	// A zero-reading window reports 0% in range; that must not fire
	assert.Empty(t, g.FromStatistics(models.TimeInRange{}, 0, 0))
}

func TestRecommendHighCarbMealsFiresOnce(t *testing.T) {
	g := NewRecommendationGenerator(config.Default().Analysis.Recommendations)

	meals := []models.Meal{
		{Name: "breakfast", CarbsGrams: 30},
		{Name: "lunch", CarbsGrams: 90},
		{Name: "dinner", CarbsGrams: 75},
	}

	recs := g.FromMeals(meals)
	require.Len(t, recs, 1)
	assert.Equal(t, models.CategoryNutrition, recs[0].Category)
	assert.Equal(t, models.PriorityMedium, recs[0].Priority)
}

func TestRecommendNoHighCarbMeals(t *testing.T) {
	g := NewRecommendationGenerator(config.Default().Analysis.Recommendations)

	meals := []models.Meal{{CarbsGrams: 45}} // boundary is strict
	assert.Empty(t, g.FromMeals(meals))
}

func TestRecommendExerciseImpact(t *testing.T) {
	g := NewRecommendationGenerator(config.Default().Analysis.Recommendations)

	recs := g.FromExerciseImpact(ExerciseImpact{
		AverageImprovement: 30,
		ImprovesGlucose:    true,
		ExercisesAnalyzed:  1,
	})

	require.Len(t, recs, 1)
	assert.Equal(t, models.CategoryExercise, recs[0].Category)
	assert.Equal(t, models.PriorityHigh, recs[0].Priority)
	assert.Contains(t, recs[0].Description, "30 mg/dL")

	assert.Empty(t, g.FromExerciseImpact(ExerciseImpact{AverageImprovement: 0}))
}
