package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrcode/glucose-insights/internal/config"
	"github.com/mrcode/glucose-insights/internal/models"
)

var day = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

func morningReadings(levels ...int) []models.Reading {
	// Spread readings across hours 6-9
	readings := make([]models.Reading, len(levels))
	for i, lvl := range levels {
		hour := 6 + i%4
		readings[i] = models.Reading{
			Level:     lvl,
			Timestamp: day.Add(time.Duration(hour)*time.Hour + time.Duration(i)*time.Minute),
		}
	}
	return readings
}

func TestDawnPhenomenonDetected(t *testing.T) {
	d := NewPatternDetector(config.Default().Analysis.Detection)

	// 5 readings, mean 149 > 140
	patterns := d.Detect(morningReadings(150, 145, 148, 142, 160), nil)

	require.Len(t, patterns, 1)
	assert.Equal(t, models.PatternDawnPhenomenon, patterns[0].Kind)
	assert.Equal(t, 0.8, patterns[0].Confidence)
	assert.Contains(t, patterns[0].Description, "149")
}

func TestDawnPhenomenonMeanTooLow(t *testing.T) {
	d := NewPatternDetector(config.Default().Analysis.Detection)

	// Same count, mean 130
	patterns := d.Detect(morningReadings(130, 125, 128, 132, 135), nil)
	assert.Empty(t, patterns)
}

func TestDawnPhenomenonTooFewReadings(t *testing.T) {
	d := NewPatternDetector(config.Default().Analysis.Detection)

	// Only 4 early-morning readings, all elevated
	patterns := d.Detect(morningReadings(180, 185, 190, 200), nil)
	assert.Empty(t, patterns)
}

func TestDawnPhenomenonIgnoresOtherHours(t *testing.T) {
	d := NewPatternDetector(config.Default().Analysis.Detection)

	// Elevated readings at midday must not count toward the gate
	readings := morningReadings(150, 145, 148, 142)
	readings = append(readings, models.Reading{Level: 250, Timestamp: day.Add(13 * time.Hour)})

	patterns := d.Detect(readings, nil)
	assert.Empty(t, patterns)
}

func TestPostMealSpikeDetected(t *testing.T) {
	d := NewPatternDetector(config.Default().Analysis.Detection)

	mealTime := day.Add(12 * time.Hour)
	meals := []models.Meal{{Timestamp: mealTime, Name: "lunch", CarbsGrams: 60}}
	readings := []models.Reading{
		{Level: 200, Timestamp: mealTime.Add(2 * time.Hour)},
	}

	patterns := d.Detect(readings, meals)

	require.Len(t, patterns, 1)
	assert.Equal(t, models.PatternPostMealSpike, patterns[0].Kind)
	assert.Equal(t, 0.7, patterns[0].Confidence)
	assert.Contains(t, patterns[0].Description, "lunch")
	assert.Contains(t, patterns[0].Description, "60g")
}

func TestPostMealSpikeOutsideWindow(t *testing.T) {
	d := NewPatternDetector(config.Default().Analysis.Detection)

	mealTime := day.Add(12 * time.Hour)
	meals := []models.Meal{{Timestamp: mealTime, CarbsGrams: 60}}
	readings := []models.Reading{
		{Level: 200, Timestamp: mealTime.Add(4 * time.Hour)}, // past the window
	}

	assert.Empty(t, d.Detect(readings, meals))
}

func TestPostMealWindowIsOpenInterval(t *testing.T) {
	d := NewPatternDetector(config.Default().Analysis.Detection)

	mealTime := day.Add(12 * time.Hour)
	meals := []models.Meal{{Timestamp: mealTime, CarbsGrams: 60}}

	// Exactly on either boundary is excluded
	boundary := []models.Reading{
		{Level: 250, Timestamp: mealTime.Add(time.Hour)},
		{Level: 250, Timestamp: mealTime.Add(3 * time.Hour)},
	}
	assert.Empty(t, d.Detect(boundary, meals))

	// Just inside is not
	inside := []models.Reading{{Level: 250, Timestamp: mealTime.Add(time.Hour + time.Second)}}
	assert.Len(t, d.Detect(inside, meals), 1)
}

func TestPostMealNoSpike(t *testing.T) {
	d := NewPatternDetector(config.Default().Analysis.Detection)

	mealTime := day.Add(12 * time.Hour)
	meals := []models.Meal{{Timestamp: mealTime, CarbsGrams: 60}}
	readings := []models.Reading{
		{Level: 150, Timestamp: mealTime.Add(90 * time.Minute)},
	}

	assert.Empty(t, d.Detect(readings, meals))
}

func TestMultipleMealsProduceIndependentPatterns(t *testing.T) {
	d := NewPatternDetector(config.Default().Analysis.Detection)

	lunch := day.Add(12 * time.Hour)
	dinner := day.Add(19 * time.Hour)
	meals := []models.Meal{
		{Timestamp: lunch, Name: "lunch", CarbsGrams: 60},
		{Timestamp: dinner, Name: "dinner", CarbsGrams: 80},
	}
	readings := []models.Reading{
		{Level: 210, Timestamp: lunch.Add(2 * time.Hour)},
		{Level: 195, Timestamp: dinner.Add(2 * time.Hour)},
	}

	patterns := d.Detect(readings, meals)
	require.Len(t, patterns, 2)
	assert.Contains(t, patterns[0].Description, "lunch")
	assert.Contains(t, patterns[1].Description, "dinner")
}

func TestExerciseResponsePattern(t *testing.T) {
	d := NewPatternDetector(config.Default().Analysis.Detection)

	p, ok := d.ExerciseResponsePattern(ExerciseImpact{
		AverageImprovement: 30,
		ImprovesGlucose:    true,
		ExercisesAnalyzed:  3,
	})
	require.True(t, ok)
	assert.Equal(t, models.PatternExerciseResponse, p.Kind)
	assert.Equal(t, 0.75, p.Confidence)
	assert.Contains(t, p.Description, "30")

	_, ok = d.ExerciseResponsePattern(ExerciseImpact{AverageImprovement: -5})
	assert.False(t, ok)
}

func TestConfidenceScalingBySamples(t *testing.T) {
	cfg := config.Default().Analysis.Detection
	cfg.ScaleConfidenceBySamples = true
	d := NewPatternDetector(cfg)

	// 5 dawn readings scale 0.8 down by 5/10
	patterns := d.Detect(morningReadings(150, 145, 148, 142, 160), nil)
	require.Len(t, patterns, 1)
	assert.InDelta(t, 0.4, patterns[0].Confidence, 0.0001)
}
