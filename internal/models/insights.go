// Package models contains data structures used throughout the engine
package models

import "time"

// TimeInRange holds the percentage of readings in each glucose band.
// For a non-empty reading set the three percentages sum to 100 within
// rounding tolerance; for an empty set all three are zero.
type TimeInRange struct {
	InRangePct    float64 `json:"inRangePct"`    // 70-180 mg/dL inclusive
	BelowRangePct float64 `json:"belowRangePct"` // <70 mg/dL
	AboveRangePct float64 `json:"aboveRangePct"` // >180 mg/dL
}

// PatternKind identifies a recurring physiological pattern
type PatternKind string

const (
	PatternDawnPhenomenon   PatternKind = "dawn_phenomenon"
	PatternPostMealSpike    PatternKind = "post_meal_spike"
	PatternExerciseResponse PatternKind = "exercise_response"
	PatternStressResponse   PatternKind = "stress_response"
)

// Pattern is a detected recurring pattern with a confidence score.
// A fresh set is generated per analysis call; patterns are never
// deduplicated across calls.
type Pattern struct {
	Kind        PatternKind `json:"kind"`
	Description string      `json:"description"`
	Confidence  float64     `json:"confidence"` // 0-1
}

// Prediction is a short-horizon directional forecast
type Prediction struct {
	Horizon    string  `json:"horizon"`    // e.g. "Next 2 hours"
	Direction  string  `json:"direction"`  // "rising" or "declining"
	Confidence float64 `json:"confidence"` // 0-1
}

// RiskLevel grades the overall glucose risk
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// severity orders risk levels so a later rule can only raise the level
func (l RiskLevel) severity() int {
	switch l {
	case RiskLow:
		return 0
	case RiskMedium:
		return 1
	case RiskHigh:
		return 2
	case RiskCritical:
		return 3
	}
	return 0
}

// Max returns the more severe of the two levels
func (l RiskLevel) Max(other RiskLevel) RiskLevel {
	if other.severity() > l.severity() {
		return other
	}
	return l
}

// RiskAssessment is a graded risk level with its contributing factors
// and the recommendation each factor maps to
type RiskAssessment struct {
	Level           RiskLevel `json:"level"`
	Factors         []string  `json:"factors"`
	Recommendations []string  `json:"recommendations"`
}

// RecommendationCategory classifies a recommendation
type RecommendationCategory string

const (
	CategoryGlucose    RecommendationCategory = "glucose"
	CategoryExercise   RecommendationCategory = "exercise"
	CategoryNutrition  RecommendationCategory = "nutrition"
	CategoryMedication RecommendationCategory = "medication"
	CategoryLifestyle  RecommendationCategory = "lifestyle"
)

// RecommendationPriority orders recommendations for presentation
type RecommendationPriority string

const (
	PriorityLow      RecommendationPriority = "low"
	PriorityMedium   RecommendationPriority = "medium"
	PriorityHigh     RecommendationPriority = "high"
	PriorityCritical RecommendationPriority = "critical"
)

// Recommendation is a prioritized, actionable suggestion derived from
// the analysis. Plain data intended for direct rendering.
type Recommendation struct {
	Category    RecommendationCategory `json:"category"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Priority    RecommendationPriority `json:"priority"`
	Actionable  bool                   `json:"actionable"`
}

// Insights is the top-level published result of one analysis cycle.
// It is replaced wholesale on each recomputation, never patched.
type Insights struct {
	UserID string `json:"userId"`

	// Glucose statistics
	AverageLevel           float64     `json:"averageLevel"` // mg/dL
	StdDev                 float64     `json:"stdDev"`
	GMI                    float64     `json:"gmi"` // estimated HbA1c
	CoefficientOfVariation float64     `json:"coefficientOfVariation"`
	TimeInRange            TimeInRange `json:"timeInRange"`

	Patterns        []Pattern        `json:"patterns"`
	Predictions     []Prediction     `json:"predictions"`
	Risk            RiskAssessment   `json:"risk"`
	Recommendations []Recommendation `json:"recommendations"`

	// Data coverage
	ReadingsAnalyzed int       `json:"readingsAnalyzed"`
	WindowDays       int       `json:"windowDays"`
	GeneratedAt      time.Time `json:"generatedAt"`
}
