package analysis

import (
	"github.com/mrcode/glucose-insights/internal/config"
	"github.com/mrcode/glucose-insights/internal/models"
)

// RiskFactor is a typed contributor to the risk assessment. Keeping the
// factors as an enum matched by exhaustive switches means a new factor
// without a description or recommendation fails review instead of
// being dropped at runtime.
type RiskFactor int

const (
	FactorHighVariability RiskFactor = iota
	FactorModerateVariability
	FactorElevatedAverage
)

func (f RiskFactor) description() string {
	switch f {
	case FactorHighVariability:
		return "High glucose variability"
	case FactorModerateVariability:
		return "Moderate glucose variability"
	case FactorElevatedAverage:
		return "Elevated average glucose"
	}
	return ""
}

func (f RiskFactor) recommendation() string {
	switch f {
	case FactorHighVariability, FactorModerateVariability:
		return "Focus on consistent meal timing and carb counting"
	case FactorElevatedAverage:
		return "Consult your healthcare provider about medication adjustments"
	}
	return ""
}

// RiskAssessor converts statistical dispersion and averages into a
// graded risk level with named contributing factors
type RiskAssessor struct {
	cfg config.RiskConfig
}

func NewRiskAssessor(cfg config.RiskConfig) *RiskAssessor {
	return &RiskAssessor{cfg: cfg}
}

// Assess applies the classification rules in order. The level starts at
// Low and later rules can only raise it within one evaluation.
func (r *RiskAssessor) Assess(readings []models.Reading) models.RiskAssessment {
	assessment := models.RiskAssessment{Level: models.RiskLow}
	if len(readings) == 0 {
		return assessment
	}

	var sum float64
	for _, reading := range readings {
		sum += float64(reading.Level)
	}
	mean := sum / float64(len(readings))
	stddev := StdDev(readings, mean)

	var factors []RiskFactor
	switch {
	case stddev > r.cfg.HighStdDev:
		factors = append(factors, FactorHighVariability)
		assessment.Level = assessment.Level.Max(models.RiskHigh)
	case stddev > r.cfg.ModerateStdDev:
		factors = append(factors, FactorModerateVariability)
		assessment.Level = assessment.Level.Max(models.RiskMedium)
	}

	if mean > r.cfg.HighMean {
		factors = append(factors, FactorElevatedAverage)
		assessment.Level = assessment.Level.Max(models.RiskHigh)
	}

	for _, f := range factors {
		assessment.Factors = append(assessment.Factors, f.description())
		assessment.Recommendations = append(assessment.Recommendations, f.recommendation())
	}

	return assessment
}
