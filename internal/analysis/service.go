package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/mrcode/glucose-insights/internal/config"
	"github.com/mrcode/glucose-insights/internal/logging"
	"github.com/mrcode/glucose-insights/internal/models"
	"github.com/mrcode/glucose-insights/internal/repository"
)

// State describes the per-user analysis lifecycle
type State string

const (
	StateIdle      State = "idle"
	StateAnalyzing State = "analyzing"
	StatePublished State = "published"
)

// Service orchestrates the analytics pipeline. Concurrent runs for the
// same user are allowed and never cancel each other; whichever run
// finishes last wins the published slot. Failed runs leave the prior
// published result untouched.
type Service struct {
	cfg    *config.Config
	logger *slog.Logger
	repo   repository.TimeWindowRepository

	stats     *Statistics
	patterns  *PatternDetector
	trend     *TrendPredictor
	exercise  *ExerciseAnalyzer
	risk      *RiskAssessor
	recommend *RecommendationGenerator

	mu        sync.RWMutex
	analyzing map[string]int
	published *lru.Cache[string, *models.Insights]
}

func NewService(cfg *config.Config, logger *slog.Logger, repo repository.TimeWindowRepository) (*Service, error) {
	if logger == nil {
		logger = logging.NewLogger(cfg.LogLevel)
	}

	published, err := lru.New[string, *models.Insights](cfg.Analysis.PublishedCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create published cache: %w", err)
	}

	a := cfg.Analysis
	return &Service{
		cfg:       cfg,
		logger:    logger,
		repo:      repo,
		stats:     NewStatistics(a),
		patterns:  NewPatternDetector(a.Detection),
		trend:     NewTrendPredictor(a.Detection),
		exercise:  NewExerciseAnalyzer(a.Detection),
		risk:      NewRiskAssessor(a.Risk),
		recommend: NewRecommendationGenerator(a.Recommendations),
		analyzing: make(map[string]int),
		published: published,
	}, nil
}

// AnalyzeGlucosePatterns analyzes the glucose stream alone: statistics,
// dawn-phenomenon detection, trend prediction and risk assessment over
// the configured history window ending at now.
func (s *Service) AnalyzeGlucosePatterns(ctx context.Context, userID string, now time.Time) (*models.Insights, error) {
	runID := uuid.NewString()
	s.beginRun(userID)
	defer s.endRun(userID)

	readings, err := s.repo.GlucoseWindow(ctx, userID, s.cfg.Analysis.WindowDays, now)
	if err != nil {
		s.logger.Warn("glucose window fetch failed", "run_id", runID, "user_id", userID, "error", err)
		return nil, fmt.Errorf("fetch glucose window: %w", err)
	}

	readings = s.normalize(readings, now, runID, userID)
	if len(readings) == 0 {
		s.logger.Info("no readings in window, skipping analysis", "run_id", runID, "user_id", userID)
		return nil, ErrNoReadings
	}

	insights := s.buildInsights(userID, readings, nil, nil, now)
	s.publish(userID, insights)

	s.logger.Debug("glucose analysis published",
		"run_id", runID, "user_id", userID,
		"readings", len(readings), "patterns", len(insights.Patterns))
	return insights, nil
}

// AnalyzeHealthPatterns analyzes all correlated streams: everything the
// glucose path covers plus post-meal spikes, exercise impact and the
// nutrition and exercise recommendations they drive.
func (s *Service) AnalyzeHealthPatterns(ctx context.Context, userID string, now time.Time) (*models.Insights, error) {
	runID := uuid.NewString()
	s.beginRun(userID)
	defer s.endRun(userID)

	win, err := s.repo.CorrelationWindow(ctx, userID, s.cfg.Analysis.WindowDays, now)
	if err != nil {
		s.logger.Warn("correlation window fetch failed", "run_id", runID, "user_id", userID, "error", err)
		return nil, fmt.Errorf("fetch correlation window: %w", err)
	}

	readings := s.normalize(win.Readings, now, runID, userID)
	if len(readings) == 0 {
		s.logger.Info("no readings in window, skipping analysis", "run_id", runID, "user_id", userID)
		return nil, ErrNoReadings
	}

	insights := s.buildInsights(userID, readings, win.Meals, win.Exercises, now)
	s.publish(userID, insights)

	s.logger.Debug("health analysis published",
		"run_id", runID, "user_id", userID,
		"readings", len(readings), "meals", len(win.Meals), "exercises", len(win.Exercises),
		"patterns", len(insights.Patterns), "recommendations", len(insights.Recommendations))
	return insights, nil
}

// LatestInsights returns the most recently published result for the
// user, or false if no analysis has completed yet
func (s *Service) LatestInsights(userID string) (*models.Insights, bool) {
	return s.published.Get(userID)
}

// State reports the user's position in the Idle/Analyzing/Published
// lifecycle
func (s *Service) State(userID string) State {
	s.mu.RLock()
	inFlight := s.analyzing[userID]
	s.mu.RUnlock()

	if inFlight > 0 {
		return StateAnalyzing
	}
	if s.published.Contains(userID) {
		return StatePublished
	}
	return StateIdle
}

// buildInsights runs the pure pipeline over an ascending-ordered
// reading series. Sub-analyses with insufficient data are skipped
// individually; the rest still run.
func (s *Service) buildInsights(userID string, readings []models.Reading, meals []models.Meal, exercises []models.Exercise, now time.Time) *models.Insights {
	insights := &models.Insights{
		UserID:           userID,
		ReadingsAnalyzed: len(readings),
		WindowDays:       s.cfg.Analysis.WindowDays,
		GeneratedAt:      now,
	}

	// Non-empty is guaranteed by the callers, so these cannot fail
	insights.AverageLevel, _ = s.stats.AverageLevel(readings)
	insights.TimeInRange, _ = s.stats.TimeInRange(readings)
	insights.StdDev = StdDev(readings, insights.AverageLevel)
	insights.GMI = GMI(insights.AverageLevel)
	insights.CoefficientOfVariation = CoefficientOfVariation(insights.StdDev, insights.AverageLevel)

	insights.Patterns = s.patterns.Detect(readings, meals)
	insights.Predictions = s.trend.Predict(readings)
	insights.Risk = s.risk.Assess(readings)

	insights.Recommendations = s.recommend.FromStatistics(insights.TimeInRange, insights.AverageLevel, len(readings))

	if len(exercises) > 0 {
		impact := s.exercise.Analyze(readings, exercises)
		if p, ok := s.patterns.ExerciseResponsePattern(impact); ok {
			insights.Patterns = append(insights.Patterns, p)
		}
		insights.Recommendations = append(insights.Recommendations, s.recommend.FromExerciseImpact(impact)...)
	}
	insights.Recommendations = append(insights.Recommendations, s.recommend.FromMeals(meals)...)

	return insights
}

// normalize re-sorts the window and substitutes now for records that
// arrived without a usable timestamp. Substitutions are a data-quality
// smell, so they are logged rather than silently accepted.
func (s *Service) normalize(readings []models.Reading, now time.Time, runID, userID string) []models.Reading {
	out, substituted := models.NormalizeReadings(readings, now)
	if substituted > 0 {
		s.logger.Warn("substituted missing reading timestamps",
			"run_id", runID, "user_id", userID, "count", substituted)
	}
	return out
}

func (s *Service) beginRun(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analyzing[userID]++
}

func (s *Service) endRun(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analyzing[userID]--
	if s.analyzing[userID] <= 0 {
		delete(s.analyzing, userID)
	}
}

// publish replaces the user's published insights wholesale;
// last writer wins
func (s *Service) publish(userID string, insights *models.Insights) {
	s.published.Add(userID, insights)
}
