package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mrcode/glucose-insights/internal/models"
)

// MemoryRepository is an in-memory TimeWindowRepository for tests and
// for callers that assemble records themselves before analysis.
type MemoryRepository struct {
	mu        sync.RWMutex
	readings  map[string][]models.Reading
	meals     map[string][]models.Meal
	exercises map[string][]models.Exercise
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		readings:  make(map[string][]models.Reading),
		meals:     make(map[string][]models.Meal),
		exercises: make(map[string][]models.Exercise),
	}
}

// AddReadings records glucose readings for a user
func (m *MemoryRepository) AddReadings(userID string, readings ...models.Reading) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readings[userID] = append(m.readings[userID], readings...)
}

// AddMeals records meal events for a user
func (m *MemoryRepository) AddMeals(userID string, meals ...models.Meal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.meals[userID] = append(m.meals[userID], meals...)
}

// AddExercises records exercise sessions for a user
func (m *MemoryRepository) AddExercises(userID string, exercises ...models.Exercise) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exercises[userID] = append(m.exercises[userID], exercises...)
}

func (m *MemoryRepository) GlucoseWindow(ctx context.Context, userID string, days int, now time.Time) ([]models.Reading, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	start := windowStart(days, now)
	var out []models.Reading
	for _, r := range m.readings[userID] {
		if inWindow(r.Timestamp, start, now) {
			out = append(out, r)
		}
	}

	models.SortReadings(out)
	return out, nil
}

func (m *MemoryRepository) CorrelationWindow(ctx context.Context, userID string, days int, now time.Time) (*models.CorrelationWindow, error) {
	readings, err := m.GlucoseWindow(ctx, userID, days, now)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	start := windowStart(days, now)
	win := &models.CorrelationWindow{
		UserID:   userID,
		Days:     days,
		Readings: readings,
	}

	for _, meal := range m.meals[userID] {
		if inWindow(meal.Timestamp, start, now) {
			win.Meals = append(win.Meals, meal)
		}
	}
	sort.Slice(win.Meals, func(i, j int) bool {
		return win.Meals[i].Timestamp.Before(win.Meals[j].Timestamp)
	})

	for _, ex := range m.exercises[userID] {
		if inWindow(ex.Timestamp, start, now) {
			win.Exercises = append(win.Exercises, ex)
		}
	}
	sort.Slice(win.Exercises, func(i, j int) bool {
		return win.Exercises[i].Timestamp.Before(win.Exercises[j].Timestamp)
	})

	return win, nil
}

func windowStart(days int, now time.Time) time.Time {
	return now.Add(-time.Duration(days) * 24 * time.Hour)
}

// inWindow treats the window as closed: [start, end]
func inWindow(t time.Time, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}
