// Package models contains data structures used throughout the engine
package models

import (
	"sort"
	"time"
)

// Reading represents a single glucose measurement
type Reading struct {
	Level     int       `json:"level"` // mg/dL
	Timestamp time.Time `json:"timestamp"`
	Notes     string    `json:"notes,omitempty"`
}

// LevelMmolL returns the glucose value in mmol/L
func (r *Reading) LevelMmolL() float64 {
	return ToMmol(float64(r.Level))
}

// Meal represents a recorded meal used for temporal correlation
type Meal struct {
	Timestamp  time.Time `json:"timestamp"`
	Name       string    `json:"name,omitempty"`
	CarbsGrams float64   `json:"carbsGrams"`
}

// Exercise represents a recorded exercise session
type Exercise struct {
	Timestamp       time.Time `json:"timestamp"`
	Activity        string    `json:"activity,omitempty"`
	DurationMinutes int       `json:"durationMinutes"`
}

// CorrelationWindow aggregates all record streams for one user over a
// day-count window. It is constructed fresh per analysis call and never
// persisted by the engine.
type CorrelationWindow struct {
	UserID    string     `json:"userId"`
	Days      int        `json:"days"`
	Readings  []Reading  `json:"readings"`
	Meals     []Meal     `json:"meals"`
	Exercises []Exercise `json:"exercises"`
}

// SortReadings orders readings ascending by timestamp. Trend and
// adjacency logic assumes ascending order.
func SortReadings(readings []Reading) {
	sort.Slice(readings, func(i, j int) bool {
		return readings[i].Timestamp.Before(readings[j].Timestamp)
	})
}

// NormalizeReadings returns a sorted copy of readings with zero
// timestamps replaced by now, along with the substitution count so
// callers can surface the data-quality problem.
func NormalizeReadings(readings []Reading, now time.Time) ([]Reading, int) {
	out := make([]Reading, len(readings))
	copy(out, readings)

	substituted := 0
	for i := range out {
		if out[i].Timestamp.IsZero() {
			out[i].Timestamp = now
			substituted++
		}
	}

	SortReadings(out)
	return out, substituted
}

// ToMmol converts a mg/dL value to mmol/L
func ToMmol(mgdl float64) float64 {
	return mgdl / 18.0182
}

// ToMgdl converts a mmol/L value to mg/dL
func ToMgdl(mmol float64) float64 {
	return mmol * 18.0182
}
