// Package repository defines the read-only contract for fetching
// time-windowed health records. Durable storage lives outside this
// module; the engine only ever queries a window.
package repository

import (
	"context"
	"time"

	"github.com/mrcode/glucose-insights/internal/models"
)

// TimeWindowRepository supplies immutable, time-ordered record sets for
// a user within a day window ending at now. Implementations must return
// readings ascending by timestamp; the engine re-sorts defensively but
// relies on the window being [now - days*24h, now].
type TimeWindowRepository interface {
	// GlucoseWindow returns the glucose readings in the window
	GlucoseWindow(ctx context.Context, userID string, days int, now time.Time) ([]models.Reading, error)

	// CorrelationWindow returns glucose, meal and exercise records in
	// the same window
	CorrelationWindow(ctx context.Context, userID string, days int, now time.Time) (*models.CorrelationWindow, error)
}
