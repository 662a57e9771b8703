package catalog

import (
	"context"
	"time"

	"github.com/brocat-app/brocat/internal/client/models"
)

// Repository stores the last successfully fetched catalog feed so the app
// can render content while the backend is unreachable.
type Repository interface {
	// ReplaceAll atomically swaps the cached feed for the given rows and
	// records the refresh time.
	ReplaceAll(ctx context.Context, rows []models.RawRow) error

	// GetAll returns the cached feed in insertion order.
	GetAll(ctx context.Context) ([]models.RawRow, error)

	// LastRefreshed returns when the cache was last replaced, or the zero
	// time if it never was.
	LastRefreshed(ctx context.Context) (time.Time, error)
}
