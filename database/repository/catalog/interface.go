package catalogRepo

import (
	"context"
	"errors"
	"time"

	"coursecart/models"
)

// ErrCatalogUnavailable wraps transport failures against the session data
// source. During cross-day gathering callers may treat it as "no sessions
// found for this day", but the initiating user action must still see it.
var ErrCatalogUnavailable = errors.New("session catalog unavailable")

// SessionCatalog is a pure read-through to the session data source: no
// caching, no business rules.
type SessionCatalog interface {
	FetchByDate(ctx context.Context, date time.Time) ([]models.Session, error)
	FetchByCycle(ctx context.Context, cycleID string) ([]models.Session, error)
}
