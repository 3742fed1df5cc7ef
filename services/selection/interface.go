package selection

import (
	"context"
	"time"

	cartRepo "coursecart/database/repository/cart"
	catalogRepo "coursecart/database/repository/catalog"
	packageRepo "coursecart/database/repository/packages"
	"coursecart/models"
	"coursecart/services/enrollment"
)

// SelectionService drives one selection episode end to end: package choice,
// incremental adds and removes, and final checkout assembly.
type SelectionService interface {
	StartEpisode(ctx context.Context, userID, packageID string) (*models.SelectionState, error)
	ImportHandoff(ctx context.Context, userID string, payload models.HandoffPayload) (*models.SelectionState, error)
	AddSession(ctx context.Context, episodeID, sessionID string, date *time.Time) (*models.SelectionState, error)
	RemoveSession(ctx context.Context, episodeID, sessionID string) (*models.SelectionState, error)
	GetEpisode(ctx context.Context, episodeID string) (*models.SelectionState, error)
	Confirm(ctx context.Context, episodeID string, promo *models.PromotionContext) (*models.LineItem, error)
	Cancel(ctx context.Context, episodeID string) error
}

// Warmer schedules a background pre-fetch of a cycle's sessions once an
// episode locks onto that cycle.
type Warmer interface {
	WarmCycle(cycleID string)
}

// CycleSnapshots reads pre-fetched cycle sessions, if a warm snapshot is
// still live.
type CycleSnapshots interface {
	Load(ctx context.Context, cycleID string) ([]models.Session, bool)
}

// DefaultSelectionService implements SelectionService.
type DefaultSelectionService struct {
	Catalog     catalogRepo.SessionCatalog
	Packages    packageRepo.PackageRepository
	Enrollments enrollment.Facts
	Cart        cartRepo.CartRepository
	Store       Store
	Warmer      Warmer         // optional
	Snapshots   CycleSnapshots // optional
	WindowDays  int
}
