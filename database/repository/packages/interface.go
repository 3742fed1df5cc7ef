package packageRepo

import (
	"context"

	"coursecart/models"
)

// PackageRepository exposes the purchasable course packages.
type PackageRepository interface {
	GetByID(ctx context.Context, id string) (*models.Package, error)
	List(ctx context.Context) ([]models.Package, error)
}
