package cartRepo

import (
	"context"

	"coursecart/models"
)

// CartRepository is the checkout collaborator. It takes ownership of a
// well-formed LineItem; persistence, tax and payment live behind it.
type CartRepository interface {
	AddLineItem(ctx context.Context, item *models.LineItem) error
}
