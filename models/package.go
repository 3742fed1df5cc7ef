package models

// Package is a purchasable course bundle entitling the buyer to a fixed or
// unlimited number of sessions within a validity window.
type Package struct {
	ID           string  `bson:"id" json:"id"`
	Name         string  `bson:"name" json:"name"`
	ClassCount   int     `bson:"classCount" json:"classCount"` // 0 or less means unlimited
	ValidityDays int     `bson:"validityDays" json:"validityDays"`
	Price        float64 `bson:"price" json:"price"`
	Currency     string  `bson:"currency" json:"currency"`
}

// Unlimited reports whether the package has no class-count limit.
// ValidityDays is informational only and is not enforced here.
func (p Package) Unlimited() bool {
	return p.ClassCount <= 0
}
