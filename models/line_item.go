package models

import "time"

// LineItem is the checkout-ready result of a completed selection episode.
// The cart collaborator owns persistence, tax and payment; this is the full
// extent of what the selection core promises it.
type LineItem struct {
	ID               string    `bson:"id" json:"id"`
	UserID           string    `bson:"userId" json:"userId"`
	PackageID        string    `bson:"packageId" json:"packageId"`
	SessionIDs       []string  `bson:"sessionIds" json:"sessionIds"` // start-time order
	FinalPrice       float64   `bson:"finalPrice" json:"finalPrice"`
	Discount         float64   `bson:"discount" json:"discount"`
	Currency         string    `bson:"currency" json:"currency"`
	PromotionID      string    `bson:"promotionId,omitempty" json:"promotionId,omitempty"`
	FirstSessionDate time.Time `bson:"firstSessionDate" json:"firstSessionDate"`
	AutomaticDetails string    `bson:"automaticDetails,omitempty" json:"automaticDetails,omitempty"`
	ManualDetails    string    `bson:"manualDetails,omitempty" json:"manualDetails,omitempty"`
	CreatedAt        time.Time `bson:"createdAt" json:"createdAt"`
}

// PromotionContext is supplied by the promotions collaborator and consumed
// read-only during assembly. The discount applies only when the promotion
// targets the episode's package.
type PromotionContext struct {
	PromotionID     string  `json:"promotionId"`
	PackageID       string  `json:"packageId"`
	DiscountPercent float64 `json:"discountPercent"`
}
