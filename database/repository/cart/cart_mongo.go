package cartRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"coursecart/database"
	"coursecart/models"
)

type mongoCartRepo struct {
	coll *mongo.Collection
}

// NewMongoCartRepo constructs a MongoDB-backed CartRepository.
func NewMongoCartRepo() CartRepository {
	db := database.MongoClient.Database("coursecart")
	return &mongoCartRepo{
		coll: db.Collection("cartItems"),
	}
}

func (r *mongoCartRepo) AddLineItem(ctx context.Context, item *models.LineItem) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, item); err != nil {
		return fmt.Errorf("add line item %s to cart: %w", item.ID, err)
	}
	return nil
}
