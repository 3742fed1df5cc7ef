package catalogRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"coursecart/database"
	"coursecart/models"
)

type mongoSessionCatalog struct {
	coll *mongo.Collection
}

// NewMongoSessionCatalog constructs a SessionCatalog backed by MongoDB.
func NewMongoSessionCatalog() SessionCatalog {
	db := database.MongoClient.Database("coursecart")
	return &mongoSessionCatalog{
		coll: db.Collection("sessions"),
	}
}

// FetchByDate returns every session starting on the given calendar day,
// ordered by start time.
func (r *mongoSessionCatalog) FetchByDate(ctx context.Context, date time.Time) ([]models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	y, m, d := date.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	filter := bson.M{"start": bson.M{"$gte": dayStart, "$lt": dayEnd}}
	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch by date %s: %v", ErrCatalogUnavailable, dayStart.Format("2006-01-02"), err)
	}
	defer cursor.Close(ctx)

	var sessions []models.Session
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("%w: decode sessions: %v", ErrCatalogUnavailable, err)
	}
	return sessions, nil
}

// FetchByCycle returns every session belonging to a billing cycle, ordered
// by start time.
func (r *mongoSessionCatalog) FetchByCycle(ctx context.Context, cycleID string) ([]models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"cycleId": cycleID}
	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch by cycle %s: %v", ErrCatalogUnavailable, cycleID, err)
	}
	defer cursor.Close(ctx)

	var sessions []models.Session
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("%w: decode sessions: %v", ErrCatalogUnavailable, err)
	}
	return sessions, nil
}
