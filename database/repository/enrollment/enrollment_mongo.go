package enrollmentRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"coursecart/database"
)

type mongoEnrollmentRepo struct {
	coll *mongo.Collection
}

// NewMongoEnrollmentRepo constructs a MongoDB-backed EnrollmentRepository.
func NewMongoEnrollmentRepo() EnrollmentRepository {
	db := database.MongoClient.Database("coursecart")
	return &mongoEnrollmentRepo{
		coll: db.Collection("enrollments"),
	}
}

func (r *mongoEnrollmentRepo) IsEnrolled(ctx context.Context, userID, sessionID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"userId": userID, "sessionId": sessionID}
	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("check enrollment for session %s: %w", sessionID, err)
	}
	return count > 0, nil
}
