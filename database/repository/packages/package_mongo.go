package packageRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"coursecart/database"
	"coursecart/models"
)

type mongoPackageRepo struct {
	coll *mongo.Collection
}

// NewMongoPackageRepo constructs a MongoDB-backed PackageRepository.
func NewMongoPackageRepo() PackageRepository {
	db := database.MongoClient.Database("coursecart")
	return &mongoPackageRepo{
		coll: db.Collection("packages"),
	}
}

func (r *mongoPackageRepo) GetByID(ctx context.Context, id string) (*models.Package, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var pkg models.Package
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&pkg)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("package %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get package %s: %w", id, err)
	}
	return &pkg, nil
}

func (r *mongoPackageRepo) List(ctx context.Context) ([]models.Package, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}
	defer cursor.Close(ctx)

	var pkgs []models.Package
	if err := cursor.All(ctx, &pkgs); err != nil {
		return nil, fmt.Errorf("decode packages: %w", err)
	}
	return pkgs, nil
}
