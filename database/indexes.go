package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// collection names
const (
	CollectionSections   = "showcasesections"
	CollectionVideos     = "ytvideos"
	CollectionReviews    = "reviews"
	CollectionProducts   = "products"
	CollectionBrands     = "brands"
	CollectionCategories = "categories"
	CollectionUsers      = "users"
)

// EnsureIndexes creates the indexes the models rely on (idempotent)
func EnsureIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	// one review per user and product
	_, err := db.Collection(CollectionReviews).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}, {Key: "product", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("user_product_unique"),
	})
	if err != nil {
		return err
	}

	// listing order (public & admin)
	_, err = db.Collection(CollectionSections).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "displayOrder", Value: 1}, {Key: "_id", Value: -1}}},
		{Keys: bson.D{{Key: "isActive", Value: 1}, {Key: "visibility.endDate", Value: 1}}},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(CollectionVideos).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "order", Value: 1}, {Key: "_id", Value: -1}},
	})
	return err
}
