package models

import (
	"context"
	"sort"
	"time"

	"showcase-api/helpers"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ProductRef is the summary of a brand or category
type ProductRef struct {
	ID   primitive.ObjectID `json:"id" bson:"_id"`
	Name string             `json:"name" bson:"name"`
	Slug string             `json:"slug" bson:"slug"`
}

// ProductCard is the public projection of a catalog product
type ProductCard struct {
	ID            primitive.ObjectID `json:"id" bson:"_id"`
	Name          string             `json:"name" bson:"name"`
	Slug          string             `json:"slug" bson:"slug"`
	Price         float64            `json:"price" bson:"price"`
	DiscountPrice *float64           `json:"discountPrice,omitempty" bson:"discountPrice,omitempty"`
	Images        []string           `json:"images" bson:"images"`
	Stock         int                `json:"stock" bson:"stock"`
	Brand         *ProductRef        `json:"brand,omitempty" bson:"brand,omitempty"`
	Category      *ProductRef        `json:"category,omitempty" bson:"category,omitempty"`
}

// ProductLight is the reduced projection used by admin listings
type ProductLight struct {
	ID       primitive.ObjectID `json:"id" bson:"_id"`
	Name     string             `json:"name" bson:"name"`
	Price    float64            `json:"price" bson:"price"`
	Images   []string           `json:"images" bson:"images"`
	IsActive bool               `json:"isActive" bson:"isActive"`
}

// ProductCatalog is the read-only view on the shop's products (owned by another service)
type ProductCatalog interface {
	// CountActive counts the distinct products of ids with isActive=true
	CountActive(ids []primitive.ObjectID) (int, error)
	// Available reports whether a product is active and published
	Available(id primitive.ObjectID) (bool, error)
	// Cards expands ids to active & published products (order of ids preserved)
	Cards(ids []primitive.ObjectID) ([]ProductCard, error)
	// Light expands ids regardless of status (order of ids preserved)
	Light(ids []primitive.ObjectID) ([]ProductLight, error)
}

// CatalogModel reads the catalog collections
type CatalogModel struct {
	Products   *mongo.Collection
	Brands     string // collection names used by $lookup
	Categories string
}

// filter on products that may be shown to visitors
func publishedFilter(ids []primitive.ObjectID) bson.D {
	return bson.D{
		{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}},
		{Key: "isActive", Value: true},
		{Key: "isPublished", Value: true},
	}
}

// CountActive counts the referenced products which are active
func (m CatalogModel) CountActive(ids []primitive.ObjectID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	filter := bson.D{
		{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}},
		{Key: "isActive", Value: true},
	}

	cnt, err := m.Products.CountDocuments(ctx, filter)
	if err != nil {
		return 0, helpers.WrapError(err, helpers.FuncName())
	}
	return int(cnt), nil
}

// Available checks a single product (used by reviews)
func (m CatalogModel) Available(id primitive.ObjectID) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	cnt, err := m.Products.CountDocuments(ctx, publishedFilter([]primitive.ObjectID{id}))
	if err != nil {
		return false, helpers.WrapError(err, helpers.FuncName())
	}
	return cnt > 0, nil
}

// Cards returns the public product projection including brand and category summaries
func (m CatalogModel) Cards(ids []primitive.ObjectID) ([]ProductCard, error) {
	if len(ids) == 0 {
		return []ProductCard{}, nil
	}

	// there are no joins in MongoDB, $lookup does the job in one round-trip
	summary := func(from string, field string) []bson.D {
		return []bson.D{
			{{Key: "$lookup", Value: bson.D{
				{Key: "from", Value: from},
				{Key: "localField", Value: field},
				{Key: "foreignField", Value: "_id"},
				{Key: "as", Value: field},
			}}},
			{{Key: "$unwind", Value: bson.D{
				{Key: "path", Value: "$" + field},
				{Key: "preserveNullAndEmptyArrays", Value: true},
			}}},
		}
	}

	pipeline := mongo.Pipeline{{{Key: "$match", Value: publishedFilter(ids)}}}
	pipeline = append(pipeline, summary(m.Brands, "brand")...)
	pipeline = append(pipeline, summary(m.Categories, "category")...)
	pipeline = append(pipeline, bson.D{{Key: "$project", Value: bson.D{
		{Key: "name", Value: 1},
		{Key: "slug", Value: 1},
		{Key: "price", Value: 1},
		{Key: "discountPrice", Value: 1},
		{Key: "images", Value: 1},
		{Key: "stock", Value: 1},
		{Key: "brand._id", Value: 1},
		{Key: "brand.name", Value: 1},
		{Key: "brand.slug", Value: 1},
		{Key: "category._id", Value: 1},
		{Key: "category.name", Value: 1},
		{Key: "category.slug", Value: 1},
	}}})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	cursor, err := m.Products.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	products := []ProductCard{}
	if err = cursor.All(ctx, &products); err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	rank := referenceRank(ids)
	sort.SliceStable(products, func(i, j int) bool {
		return rank[products[i].ID] < rank[products[j].ID]
	})

	return products, nil
}

// Light returns the reduced projection for admin views
func (m CatalogModel) Light(ids []primitive.ObjectID) ([]ProductLight, error) {
	if len(ids) == 0 {
		return []ProductLight{}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}}}},
		{{Key: "$project", Value: bson.D{
			{Key: "name", Value: 1},
			{Key: "price", Value: 1},
			{Key: "images", Value: 1},
			{Key: "isActive", Value: 1},
		}}},
	}

	cursor, err := m.Products.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	products := []ProductLight{}
	if err = cursor.All(ctx, &products); err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	rank := referenceRank(ids)
	sort.SliceStable(products, func(i, j int) bool {
		return rank[products[i].ID] < rank[products[j].ID]
	})

	return products, nil
}

// referenceRank maps each id to its first position in the reference list
func referenceRank(ids []primitive.ObjectID) map[primitive.ObjectID]int {
	rank := make(map[primitive.ObjectID]int, len(ids))
	for i, id := range ids {
		if _, ok := rank[id]; !ok {
			rank[id] = i
		}
	}
	return rank
}
