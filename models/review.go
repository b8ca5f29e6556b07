package models

import (
	"context"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"showcase-api/apperror"
	"showcase-api/helpers"
	"showcase-api/lookups"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Review is a customer's rating of a product
type Review struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	User      primitive.ObjectID `json:"user" bson:"user"`
	UserName  string             `json:"userName,omitempty" bson:"-"`
	Product   primitive.ObjectID `json:"product" bson:"product"`
	Rating    int                `json:"rating" bson:"rating"`
	Comment   string             `json:"comment" bson:"comment"`
	Status    string             `json:"status" bson:"status"`
	CreatedTS time.Time          `json:"createdAt" bson:"-"` // CreatedTS is read from Mongo's ObjectID
	UpdatedTS time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ReviewInput is sent by customers
type ReviewInput struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=1000"`
}

// ProductReviews lists the approved reviews of a product
type ProductReviews struct {
	Reviews       []Review `json:"reviews"`
	Count         int      `json:"count"`
	AverageRating float64  `json:"averageRating"`
}

// ReviewStore persists reviews
type ReviewStore interface {
	// Insert fails with ErrReviewExists if the user already reviewed the product
	Insert(r *Review) error
	// FindByProduct lists newest first
	FindByProduct(productID primitive.ObjectID, status string) ([]Review, error)
	SetStatus(id primitive.ObjectID, status string, ts time.Time) (*Review, error)
}

// ReviewCollection is the MongoDB implementation (unique index on user/product)
type ReviewCollection struct {
	Collection *mongo.Collection
}

// Insert stores a new review
func (m ReviewCollection) Insert(r *Review) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	_, err := m.Collection.InsertOne(ctx, r)
	if err != nil {
		if helpers.IsDuplicateKey(err) {
			return ErrReviewExists
		}
		return helpers.WrapError(err, helpers.FuncName())
	}
	return nil
}

// FindByProduct lists the reviews of a product with the given status
func (m ReviewCollection) FindByProduct(productID primitive.ObjectID, status string) ([]Review, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	filter := bson.D{
		{Key: "product", Value: productID},
		{Key: "status", Value: status},
	}
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})

	cursor, err := m.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	reviews := []Review{}
	if err = cursor.All(ctx, &reviews); err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}
	return reviews, nil
}

// SetStatus moderates a review
func (m ReviewCollection) SetStatus(id primitive.ObjectID, status string, ts time.Time) (*Review, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "status", Value: status},
		{Key: "updatedAt", Value: ts},
	}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var r Review
	err := m.Collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&r)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperror.ErrNoData
		}
		return nil, helpers.WrapError(err, helpers.FuncName())
	}
	return &r, nil
}

// ReviewModel provides the logic of product reviews
type ReviewModel struct {
	Reviews    ReviewStore
	Catalog    ProductCatalog
	Moderation bool // new reviews wait for approval
	// injected from the user model
	GetUserRefs func(ids []primitive.ObjectID) (map[primitive.ObjectID]UserIdentity, error)
	Now         func() time.Time
}

func (m ReviewModel) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

// Validate checks the customer's input
func (m ReviewModel) Validate(input ReviewInput) (*ReviewInput, error) {
	cleaned := input
	cleaned.Comment = strings.TrimSpace(cleaned.Comment)

	if cleaned.Rating < 1 || cleaned.Rating > 5 {
		return nil, ErrInvalidRating
	}
	if utf8.RuneCountInString(cleaned.Comment) > 1000 {
		return nil, ErrCommentTooLong
	}
	return &cleaned, nil
}

// Create adds the review of a user (one per product)
func (m ReviewModel) Create(productID string, userID primitive.ObjectID, input ReviewInput) (*Review, error) {
	pid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, ErrInvalidID
	}

	cleaned, err := m.Validate(input)
	if err != nil {
		return nil, err
	}

	ok, err := m.Catalog.Available(pid)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.ErrNoData
	}

	status := lookups.ReviewApproved
	if m.Moderation {
		status = lookups.ReviewPending
	}

	r := &Review{
		ID:        primitive.NewObjectID(),
		User:      userID,
		Product:   pid,
		Rating:    cleaned.Rating,
		Comment:   cleaned.Comment,
		Status:    status,
		UpdatedTS: m.now(),
	}

	if err = m.Reviews.Insert(r); err != nil {
		return nil, err
	}
	r.CreatedTS = createdTS(r.ID)
	return r, nil
}

// ListForProduct returns the approved reviews and their average rating
func (m ReviewModel) ListForProduct(productID string) (*ProductReviews, error) {
	pid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, ErrInvalidID
	}

	reviews, err := m.Reviews.FindByProduct(pid, lookups.ReviewApproved)
	if err != nil {
		return nil, err
	}

	refs := map[primitive.ObjectID]UserIdentity{}
	if m.GetUserRefs != nil && len(reviews) > 0 {
		ids := make([]primitive.ObjectID, 0, len(reviews))
		for _, r := range reviews {
			ids = append(ids, r.User)
		}
		refs, err = m.GetUserRefs(ids)
		if err != nil {
			return nil, err
		}
	}

	sum := 0
	for i := range reviews {
		reviews[i].CreatedTS = createdTS(reviews[i].ID)
		reviews[i].UserName = refs[reviews[i].User].Name
		sum += reviews[i].Rating
	}

	result := &ProductReviews{Reviews: reviews, Count: len(reviews)}
	if len(reviews) > 0 {
		result.AverageRating = math.Round(float64(sum)/float64(len(reviews))*10) / 10
	}
	return result, nil
}

// SetStatus approves or rejects a review
func (m ReviewModel) SetStatus(id string, status string) (*Review, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	if !lookups.IsValid(status, lookups.ReviewStatuses()) {
		return nil, ErrInvalidReviewStatus
	}

	r, err := m.Reviews.SetStatus(oid, status, m.now())
	if err != nil {
		return nil, err
	}
	r.CreatedTS = createdTS(r.ID)
	return r, nil
}
