package models

import (
	"context"
	"time"

	"showcase-api/apperror"
	"showcase-api/helpers"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// engagement counters (meta.*)
const (
	CounterImpressions = "impressions"
	CounterClicks      = "clicks"
)

// DisplayOrder is one entry of a bulk re-order
type DisplayOrder struct {
	ID           primitive.ObjectID
	DisplayOrder int
}

// SectionStore persists showcase sections
type SectionStore interface {
	Count(q SectionQuery) (int64, error)
	Find(q SectionQuery, skip int64, limit int64) ([]ShowcaseSection, error)
	FindByID(id primitive.ObjectID) (*ShowcaseSection, error)
	Insert(s *ShowcaseSection) error
	// Save writes the editable fields and returns the stored section (counters are left alone)
	Save(s *ShowcaseSection) (*ShowcaseSection, error)
	Delete(id primitive.ObjectID) error
	// SetDisplayOrders applies independent updates (not atomic across sections)
	SetDisplayOrders(orders []DisplayOrder, updatedBy primitive.ObjectID, ts time.Time) error
	// Increment adds 1 to a counter of an active section and returns the updated section
	Increment(id primitive.ObjectID, counter string) (*ShowcaseSection, error)
}

// SectionCollection is the MongoDB implementation
type SectionCollection struct {
	Collection *mongo.Collection
}

// Count returns the number of sections matching the query
func (m SectionCollection) Count(q SectionQuery) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	cnt, err := m.Collection.CountDocuments(ctx, q.Filter())
	if err != nil {
		return 0, helpers.WrapError(err, helpers.FuncName())
	}
	return cnt, nil
}

// Find returns one page of sections in listing order
func (m SectionCollection) Find(q SectionQuery, skip int64, limit int64) ([]ShowcaseSection, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	opts := options.Find().SetSort(SectionSort()).SetSkip(skip).SetLimit(limit)

	cursor, err := m.Collection.Find(ctx, q.Filter(), opts)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	sections := []ShowcaseSection{}
	if err = cursor.All(ctx, &sections); err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}
	return sections, nil
}

// FindByID returns a single section (apperror.ErrNoData if it does not exist)
func (m SectionCollection) FindByID(id primitive.ObjectID) (*ShowcaseSection, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	var s ShowcaseSection
	err := m.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&s)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperror.ErrNoData
		}
		return nil, helpers.WrapError(err, helpers.FuncName())
	}
	return &s, nil
}

// Insert stores a new section (ID set by the caller)
func (m SectionCollection) Insert(s *ShowcaseSection) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	_, err := m.Collection.InsertOne(ctx, s)
	if err != nil {
		return helpers.WrapError(err, helpers.FuncName())
	}
	return nil
}

// Save sets the editable fields; meta.clicks/impressions are only changed by Increment
func (m SectionCollection) Save(s *ShowcaseSection) (*ShowcaseSection, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "title", Value: s.Title},
		{Key: "subtitle", Value: s.Subtitle},
		{Key: "type", Value: s.Type},
		{Key: "products", Value: s.Products},
		{Key: "displayOrder", Value: s.DisplayOrder},
		{Key: "isActive", Value: s.IsActive},
		{Key: "showViewAll", Value: s.ShowViewAll},
		{Key: "viewAllLink", Value: s.ViewAllLink},
		{Key: "timerConfig", Value: s.TimerConfig},
		{Key: "styleConfig", Value: s.StyleConfig},
		{Key: "visibility", Value: s.Visibility},
		{Key: "meta.createdBy", Value: s.Meta.CreatedBy},
		{Key: "meta.updatedBy", Value: s.Meta.UpdatedBy},
		{Key: "updatedAt", Value: s.UpdatedTS},
	}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var saved ShowcaseSection
	err := m.Collection.FindOneAndUpdate(ctx, bson.M{"_id": s.ID}, update, opts).Decode(&saved)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperror.ErrNoData
		}
		return nil, helpers.WrapError(err, helpers.FuncName())
	}
	return &saved, nil
}

// Delete removes a section for good
func (m SectionCollection) Delete(id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	res, err := m.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return helpers.WrapError(err, helpers.FuncName())
	}
	if res.DeletedCount == 0 {
		return apperror.ErrNoData
	}
	return nil
}

// SetDisplayOrders runs one unordered bulk write; failed entries are not rolled back
func (m SectionCollection) SetDisplayOrders(orders []DisplayOrder, updatedBy primitive.ObjectID, ts time.Time) error {
	writes := make([]mongo.WriteModel, 0, len(orders))
	for _, o := range orders {
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": o.ID}).
			SetUpdate(bson.D{{Key: "$set", Value: bson.D{
				{Key: "displayOrder", Value: o.DisplayOrder},
				{Key: "meta.updatedBy", Value: updatedBy},
				{Key: "updatedAt", Value: ts},
			}}}))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	_, err := m.Collection.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return helpers.WrapError(err, helpers.FuncName())
	}
	return nil
}

// Increment uses $inc so concurrent hits are not lost
func (m SectionCollection) Increment(id primitive.ObjectID, counter string) (*ShowcaseSection, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	filter := bson.D{
		{Key: "_id", Value: id},
		{Key: "isActive", Value: true},
	}
	update := bson.D{{Key: "$inc", Value: bson.D{{Key: "meta." + counter, Value: 1}}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var s ShowcaseSection
	err := m.Collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&s)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperror.ErrNoData
		}
		return nil, helpers.WrapError(err, helpers.FuncName())
	}
	return &s, nil
}
