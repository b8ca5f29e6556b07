package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Meta is embedded into showcase sections (editors & engagement counters)
type Meta struct {
	CreatedBy   primitive.ObjectID `json:"createdBy" bson:"createdBy"`
	UpdatedBy   primitive.ObjectID `json:"updatedBy" bson:"updatedBy"`
	Clicks      int64              `json:"clicks" bson:"clicks"`           // only ever incremented
	Impressions int64              `json:"impressions" bson:"impressions"` // only ever incremented
}

// UserIdentity is the populated reference to an editor (admin views)
type UserIdentity struct {
	ID    primitive.ObjectID `json:"id" bson:"_id"`
	Name  string             `json:"name" bson:"name"`
	EMail string             `json:"email" bson:"email"`
}

// AdminMeta replaces Meta in admin views
type AdminMeta struct {
	CreatedBy   *UserIdentity `json:"createdBy"`
	UpdatedBy   *UserIdentity `json:"updatedBy"`
	Clicks      int64         `json:"clicks"`
	Impressions int64         `json:"impressions"`
}

// createdTS is read from Mongo's ObjectID
func createdTS(id primitive.ObjectID) time.Time {
	if id.IsZero() {
		return time.Time{}
	}
	return id.Timestamp()
}
