package models

import (
	"context"
	"time"

	"showcase-api/helpers"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserModel reads identities of editors and reviewers
// (accounts are managed by the identity service)
type UserModel struct {
	Collection *mongo.Collection
}

// GetUserRefs returns name and e-mail of the given users (unknown ids are missing in the map)
func (m UserModel) GetUserRefs(ids []primitive.ObjectID) (map[primitive.ObjectID]UserIdentity, error) {
	refs := make(map[primitive.ObjectID]UserIdentity)
	if len(ids) == 0 {
		return refs, nil
	}

	fields := bson.D{
		{Key: "_id", Value: 1},
		{Key: "name", Value: 1},
		{Key: "email", Value: 1},
	}
	opts := options.Find().SetProjection(fields)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	cursor, err := m.Collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	var users []UserIdentity
	if err = cursor.All(ctx, &users); err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	for _, u := range users {
		refs[u.ID] = u
	}

	return refs, nil
}
