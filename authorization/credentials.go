package authorization

import (
	"context"
	"net/http"
	"time"

	"showcase-api/authentication"
	"showcase-api/helpers"
	"showcase-api/lookups"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Functions to check permissions
// without dependencies to the models

// Credentials of an account (permissions only)
type Credentials struct {
	UserID   primitive.ObjectID `bson:"_id"`
	RoleCode int32              `bson:"roleCD"`
}

// CredentialsReader is implemented by every user directory (mongo, memory)
type CredentialsReader interface {
	GetCredentials(userOID primitive.ObjectID) *Credentials
}

// Directory reads credentials from the users collection
type Directory struct {
	userCol *mongo.Collection
}

// NewDirectory is called in Env initialization
func NewDirectory(userCol *mongo.Collection) *Directory {
	return &Directory{userCol: userCol}
}

// GetCredentials returns account infos to control permissions
// any error is considered an anonymous user (visitor)
func (d *Directory) GetCredentials(userOID primitive.ObjectID) *Credentials {
	var credentials Credentials

	opts := options.FindOne().SetProjection(bson.D{{Key: "roleCD", Value: 1}})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	err := d.userCol.FindOne(ctx, bson.M{"_id": userOID}, opts).Decode(&credentials)
	if err != nil {
		return DefaultProfile()
	}

	return &credentials
}

// DefaultProfile is used as the error handler of GetCredentials
func DefaultProfile() *Credentials {
	return &Credentials{
		UserID:   primitive.NilObjectID,
		RoleCode: lookups.URguest,
	}
}

// AuthorizeRoles lets only users with one of the given roles pass
// (must run after authentication.IsAuthenticatedUser)
func AuthorizeRoles(reader CredentialsReader, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := authentication.UserID(c)
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": authentication.ErrNotLoggedIn.Error()})
			c.Abort()
			return
		}

		credentials := reader.GetCredentials(helpers.ObjectID(userID))
		role := lookups.UserRole(credentials.RoleCode)

		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": "role (" + role + ") is not allowed to access this resource",
		})
		c.Abort()
	}
}
