package memstore

import (
	"sync"

	"showcase-api/authorization"
	"showcase-api/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account known to the directory
type User struct {
	models.UserIdentity
	RoleCode int32
}

// Users serves identities (models) and credentials (authorization)
type Users struct {
	mu   sync.Mutex
	data map[primitive.ObjectID]User
}

// NewUsers returns an empty directory
func NewUsers() *Users {
	return &Users{data: make(map[primitive.ObjectID]User)}
}

// Put adds or replaces a user
func (m *Users) Put(u User) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[u.ID] = u
}

// GetUserRefs returns the identities of known users
func (m *Users) GetUserRefs(ids []primitive.ObjectID) (map[primitive.ObjectID]models.UserIdentity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	refs := make(map[primitive.ObjectID]models.UserIdentity)
	for _, id := range ids {
		if u, ok := m.data[id]; ok {
			refs[id] = u.UserIdentity
		}
	}
	return refs, nil
}

// GetCredentials returns the role of a user (guest if unknown)
func (m *Users) GetCredentials(userOID primitive.ObjectID) *authorization.Credentials {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.data[userOID]
	if !ok {
		return authorization.DefaultProfile()
	}
	return &authorization.Credentials{UserID: u.ID, RoleCode: u.RoleCode}
}
