package memstore

import (
	"context"
	"sync"
	"time"

	"showcase-api/authentication"
)

type token struct {
	userID  string
	expires time.Time
}

// Tokens implements authentication.TokenStore
type Tokens struct {
	mu   sync.Mutex
	data map[string]token
}

// NewTokens returns an empty registry
func NewTokens() *Tokens {
	return &Tokens{data: make(map[string]token)}
}

// Register stores the token until ttl has passed
func (m *Tokens) Register(_ context.Context, tokenUUID string, userID string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[tokenUUID] = token{userID: userID, expires: time.Now().Add(ttl)}
	return nil
}

// Lookup returns the user of a registered, unexpired token
func (m *Tokens) Lookup(_ context.Context, tokenUUID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.data[tokenUUID]
	if !ok {
		return "", authentication.ErrUnauthorized
	}
	if time.Now().After(t.expires) {
		delete(m.data, tokenUUID)
		return "", authentication.ErrUnauthorized
	}
	return t.userID, nil
}
