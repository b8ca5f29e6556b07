package memstore

import (
	"sort"
	"sync"
	"time"

	"showcase-api/apperror"
	"showcase-api/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reviews implements models.ReviewStore
type Reviews struct {
	mu   sync.Mutex
	data map[primitive.ObjectID]models.Review
}

// NewReviews returns an empty store
func NewReviews() *Reviews {
	return &Reviews{data: make(map[primitive.ObjectID]models.Review)}
}

// Insert enforces one review per user and product
func (m *Reviews) Insert(r *models.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.data {
		if existing.User == r.User && existing.Product == r.Product {
			return models.ErrReviewExists
		}
	}
	m.data[r.ID] = *r
	return nil
}

// FindByProduct lists newest first
func (m *Reviews) FindByProduct(productID primitive.ObjectID, status string) ([]models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	reviews := []models.Review{}
	for _, r := range m.data {
		if r.Product == productID && r.Status == status {
			reviews = append(reviews, r)
		}
	}
	sort.Slice(reviews, func(i, j int) bool {
		return reviews[i].ID.Hex() > reviews[j].ID.Hex()
	})
	return reviews, nil
}

// SetStatus moderates a review
func (m *Reviews) SetStatus(id primitive.ObjectID, status string, ts time.Time) (*models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.data[id]
	if !ok {
		return nil, apperror.ErrNoData
	}
	r.Status = status
	r.UpdatedTS = ts
	m.data[id] = r
	return &r, nil
}
