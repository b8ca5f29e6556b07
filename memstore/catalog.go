package memstore

import (
	"sync"

	"showcase-api/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalog entry as the shop service stores it
type Product struct {
	models.ProductCard
	IsActive    bool
	IsPublished bool
}

// Catalog implements models.ProductCatalog
type Catalog struct {
	mu   sync.Mutex
	data map[primitive.ObjectID]Product
}

// NewCatalog returns an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{data: make(map[primitive.ObjectID]Product)}
}

// Put adds or replaces a product
func (m *Catalog) Put(p Product) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[p.ID] = p
}

// CountActive counts the distinct active products of ids
func (m *Catalog) CountActive(ids []primitive.ObjectID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	seen := make(map[primitive.ObjectID]bool)
	for _, id := range ids {
		if p, ok := m.data[id]; ok && p.IsActive {
			seen[id] = true
		}
	}
	return len(seen), nil
}

// Available reports whether a product is active and published
func (m *Catalog) Available(id primitive.ObjectID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.data[id]
	return ok && p.IsActive && p.IsPublished, nil
}

// Cards expands to active & published products in reference order
func (m *Catalog) Cards(ids []primitive.ObjectID) ([]models.ProductCard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cards := []models.ProductCard{}
	seen := make(map[primitive.ObjectID]bool)
	for _, id := range ids {
		p, ok := m.data[id]
		if !ok || !p.IsActive || !p.IsPublished || seen[id] {
			continue
		}
		seen[id] = true
		cards = append(cards, p.ProductCard)
	}
	return cards, nil
}

// Light expands to the admin projection in reference order
func (m *Catalog) Light(ids []primitive.ObjectID) ([]models.ProductLight, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	products := []models.ProductLight{}
	seen := make(map[primitive.ObjectID]bool)
	for _, id := range ids {
		p, ok := m.data[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		products = append(products, models.ProductLight{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price,
			Images:   p.Images,
			IsActive: p.IsActive,
		})
	}
	return products, nil
}
