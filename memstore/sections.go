// Package memstore keeps all data in memory (DB_DRIVER=memory and tests).
package memstore

import (
	"sync"
	"time"

	"showcase-api/apperror"
	"showcase-api/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sections implements models.SectionStore
type Sections struct {
	mu   sync.Mutex
	data map[primitive.ObjectID]models.ShowcaseSection
}

// NewSections returns an empty store
func NewSections() *Sections {
	return &Sections{data: make(map[primitive.ObjectID]models.ShowcaseSection)}
}

// Count returns the number of matching sections
func (m *Sections) Count(q models.SectionQuery) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var cnt int64
	for _, s := range m.data {
		s := s
		if q.Matches(&s) {
			cnt++
		}
	}
	return cnt, nil
}

// Find returns one page in listing order
func (m *Sections) Find(q models.SectionQuery, skip int64, limit int64) ([]models.ShowcaseSection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	matches := []models.ShowcaseSection{}
	for _, s := range m.data {
		s := s
		if q.Matches(&s) {
			matches = append(matches, cloneSection(s))
		}
	}
	models.SortSections(matches)

	if skip < 0 {
		skip = 0
	}
	if skip >= int64(len(matches)) {
		return []models.ShowcaseSection{}, nil
	}
	end := int64(len(matches))
	if limit > 0 && skip+limit < end {
		end = skip + limit
	}
	return matches[skip:end], nil
}

// FindByID returns a copy of the section
func (m *Sections) FindByID(id primitive.ObjectID) (*models.ShowcaseSection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.data[id]
	if !ok {
		return nil, apperror.ErrNoData
	}
	c := cloneSection(s)
	return &c, nil
}

// Insert stores a new section
func (m *Sections) Insert(s *models.ShowcaseSection) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[s.ID] = cloneSection(*s)
	return nil
}

// Save overwrites an existing section but keeps its stored counters
func (m *Sections) Save(s *models.ShowcaseSection) (*models.ShowcaseSection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.data[s.ID]
	if !ok {
		return nil, apperror.ErrNoData
	}

	saved := cloneSection(*s)
	saved.Meta.Clicks = stored.Meta.Clicks
	saved.Meta.Impressions = stored.Meta.Impressions
	m.data[s.ID] = saved

	c := cloneSection(saved)
	return &c, nil
}

// Delete removes a section
func (m *Sections) Delete(id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.data[id]; !ok {
		return apperror.ErrNoData
	}
	delete(m.data, id)
	return nil
}

// SetDisplayOrders updates every known id, unknown ids are skipped
func (m *Sections) SetDisplayOrders(orders []models.DisplayOrder, updatedBy primitive.ObjectID, ts time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, o := range orders {
		s, ok := m.data[o.ID]
		if !ok {
			continue
		}
		s.DisplayOrder = o.DisplayOrder
		s.Meta.UpdatedBy = updatedBy
		s.UpdatedTS = ts
		m.data[o.ID] = s
	}
	return nil
}

// Increment adds 1 to a counter of an active section
func (m *Sections) Increment(id primitive.ObjectID, counter string) (*models.ShowcaseSection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.data[id]
	if !ok || !s.IsActive {
		return nil, apperror.ErrNoData
	}

	switch counter {
	case models.CounterImpressions:
		s.Meta.Impressions++
	case models.CounterClicks:
		s.Meta.Clicks++
	}
	m.data[id] = s

	c := cloneSection(s)
	return &c, nil
}

// cloneSection copies slices and dates so callers never share memory with the store
func cloneSection(s models.ShowcaseSection) models.ShowcaseSection {
	c := s
	c.Products = append([]primitive.ObjectID{}, s.Products...)
	c.Visibility.ShowInCategory = append([]primitive.ObjectID{}, s.Visibility.ShowInCategory...)
	c.TimerConfig.EndDate = cloneTime(s.TimerConfig.EndDate)
	c.Visibility.StartDate = cloneTime(s.Visibility.StartDate)
	c.Visibility.EndDate = cloneTime(s.Visibility.EndDate)
	return c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
