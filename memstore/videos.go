package memstore

import (
	"sort"
	"sync"

	"showcase-api/apperror"
	"showcase-api/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Videos implements models.VideoStore
type Videos struct {
	mu   sync.Mutex
	data map[primitive.ObjectID]models.YTVideo
}

// NewVideos returns an empty store
func NewVideos() *Videos {
	return &Videos{data: make(map[primitive.ObjectID]models.YTVideo)}
}

// FindAll lists order asc, newest first
func (m *Videos) FindAll(activeOnly bool) ([]models.YTVideo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	videos := []models.YTVideo{}
	for _, v := range m.data {
		if activeOnly && !v.IsActive {
			continue
		}
		videos = append(videos, v)
	}

	sort.SliceStable(videos, func(i, j int) bool {
		if videos[i].Order != videos[j].Order {
			return videos[i].Order < videos[j].Order
		}
		return videos[i].ID.Hex() > videos[j].ID.Hex()
	})
	return videos, nil
}

// FindByID returns a copy of the video
func (m *Videos) FindByID(id primitive.ObjectID) (*models.YTVideo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.data[id]
	if !ok {
		return nil, apperror.ErrNoData
	}
	return &v, nil
}

// Insert stores a new video
func (m *Videos) Insert(v *models.YTVideo) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[v.ID] = *v
	return nil
}

// Replace overwrites an existing video
func (m *Videos) Replace(v *models.YTVideo) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.data[v.ID]; !ok {
		return apperror.ErrNoData
	}
	m.data[v.ID] = *v
	return nil
}

// Delete removes a video
func (m *Videos) Delete(id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.data[id]; !ok {
		return apperror.ErrNoData
	}
	delete(m.data, id)
	return nil
}
