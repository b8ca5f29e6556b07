package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EngagementTracker receives impressions and clicks for time-based statistics
type EngagementTracker interface {
	Record(sectionID primitive.ObjectID, counter string)
	// Window returns the counts per counter of the last period (nil if analytics is disabled)
	Window(sectionID primitive.ObjectID, period time.Duration) (map[string]int64, error)
}

// ShowcaseModel provides the logic to the interface and access to the database
type ShowcaseModel struct {
	Sections SectionStore
	Catalog  ProductCatalog
	Tracker  EngagementTracker
	// injected from the user model
	GetUserRefs func(ids []primitive.ObjectID) (map[primitive.ObjectID]UserIdentity, error)
	Now         func() time.Time
}

// PublicListing is one page of the storefront sections
type PublicListing struct {
	Sections      []PublicSection
	Count         int   // sections on this page (after dropping empty ones)
	TotalSections int64 // matching sections (before dropping empty ones)
	TotalPages    int64
	CurrentPage   int
}

// AdminListing is one page of the admin panel
type AdminListing struct {
	Sections      []AdminSection
	Count         int
	TotalSections int64
	TotalPages    int64
	CurrentPage   int
}

// SectionStats summarizes the engagement of a section
type SectionStats struct {
	ID          primitive.ObjectID `json:"id"`
	Title       string             `json:"title"`
	IsActive    bool               `json:"isActive"`
	Impressions int64              `json:"impressions"`
	Clicks      int64              `json:"clicks"`
	ClickRate   float64            `json:"clickRate"`        // clicks per impression
	Last24h     map[string]int64   `json:"last24h,omitempty"` // analytics store only
}

func (m ShowcaseModel) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

func (m ShowcaseModel) track(id primitive.ObjectID, counter string) {
	if m.Tracker != nil {
		m.Tracker.Record(id, counter)
	}
}

// ListPublic returns the visible sections with their active & published products
func (m ShowcaseModel) ListPublic(page Page, sectionType string, showOnHomepage *bool) (*PublicListing, error) {
	now := m.now()
	q := SectionQuery{PublicAt: &now, Type: sectionType, ShowOnHomepage: showOnHomepage}

	total, err := m.Sections.Count(q)
	if err != nil {
		return nil, err
	}

	sections, err := m.Sections.Find(q, page.Skip(), int64(page.Limit))
	if err != nil {
		return nil, err
	}

	result := &PublicListing{
		Sections:      []PublicSection{},
		TotalSections: total,
		TotalPages:    page.TotalPages(total),
		CurrentPage:   page.Page,
	}

	for i := range sections {
		products, err := m.Catalog.Cards(sections[i].Products)
		if err != nil {
			return nil, err
		}
		// sections without sellable products are not shown (still counted in the totals)
		if len(products) == 0 {
			continue
		}
		sections[i].derive(now)
		result.Sections = append(result.Sections, PublicSection{ShowcaseSection: sections[i], Products: products})
	}
	result.Count = len(result.Sections)

	return result, nil
}

// GetPublic returns an active section and counts the impression
func (m ShowcaseModel) GetPublic(id string) (*PublicSection, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	s, err := m.Sections.Increment(oid, CounterImpressions)
	if err != nil {
		return nil, err
	}
	m.track(oid, CounterImpressions)

	products, err := m.Catalog.Cards(s.Products)
	if err != nil {
		return nil, err
	}

	s.derive(m.now())
	return &PublicSection{ShowcaseSection: *s, Products: products}, nil
}

// RecordClick counts a click on an active section and returns the new total
func (m ShowcaseModel) RecordClick(id string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, ErrInvalidID
	}

	s, err := m.Sections.Increment(oid, CounterClicks)
	if err != nil {
		return 0, err
	}
	m.track(oid, CounterClicks)

	return s.Meta.Clicks, nil
}

// ListAdmin returns all sections (no visibility window) with editor identities
func (m ShowcaseModel) ListAdmin(page Page, search string, isActive *bool) (*AdminListing, error) {
	q := SectionQuery{Search: search, IsActive: isActive}

	total, err := m.Sections.Count(q)
	if err != nil {
		return nil, err
	}

	sections, err := m.Sections.Find(q, page.Skip(), int64(page.Limit))
	if err != nil {
		return nil, err
	}

	views, err := m.adminViews(sections)
	if err != nil {
		return nil, err
	}

	return &AdminListing{
		Sections:      views,
		Count:         len(views),
		TotalSections: total,
		TotalPages:    page.TotalPages(total),
		CurrentPage:   page.Page,
	}, nil
}

// GetAdmin returns any section without touching the counters
func (m ShowcaseModel) GetAdmin(id string) (*AdminSection, error) {
	s, err := m.find(id)
	if err != nil {
		return nil, err
	}
	return m.adminView(s)
}

// Stats returns the counters and, if analytics is enabled, the counts of the last 24 hours
func (m ShowcaseModel) Stats(id string) (*SectionStats, error) {
	s, err := m.find(id)
	if err != nil {
		return nil, err
	}

	stats := &SectionStats{
		ID:          s.ID,
		Title:       s.Title,
		IsActive:    s.IsActive,
		Impressions: s.Meta.Impressions,
		Clicks:      s.Meta.Clicks,
	}
	if s.Meta.Impressions > 0 {
		stats.ClickRate = float64(s.Meta.Clicks) / float64(s.Meta.Impressions)
	}

	if m.Tracker != nil {
		stats.Last24h, err = m.Tracker.Window(s.ID, 24*time.Hour)
		if err != nil {
			return nil, err
		}
	}

	return stats, nil
}

// Create validates and stores a new section
func (m ShowcaseModel) Create(patch SectionPatch, userID primitive.ObjectID) (*ShowcaseSection, error) {
	s := newSection()

	if patch.Products != nil {
		ids, err := m.validateProducts(*patch.Products)
		if err != nil {
			return nil, err
		}
		s.Products = ids
	}

	if err := applyPatch(s, patch); err != nil {
		return nil, err
	}

	now := m.now()
	s.ID = primitive.NewObjectID()
	if s.ViewAllLink == "" {
		s.ViewAllLink = "/showcase/" + s.ID.Hex()
	}
	s.Meta = Meta{CreatedBy: userID, UpdatedBy: userID}
	s.UpdatedTS = now

	if err := m.Sections.Insert(s); err != nil {
		return nil, err
	}

	s.derive(now)
	return s, nil
}

// Update changes the sent fields only; products are replaced as a whole
func (m ShowcaseModel) Update(id string, patch SectionPatch, userID primitive.ObjectID) (*ShowcaseSection, error) {
	s, err := m.find(id)
	if err != nil {
		return nil, err
	}

	if patch.Products != nil {
		ids, err := m.validateProducts(*patch.Products)
		if err != nil {
			return nil, err
		}
		s.Products = ids
	}

	if err = applyPatch(s, patch); err != nil {
		return nil, err
	}

	now := m.now()
	if s.ViewAllLink == "" {
		s.ViewAllLink = "/showcase/" + s.ID.Hex()
	}
	s.Meta.UpdatedBy = userID
	s.UpdatedTS = now

	saved, err := m.Sections.Save(s)
	if err != nil {
		return nil, err
	}

	saved.derive(now)
	return saved, nil
}

// Delete removes a section
func (m ShowcaseModel) Delete(id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}
	return m.Sections.Delete(oid)
}

// ReorderInput is one entry of the bulk re-order request
type ReorderInput struct {
	ID           string `json:"id"`
	DisplayOrder *int   `json:"displayOrder"`
}

// ReorderBulk sets the display order of many sections at once
func (m ShowcaseModel) ReorderBulk(items []ReorderInput, userID primitive.ObjectID) error {
	if len(items) == 0 {
		return ErrInvalidReorder
	}

	orders := make([]DisplayOrder, 0, len(items))
	for _, it := range items {
		oid, err := primitive.ObjectIDFromHex(it.ID)
		if err != nil || it.DisplayOrder == nil || *it.DisplayOrder < 0 {
			return ErrInvalidReorder
		}
		orders = append(orders, DisplayOrder{ID: oid, DisplayOrder: *it.DisplayOrder})
	}

	return m.Sections.SetDisplayOrders(orders, userID, m.now())
}

// ToggleStatus flips isActive
func (m ShowcaseModel) ToggleStatus(id string, userID primitive.ObjectID) (*ShowcaseSection, error) {
	s, err := m.find(id)
	if err != nil {
		return nil, err
	}

	now := m.now()
	s.IsActive = !s.IsActive
	s.Meta.UpdatedBy = userID
	s.UpdatedTS = now

	saved, err := m.Sections.Save(s)
	if err != nil {
		return nil, err
	}

	saved.derive(now)
	return saved, nil
}

func (m ShowcaseModel) find(id string) (*ShowcaseSection, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	return m.Sections.FindByID(oid)
}

// validateProducts requires every referenced product to be active (all or nothing)
func (m ShowcaseModel) validateProducts(hex []string) ([]primitive.ObjectID, error) {
	ids, ok := toObjectIDs(hex)
	if !ok {
		return nil, ErrInvalidProducts
	}
	if len(ids) == 0 {
		return ids, nil
	}

	cnt, err := m.Catalog.CountActive(ids)
	if err != nil {
		return nil, err
	}
	if cnt != len(ids) {
		return nil, ErrInvalidProducts
	}
	return ids, nil
}

func (m ShowcaseModel) adminView(s *ShowcaseSection) (*AdminSection, error) {
	views, err := m.adminViews([]ShowcaseSection{*s})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// adminViews adds light products and editor identities (one user lookup per page)
func (m ShowcaseModel) adminViews(sections []ShowcaseSection) ([]AdminSection, error) {
	now := m.now()
	views := make([]AdminSection, 0, len(sections))

	var userIDs []primitive.ObjectID
	for _, s := range sections {
		userIDs = append(userIDs, s.Meta.CreatedBy, s.Meta.UpdatedBy)
	}

	refs := map[primitive.ObjectID]UserIdentity{}
	if m.GetUserRefs != nil {
		var err error
		refs, err = m.GetUserRefs(userIDs)
		if err != nil {
			return nil, err
		}
	}

	identity := func(id primitive.ObjectID) *UserIdentity {
		if u, ok := refs[id]; ok {
			return &u
		}
		return nil
	}

	for i := range sections {
		products, err := m.Catalog.Light(sections[i].Products)
		if err != nil {
			return nil, err
		}
		sections[i].derive(now)
		views = append(views, AdminSection{
			ShowcaseSection: sections[i],
			Products:        products,
			Meta: AdminMeta{
				CreatedBy:   identity(sections[i].Meta.CreatedBy),
				UpdatedBy:   identity(sections[i].Meta.UpdatedBy),
				Clicks:      sections[i].Meta.Clicks,
				Impressions: sections[i].Meta.Impressions,
			},
		})
	}

	return views, nil
}
