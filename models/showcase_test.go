package models_test

import (
	"testing"
	"time"

	"showcase-api/apperror"
	"showcase-api/helpers"
	"showcase-api/lookups"
	"showcase-api/memstore"
	"showcase-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fixture struct {
	model    models.ShowcaseModel
	sections *memstore.Sections
	catalog  *memstore.Catalog
	users    *memstore.Users
	tracker  *recorder
	admin    primitive.ObjectID
	now      time.Time
}

// recorder counts tracked engagement
type recorder struct {
	events map[string]int
}

func (r *recorder) Record(_ primitive.ObjectID, counter string) {
	r.events[counter]++
}

func (r *recorder) Window(_ primitive.ObjectID, _ time.Duration) (map[string]int64, error) {
	return map[string]int64{
		models.CounterClicks:      int64(r.events[models.CounterClicks]),
		models.CounterImpressions: int64(r.events[models.CounterImpressions]),
	}, nil
}

func newFixture() *fixture {
	f := &fixture{
		sections: memstore.NewSections(),
		catalog:  memstore.NewCatalog(),
		users:    memstore.NewUsers(),
		tracker:  &recorder{events: map[string]int{}},
		admin:    primitive.NewObjectID(),
		now:      time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	f.users.Put(memstore.User{
		UserIdentity: models.UserIdentity{ID: f.admin, Name: "Ada", EMail: "ada@example.com"},
		RoleCode:     lookups.URadmin,
	})
	f.model = models.ShowcaseModel{
		Sections:    f.sections,
		Catalog:     f.catalog,
		Tracker:     f.tracker,
		GetUserRefs: f.users.GetUserRefs,
		Now:         func() time.Time { return f.now },
	}
	return f
}

// product adds a catalog entry and returns its id
func (f *fixture) product(name string, active bool, published bool) string {
	id := primitive.NewObjectID()
	f.catalog.Put(memstore.Product{
		ProductCard: models.ProductCard{ID: id, Name: name, Price: 10},
		IsActive:    active,
		IsPublished: published,
	})
	return id.Hex()
}

func (f *fixture) create(t *testing.T, title string, products ...string) *models.ShowcaseSection {
	t.Helper()
	s, err := f.model.Create(models.SectionPatch{Title: &title, Products: &products}, f.admin)
	require.NoError(t, err)
	return s
}

func boolPtr(b bool) *bool { return &b }

func TestCreateDefaults(t *testing.T) {
	f := newFixture()
	s := f.create(t, "Deals", f.product("p", true, true))

	assert.Equal(t, lookups.SectionTypeGrid, s.Type)
	assert.Equal(t, 0, s.DisplayOrder)
	assert.True(t, s.IsActive)
	assert.True(t, s.ShowViewAll)
	assert.False(t, s.TimerConfig.HasTimer)
	assert.True(t, s.Visibility.IsPublic)
	assert.True(t, s.Visibility.ShowOnHomepage)
	assert.Equal(t, "/showcase/"+s.ID.Hex(), s.ViewAllLink)
	assert.Equal(t, lookups.TimerNone, s.TimerStatus)
	assert.Equal(t, f.admin, s.Meta.CreatedBy)
	assert.Equal(t, f.admin, s.Meta.UpdatedBy)
	assert.False(t, s.CreatedTS.IsZero())
}

func TestCreateRejectsInvalidProducts(t *testing.T) {
	f := newFixture()
	good := f.product("good", true, true)
	inactive := f.product("inactive", false, true)
	title := "Broken"

	for _, products := range [][]string{
		{good, inactive},
		{good, primitive.NewObjectID().Hex()},
		{good, "not-an-id"},
	} {
		products := products
		_, err := f.model.Create(models.SectionPatch{Title: &title, Products: &products}, f.admin)
		assert.Equal(t, models.ErrInvalidProducts, err)
	}

	cnt, err := f.sections.Count(models.SectionQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), cnt, "nothing stored")
}

func TestListPublicHidesInactiveAndExpired(t *testing.T) {
	f := newFixture()
	p := f.product("p", true, true)

	visible := f.create(t, "visible", p)
	inactive := f.create(t, "inactive", p)
	expired := f.create(t, "expired", p)

	_, err := f.model.ToggleStatus(inactive.ID.Hex(), f.admin)
	require.NoError(t, err)

	past := f.now.Add(-time.Hour)
	_, err = f.model.Update(expired.ID.Hex(), models.SectionPatch{
		Visibility: &models.VisibilityPatch{EndDate: models.NullTime{Set: true, Time: &past}},
	}, f.admin)
	require.NoError(t, err)

	list, err := f.model.ListPublic(models.Page{Page: 1, Limit: 10}, "", nil)
	require.NoError(t, err)
	require.Len(t, list.Sections, 1)
	assert.Equal(t, visible.ID, list.Sections[0].ID)
	assert.Equal(t, int64(1), list.TotalSections)

	_, err = f.model.GetPublic(inactive.ID.Hex())
	assert.Equal(t, apperror.ErrNoData, err)

	// admins still see everything
	admin, err := f.model.ListAdmin(models.Page{Page: 1, Limit: 10}, "", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), admin.TotalSections)
}

func TestListPublicFilters(t *testing.T) {
	f := newFixture()
	p := f.product("p", true, true)

	f.create(t, "grid home", p)
	carousel := "carousel"
	products := []string{p}
	title := "carousel hidden"
	_, err := f.model.Create(models.SectionPatch{
		Title:      &title,
		Type:       &carousel,
		Products:   &products,
		Visibility: &models.VisibilityPatch{ShowOnHomepage: boolPtr(false)},
	}, f.admin)
	require.NoError(t, err)

	list, err := f.model.ListPublic(models.Page{Page: 1, Limit: 10}, "carousel", nil)
	require.NoError(t, err)
	require.Len(t, list.Sections, 1)
	assert.Equal(t, "carousel hidden", list.Sections[0].Title)

	list, err = f.model.ListPublic(models.Page{Page: 1, Limit: 10}, "", boolPtr(true))
	require.NoError(t, err)
	require.Len(t, list.Sections, 1)
	assert.Equal(t, "grid home", list.Sections[0].Title)
}

func TestListPublicDropsEmptySectionsAfterCounting(t *testing.T) {
	f := newFixture()
	active := f.product("active", true, true)
	unpublished := f.product("draft", true, false)

	f.create(t, "with products", active, unpublished)
	f.create(t, "only drafts", unpublished)
	f.create(t, "no products")

	list, err := f.model.ListPublic(models.Page{Page: 1, Limit: 10}, "", nil)
	require.NoError(t, err)

	assert.Equal(t, int64(3), list.TotalSections)
	assert.Equal(t, 1, list.Count)
	assert.Equal(t, int64(1), list.TotalPages)
	require.Len(t, list.Sections[0].Products, 1)
	assert.Equal(t, "active", list.Sections[0].Products[0].Name)
}

func TestListPublicPagination(t *testing.T) {
	f := newFixture()
	p := f.product("p", true, true)
	for i := 0; i < 7; i++ {
		f.create(t, "s", p)
	}

	list, err := f.model.ListPublic(models.Page{Page: 3, Limit: 3}, "", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(7), list.TotalSections)
	assert.Equal(t, int64(3), list.TotalPages)
	assert.Equal(t, 3, list.CurrentPage)
	assert.Equal(t, 1, list.Count)
}

func TestGetPublicCountsImpressions(t *testing.T) {
	f := newFixture()
	s := f.create(t, "views", f.product("p", true, true))

	for i := 1; i <= 3; i++ {
		got, err := f.model.GetPublic(s.ID.Hex())
		require.NoError(t, err)
		assert.Equal(t, int64(i), got.Meta.Impressions)
		assert.Len(t, got.Products, 1)
	}
	assert.Equal(t, 3, f.tracker.events[models.CounterImpressions])

	_, err := f.model.GetPublic(primitive.NewObjectID().Hex())
	assert.Equal(t, apperror.ErrNoData, err)

	_, err = f.model.GetPublic("xyz")
	assert.Equal(t, models.ErrInvalidID, err)
}

func TestRecordClick(t *testing.T) {
	f := newFixture()
	s := f.create(t, "clicks", f.product("p", true, true))

	clicks, err := f.model.RecordClick(s.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(1), clicks)

	_, err = f.model.ToggleStatus(s.ID.Hex(), f.admin)
	require.NoError(t, err)

	_, err = f.model.RecordClick(s.ID.Hex())
	assert.Equal(t, apperror.ErrNoData, err)

	stored, err := f.sections.FindByID(s.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.Meta.Clicks)
}

func TestUpdateMergesNestedConfigs(t *testing.T) {
	f := newFixture()
	s := f.create(t, "timer")

	end := f.now.Add(48 * time.Hour)
	_, err := f.model.Update(s.ID.Hex(), models.SectionPatch{
		TimerConfig: &models.TimerPatch{HasTimer: boolPtr(true), EndDate: models.NullTime{Set: true, Time: &end}},
	}, f.admin)
	require.NoError(t, err)

	text := "Ends in"
	updated, err := f.model.Update(s.ID.Hex(), models.SectionPatch{
		TimerConfig: &models.TimerPatch{TimerText: &text},
	}, f.admin)
	require.NoError(t, err)

	assert.True(t, updated.TimerConfig.HasTimer)
	require.NotNil(t, updated.TimerConfig.EndDate)
	assert.True(t, end.Equal(*updated.TimerConfig.EndDate))
	assert.Equal(t, "Ends in", updated.TimerConfig.TimerText)
	assert.Equal(t, lookups.TimerActive, updated.TimerStatus)
	assert.Equal(t, "timer", updated.Title, "unsent scalars are kept")
}

func TestUpdateReplacesProducts(t *testing.T) {
	f := newFixture()
	a, b := f.product("a", true, true), f.product("b", true, true)
	s := f.create(t, "products", a)

	products := []string{b, a}
	updated, err := f.model.Update(s.ID.Hex(), models.SectionPatch{Products: &products}, f.admin)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{helpers.ObjectID(b), helpers.ObjectID(a)}, updated.Products)

	bad := []string{f.product("off", false, false)}
	_, err = f.model.Update(s.ID.Hex(), models.SectionPatch{Products: &bad}, f.admin)
	assert.Equal(t, models.ErrInvalidProducts, err)

	_, err = f.model.Update(primitive.NewObjectID().Hex(), models.SectionPatch{}, f.admin)
	assert.Equal(t, apperror.ErrNoData, err)
}

func TestUpdateStampsEditor(t *testing.T) {
	f := newFixture()
	s := f.create(t, "editor")

	editor := primitive.NewObjectID()
	title := "renamed"
	updated, err := f.model.Update(s.ID.Hex(), models.SectionPatch{Title: &title}, editor)
	require.NoError(t, err)
	assert.Equal(t, f.admin, updated.Meta.CreatedBy)
	assert.Equal(t, editor, updated.Meta.UpdatedBy)
}

func TestReorderBulk(t *testing.T) {
	f := newFixture()
	p := f.product("p", true, true)
	a := f.create(t, "A", p)
	b := f.create(t, "B", p)
	c := f.create(t, "C", p)

	three, one, two := 3, 1, 2
	err := f.model.ReorderBulk([]models.ReorderInput{
		{ID: a.ID.Hex(), DisplayOrder: &three},
		{ID: b.ID.Hex(), DisplayOrder: &one},
		{ID: c.ID.Hex(), DisplayOrder: &two},
	}, f.admin)
	require.NoError(t, err)

	list, err := f.model.ListPublic(models.Page{Page: 1, Limit: 10}, "", nil)
	require.NoError(t, err)
	require.Len(t, list.Sections, 3)
	assert.Equal(t, "B", list.Sections[0].Title)
	assert.Equal(t, "C", list.Sections[1].Title)
	assert.Equal(t, "A", list.Sections[2].Title)
}

func TestReorderBulkValidates(t *testing.T) {
	f := newFixture()
	one, minus := 1, -1

	for _, items := range [][]models.ReorderInput{
		nil,
		{{ID: "bad", DisplayOrder: &one}},
		{{ID: primitive.NewObjectID().Hex()}},
		{{ID: primitive.NewObjectID().Hex(), DisplayOrder: &minus}},
	} {
		assert.Equal(t, models.ErrInvalidReorder, f.model.ReorderBulk(items, f.admin))
	}
}

func TestListAdmin(t *testing.T) {
	f := newFixture()
	p := f.product("p", false, false)
	f.create(t, "Summer Sale", p)
	f.create(t, "Winter")
	hidden := f.create(t, "Summer Hidden")
	_, err := f.model.ToggleStatus(hidden.ID.Hex(), f.admin)
	require.NoError(t, err)

	list, err := f.model.ListAdmin(models.Page{Page: 1, Limit: 10}, "summer", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), list.TotalSections)

	list, err = f.model.ListAdmin(models.Page{Page: 1, Limit: 10}, "summer", boolPtr(true))
	require.NoError(t, err)
	require.Len(t, list.Sections, 1)

	s := list.Sections[0]
	assert.Equal(t, "Summer Sale", s.Title)
	require.Len(t, s.Products, 1, "inactive products are listed for admins")
	assert.False(t, s.Products[0].IsActive)
	require.NotNil(t, s.Meta.CreatedBy)
	assert.Equal(t, "Ada", s.Meta.CreatedBy.Name)
	assert.Equal(t, "ada@example.com", s.Meta.UpdatedBy.EMail)
}

func TestGetAdminAndStats(t *testing.T) {
	f := newFixture()
	s := f.create(t, "stats", f.product("p", true, true))

	_, err := f.model.GetPublic(s.ID.Hex())
	require.NoError(t, err)
	_, err = f.model.GetPublic(s.ID.Hex())
	require.NoError(t, err)
	_, err = f.model.RecordClick(s.ID.Hex())
	require.NoError(t, err)

	admin, err := f.model.GetAdmin(s.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(2), admin.Meta.Impressions, "admin reads are not counted")

	stats, err := f.model.Stats(s.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Impressions)
	assert.Equal(t, int64(1), stats.Clicks)
	assert.Equal(t, 0.5, stats.ClickRate)
	assert.Equal(t, int64(1), stats.Last24h[models.CounterClicks])
}

func TestDelete(t *testing.T) {
	f := newFixture()
	s := f.create(t, "gone")

	require.NoError(t, f.model.Delete(s.ID.Hex()))
	assert.Equal(t, apperror.ErrNoData, f.model.Delete(s.ID.Hex()))
	_, err := f.model.GetAdmin(s.ID.Hex())
	assert.Equal(t, apperror.ErrNoData, err)
}

// busyStore records a hit on every section right after it was read for an edit
type busyStore struct {
	*memstore.Sections
}

func (b busyStore) FindByID(id primitive.ObjectID) (*models.ShowcaseSection, error) {
	s, err := b.Sections.FindByID(id)
	if err != nil {
		return nil, err
	}
	if _, err = b.Sections.Increment(id, models.CounterImpressions); err != nil {
		return nil, err
	}
	if _, err = b.Sections.Increment(id, models.CounterClicks); err != nil {
		return nil, err
	}
	return s, nil
}

func TestEditsKeepConcurrentCounts(t *testing.T) {
	f := newFixture()
	s := f.create(t, "busy", f.product("p", true, true))
	f.model.Sections = busyStore{f.sections}

	title := "renamed"
	updated, err := f.model.Update(s.ID.Hex(), models.SectionPatch{Title: &title}, f.admin)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.Meta.Impressions)
	assert.Equal(t, int64(1), updated.Meta.Clicks)

	toggled, err := f.model.ToggleStatus(s.ID.Hex(), f.admin)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)
	assert.Equal(t, int64(2), toggled.Meta.Impressions)
	assert.Equal(t, int64(2), toggled.Meta.Clicks)

	stored, err := f.sections.FindByID(s.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", stored.Title)
	assert.Equal(t, int64(2), stored.Meta.Impressions)
	assert.Equal(t, int64(2), stored.Meta.Clicks)
}
