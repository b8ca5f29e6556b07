package models

import (
	"encoding/json"
	"testing"
	"time"

	"showcase-api/lookups"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTimerStatusAt(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	assert.Equal(t, lookups.TimerNone, TimerStatusAt(TimerConfig{}, now))
	assert.Equal(t, lookups.TimerNone, TimerStatusAt(TimerConfig{HasTimer: true}, now))
	assert.Equal(t, lookups.TimerNone, TimerStatusAt(TimerConfig{HasTimer: false, EndDate: &future}, now))
	assert.Equal(t, lookups.TimerActive, TimerStatusAt(TimerConfig{HasTimer: true, EndDate: &future}, now))
	assert.Equal(t, lookups.TimerExpired, TimerStatusAt(TimerConfig{HasTimer: true, EndDate: &past}, now))
	assert.Equal(t, lookups.TimerExpired, TimerStatusAt(TimerConfig{HasTimer: true, EndDate: &now}, now))
}

func TestVisibleAt(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	s := ShowcaseSection{IsActive: true}
	assert.True(t, s.VisibleAt(now))

	s.Visibility.EndDate = &future
	assert.True(t, s.VisibleAt(now))

	s.Visibility.EndDate = &past
	assert.False(t, s.VisibleAt(now))

	s.Visibility.EndDate = nil
	s.IsActive = false
	assert.False(t, s.VisibleAt(now))
}

func TestMergeTimerConfigKeepsUnsentFields(t *testing.T) {
	end := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	cur := TimerConfig{HasTimer: true, EndDate: &end, TimerText: "Ends soon"}

	var patch TimerPatch
	require.NoError(t, json.Unmarshal([]byte(`{"timerText":"Last chance"}`), &patch))

	merged := MergeTimerConfig(cur, &patch)
	assert.True(t, merged.HasTimer)
	require.NotNil(t, merged.EndDate)
	assert.True(t, end.Equal(*merged.EndDate))
	assert.Equal(t, "Last chance", merged.TimerText)

	// explicit null clears the date
	patch = TimerPatch{}
	require.NoError(t, json.Unmarshal([]byte(`{"endDate":null}`), &patch))
	merged = MergeTimerConfig(cur, &patch)
	assert.Nil(t, merged.EndDate)
	assert.True(t, merged.HasTimer)

	assert.Equal(t, cur, MergeTimerConfig(cur, nil))
}

func TestMergeStyleConfig(t *testing.T) {
	cur := StyleConfig{BackgroundColor: "#fff", TextColor: "#000", CardStyle: lookups.CardStyleMinimal}
	accent := "#ff0000"

	merged := MergeStyleConfig(cur, &StylePatch{AccentColor: &accent})
	assert.Equal(t, StyleConfig{BackgroundColor: "#fff", TextColor: "#000", AccentColor: "#ff0000", CardStyle: lookups.CardStyleMinimal}, merged)
}

func TestMergeVisibility(t *testing.T) {
	cur := Visibility{IsPublic: true, ShowOnHomepage: true}
	off := false
	cat := primitive.NewObjectID()

	merged, err := MergeVisibility(cur, &VisibilityPatch{ShowOnHomepage: &off, ShowInCategory: &[]string{cat.Hex()}})
	require.NoError(t, err)
	assert.True(t, merged.IsPublic)
	assert.False(t, merged.ShowOnHomepage)
	assert.Equal(t, []primitive.ObjectID{cat}, merged.ShowInCategory)

	_, err = MergeVisibility(cur, &VisibilityPatch{ShowInCategory: &[]string{"nope"}})
	assert.Equal(t, ErrInvalidID, err)
}

func TestApplyPatchValidates(t *testing.T) {
	str := func(s string) *string { return &s }
	num := func(n int) *int { return &n }

	cases := []struct {
		name  string
		patch SectionPatch
		err   error
	}{
		{"missing title", SectionPatch{}, ErrTitleMissing},
		{"blank title", SectionPatch{Title: str("   ")}, ErrTitleMissing},
		{"long title", SectionPatch{Title: str(string(make([]rune, 101)))}, ErrTitleTooLong},
		{"bad type", SectionPatch{Title: str("x"), Type: str("list")}, ErrInvalidSectionType},
		{"negative order", SectionPatch{Title: str("x"), DisplayOrder: num(-1)}, ErrNegativeDisplayOrder},
		{"bad card style", SectionPatch{Title: str("x"), StyleConfig: &StylePatch{CardStyle: str("fancy")}}, ErrInvalidCardStyle},
		{"bad color", SectionPatch{Title: str("x"), StyleConfig: &StylePatch{TextColor: str("red")}}, ErrInvalidColor},
		{"ok", SectionPatch{Title: str("  Deals  "), Type: str(lookups.SectionTypeCarousel)}, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newSection()
			err := applyPatch(s, tc.patch)
			assert.Equal(t, tc.err, err)
			if err == nil {
				assert.Equal(t, "Deals", s.Title)
			}
		})
	}
}

func TestSectionQueryFilter(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	yes := true

	public := SectionQuery{PublicAt: &now, Type: "grid", ShowOnHomepage: &yes}.Filter()
	assert.Equal(t, bson.E{Key: "isActive", Value: true}, public[0])
	assert.Equal(t, bson.E{Key: "type", Value: "grid"}, public[1])
	assert.Equal(t, bson.E{Key: "visibility.showOnHomepage", Value: true}, public[2])
	assert.Equal(t, "$or", public[3].Key)
	assert.Len(t, public[3].Value, 3)

	admin := SectionQuery{Search: "a.b", IsActive: &yes}.Filter()
	require.Len(t, admin, 2)
	or := admin[1].Value.(bson.A)
	rx := or[0].(bson.D)[0].Value.(primitive.Regex)
	assert.Equal(t, `a\.b`, rx.Pattern, "search terms are quoted")
	assert.Equal(t, "i", rx.Options)

	both := SectionQuery{PublicAt: &now, Search: "x"}.Filter()
	assert.Equal(t, "$and", both[len(both)-1].Key)

	assert.Empty(t, SectionQuery{}.Filter())
}

func TestSectionQueryMatches(t *testing.T) {
	s := &ShowcaseSection{Title: "Summer Sale", Subtitle: "hot (deals)", Type: "grid", IsActive: true}

	assert.True(t, SectionQuery{Search: "SUMMER"}.Matches(s))
	assert.True(t, SectionQuery{Search: "(deals)"}.Matches(s))
	assert.False(t, SectionQuery{Search: "winter"}.Matches(s))
	assert.False(t, SectionQuery{Type: "carousel"}.Matches(s))

	no := false
	assert.False(t, SectionQuery{IsActive: &no}.Matches(s))
}

func TestSortSections(t *testing.T) {
	older := ShowcaseSection{ID: primitive.NewObjectIDFromTimestamp(time.Now().Add(-time.Hour)), Title: "older"}
	newer := ShowcaseSection{ID: primitive.NewObjectIDFromTimestamp(time.Now()), Title: "newer"}
	first := ShowcaseSection{ID: primitive.NewObjectID(), Title: "first", DisplayOrder: -1}

	sections := []ShowcaseSection{older, newer, first}
	SortSections(sections)

	assert.Equal(t, "first", sections[0].Title)
	assert.Equal(t, "newer", sections[1].Title)
	assert.Equal(t, "older", sections[2].Title)
}
