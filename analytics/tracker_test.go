package analytics

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDisabledTracker(t *testing.T) {
	tr := NewTracker(nil, "org", "bucket")
	assert.False(t, tr.Enabled())

	// must not panic without a store
	tr.Record(primitive.NewObjectID(), "clicks")

	counts, err := tr.Window(primitive.NewObjectID(), time.Hour)
	require.NoError(t, err)
	assert.Nil(t, counts)
}

func TestEngagementPoint(t *testing.T) {
	id := primitive.NewObjectID()
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	p := engagementPoint(id, "impressions", ts)
	assert.Equal(t, "engagement", p.Name())
	assert.Equal(t, ts, p.Time())

	tags := map[string]string{}
	for _, tag := range p.TagList() {
		tags[tag.Key] = tag.Value
	}
	assert.Equal(t, map[string]string{"sectionId": id.Hex(), "counter": "impressions"}, tags)
}

func TestWindowQuery(t *testing.T) {
	id := primitive.NewObjectID()
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	flux := windowQuery("showcase-engagement", id, start)
	assert.True(t, strings.HasPrefix(flux, `from(bucket: "showcase-engagement")`))
	assert.Contains(t, flux, "range(start: 2024-05-01T12:00:00Z)")
	assert.Contains(t, flux, `r["sectionId"] == "`+id.Hex()+`"`)
	assert.Contains(t, flux, `group(columns: ["counter"])`)
}
