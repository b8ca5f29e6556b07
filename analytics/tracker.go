package analytics

import (
	"context"
	"fmt"
	"log"
	"time"

	"showcase-api/helpers"

	influxdb2 "github.com/influxdata/influxdb-client-go"
	"github.com/influxdata/influxdb-client-go/api"
	"github.com/influxdata/influxdb-client-go/api/write"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// measurement of all engagement events
const measurement = "engagement"

// Tracker writes impressions and clicks of showcase sections to the analytics store (InfluxDB)
// the counters in MongoDB stay the source of truth, the store adds time-based statistics
type Tracker struct {
	enabled  bool
	bucket   string
	WriteAPI api.WriteAPIBlocking // ToDo: auf non-blocking umstellen
	QueryAPI api.QueryAPI
}

// NewTracker returns a disabled tracker if client is nil (USE_ANALYTICS != YES)
// always create the object so no futher checking is needed in the models
func NewTracker(client influxdb2.Client, org string, bucket string) *Tracker {
	if client == nil {
		return &Tracker{}
	}
	return &Tracker{
		enabled:  true,
		bucket:   bucket,
		WriteAPI: client.WriteAPIBlocking(org, bucket),
		QueryAPI: client.QueryAPI(org),
	}
}

// Enabled reports whether events are stored
func (t *Tracker) Enabled() bool {
	return t.enabled
}

// Record stores one event; failures are logged only (counting must not break the request)
func (t *Tracker) Record(sectionID primitive.ObjectID, counter string) {
	if !t.enabled {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	p := engagementPoint(sectionID, counter, time.Now())
	if err := t.WriteAPI.WritePoint(ctx, p); err != nil {
		log.Println(helpers.WrapError(err, helpers.FuncName()))
	}
}

// Window counts the events of a section per counter since now-period (nil if disabled)
func (t *Tracker) Window(sectionID primitive.ObjectID, period time.Duration) (map[string]int64, error) {
	if !t.enabled {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	result, err := t.QueryAPI.Query(ctx, windowQuery(t.bucket, sectionID, time.Now().Add(-period)))
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	counts := make(map[string]int64)
	for result.Next() {
		counter, _ := result.Record().ValueByKey("counter").(string)
		if cnt, ok := result.Record().Value().(int64); ok {
			counts[counter] = cnt
		}
	}
	if result.Err() != nil {
		return nil, helpers.WrapError(result.Err(), helpers.FuncName())
	}

	return counts, nil
}

// engagementPoint builds the event; the section is a tag so counts can be grouped by it
func engagementPoint(sectionID primitive.ObjectID, counter string, ts time.Time) *write.Point {
	return influxdb2.NewPoint(
		measurement,
		map[string]string{
			"sectionId": sectionID.Hex(),
			"counter":   counter,
		},
		map[string]interface{}{"count": 1},
		ts)
}

// windowQuery counts the events per counter
func windowQuery(bucket string, sectionID primitive.ObjectID, start time.Time) string {
	flux := `from(bucket: "%s")
		|> range(start: %s)
		|> filter(fn: (r) => r["_measurement"] == "%s" and r["sectionId"] == "%s" and r["_field"] == "count")
		|> group(columns: ["counter"])
		|> count()`

	return fmt.Sprintf(flux, bucket, start.UTC().Format(time.RFC3339), measurement, sectionID.Hex())
}
