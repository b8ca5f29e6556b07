package database

import (
	"context"
	"errors"
	"time"

	"showcase-api/config"

	influxdb2 "github.com/influxdata/influxdb-client-go"
)

// client remains private
var influxClient influxdb2.Client

// OpenInfluxConnection pools the connection to the analytics store
func OpenInfluxConnection(cfg *config.Config) error {
	influxClient = influxdb2.NewClient(cfg.AnalyticsURL, cfg.AnalyticsToken)
	influxClient.Options().SetPrecision(time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ready, err := influxClient.Ready(ctx)
	if err != nil {
		return err
	}
	if !ready {
		return errors.New("analytics store not ready")
	}

	return nil
}

// GetInfluxConnection returns the shared client (nil when analytics is disabled)
func GetInfluxConnection() influxdb2.Client {
	return influxClient
}

// CloseInfluxConnection closes the connection to the store
func CloseInfluxConnection() {
	if influxClient != nil {
		influxClient.Close()
	}
}
