package database

import (
	"context"
	"time"

	"showcase-api/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// shared connection (private to members of this package)
var client *mongo.Client

// OpenConnection to the database
func OpenConnection(cfg *config.Config) error {
	var err error

	client, err = mongo.NewClient(options.Client().ApplyURI(cfg.MongoURI()))
	if err != nil {
		return err
	}

	// every caller will create its own context
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen
	err = client.Connect(ctx)
	if err != nil {
		return err
	}

	// make sure a connection has actually been made
	err = client.Ping(ctx, readpref.Primary())
	if err != nil {
		return err
	}

	return EnsureIndexes(client.Database(cfg.DBName))
}

// CloseConnection closes the connection to the DB (when client is shut-down)
func CloseConnection() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()                // nach 10 Sekunden abbrechen
	return client.Disconnect(ctx) // möglicher Fehler weitergeben
}

// GetConnection returns a reference to the shared connection
func GetConnection() *mongo.Client {
	return client
}
