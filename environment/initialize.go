package environment

import (
	"showcase-api/analytics"
	"showcase-api/authentication"
	"showcase-api/authorization"
	"showcase-api/config"
	"showcase-api/database"
	"showcase-api/memstore"
	"showcase-api/models"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// Environment is used for dependency-injection (package de-coupling)
type Environment struct {
	Config        *config.Config
	Tracker       *analytics.Tracker
	Authenticator *authentication.Authenticator
	Credentials   authorization.CredentialsReader
	ShowcaseModel models.ShowcaseModel
	VideoModel    models.VideoModel
	ReviewModel   models.ReviewModel
}

// newAuthenticator is shared by both drivers
func newAuthenticator(cfg *config.Config, store authentication.TokenStore) *authentication.Authenticator {
	return &authentication.Authenticator{
		Secret:        []byte(cfg.AccessSecret),
		CookieName:    cfg.CookieName,
		CookieHashKey: []byte(cfg.CookieHashKey),
		Store:         store,
	}
}

// newMongoEnv operates as the constructor to initialize the collection references (private)
func newMongoEnv(cfg *config.Config, mongoClient *mongo.Client, redisClient *redis.Client, tracker *analytics.Tracker) *Environment {
	db := mongoClient.Database(cfg.DBName)

	env := &Environment{
		Config:        cfg,
		Tracker:       tracker,
		Authenticator: newAuthenticator(cfg, authentication.NewRedisStore(redisClient)),
		Credentials:   authorization.NewDirectory(db.Collection(database.CollectionUsers)),
	}

	userModel := models.UserModel{Collection: db.Collection(database.CollectionUsers)}
	catalog := models.CatalogModel{
		Products:   db.Collection(database.CollectionProducts),
		Brands:     database.CollectionBrands,
		Categories: database.CollectionCategories,
	}

	env.ShowcaseModel = models.ShowcaseModel{
		Sections: models.SectionCollection{Collection: db.Collection(database.CollectionSections)},
		Catalog:  catalog,
		Tracker:  tracker,
		// Funktionen aus dem User Model "injecten"
		GetUserRefs: userModel.GetUserRefs,
	}

	env.VideoModel = models.VideoModel{
		Videos: models.VideoCollection{Collection: db.Collection(database.CollectionVideos)},
	}

	env.ReviewModel = models.ReviewModel{
		Reviews:     models.ReviewCollection{Collection: db.Collection(database.CollectionReviews)},
		Catalog:     catalog,
		Moderation:  cfg.ReviewModeration,
		GetUserRefs: userModel.GetUserRefs,
	}

	return env
}

// MemoryStores are the in-memory collections of DB_DRIVER=memory (exposed for seeding)
type MemoryStores struct {
	Sections *memstore.Sections
	Videos   *memstore.Videos
	Reviews  *memstore.Reviews
	Catalog  *memstore.Catalog
	Users    *memstore.Users
	Tokens   *memstore.Tokens
}

// NewMemoryEnv wires all models to in-memory stores (no database required)
func NewMemoryEnv(cfg *config.Config, tracker *analytics.Tracker) (*Environment, *MemoryStores) {
	stores := &MemoryStores{
		Sections: memstore.NewSections(),
		Videos:   memstore.NewVideos(),
		Reviews:  memstore.NewReviews(),
		Catalog:  memstore.NewCatalog(),
		Users:    memstore.NewUsers(),
		Tokens:   memstore.NewTokens(),
	}

	env := &Environment{
		Config:        cfg,
		Tracker:       tracker,
		Authenticator: newAuthenticator(cfg, stores.Tokens),
		Credentials:   stores.Users,
		ShowcaseModel: models.ShowcaseModel{
			Sections:    stores.Sections,
			Catalog:     stores.Catalog,
			Tracker:     tracker,
			GetUserRefs: stores.Users.GetUserRefs,
		},
		VideoModel: models.VideoModel{Videos: stores.Videos},
		ReviewModel: models.ReviewModel{
			Reviews:     stores.Reviews,
			Catalog:     stores.Catalog,
			Moderation:  cfg.ReviewModeration,
			GetUserRefs: stores.Users.GetUserRefs,
		},
	}

	return env, stores
}

// Env is the singleton registry
var Env *Environment

// InitializeModels injects the database connections to the models
// (do not confuse with package init)
func InitializeModels(cfg *config.Config) {
	tracker := analytics.NewTracker(nil, "", "")
	if cfg.UseAnalytics {
		tracker = analytics.NewTracker(database.GetInfluxConnection(), cfg.AnalyticsOrg, cfg.AnalyticsBucket)
	}

	Env = newMongoEnv(cfg, database.GetConnection(), database.GetRedisConnection(), tracker)
}
