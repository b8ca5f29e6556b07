package main

import (
	"context"
	"log"
	"time"

	"showcase-api/analytics"
	"showcase-api/config"
	"showcase-api/database"
	"showcase-api/environment"
	"showcase-api/lookups"
	"showcase-api/memstore"
	"showcase-api/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	switch cfg.DBDriver {
	case config.DriverMemory:
		env, stores := environment.NewMemoryEnv(cfg, analytics.NewTracker(nil, "", ""))
		environment.Env = env
		seedMemoryStores(env, stores)
	default:
		// Connect to main database here (mongoDB)
		if err = database.OpenConnection(cfg); err != nil {
			log.Fatal(err)
		}
		defer database.CloseConnection()

		// connect to JWT Store (redis)
		if err = database.OpenRedisConnection(cfg); err != nil {
			log.Fatal(err)
		}
		defer database.CloseRedisConnection()

		// connect to Analysis-DB (influx)
		if cfg.UseAnalytics {
			if err = database.OpenInfluxConnection(cfg); err != nil {
				log.Fatal(err)
			}
			defer database.CloseInfluxConnection()
		}

		// Initialize the Models
		environment.InitializeModels(cfg)
	}

	if cfg.AppEnv == "PRD" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := setupRouter(environment.Env)

	log.Printf("Showcase API running on :%s (%s, %s)", cfg.APIPort, cfg.AppEnv, cfg.DBDriver)
	switch cfg.AppEnv {
	case "PRD":
		err = router.RunTLS(":"+cfg.APIPort, cfg.CertFile, cfg.KeyFile)
	default:
		err = router.Run(":" + cfg.APIPort)
	}
	if err != nil {
		log.Println(err)
	}
}

// seedMemoryStores adds an admin, a small catalog and a section for local demos
func seedMemoryStores(env *environment.Environment, stores *environment.MemoryStores) {
	admin := memstore.User{
		UserIdentity: models.UserIdentity{ID: primitive.NewObjectID(), Name: "Admin", EMail: "admin@localhost"},
		RoleCode:     lookups.URadmin,
	}
	stores.Users.Put(admin)

	var productIDs []string
	for _, name := range []string{"Sneaker", "Backpack", "Cap"} {
		p := memstore.Product{
			ProductCard: models.ProductCard{ID: primitive.NewObjectID(), Name: name, Price: 49.90, Stock: 10},
			IsActive:    true,
			IsPublished: true,
		}
		stores.Catalog.Put(p)
		productIDs = append(productIDs, p.ID.Hex())
	}

	title := "New Arrivals"
	if _, err := env.ShowcaseModel.Create(models.SectionPatch{Title: &title, Products: &productIDs}, admin.ID); err != nil {
		log.Println(err)
	}

	if env.Config.AppEnv != "DEV" {
		return
	}

	td, err := env.Authenticator.CreateToken(admin.ID.Hex())
	if err != nil {
		log.Println(err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = env.Authenticator.CreateAuth(ctx, admin.ID.Hex(), td); err != nil {
		log.Println(err)
		return
	}
	log.Printf("dev admin token (15 min): Bearer %s", td.AccessToken)
}
