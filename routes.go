package main

import (
	"showcase-api/authorization"
	"showcase-api/controllers"
	"showcase-api/environment"
	"showcase-api/lookups"
	"showcase-api/middleware"

	"github.com/gin-gonic/gin"
)

// setupRouter registers all routes of the API
func setupRouter(env *environment.Environment) *gin.Engine {
	router := gin.Default()
	router.Use(middleware.CORSMiddleware(env.Config.CORSOrigin))

	router.GET("/lookups", controllers.ListLookups)

	// storefront
	router.GET("/showcase-sections", controllers.ListShowcaseSections)
	router.GET("/showcase-sections/:id", controllers.GetShowcaseSection)
	router.POST("/showcase-sections/:id/click", controllers.RecordSectionClick)
	router.GET("/yt-videos", controllers.ListVideos)

	router.GET("/products/:id/reviews", controllers.ListProductReviews)
	router.POST("/products/:id/reviews", env.Authenticator.IsAuthenticatedUser(), controllers.CreateReview)

	// admin panel
	admin := router.Group("/admin")
	admin.Use(env.Authenticator.IsAuthenticatedUser(), authorization.AuthorizeRoles(env.Credentials, lookups.UserRole(lookups.URadmin)))
	{
		admin.GET("/showcase-sections", controllers.ListAdminSections)
		admin.POST("/showcase-sections", controllers.CreateSection)
		admin.PUT("/showcase-sections/display-order/bulk", controllers.ReorderSections)
		admin.GET("/showcase-sections/:id", controllers.GetAdminSection)
		admin.PUT("/showcase-sections/:id", controllers.UpdateSection)
		admin.DELETE("/showcase-sections/:id", controllers.DeleteSection)
		admin.PUT("/showcase-sections/:id/toggle-status", controllers.ToggleSectionStatus)
		admin.GET("/showcase-sections/:id/stats", controllers.GetSectionStats)

		admin.GET("/yt-videos", controllers.ListAdminVideos)
		admin.POST("/yt-videos", controllers.CreateVideo)
		admin.GET("/yt-videos/:id", controllers.GetVideo)
		admin.PUT("/yt-videos/:id", controllers.UpdateVideo)
		admin.DELETE("/yt-videos/:id", controllers.DeleteVideo)

		admin.PUT("/reviews/:id/status", controllers.SetReviewStatus)

		admin.POST("/invoices/totals", controllers.InvoiceTotals)
		admin.POST("/invoices/pdf", controllers.InvoicePDF)
	}

	return router
}
