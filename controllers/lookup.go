package controllers

import (
	"net/http"

	"showcase-api/invoice"
	"showcase-api/lookups"

	"github.com/gin-gonic/gin"
)

// ListLookups returns the code types used by the admin panel
func ListLookups(c *gin.Context) {
	types := append(lookups.All(), lookups.LookupType{
		Name:    "invoice category",
		Values:  invoice.Categories(),
		Default: invoice.CategoryProduct,
	})

	c.JSON(http.StatusOK, Message{Success: true, Data: types})
}
