package controllers

import (
	"net/http"

	"showcase-api/environment"
	"showcase-api/models"

	"github.com/gin-gonic/gin"
)

// ListShowcaseSections returns the visible sections of the storefront
// query: page, limit, type, showOnHomepage
func ListShowcaseSections(c *gin.Context) {
	page, err := models.ParsePage(c.Query("page"), c.Query("limit"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	showOnHomepage, ok := queryBool(c, "showOnHomepage")
	if !ok {
		return
	}

	listing, err := environment.Env.ShowcaseModel.ListPublic(page, c.Query("type"), showOnHomepage)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, SectionList{
		Success:       true,
		Count:         listing.Count,
		TotalSections: listing.TotalSections,
		TotalPages:    listing.TotalPages,
		CurrentPage:   listing.CurrentPage,
		Sections:      listing.Sections,
	})
}

// GetShowcaseSection returns an active section (counts as impression)
func GetShowcaseSection(c *gin.Context) {
	section, err := environment.Env.ShowcaseModel.GetPublic(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, SectionItem{Success: true, Section: section})
}

// RecordSectionClick counts a click on an active section
func RecordSectionClick(c *gin.Context) {
	clicks, err := environment.Env.ShowcaseModel.RecordClick(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, Message{
		Success: true,
		Message: "Click recorded",
		Data:    gin.H{"clicks": clicks},
	})
}
