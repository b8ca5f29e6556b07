package controllers

import (
	"net/http"

	"showcase-api/environment"
	"showcase-api/models"

	"github.com/gin-gonic/gin"
)

// ListAdminSections returns all sections for the admin panel
// query: page, limit, search, isActive
func ListAdminSections(c *gin.Context) {
	page, err := models.ParsePage(c.Query("page"), c.Query("limit"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	isActive, ok := queryBool(c, "isActive")
	if !ok {
		return
	}

	listing, err := environment.Env.ShowcaseModel.ListAdmin(page, c.Query("search"), isActive)
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

// GetAdminSection returns any section without counting an impression
func GetAdminSection(c *gin.Context) {
	section, err := environment.Env.ShowcaseModel.GetAdmin(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, SectionItem{Success: true, Section: section})
}

// CreateSection adds a new section
func CreateSection(c *gin.Context) {
	var patch models.SectionPatch
	if err := decodeStrict(c, &patch); err != nil {
		abortInvalidJSON(c, err)
		return
	}

	section, err := environment.Env.ShowcaseModel.Create(patch, currentUser(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SectionItem{
		Success: true,
		Message: "Showcase section created successfully",
		Section: section,
	})
}

// UpdateSection changes the fields present in the body
func UpdateSection(c *gin.Context) {
	var patch models.SectionPatch
	if err := decodeStrict(c, &patch); err != nil {
		abortInvalidJSON(c, err)
		return
	}

	section, err := environment.Env.ShowcaseModel.Update(c.Param("id"), patch, currentUser(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, SectionItem{
		Success: true,
		Message: "Showcase section updated successfully",
		Section: section,
	})
}

// DeleteSection removes a section
func DeleteSection(c *gin.Context) {
	if err := environment.Env.ShowcaseModel.Delete(c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, Message{Success: true, Message: "Showcase section deleted successfully"})
}

// ReorderRequest is the body of the bulk reorder
type ReorderRequest struct {
	Sections []models.ReorderInput `json:"sections"`
}

// ReorderSections sets the display order of many sections
func ReorderSections(c *gin.Context) {
	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidJSON(c, err)
		return
	}

	if err := environment.Env.ShowcaseModel.ReorderBulk(req.Sections, currentUser(c)); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, Message{Success: true, Message: "Display order updated successfully"})
}

// ToggleSectionStatus flips isActive
func ToggleSectionStatus(c *gin.Context) {
	section, err := environment.Env.ShowcaseModel.ToggleStatus(c.Param("id"), currentUser(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	msg := "Showcase section deactivated"
	if section.IsActive {
		msg = "Showcase section activated"
	}
	c.JSON(http.StatusOK, SectionItem{Success: true, Message: msg, Section: section})
}

// GetSectionStats returns the engagement of a section
func GetSectionStats(c *gin.Context) {
	stats, err := environment.Env.ShowcaseModel.Stats(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, Message{Success: true, Data: stats})
}
