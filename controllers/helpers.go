package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"showcase-api/authentication"
	"showcase-api/helpers"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SectionList is the response of the section listings (public & admin)
type SectionList struct {
	Success       bool        `json:"success"`
	Count         int         `json:"count"`
	TotalSections int64       `json:"totalSections"`
	TotalPages    int64       `json:"totalPages"`
	CurrentPage   int         `json:"currentPage"`
	Sections      interface{} `json:"sections"`
}

// SectionItem wraps a single section
type SectionItem struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Section interface{} `json:"section"`
}

// VideoList wraps the video listings
type VideoList struct {
	Success bool        `json:"success"`
	Count   int         `json:"count"`
	Videos  interface{} `json:"videos"`
}

// VideoItem wraps a single video
type VideoItem struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Video   interface{} `json:"video"`
}

// ReviewList wraps the reviews of a product
type ReviewList struct {
	Success       bool        `json:"success"`
	Count         int         `json:"count"`
	AverageRating float64     `json:"averageRating"`
	Reviews       interface{} `json:"reviews"`
}

// ReviewItem wraps a single review
type ReviewItem struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Review  interface{} `json:"review"`
}

// Message is the standard response without a resource (or with generic data)
type Message struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// decodeStrict rejects unknown keys (gin's ShouldBindJSON silently drops them)
func decodeStrict(c *gin.Context, v interface{}) error {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// queryBool parses an optional boolean query parameter (absent = nil)
func queryBool(c *gin.Context, name string) (*bool, bool) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, true
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
			Code:    InvalidRequest,
			Message: name + " must be true or false",
		})
		return nil, false
	}
	return &b, true
}

// currentUser is the user set by the authentication middleware
func currentUser(c *gin.Context) primitive.ObjectID {
	return helpers.ObjectID(authentication.UserID(c))
}
