package controllers

import (
	"net/http"

	"showcase-api/environment"
	"showcase-api/models"

	"github.com/gin-gonic/gin"
)

// ListProductReviews returns the approved reviews of a product
func ListProductReviews(c *gin.Context) {
	reviews, err := environment.Env.ReviewModel.ListForProduct(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, ReviewList{
		Success:       true,
		Count:         reviews.Count,
		AverageRating: reviews.AverageRating,
		Reviews:       reviews.Reviews,
	})
}

// CreateReview adds the review of the current user (one per product)
func CreateReview(c *gin.Context) {
	var input models.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		abortInvalidJSON(c, err)
		return
	}

	review, err := environment.Env.ReviewModel.Create(c.Param("id"), currentUser(c), input)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ReviewItem{Success: true, Message: "Review added successfully", Review: review})
}

// ReviewStatusRequest is the body of the moderation endpoint
type ReviewStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetReviewStatus approves or rejects a review
func SetReviewStatus(c *gin.Context) {
	var req ReviewStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidJSON(c, err)
		return
	}

	review, err := environment.Env.ReviewModel.SetStatus(c.Param("id"), req.Status)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, ReviewItem{Success: true, Message: "Review status updated", Review: review})
}
