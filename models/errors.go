package models

import (
	"errors"
)

// custom error types (generic types found in apperror package)

// showcase sections
// transformed by controllers to Bad Request (400)
var (
	ErrInvalidID            = errors.New("invalid id")
	ErrTitleMissing         = errors.New("title is required")
	ErrTitleTooLong         = errors.New("title cannot exceed 100 characters")
	ErrSubtitleTooLong      = errors.New("subtitle cannot exceed 200 characters")
	ErrInvalidSectionType   = errors.New("type must be grid or carousel")
	ErrInvalidCardStyle     = errors.New("cardStyle must be default, minimal, bordered or elevated")
	ErrInvalidColor         = errors.New("colors must be hex values like #fff or #ffffff")
	ErrNegativeDisplayOrder = errors.New("displayOrder must not be negative")
	ErrInvalidProducts      = errors.New("some products are invalid or inactive")
	ErrInvalidReorder       = errors.New("sections must be a non-empty list of {id, displayOrder}")
	ErrInvalidPaging        = errors.New("page and limit must be positive integers")
)

// videos
var (
	ErrVideoTitleMissing = errors.New("title is required")
	ErrVideoTitleTooLong = errors.New("title cannot exceed 200 characters")
	ErrVideoURLMissing   = errors.New("videoUrl is required")
	ErrInvalidVideoURL   = errors.New("invalid YouTube URL")
	ErrNegativeOrder     = errors.New("order must not be negative")
)

// reviews
var (
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
	ErrCommentTooLong      = errors.New("comment cannot exceed 1000 characters")
	ErrReviewExists        = errors.New("you have already reviewed this product")
	ErrInvalidReviewStatus = errors.New("status must be pending, approved or rejected")
)

// client-side mistakes (everything else is a system error)
var validationErrors = []error{
	ErrInvalidID, ErrTitleMissing, ErrTitleTooLong, ErrSubtitleTooLong,
	ErrInvalidSectionType, ErrInvalidCardStyle, ErrInvalidColor, ErrNegativeDisplayOrder,
	ErrInvalidProducts, ErrInvalidReorder, ErrInvalidPaging,
	ErrVideoTitleMissing, ErrVideoTitleTooLong, ErrVideoURLMissing, ErrInvalidVideoURL, ErrNegativeOrder,
	ErrInvalidRating, ErrCommentTooLong, ErrReviewExists, ErrInvalidReviewStatus,
}

// IsValidationError reports whether err was caused by the request's data
func IsValidationError(err error) bool {
	for _, v := range validationErrors {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}
