package controllers

import (
	"errors"
	"log"
	"net/http"

	"showcase-api/apperror"
	"showcase-api/invoice"
	"showcase-api/models"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the standardized error structure which may be returned by any API
type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    int32  `json:"code"`
	Message string `json:"message"`
}

// HandleError encodes the std ErrorResponse
func HandleError(err error) (httpStatus int, apiError ErrorResponse) {

	if err == nil {
		apiError.Success = true
		return 0, apiError
	}

	switch {
	case errors.Is(err, apperror.ErrNoData):
		apiError.Code = NotFound
		apiError.Message = apiError.String(apiError.Code)
		httpStatus = http.StatusNotFound
	case errors.Is(err, models.ErrInvalidID):
		apiError.Code = InvalidID
		apiError.Message = err.Error()
		httpStatus = http.StatusBadRequest
	case errors.Is(err, models.ErrInvalidProducts):
		apiError.Code = InvalidProducts
		apiError.Message = err.Error()
		httpStatus = http.StatusBadRequest
	case errors.Is(err, models.ErrInvalidVideoURL):
		apiError.Code = InvalidVideoURL
		apiError.Message = err.Error()
		httpStatus = http.StatusBadRequest
	case errors.Is(err, models.ErrReviewExists):
		apiError.Code = ReviewExists
		apiError.Message = err.Error()
		httpStatus = http.StatusBadRequest
	case errors.Is(err, models.ErrInvalidPaging):
		apiError.Code = InvalidPaging
		apiError.Message = err.Error()
		httpStatus = http.StatusBadRequest
	case models.IsValidationError(err):
		apiError.Code = InvalidRequest
		apiError.Message = err.Error()
		httpStatus = http.StatusBadRequest
	case invoice.IsValidationError(err):
		apiError.Code = InvalidInvoice
		apiError.Message = err.Error()
		httpStatus = http.StatusBadRequest
	case errors.Is(err, apperror.ErrDenied):
		apiError.Code = ActionDenied
		apiError.Message = apiError.String(apiError.Code)
		httpStatus = http.StatusForbidden
	case errors.Is(err, apperror.ErrMultipleRecords):
		apiError.Code = MultipleRecords
		apiError.Message = apiError.String(apiError.Code)
		httpStatus = http.StatusInternalServerError
	default:
		// raw message, the admin panel shows it as is
		log.Println(err)
		apiError.Code = SystemError
		apiError.Message = err.Error()
		httpStatus = http.StatusInternalServerError
	}
	return httpStatus, apiError
}

// abortWithError writes the ErrorResponse of err
func abortWithError(c *gin.Context, err error) {
	status, apiError := HandleError(err)
	c.AbortWithStatusJSON(status, apiError)
}

// abortInvalidJSON is used for body decoding & binding failures
func abortInvalidJSON(c *gin.Context, err error) {
	apiError := ErrorResponse{Code: InvalidJSON, Message: err.Error()}
	c.AbortWithStatusJSON(http.StatusBadRequest, apiError)
}

// Application Error Codes (API Errors)
const (
	// client/api
	InvalidJSON int32 = (10000 + iota)
	InvalidRequest
	InvalidID
	InvalidPaging
	// generic system
	NotFound
	MultipleRecords
	ActionDenied
	// showcase
	InvalidProducts
	// videos
	InvalidVideoURL
	// reviews
	ReviewExists
	// invoices
	InvalidInvoice
	SystemError = 99999
)

func (er ErrorResponse) String(code int32) string {
	msg := ""
	switch code {
	// common (system)
	case InvalidJSON:
		msg = "Invalid JSON"
	case InvalidRequest:
		msg = "Invalid Request" // JSON was correct, data was not
	case InvalidID:
		msg = "invalid id"
	case InvalidPaging:
		msg = "invalid paging"
	case NotFound:
		msg = "resource not found"
	case MultipleRecords:
		msg = "multiple records found"
	case ActionDenied:
		msg = "action not allowed"
	case InvalidProducts:
		msg = "some products are invalid or inactive"
	case InvalidVideoURL:
		msg = "invalid YouTube URL"
	case ReviewExists:
		msg = "product already reviewed"
	case InvalidInvoice:
		msg = "invalid invoice"
	case SystemError:
		msg = "Server Problem"
	}

	return msg
}
