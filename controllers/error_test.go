package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"showcase-api/apperror"
	"showcase-api/helpers"
	"showcase-api/invoice"
	"showcase-api/models"

	"github.com/stretchr/testify/assert"
)

func TestHandleError(t *testing.T) {
	status, res := HandleError(nil)
	assert.Equal(t, 0, status)
	assert.True(t, res.Success)

	status, res = HandleError(fmt.Errorf("section: %w", apperror.ErrNoData))
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, NotFound, res.Code)

	status, res = HandleError(models.ErrTitleTooLong)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, InvalidRequest, res.Code)
	assert.Equal(t, models.ErrTitleTooLong.Error(), res.Message)

	status, res = HandleError(invoice.ErrInvalidQuantity)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, InvalidInvoice, res.Code)

	// system errors are reported as is
	status, res = HandleError(helpers.WrapError(errors.New("connection refused"), "Find"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, int32(SystemError), res.Code)
	assert.Contains(t, res.Message, "connection refused")
	assert.False(t, res.Success)
}
