package controllers

import (
	"bytes"
	"mime"
	"net/http"

	"showcase-api/invoice"

	"github.com/gin-gonic/gin"
)

// TotalsRequest carries the line items of the calculator
type TotalsRequest struct {
	Items []invoice.Item `json:"items"`
}

// InvoiceTotals computes subtotal and grand total (tax only with ?withTax=true)
func InvoiceTotals(c *gin.Context) {
	var req TotalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidJSON(c, err)
		return
	}

	withTax, ok := queryBool(c, "withTax")
	if !ok {
		return
	}

	calc, err := invoice.NewCalculator(req.Items)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, Message{Success: true, Data: invoice.Summarize(calc, withTax != nil && *withTax)})
}

// InvoicePDF renders the invoice as download
func InvoicePDF(c *gin.Context) {
	var inv invoice.Invoice
	if err := c.ShouldBindJSON(&inv); err != nil {
		abortInvalidJSON(c, err)
		return
	}

	var buf bytes.Buffer
	if err := invoice.WritePDF(&buf, inv); err != nil {
		abortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", attachment(invoice.FileName(inv.Number)))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// attachment quotes the file name; names mime cannot encode are dropped
func attachment(fileName string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": fileName}); v != "" {
		return v
	}
	return "attachment"
}
