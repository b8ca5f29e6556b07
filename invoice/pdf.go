package invoice

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/skip2/go-qrcode"
)

// Customer is printed in the right metadata column
type Customer struct {
	Name    string `json:"name"`
	EMail   string `json:"email"`
	Address string `json:"address"`
}

// Invoice is everything the PDF shows
type Invoice struct {
	Number   string    `json:"invoiceNumber"`
	Date     time.Time `json:"date"`
	Customer Customer  `json:"customer"`
	Items    []Item    `json:"items"`
}

// FileName of the exported document
func FileName(number string) string {
	return strings.TrimSpace(number) + ".pdf"
}

// page layout (mm)
const (
	margin   = 15.0
	pageW    = 210.0
	contentW = pageW - 2*margin
	rowH     = 8.0
	qrSize   = 30.0
)

// WritePDF renders the invoice: header, metadata columns, item table, grand total and a QR code
func WritePDF(w io.Writer, inv Invoice) error {
	if strings.TrimSpace(inv.Number) == "" {
		return ErrNumberMissing
	}
	if len(inv.Items) == 0 {
		return ErrNoItems
	}

	calc, err := NewCalculator(inv.Items)
	if err != nil {
		return err
	}

	date := inv.Date
	if date.IsZero() {
		date = time.Now()
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.AddPage()

	// header
	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(contentW-qrSize, 12, "INVOICE", "", 1, "L", false, 0, "")

	// QR code with number and amount (top right)
	png, err := qrcode.Encode(qrContent(inv.Number, calc.GrandTotal()), qrcode.Medium, 256)
	if err != nil {
		return err
	}
	pdf.RegisterImageOptionsReader("qr", fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))
	pdf.ImageOptions("qr", pageW-margin-qrSize, margin, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	// metadata: invoice | customer
	colW := (contentW - qrSize) / 2
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(colW, 6, "Invoice", "", 0, "L", false, 0, "")
	pdf.CellFormat(colW, 6, "Bill to", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	left := []string{"Number: " + inv.Number, "Date: " + date.Format("2006-01-02")}
	right := []string{inv.Customer.Name, inv.Customer.EMail, inv.Customer.Address}
	for i := 0; i < len(right); i++ {
		l := ""
		if i < len(left) {
			l = left[i]
		}
		pdf.CellFormat(colW, 5, l, "", 0, "L", false, 0, "")
		pdf.CellFormat(colW, 5, right[i], "", 1, "L", false, 0, "")
	}

	// item table
	pdf.SetY(margin + qrSize + 12)
	cols := []struct {
		title string
		width float64
		align string
	}{
		{"Category", 30, "L"},
		{"Item", contentW - 30 - 30 - 20 - 30, "L"},
		{"Price", 30, "R"},
		{"Qty", 20, "R"},
		{"Amount", 30, "R"},
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for _, c := range cols {
		pdf.CellFormat(c.width, rowH, c.title, "1", 0, c.align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, it := range calc.Items() {
		values := []string{
			it.Category,
			it.Name,
			money(it.Price),
			fmt.Sprintf("%d", it.Quantity),
			money(Round(it.Amount())),
		}
		for i, c := range cols {
			pdf.CellFormat(c.width, rowH, values[i], "1", 0, c.align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	// grand total (right aligned)
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW-40, rowH, "Grand Total", "", 0, "R", false, 0, "")
	pdf.CellFormat(40, rowH, money(calc.GrandTotal()), "", 1, "R", false, 0, "")

	return pdf.Output(w)
}

func money(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

func qrContent(number string, total float64) string {
	return fmt.Sprintf("INVOICE:%s\nTOTAL:%.2f", number, total)
}
