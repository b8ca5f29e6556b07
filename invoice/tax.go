package invoice

// TaxRate of the tax add-on
const TaxRate = 0.18

// TaxOn returns the tax for an amount (rounded to cents)
func TaxOn(amount float64) float64 {
	return Round(amount * TaxRate)
}

// TotalWithTax returns amount plus tax; the calculator's grand total never includes it
func TotalWithTax(amount float64) float64 {
	return Round(amount + TaxOn(amount))
}

// Totals is the summary sent to the admin panel
type Totals struct {
	Items        []Item   `json:"items"`
	Subtotal     float64  `json:"subtotal"`
	GrandTotal   float64  `json:"grandTotal"`
	TaxRate      *float64 `json:"taxRate,omitempty"`
	Tax          *float64 `json:"tax,omitempty"`
	TotalWithTax *float64 `json:"totalWithTax,omitempty"`
}

// Summarize returns the totals; the tax fields are only filled when asked for
func Summarize(c *Calculator, withTax bool) Totals {
	t := Totals{
		Items:      c.Items(),
		Subtotal:   c.Subtotal(),
		GrandTotal: c.GrandTotal(),
	}
	if withTax {
		rate := TaxRate
		tax := TaxOn(t.GrandTotal)
		total := TotalWithTax(t.GrandTotal)
		t.TaxRate, t.Tax, t.TotalWithTax = &rate, &tax, &total
	}
	return t
}
