// Package invoice computes invoice totals and renders invoices as PDF.
package invoice

import (
	"errors"
	"math"
	"strings"
)

// line item categories (one item per category is a rule of the admin UI, not of the calculator)
const (
	CategoryProduct  = "product"
	CategoryService  = "service"
	CategoryShipping = "shipping"
	CategoryCustom   = "custom" // free-form items
)

// quantity range of a line item
const (
	MinQuantity = 1
	MaxQuantity = 1000
)

// transformed by controllers to Bad Request (400)
var (
	ErrUnknownCategory = errors.New("unknown item category")
	ErrNameMissing     = errors.New("item name is required")
	ErrInvalidPrice    = errors.New("price must not be negative")
	ErrInvalidQuantity = errors.New("quantity must be between 1 and 1000")
	ErrItemIndex       = errors.New("item does not exist")
	ErrNoItems         = errors.New("invoice has no items")
	ErrNumberMissing   = errors.New("invoice number is required")
)

// IsValidationError reports whether err was caused by the request's data
func IsValidationError(err error) bool {
	for _, v := range []error{ErrUnknownCategory, ErrNameMissing, ErrInvalidPrice, ErrInvalidQuantity, ErrItemIndex, ErrNoItems, ErrNumberMissing} {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}

// Categories lists the fixed categories (custom excluded)
func Categories() []string {
	return []string{CategoryProduct, CategoryService, CategoryShipping}
}

// Item is one line of an invoice
type Item struct {
	Category string  `json:"category"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Amount is price x quantity (not rounded)
func (i Item) Amount() float64 {
	return i.Price * float64(i.Quantity)
}

// Calculator keeps the ordered line items of one invoice
type Calculator struct {
	items []Item
}

// NewCalculator builds a calculator from already collected items
// (an empty category is treated as a custom item)
func NewCalculator(items []Item) (*Calculator, error) {
	c := &Calculator{}
	for _, it := range items {
		var err error
		if it.Category == "" || it.Category == CategoryCustom {
			err = c.AddCustomItem(it.Name, it.Price, it.Quantity)
		} else {
			err = c.AddItem(it.Category, it.Name, it.Price, it.Quantity)
		}
		if err != nil {
			return nil, err
		}
	}
	return c, nil
}

// AddItem appends an item of a fixed category
func (c *Calculator) AddItem(category string, name string, price float64, quantity int) error {
	if !validCategory(category) {
		return ErrUnknownCategory
	}
	it, err := newItem(category, name, price, quantity)
	if err != nil {
		return err
	}
	c.items = append(c.items, it)
	return nil
}

// AddCustomItem appends a free-form item
func (c *Calculator) AddCustomItem(name string, price float64, quantity int) error {
	it, err := newItem(CategoryCustom, name, price, quantity)
	if err != nil {
		return err
	}
	c.items = append(c.items, it)
	return nil
}

// EditItem replaces the values of the i-th item (category stays)
func (c *Calculator) EditItem(i int, name string, price float64, quantity int) error {
	if i < 0 || i >= len(c.items) {
		return ErrItemIndex
	}
	it, err := newItem(c.items[i].Category, name, price, quantity)
	if err != nil {
		return err
	}
	c.items[i] = it
	return nil
}

// RemoveItem deletes the i-th item, the order of the others is kept
func (c *Calculator) RemoveItem(i int) error {
	if i < 0 || i >= len(c.items) {
		return ErrItemIndex
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	return nil
}

// Items returns a copy of the line items
func (c *Calculator) Items() []Item {
	return append([]Item{}, c.items...)
}

// Subtotal is the sum of all line amounts
func (c *Calculator) Subtotal() float64 {
	sum := 0.0
	for _, it := range c.items {
		sum += it.Amount()
	}
	return Round(sum)
}

// GrandTotal is the amount due; no tax is applied here (see TotalWithTax)
func (c *Calculator) GrandTotal() float64 {
	return c.Subtotal()
}

// Round rounds to cents
func Round(amount float64) float64 {
	return math.Round(amount*100) / 100
}

func newItem(category string, name string, price float64, quantity int) (Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Item{}, ErrNameMissing
	}
	if price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return Item{}, ErrInvalidPrice
	}
	if quantity < MinQuantity || quantity > MaxQuantity {
		return Item{}, ErrInvalidQuantity
	}
	return Item{Category: category, Name: name, Price: price, Quantity: quantity}, nil
}

func validCategory(category string) bool {
	for _, c := range Categories() {
		if c == category {
			return true
		}
	}
	return false
}
