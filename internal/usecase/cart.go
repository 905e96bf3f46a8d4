package usecase

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/yourusername/groupbuy-backend/internal/domain/entity"
)

var nonDigitRe = regexp.MustCompile(`[^0-9]`)

// Cart is the in-memory line-item list of one in-progress order form.
// It lives for a single submission and is thrown away afterwards.
// All operations are pure and synchronous.
type Cart struct {
	items []entity.CartItem
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// CartFromItems builds a cart from client-supplied lines, merging duplicate
// product ids and dropping non-positive quantities.
func CartFromItems(items []entity.CartItem) *Cart {
	c := NewCart()
	for _, item := range items {
		if item.Quantity < 1 {
			continue
		}
		if existing := c.find(item.ID); existing != nil {
			existing.Quantity += item.Quantity
			continue
		}
		c.items = append(c.items, item)
	}
	return c
}

// Add puts a product into the cart: quantity 1 for a new line, +1 when the
// product id is already present. Never creates a second line for the same id.
func (c *Cart) Add(p entity.Product) {
	if existing := c.find(p.ID); existing != nil {
		existing.Quantity++
		return
	}
	c.items = append(c.items, entity.CartItem{
		ID:            p.ID,
		Name:          p.Name,
		Quantity:      1,
		PriceEstimate: p.PriceEstimate,
	})
}

// UpdateQuantity applies a delta to a line. A line that would reach zero or
// below is removed; a zero-quantity row is never stored.
func (c *Cart) UpdateQuantity(id string, delta int) {
	item := c.find(id)
	if item == nil {
		return
	}
	if item.Quantity+delta <= 0 {
		c.Remove(id)
		return
	}
	item.Quantity += delta
}

// Remove deletes a line by product id.
func (c *Cart) Remove(id string) {
	for i, item := range c.items {
		if item.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.items = nil
}

// Items returns a copy of the cart lines.
func (c *Cart) Items() []entity.CartItem {
	out := make([]entity.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.items)
}

// TotalQuantity sums quantities across all lines.
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// Total estimates the order price: every non-digit is stripped from the
// display price string and the remainder parsed as the unit price (a price
// that parses to nothing counts as 0), times the quantity.
func (c *Cart) Total() int {
	total := 0
	for _, item := range c.items {
		unit, err := strconv.Atoi(nonDigitRe.ReplaceAllString(item.PriceEstimate, ""))
		if err != nil {
			unit = 0
		}
		total += unit * item.Quantity
	}
	return total
}

// Summary flattens the cart into the sheet's human-readable product column:
// "name xQty" segments joined with ", ".
func (c *Cart) Summary() string {
	parts := make([]string, 0, len(c.items))
	for _, item := range c.items {
		parts = append(parts, fmt.Sprintf("%s x%d", item.Name, item.Quantity))
	}
	return strings.Join(parts, ", ")
}

// TickerLabel is the short product label of the synthesized ticker entry:
// the first product name, with a 等N樣 suffix when more lines follow.
func (c *Cart) TickerLabel() string {
	if len(c.items) == 0 {
		return ""
	}
	if len(c.items) == 1 {
		return c.items[0].Name
	}
	return fmt.Sprintf("%s 等%d樣", c.items[0].Name, len(c.items))
}

func (c *Cart) find(id string) *entity.CartItem {
	for i := range c.items {
		if c.items[i].ID == id {
			return &c.items[i]
		}
	}
	return nil
}
