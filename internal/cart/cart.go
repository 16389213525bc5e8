// Package cart holds the in-memory line items of an order being built.
// It is purely computational: persistence happens only at checkout.
package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"shopstock/internal/model"
)

// Item is one pending line: a product with the quantity selected so far and
// the unit price captured when the product was added.
type Item struct {
	ProductID uuid.UUID
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

// LineTotal returns quantity × unit price for this line.
func (i Item) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is an ordered collection of items keyed by product id. Insertion
// order is preserved so the checkout screen lists lines the way the user
// added them.
type Cart struct {
	items []Item
	index map[uuid.UUID]int
}

func New() *Cart {
	return &Cart{index: make(map[uuid.UUID]int)}
}

// Add puts qty units of the product in the cart. Adding a product that is
// already present increases its line quantity; it never creates a second
// line. A qty below 1 counts as 1.
func (c *Cart) Add(p model.Product, qty int) {
	if qty < 1 {
		qty = 1
	}
	if pos, ok := c.index[p.ID]; ok {
		c.items[pos].Quantity += qty
		return
	}
	c.index[p.ID] = len(c.items)
	c.items = append(c.items, Item{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: decimal.NewFromFloat(p.SalePrice()),
		Quantity:  qty,
	})
}

// SetQuantity replaces a line's quantity, clamping to a minimum of 1.
// Removing a line is an explicit Remove, never a zero quantity.
func (c *Cart) SetQuantity(productID uuid.UUID, qty int) {
	pos, ok := c.index[productID]
	if !ok {
		return
	}
	if qty < 1 {
		qty = 1
	}
	c.items[pos].Quantity = qty
}

// Remove deletes the product's line if present.
func (c *Cart) Remove(productID uuid.UUID) {
	pos, ok := c.index[productID]
	if !ok {
		return
	}
	c.items = append(c.items[:pos], c.items[pos+1:]...)
	delete(c.index, productID)
	for i := pos; i < len(c.items); i++ {
		c.index[c.items[i].ProductID] = i
	}
}

// Items returns the lines in insertion order. The slice is a copy; mutating
// it does not affect the cart.
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Total is the sum of all line totals.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.items {
		total = total.Add(it.LineTotal())
	}
	return total
}

// Len returns the number of lines.
func (c *Cart) Len() int {
	return len(c.items)
}

// Clear empties the cart after a successful checkout.
func (c *Cart) Clear() {
	c.items = nil
	c.index = make(map[uuid.UUID]int)
}
