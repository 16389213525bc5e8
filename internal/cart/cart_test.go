package cart

import (
	"testing"

	"shopstock/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(name string, price float64) model.Product {
	return model.Product{ID: uuid.New(), Name: name, Price: price}
}

func TestAddMergesDuplicateProducts(t *testing.T) {
	c := New()
	p := product("Shampoo", 70)

	c.Add(p, 1)
	c.Add(p, 2)

	require.Equal(t, 1, c.Len())
	assert.Equal(t, 3, c.Items()[0].Quantity)
}

func TestAddClampsQuantityToOne(t *testing.T) {
	c := New()
	p := product("Shampoo", 70)

	c.Add(p, 0)
	assert.Equal(t, 1, c.Items()[0].Quantity)

	c.Add(p, -5)
	assert.Equal(t, 2, c.Items()[0].Quantity)
}

func TestSetQuantityClampsAndIgnoresUnknownProducts(t *testing.T) {
	c := New()
	p := product("Shampoo", 70)
	c.Add(p, 2)

	c.SetQuantity(p.ID, 0)
	assert.Equal(t, 1, c.Items()[0].Quantity)

	c.SetQuantity(p.ID, 7)
	assert.Equal(t, 7, c.Items()[0].Quantity)

	// Unknown product is a no-op, not a new line.
	c.SetQuantity(uuid.New(), 3)
	assert.Equal(t, 1, c.Len())
}

func TestTotalFollowsQuantityChanges(t *testing.T) {
	c := New()
	shampoo := product("Shampoo", 70)
	dryer := product("Hair Dryer", 1300)

	c.Add(shampoo, 1)
	c.Add(dryer, 1)
	assert.Equal(t, "1370.00", c.Total().StringFixed(2))

	c.SetQuantity(shampoo.ID, 2)
	assert.Equal(t, "1440.00", c.Total().StringFixed(2))

	c.Remove(dryer.ID)
	assert.Equal(t, "140.00", c.Total().StringFixed(2))
}

func TestAddUsesSellingPriceWhenSet(t *testing.T) {
	selling := 99.5
	p := model.Product{ID: uuid.New(), Name: "Shampoo", Price: 70, SellingPrice: &selling}

	c := New()
	c.Add(p, 1)

	assert.Equal(t, "99.50", c.Items()[0].UnitPrice.StringFixed(2))
}

func TestRemoveKeepsInsertionOrder(t *testing.T) {
	c := New()
	a := product("A", 1)
	b := product("B", 2)
	d := product("C", 3)
	c.Add(a, 1)
	c.Add(b, 1)
	c.Add(d, 1)

	c.Remove(b.ID)

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "A", items[0].Name)
	assert.Equal(t, "C", items[1].Name)

	// The index is rebuilt, so later updates still hit the right line.
	c.SetQuantity(d.ID, 5)
	assert.Equal(t, 5, c.Items()[1].Quantity)
}

func TestClearEmptiesTheCart(t *testing.T) {
	c := New()
	c.Add(product("A", 1), 1)
	c.Clear()

	assert.Equal(t, 0, c.Len())
	assert.True(t, c.Total().IsZero())
}

func TestItemsReturnsACopy(t *testing.T) {
	c := New()
	c.Add(product("A", 1), 1)

	items := c.Items()
	items[0].Quantity = 99

	assert.Equal(t, 1, c.Items()[0].Quantity)
}
