package cart

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"greenbytes/internal/domain"
)

// ErrStockLimit rejects an Add that would push a line past the stock
// last observed by the catalog. Advisory only: the server-confirmed
// check happens at checkout.
var ErrStockLimit = errors.New("quantity would exceed available stock")

// Controller mutates the cart store. All operations are synchronous and
// local; no network calls.
type Controller struct {
	store *Store
}

func NewController(store *Store) *Controller {
	return &Controller{store: store}
}

func (c *Controller) Lines() ([]Line, error) {
	return c.store.Get()
}

// Add puts one unit of the product in the cart. An existing line is
// incremented; incrementing past the snapshot's stock is a no-op error.
func (c *Controller) Add(p domain.Product) error {
	lines, err := c.store.Get()
	if err != nil {
		return err
	}
	for i, l := range lines {
		if l.Product.ID == p.ID {
			if l.Quantity+1 > p.Stock {
				return fmt.Errorf("cannot add more %s, only %d available: %w", p.Name, p.Stock, ErrStockLimit)
			}
			lines[i].Quantity++
			return c.store.Set(lines)
		}
	}
	if p.Stock < 1 {
		return fmt.Errorf("cannot add %s, only %d available: %w", p.Name, p.Stock, ErrStockLimit)
	}
	lines = append(lines, Line{Product: p, Quantity: 1, Price: p.Price})
	return c.store.Set(lines)
}

// UpdateQuantity sets a line's quantity, clamped to a minimum of 1.
// There is no upper bound here; the ceiling is enforced in Add and
// re-checked server-side at checkout.
func (c *Controller) UpdateQuantity(productID string, qty int) error {
	if qty < 1 {
		qty = 1
	}
	lines, err := c.store.Get()
	if err != nil {
		return err
	}
	for i, l := range lines {
		if l.Product.ID == productID {
			lines[i].Quantity = qty
			return c.store.Set(lines)
		}
	}
	return nil
}

// Remove deletes the matching line, if present.
func (c *Controller) Remove(productID string) error {
	lines, err := c.store.Get()
	if err != nil {
		return err
	}
	out := lines[:0]
	for _, l := range lines {
		if l.Product.ID != productID {
			out = append(out, l)
		}
	}
	return c.store.Set(out)
}

// Total folds sum(price x quantity) over all lines, exactly.
func (c *Controller) Total() (decimal.Decimal, error) {
	lines, err := c.store.Get()
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(LineTotal(l))
	}
	return total, nil
}

// LineTotal is price x quantity for one line, rounded to 2 decimals.
func LineTotal(l Line) decimal.Decimal {
	return decimal.NewFromFloat(l.Price).
		Mul(decimal.NewFromInt(int64(l.Quantity))).
		Round(2)
}
