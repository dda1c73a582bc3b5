// Package checkout converts a locally persisted cart into committed
// stock decrements and sale records against the live backend.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"greenbytes/internal/cart"
	"greenbytes/internal/domain"
)

// State of a checkout attempt.
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateApplying   State = "applying"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// ErrEmptyCart rejects checkout before any network call is made.
var ErrEmptyCart = errors.New("cart is empty")

// NotFoundError means a cart line's product vanished or became
// unreachable before checkout completed. The whole cart is cleared.
type NotFoundError struct {
	Name  string
	Cause error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product %s not found or inaccessible", e.Name)
}

func (e *NotFoundError) Unwrap() error { return e.Cause }

// StockError means live stock no longer covers a line's quantity. The
// cart is left intact so the customer can adjust and retry.
type StockError struct {
	Name      string
	Available int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s, only %d available", e.Name, e.Available)
}

// Backend is the slice of the storefront API the reconciler needs.
type Backend interface {
	GetProduct(ctx context.Context, id string) (domain.Product, error)
	UpdateProduct(ctx context.Context, id string, p domain.Product) (domain.Product, error)
	CreateSale(ctx context.Context, s domain.Sale) (domain.Sale, error)
}

// Result reports how far a checkout attempt got. AppliedLines counts
// lines whose stock decrement and sale record both committed; on a
// mid-sequence failure those stay applied with no compensation.
type Result struct {
	State        State
	AppliedLines int
	SaleIDs      []string
}

// Reconciler re-validates every cart line against live stock, then
// applies stock decrements and sale records one line at a time, in cart
// order, awaiting each round-trip. Sequential on purpose: the first
// failing line halts everything after it at a deterministic point.
type Reconciler struct {
	api   Backend
	store *cart.Store
	state State
	now   func() time.Time
}

func NewReconciler(api Backend, store *cart.Store) *Reconciler {
	return &Reconciler{api: api, store: store, state: StateIdle, now: time.Now}
}

// State reports where the last (or current) checkout attempt stands.
func (r *Reconciler) State() State { return r.state }

type validatedLine struct {
	line    cart.Line
	product domain.Product
}

// Checkout runs the full validate-then-apply sequence. On success the
// cart is cleared. A not-found failure also clears the cart; a stock
// failure leaves it intact.
func (r *Reconciler) Checkout(ctx context.Context) (Result, error) {
	r.state = StateIdle

	lines, err := r.store.Get()
	if err != nil {
		return Result{State: r.state}, err
	}
	if len(lines) == 0 {
		return Result{State: r.state}, ErrEmptyCart
	}

	r.state = StateValidating
	validated := make([]validatedLine, 0, len(lines))
	for _, line := range lines {
		p, err := r.api.GetProduct(ctx, line.Product.ID)
		if err != nil {
			// Fail fast: any stale or missing product invalidates the
			// whole attempt, and the entire cart is dropped.
			r.state = StateFailed
			if cerr := r.store.Set(nil); cerr != nil {
				return Result{State: r.state}, cerr
			}
			return Result{State: r.state}, &NotFoundError{Name: line.Product.Name, Cause: err}
		}
		if p.Stock < line.Quantity {
			r.state = StateFailed
			return Result{State: r.state}, &StockError{Name: p.Name, Available: p.Stock}
		}
		validated = append(validated, validatedLine{line: line, product: p})
	}

	// Sequential and non-transactional: lines already applied stay
	// applied if a later sub-step fails.
	r.state = StateApplying
	res := Result{State: r.state}
	for _, v := range validated {
		p := v.product
		p.Stock -= v.line.Quantity
		if _, err := r.api.UpdateProduct(ctx, p.ID, p); err != nil {
			r.state = StateFailed
			res.State = r.state
			return res, fmt.Errorf("update stock for %s: %w", p.Name, err)
		}

		sale := domain.Sale{
			ProductID: p.ID,
			Quantity:  v.line.Quantity,
			Total:     cart.LineTotal(v.line).InexactFloat64(),
			Date:      r.now().UTC().Format(time.RFC3339),
		}
		created, err := r.api.CreateSale(ctx, sale)
		if err != nil {
			r.state = StateFailed
			res.State = r.state
			return res, fmt.Errorf("record sale for %s: %w", p.Name, err)
		}
		res.AppliedLines++
		res.SaleIDs = append(res.SaleIDs, created.ID)
	}

	if err := r.store.Set(nil); err != nil {
		return res, err
	}
	r.state = StateSucceeded
	res.State = r.state
	return res, nil
}
