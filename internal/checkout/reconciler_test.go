package checkout_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greenbytes/internal/cart"
	"greenbytes/internal/checkout"
	"greenbytes/internal/domain"
)

// fakeBackend records every write so tests can assert exactly what was
// committed before a failure halted the sequence.
type fakeBackend struct {
	products map[string]domain.Product

	getErr    map[string]error
	updateErr map[string]error
	saleErr   map[string]error

	updates []domain.Product
	sales   []domain.Sale
}

func newFakeBackend(products ...domain.Product) *fakeBackend {
	b := &fakeBackend{
		products:  map[string]domain.Product{},
		getErr:    map[string]error{},
		updateErr: map[string]error{},
		saleErr:   map[string]error{},
	}
	for _, p := range products {
		b.products[p.ID] = p
	}
	return b
}

func (b *fakeBackend) GetProduct(_ context.Context, id string) (domain.Product, error) {
	if err := b.getErr[id]; err != nil {
		return domain.Product{}, err
	}
	p, ok := b.products[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("status 404")
	}
	return p, nil
}

func (b *fakeBackend) UpdateProduct(_ context.Context, id string, p domain.Product) (domain.Product, error) {
	if err := b.updateErr[id]; err != nil {
		return domain.Product{}, err
	}
	b.products[id] = p
	b.updates = append(b.updates, p)
	return p, nil
}

func (b *fakeBackend) CreateSale(_ context.Context, s domain.Sale) (domain.Sale, error) {
	if err := b.saleErr[s.ProductID]; err != nil {
		return domain.Sale{}, err
	}
	s.ID = fmt.Sprintf("sale-%d", len(b.sales)+1)
	b.sales = append(b.sales, s)
	return s, nil
}

func testStore(t *testing.T, lines ...cart.Line) *cart.Store {
	t.Helper()
	store, err := cart.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Set(lines))
	return store
}

func line(p domain.Product, qty int) cart.Line {
	return cart.Line{Product: p, Quantity: qty, Price: p.Price}
}

func TestCheckoutEmptyCartRejectedBeforeNetwork(t *testing.T) {
	api := newFakeBackend()
	store := testStore(t)
	r := checkout.NewReconciler(api, store)

	_, err := r.Checkout(context.Background())
	assert.ErrorIs(t, err, checkout.ErrEmptyCart)
	assert.Empty(t, api.updates)
	assert.Empty(t, api.sales)
}

func TestCheckoutSuccess(t *testing.T) {
	hdd := domain.Product{ID: "hdd", Name: "1TB HDD", Price: 10.00, Stock: 2}
	ram := domain.Product{ID: "ram", Name: "8GB RAM", Price: 18.50, Stock: 5}
	api := newFakeBackend(hdd, ram)
	store := testStore(t, line(hdd, 2), line(ram, 1))

	r := checkout.NewReconciler(api, store)
	res, err := r.Checkout(context.Background())
	require.NoError(t, err)

	assert.Equal(t, checkout.StateSucceeded, res.State)
	assert.Equal(t, checkout.StateSucceeded, r.State())
	assert.Equal(t, 2, res.AppliedLines)
	assert.Equal(t, []string{"sale-1", "sale-2"}, res.SaleIDs)

	// Stock decremented by purchased quantity.
	assert.Equal(t, 0, api.products["hdd"].Stock)
	assert.Equal(t, 4, api.products["ram"].Stock)

	// One sale per line, total = unit price * quantity, RFC3339 date.
	require.Len(t, api.sales, 2)
	assert.Equal(t, 20.00, api.sales[0].Total)
	assert.Equal(t, 18.50, api.sales[1].Total)
	_, perr := time.Parse(time.RFC3339, api.sales[0].Date)
	assert.NoError(t, perr)

	// Cart cleared after success.
	left, err := store.Get()
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestCheckoutInsufficientStockKeepsCart(t *testing.T) {
	fan := domain.Product{ID: "fan", Name: "Case Fan", Price: 3.50, Stock: 3}
	api := newFakeBackend(fan)
	store := testStore(t, line(fan, 5))

	r := checkout.NewReconciler(api, store)
	_, err := r.Checkout(context.Background())

	var serr *checkout.StockError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "Case Fan", serr.Name)
	assert.Equal(t, 3, serr.Available)
	assert.Equal(t, "insufficient stock for Case Fan, only 3 available", err.Error())
	assert.Equal(t, checkout.StateFailed, r.State())

	// No writes were attempted and the customer can adjust and retry.
	assert.Empty(t, api.updates)
	left, err := store.Get()
	require.NoError(t, err)
	assert.Len(t, left, 1)
}

func TestCheckoutMissingProductClearsCart(t *testing.T) {
	hdd := domain.Product{ID: "hdd", Name: "1TB HDD", Price: 10.00, Stock: 2}
	api := newFakeBackend(hdd)
	gone := domain.Product{ID: "gone", Name: "Old PSU", Price: 7.00, Stock: 1}
	store := testStore(t, line(hdd, 1), line(gone, 1))

	r := checkout.NewReconciler(api, store)
	_, err := r.Checkout(context.Background())

	var nerr *checkout.NotFoundError
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, "Old PSU", nerr.Name)
	assert.Equal(t, "product Old PSU not found or inaccessible", err.Error())
	assert.Equal(t, checkout.StateFailed, r.State())

	// Validation halts before any apply step.
	assert.Empty(t, api.updates)
	assert.Empty(t, api.sales)

	// The entire cart is dropped, not just the missing line.
	left, serr := store.Get()
	require.NoError(t, serr)
	assert.Empty(t, left)
}

func TestCheckoutMidApplyFailureLeavesEarlierLinesCommitted(t *testing.T) {
	hdd := domain.Product{ID: "hdd", Name: "1TB HDD", Price: 10.00, Stock: 2}
	ram := domain.Product{ID: "ram", Name: "8GB RAM", Price: 18.50, Stock: 5}
	api := newFakeBackend(hdd, ram)
	api.updateErr["ram"] = errors.New("status 500")
	store := testStore(t, line(hdd, 1), line(ram, 1))

	r := checkout.NewReconciler(api, store)
	res, err := r.Checkout(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "update stock for 8GB RAM")

	// The first line stays applied with no compensation.
	assert.Equal(t, checkout.StateFailed, res.State)
	assert.Equal(t, 1, res.AppliedLines)
	assert.Equal(t, []string{"sale-1"}, res.SaleIDs)
	assert.Equal(t, 1, api.products["hdd"].Stock)
	assert.Equal(t, 5, api.products["ram"].Stock)
	require.Len(t, api.sales, 1)

	// The cart is kept so the attempt can be retried.
	left, serr := store.Get()
	require.NoError(t, serr)
	assert.Len(t, left, 2)
}

func TestCheckoutSaleRecordFailureLeavesStockDecremented(t *testing.T) {
	hdd := domain.Product{ID: "hdd", Name: "1TB HDD", Price: 10.00, Stock: 2}
	api := newFakeBackend(hdd)
	api.saleErr["hdd"] = errors.New("status 500")
	store := testStore(t, line(hdd, 1))

	r := checkout.NewReconciler(api, store)
	res, err := r.Checkout(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record sale for 1TB HDD")

	// Stock was already decremented even though no sale was recorded.
	assert.Equal(t, 0, res.AppliedLines)
	assert.Equal(t, 1, api.products["hdd"].Stock)
	assert.Empty(t, api.sales)
}
