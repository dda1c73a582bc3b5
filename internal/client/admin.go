package client

import (
	"context"
	"net/http"

	"greenbytes/internal/domain"
)

// Login exchanges staff credentials for a bearer token and attaches it
// to the client for subsequent admin calls.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var out struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}
	in := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", in, &out); err != nil {
		return "", err
	}
	c.token = out.Token
	return out.Role, nil
}

func (c *Client) ListSales(ctx context.Context) ([]domain.Sale, error) {
	var out []domain.Sale
	err := c.do(ctx, http.MethodGet, "/api/sales", nil, &out)
	return out, err
}

// ListIncome fetches the non-sale income ledger entries.
func (c *Client) ListIncome(ctx context.Context) ([]domain.LedgerEntry, error) {
	var out struct {
		Monthly []domain.LedgerEntry `json:"monthly"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/income", nil, &out); err != nil {
		return nil, err
	}
	return out.Monthly, nil
}

func (c *Client) ListQueries(ctx context.Context) ([]domain.Query, error) {
	var out []domain.Query
	err := c.do(ctx, http.MethodGet, "/api/queries", nil, &out)
	return out, err
}

func (c *Client) ReplyQuery(ctx context.Context, id, reply string) (domain.Query, error) {
	var out domain.Query
	in := map[string]string{"reply": reply}
	err := c.do(ctx, http.MethodPut, "/api/queries/"+id+"/reply", in, &out)
	return out, err
}

func (c *Client) CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	var out domain.Product
	err := c.do(ctx, http.MethodPost, "/api/products", p, &out)
	return out, err
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/products/"+id, nil, nil)
}

func (c *Client) ListExpenses(ctx context.Context) ([]domain.Expense, error) {
	var out []domain.Expense
	err := c.do(ctx, http.MethodGet, "/api/expenses", nil, &out)
	return out, err
}

func (c *Client) CreateExpense(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	var out domain.Expense
	err := c.do(ctx, http.MethodPost, "/api/expenses", e, &out)
	return out, err
}
