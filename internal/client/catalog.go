package client

import (
	"context"
	"net/http"
	"strings"

	"greenbytes/internal/domain"
)

// ListProducts fetches the full catalog and, when searchTerm is
// non-empty, filters it case-insensitively by substring match on name
// or description.
func (c *Client) ListProducts(ctx context.Context, searchTerm string) ([]domain.Product, error) {
	var all []domain.Product
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, &all); err != nil {
		return nil, err
	}

	term := strings.ToLower(strings.TrimSpace(searchTerm))
	if term == "" {
		return all, nil
	}
	out := make([]domain.Product, 0, len(all))
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Description), term) {
			out = append(out, p)
		}
	}
	return out, nil
}

// GetProduct fetches one product; checkout uses it for authoritative
// stock re-validation.
func (c *Client) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	var p domain.Product
	err := c.do(ctx, http.MethodGet, "/api/products/"+id, nil, &p)
	return p, err
}

// UpdateProduct overwrites the full product record.
func (c *Client) UpdateProduct(ctx context.Context, id string, p domain.Product) (domain.Product, error) {
	var out domain.Product
	err := c.do(ctx, http.MethodPut, "/api/products/"+id, p, &out)
	return out, err
}

// CreateSale records a sale for one checkout line.
func (c *Client) CreateSale(ctx context.Context, s domain.Sale) (domain.Sale, error) {
	var out domain.Sale
	err := c.do(ctx, http.MethodPost, "/api/sales", s, &out)
	return out, err
}

// SubmitQuery sends a storefront visitor inquiry.
func (c *Client) SubmitQuery(ctx context.Context, name, email, message string) (domain.Query, error) {
	var out domain.Query
	in := map[string]string{"name": name, "email": email, "message": message}
	err := c.do(ctx, http.MethodPost, "/api/queries", in, &out)
	return out, err
}
