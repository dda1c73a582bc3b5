package handlers

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"greenbytes/internal/domain"
	applog "greenbytes/internal/log"
	"greenbytes/internal/services"
	"greenbytes/internal/validate"
	"greenbytes/pkg/apierror"
)

// maxImageChars bounds the base64 data-URI for product photos (~2 MB of
// raw image once decoded).
const maxImageChars = 2800000

type ProductHandler struct {
	Catalog *services.CatalogService
}

type productRequest struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
}

func (req productRequest) validate() *apierror.Error {
	if _, ok := validate.Name(req.Name); !ok {
		return apierror.Validation("name is required (max 50 characters)")
	}
	if req.Price < 0 {
		return apierror.Validation("price must not be negative")
	}
	if req.Stock < 0 {
		return apierror.Validation("stock must not be negative")
	}
	if req.Category != "" {
		if _, ok := validate.Category(req.Category); !ok {
			return apierror.Validation("unknown category")
		}
	}
	if len(req.Image) > maxImageChars {
		return apierror.Validation("image must be less than 2MB")
	}
	return nil
}

func (req productRequest) toDomain(id string) domain.Product {
	category := req.Category
	if category == "" {
		category = domain.CategoryRecycled
	}
	return domain.Product{
		ID:          id,
		Name:        req.Name,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    category,
		Description: req.Description,
		Image:       req.Image,
	}
}

// GET /api/products
func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.Catalog.List(c.Context())
	if err != nil {
		applog.Error(c, "products.list.fail", err, nil)
		return fail(c, apierror.Internal(""))
	}
	return c.JSON(products)
}

// GET /api/products/:id
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, apierror.NotFound("product not found"))
	}
	p, err := h.Catalog.Get(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, apierror.NotFound("product not found"))
		}
		applog.Error(c, "products.get.fail", err, map[string]any{"product_id": id})
		return fail(c, apierror.Internal(""))
	}
	return c.JSON(p)
}

// POST /api/products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, apierror.BadRequest("invalid request body"))
	}
	if verr := req.validate(); verr != nil {
		applog.Security(c, "validation.fail", map[string]any{"entity": "product"})
		return fail(c, verr)
	}

	p := req.toDomain(uuid.NewString())
	if err := h.Catalog.Create(c.Context(), p); err != nil {
		applog.Error(c, "products.create.fail", err, nil)
		return fail(c, apierror.Internal(""))
	}
	applog.Audit(c, "products.create", map[string]any{"product_id": p.ID, "name": p.Name})
	return c.Status(fiber.StatusCreated).JSON(p)
}

// PUT /api/products/:id
//
// Full-record overwrite. Deliberately not role-gated: the storefront
// checkout writes decremented stock through this route without a token.
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, apierror.NotFound("product not found"))
	}
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, apierror.BadRequest("invalid request body"))
	}
	if verr := req.validate(); verr != nil {
		applog.Security(c, "validation.fail", map[string]any{"entity": "product"})
		return fail(c, verr)
	}

	p := req.toDomain(id)
	n, err := h.Catalog.Update(c.Context(), id, p)
	if err != nil {
		applog.Error(c, "products.update.fail", err, map[string]any{"product_id": id})
		return fail(c, apierror.Internal(""))
	}
	if n == 0 {
		return fail(c, apierror.NotFound("product not found"))
	}
	updated, err := h.Catalog.Get(id)
	if err != nil {
		return fail(c, apierror.Internal(""))
	}
	applog.Audit(c, "products.update", map[string]any{"product_id": id, "stock": p.Stock})
	return c.JSON(updated)
}

// DELETE /api/products/:id
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, apierror.NotFound("product not found"))
	}
	n, err := h.Catalog.Delete(c.Context(), id)
	if err != nil {
		applog.Error(c, "products.delete.fail", err, map[string]any{"product_id": id})
		return fail(c, apierror.Internal(""))
	}
	if n == 0 {
		return fail(c, apierror.NotFound("product not found"))
	}
	applog.Audit(c, "products.delete", map[string]any{"product_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
