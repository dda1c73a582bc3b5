package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"greenbytes/internal/domain"
	applog "greenbytes/internal/log"
	"greenbytes/internal/repos"
	"greenbytes/internal/validate"
	"greenbytes/pkg/apierror"
)

type SaleHandler struct {
	Sales *repos.SaleRepo
}

type saleRequest struct {
	ProductID string               `json:"productId"`
	Quantity  int                  `json:"quantity"`
	Total     float64              `json:"total"`
	Date      string               `json:"date"`
	Expenses  []domain.SaleExpense `json:"expenses"`
}

func (req saleRequest) validate() *apierror.Error {
	if _, ok := validate.ID(req.ProductID); !ok {
		return apierror.Validation("productId is required")
	}
	if req.Quantity < 1 {
		return apierror.Validation("quantity must be at least 1")
	}
	if req.Total < 0 {
		return apierror.Validation("total must not be negative")
	}
	for _, e := range req.Expenses {
		if e.Name == "" || e.Amount < 0 {
			return apierror.Validation("expense entries need a name and a non-negative amount")
		}
	}
	return nil
}

func (req saleRequest) toDomain(id string) domain.Sale {
	date := req.Date
	if date == "" {
		date = time.Now().UTC().Format(time.RFC3339)
	}
	return domain.Sale{
		ID:        id,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Total:     req.Total,
		Date:      date,
		Expenses:  req.Expenses,
	}
}

// GET /api/sales
func (h *SaleHandler) List(c *fiber.Ctx) error {
	sales, err := h.Sales.List()
	if err != nil {
		applog.Error(c, "sales.list.fail", err, nil)
		return fail(c, apierror.Internal(""))
	}
	return c.JSON(sales)
}

// POST /api/sales
//
// Not role-gated: the storefront checkout records sales without a token.
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var req saleRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, apierror.BadRequest("invalid request body"))
	}
	if verr := req.validate(); verr != nil {
		applog.Security(c, "validation.fail", map[string]any{"entity": "sale"})
		return fail(c, verr)
	}

	s := req.toDomain(uuid.NewString())
	if err := h.Sales.Create(s); err != nil {
		applog.Error(c, "sales.create.fail", err, nil)
		return fail(c, apierror.Internal(""))
	}
	applog.Audit(c, "sales.create", map[string]any{"sale_id": s.ID, "product_id": s.ProductID, "total": s.Total})
	return c.Status(fiber.StatusCreated).JSON(s)
}

// PUT /api/sales/:id
func (h *SaleHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, apierror.NotFound("sale not found"))
	}
	var req saleRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, apierror.BadRequest("invalid request body"))
	}
	if verr := req.validate(); verr != nil {
		return fail(c, verr)
	}

	s := req.toDomain(id)
	n, err := h.Sales.Update(id, s)
	if err != nil {
		applog.Error(c, "sales.update.fail", err, map[string]any{"sale_id": id})
		return fail(c, apierror.Internal(""))
	}
	if n == 0 {
		return fail(c, apierror.NotFound("sale not found"))
	}
	applog.Audit(c, "sales.update", map[string]any{"sale_id": id})
	return c.JSON(s)
}

// DELETE /api/sales/:id
func (h *SaleHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, apierror.NotFound("sale not found"))
	}
	n, err := h.Sales.Delete(id)
	if err != nil {
		applog.Error(c, "sales.delete.fail", err, map[string]any{"sale_id": id})
		return fail(c, apierror.Internal(""))
	}
	if n == 0 {
		return fail(c, apierror.NotFound("sale not found"))
	}
	applog.Audit(c, "sales.delete", map[string]any{"sale_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
