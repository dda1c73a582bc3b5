package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"greenbytes/internal/domain"
	applog "greenbytes/internal/log"
	"greenbytes/internal/repos"
	"greenbytes/pkg/apierror"
)

type FinanceHandler struct {
	Ledger *repos.LedgerRepo
}

// GET /api/income
func (h *FinanceHandler) Income(c *fiber.Ctx) error {
	entries, err := h.Ledger.Entries()
	if err != nil {
		applog.Error(c, "income.list.fail", err, nil)
		return fail(c, apierror.Internal(""))
	}
	return c.JSON(fiber.Map{"monthly": entries})
}

// GET /api/expenses
func (h *FinanceHandler) ListExpenses(c *fiber.Ctx) error {
	expenses, err := h.Ledger.ListExpenses()
	if err != nil {
		applog.Error(c, "expenses.list.fail", err, nil)
		return fail(c, apierror.Internal(""))
	}
	return c.JSON(expenses)
}

type expenseRequest struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Date   string  `json:"date"`
}

// POST /api/expenses
func (h *FinanceHandler) CreateExpense(c *fiber.Ctx) error {
	var req expenseRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, apierror.BadRequest("invalid request body"))
	}
	if req.Name == "" || req.Amount < 0 {
		return fail(c, apierror.Validation("expense needs a name and a non-negative amount"))
	}
	date := req.Date
	if date == "" {
		date = time.Now().UTC().Format(time.RFC3339)
	}

	e := domain.Expense{ID: uuid.NewString(), Name: req.Name, Amount: req.Amount, Date: date}
	if err := h.Ledger.CreateExpense(e); err != nil {
		applog.Error(c, "expenses.create.fail", err, nil)
		return fail(c, apierror.Internal(""))
	}
	applog.Audit(c, "expenses.create", map[string]any{"expense_id": e.ID, "amount": e.Amount})
	return c.Status(fiber.StatusCreated).JSON(e)
}
