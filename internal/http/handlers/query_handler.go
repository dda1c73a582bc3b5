package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"greenbytes/internal/domain"
	applog "greenbytes/internal/log"
	"greenbytes/internal/repos"
	"greenbytes/internal/validate"
	"greenbytes/pkg/apierror"
)

type QueryHandler struct {
	Queries *repos.QueryRepo
}

type queryRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// GET /api/queries
func (h *QueryHandler) List(c *fiber.Ctx) error {
	queries, err := h.Queries.List()
	if err != nil {
		applog.Error(c, "queries.list.fail", err, nil)
		return fail(c, apierror.Internal(""))
	}
	return c.JSON(queries)
}

// POST /api/queries
func (h *QueryHandler) Create(c *fiber.Ctx) error {
	var req queryRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, apierror.BadRequest("invalid request body"))
	}
	name, okName := validate.Name(req.Name)
	email, okEmail := validate.Email(req.Email)
	if !okName || !okEmail || strings.TrimSpace(req.Message) == "" {
		applog.Security(c, "validation.fail", map[string]any{"entity": "query"})
		return fail(c, apierror.Validation("name, email and message are required"))
	}

	q := domain.Query{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Message:   strings.TrimSpace(req.Message),
		Status:    domain.QueryPending,
		AutoReply: "Thanks for reaching out, " + name + ". Our team will get back to you shortly.",
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := h.Queries.Create(q); err != nil {
		applog.Error(c, "queries.create.fail", err, nil)
		return fail(c, apierror.Internal(""))
	}
	applog.Info(c, "queries.create", map[string]any{"query_id": q.ID})
	return c.Status(fiber.StatusCreated).JSON(q)
}

type replyRequest struct {
	Reply string `json:"reply"`
}

// PUT /api/queries/:id/reply
func (h *QueryHandler) Reply(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, apierror.NotFound("query not found"))
	}
	var req replyRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, apierror.BadRequest("invalid request body"))
	}
	reply := strings.TrimSpace(req.Reply)
	if reply == "" {
		return fail(c, apierror.Validation("reply must not be empty"))
	}

	n, err := h.Queries.Reply(id, reply)
	if err != nil {
		applog.Error(c, "queries.reply.fail", err, map[string]any{"query_id": id})
		return fail(c, apierror.Internal(""))
	}
	if n == 0 {
		return fail(c, apierror.NotFound("query not found"))
	}
	q, err := h.Queries.Get(id)
	if err != nil {
		return fail(c, apierror.Internal(""))
	}
	applog.Audit(c, "queries.reply", map[string]any{"query_id": id})
	return c.JSON(q)
}
