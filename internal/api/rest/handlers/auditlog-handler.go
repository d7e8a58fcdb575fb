package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/victortedesco/inventory-management/internal/dto"
	"github.com/victortedesco/inventory-management/internal/helper/utils"
	"github.com/victortedesco/inventory-management/internal/services"
)

type AuditLogHandler struct {
	svc services.AuditLogService
}

func NewAuditLogHandler(svc services.AuditLogService) *AuditLogHandler {
	return &AuditLogHandler{svc: svc}
}

func (h *AuditLogHandler) SetupRoutes(api fiber.Router) {
	logs := api.Group("/auditlogs")

	logs.Get("/", h.GetAll)
	logs.Get("/entity/type/:entityType", h.GetByEntityType)
	logs.Get("/entity/name/:entityName", h.GetByEntityName)
	logs.Get("/entity/:entityId", h.GetByEntityID)
	logs.Get("/user/:userId", h.GetByUserID)
	logs.Get("/action/:actionType", h.GetByActionType)
}

// GET /api/v1/auditlogs?skip=0&take=10&name=tools
func (h *AuditLogHandler) GetAll(ctx *fiber.Ctx) error {
	var q dto.PageQuery
	if err := ctx.QueryParser(&q); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "skip and take must be integers")
	}

	if name := strings.TrimSpace(q.Name); name != "" {
		logs, err := h.svc.GetByEntityName(ctx.UserContext(), q.Skip, q.Take, name)
		return list(ctx, logs, err)
	}
	logs, err := h.svc.GetAll(ctx.UserContext(), q.Skip, q.Take)
	return list(ctx, logs, err)
}

func (h *AuditLogHandler) GetByEntityType(ctx *fiber.Ctx) error {
	var q dto.PageQuery
	if err := ctx.QueryParser(&q); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "skip and take must be integers")
	}
	logs, err := h.svc.GetByEntityType(ctx.UserContext(), q.Skip, q.Take, ctx.Params("entityType"))
	return list(ctx, logs, err)
}

func (h *AuditLogHandler) GetByEntityName(ctx *fiber.Ctx) error {
	var q dto.PageQuery
	if err := ctx.QueryParser(&q); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "skip and take must be integers")
	}
	logs, err := h.svc.GetByEntityName(ctx.UserContext(), q.Skip, q.Take, ctx.Params("entityName"))
	return list(ctx, logs, err)
}

func (h *AuditLogHandler) GetByEntityID(ctx *fiber.Ctx) error {
	var q dto.PageQuery
	if err := ctx.QueryParser(&q); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "skip and take must be integers")
	}
	logs, err := h.svc.GetByEntityID(ctx.UserContext(), q.Skip, q.Take, ctx.Params("entityId"))
	return list(ctx, logs, err)
}

func (h *AuditLogHandler) GetByUserID(ctx *fiber.Ctx) error {
	var q dto.PageQuery
	if err := ctx.QueryParser(&q); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "skip and take must be integers")
	}
	logs, err := h.svc.GetByUserID(ctx.UserContext(), q.Skip, q.Take, ctx.Params("userId"))
	return list(ctx, logs, err)
}

func (h *AuditLogHandler) GetByActionType(ctx *fiber.Ctx) error {
	var q dto.PageQuery
	if err := ctx.QueryParser(&q); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "skip and take must be integers")
	}
	logs, err := h.svc.GetByActionType(ctx.UserContext(), q.Skip, q.Take, ctx.Params("actionType"))
	return list(ctx, logs, err)
}
