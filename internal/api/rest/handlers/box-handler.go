package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/victortedesco/inventory-management/internal/dto"
	"github.com/victortedesco/inventory-management/internal/helper"
	"github.com/victortedesco/inventory-management/internal/helper/utils"
	"github.com/victortedesco/inventory-management/internal/services"
)

type BoxHandler struct {
	svc services.BoxService
}

func NewBoxHandler(svc services.BoxService) *BoxHandler {
	return &BoxHandler{svc: svc}
}

func (h *BoxHandler) SetupRoutes(api fiber.Router) {
	boxes := api.Group("/boxes")

	boxes.Get("/", h.List)
	boxes.Post("/", h.Create)
	boxes.Get("/:id", h.Get)
	boxes.Put("/:id", h.Update)
	boxes.Delete("/:id", h.Delete)
}

func (h *BoxHandler) List(ctx *fiber.Ctx) error {
	boxes, err := h.svc.List(ctx.UserContext())
	return list(ctx, boxes, err)
}

func (h *BoxHandler) Get(ctx *fiber.Ctx) error {
	id, ok := paramID(ctx, "id")
	if !ok {
		return badID(ctx, "id")
	}
	box, err := h.svc.Get(ctx.UserContext(), id)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, box)
}

func (h *BoxHandler) Create(ctx *fiber.Ctx) error {
	var requestBody dto.BoxRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	box, err := h.svc.Create(ctx.UserContext(), helper.CurrentUserID(ctx), requestBody)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, box)
}

func (h *BoxHandler) Update(ctx *fiber.Ctx) error {
	id, ok := paramID(ctx, "id")
	if !ok {
		return badID(ctx, "id")
	}
	var requestBody dto.BoxRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	box, err := h.svc.Update(ctx.UserContext(), helper.CurrentUserID(ctx), id, requestBody)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, box)
}

func (h *BoxHandler) Delete(ctx *fiber.Ctx) error {
	id, ok := paramID(ctx, "id")
	if !ok {
		return badID(ctx, "id")
	}
	if err := h.svc.Delete(ctx.UserContext(), helper.CurrentUserID(ctx), id); err != nil {
		return respondError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}
