package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/victortedesco/inventory-management/internal/dto"
	"github.com/victortedesco/inventory-management/internal/helper"
	"github.com/victortedesco/inventory-management/internal/helper/utils"
	"github.com/victortedesco/inventory-management/internal/services"
)

type ProductHandler struct {
	svc services.ProductService
}

func NewProductHandler(svc services.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

func (h *ProductHandler) SetupRoutes(api fiber.Router) {
	products := api.Group("/products")

	products.Get("/", h.List)
	products.Post("/", h.Create)
	products.Get("/:id", h.Get)
	products.Put("/:id", h.Update)
	products.Delete("/:id", h.Delete)
	products.Patch("/:id/quantity", h.AdjustQuantity)
}

// GET /api/v1/products?name=hammer
func (h *ProductHandler) List(ctx *fiber.Ctx) error {
	products, err := h.svc.List(ctx.UserContext(), ctx.Query("name"))
	return list(ctx, products, err)
}

func (h *ProductHandler) Get(ctx *fiber.Ctx) error {
	id, ok := paramID(ctx, "id")
	if !ok {
		return badID(ctx, "id")
	}
	product, err := h.svc.Get(ctx.UserContext(), id)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, product)
}

func (h *ProductHandler) Create(ctx *fiber.Ctx) error {
	var requestBody dto.ProductRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	product, err := h.svc.Create(ctx.UserContext(), helper.CurrentUserID(ctx), requestBody)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, product)
}

func (h *ProductHandler) Update(ctx *fiber.Ctx) error {
	id, ok := paramID(ctx, "id")
	if !ok {
		return badID(ctx, "id")
	}
	var requestBody dto.ProductRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	product, err := h.svc.Update(ctx.UserContext(), helper.CurrentUserID(ctx), id, requestBody)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, product)
}

func (h *ProductHandler) Delete(ctx *fiber.Ctx) error {
	id, ok := paramID(ctx, "id")
	if !ok {
		return badID(ctx, "id")
	}
	if err := h.svc.Delete(ctx.UserContext(), helper.CurrentUserID(ctx), id); err != nil {
		return respondError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

// PATCH /api/v1/products/:id/quantity {"delta": -3}
func (h *ProductHandler) AdjustQuantity(ctx *fiber.Ctx) error {
	id, ok := paramID(ctx, "id")
	if !ok {
		return badID(ctx, "id")
	}
	var requestBody dto.QuantityRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	product, err := h.svc.AdjustQuantity(ctx.UserContext(), helper.CurrentUserID(ctx), id, requestBody.Delta)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, product)
}
