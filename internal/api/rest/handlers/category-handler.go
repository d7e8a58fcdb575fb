package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/victortedesco/inventory-management/internal/dto"
	"github.com/victortedesco/inventory-management/internal/helper"
	"github.com/victortedesco/inventory-management/internal/helper/utils"
	"github.com/victortedesco/inventory-management/internal/services"
)

type CategoryHandler struct {
	svc      services.CategoryService
	products services.ProductService
}

func NewCategoryHandler(svc services.CategoryService, products services.ProductService) *CategoryHandler {
	return &CategoryHandler{svc: svc, products: products}
}

func (h *CategoryHandler) SetupRoutes(api fiber.Router) {
	categories := api.Group("/categories")

	categories.Get("/", h.List)
	categories.Post("/", h.Create)
	categories.Get("/:id", h.Get)
	categories.Put("/:id", h.Update)
	categories.Delete("/:id", h.Delete)

	categories.Get("/:id/products", h.ListProducts)
	categories.Post("/:id/products/:productId", h.AddProduct)
	categories.Delete("/:id/products/:productId", h.RemoveProduct)
}

func (h *CategoryHandler) List(ctx *fiber.Ctx) error {
	categories, err := h.svc.List(ctx.UserContext())
	return list(ctx, categories, err)
}

func (h *CategoryHandler) Get(ctx *fiber.Ctx) error {
	id, ok := paramID(ctx, "id")
	if !ok {
		return badID(ctx, "id")
	}
	category, err := h.svc.Get(ctx.UserContext(), id)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, category)
}

func (h *CategoryHandler) Create(ctx *fiber.Ctx) error {
	var requestBody dto.CategoryRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	category, err := h.svc.Create(ctx.UserContext(), helper.CurrentUserID(ctx), requestBody)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, category)
}

func (h *CategoryHandler) Update(ctx *fiber.Ctx) error {
	id, ok := paramID(ctx, "id")
	if !ok {
		return badID(ctx, "id")
	}
	var requestBody dto.CategoryRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	category, err := h.svc.Update(ctx.UserContext(), helper.CurrentUserID(ctx), id, requestBody)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, category)
}

func (h *CategoryHandler) Delete(ctx *fiber.Ctx) error {
	id, ok := paramID(ctx, "id")
	if !ok {
		return badID(ctx, "id")
	}
	if err := h.svc.Delete(ctx.UserContext(), helper.CurrentUserID(ctx), id); err != nil {
		return respondError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (h *CategoryHandler) ListProducts(ctx *fiber.Ctx) error {
	id, ok := paramID(ctx, "id")
	if !ok {
		return badID(ctx, "id")
	}
	products, err := h.products.ListByCategory(ctx.UserContext(), id)
	return list(ctx, products, err)
}

func (h *CategoryHandler) AddProduct(ctx *fiber.Ctx) error {
	id, ok := paramID(ctx, "id")
	if !ok {
		return badID(ctx, "id")
	}
	productID, ok := paramID(ctx, "productId")
	if !ok {
		return badID(ctx, "productId")
	}
	if err := h.svc.AddProduct(ctx.UserContext(), helper.CurrentUserID(ctx), id, productID); err != nil {
		return respondError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (h *CategoryHandler) RemoveProduct(ctx *fiber.Ctx) error {
	id, ok := paramID(ctx, "id")
	if !ok {
		return badID(ctx, "id")
	}
	productID, ok := paramID(ctx, "productId")
	if !ok {
		return badID(ctx, "productId")
	}
	if err := h.svc.RemoveProduct(ctx.UserContext(), helper.CurrentUserID(ctx), id, productID); err != nil {
		return respondError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}
