package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/victortedesco/inventory-management/internal/helper"
	"github.com/victortedesco/inventory-management/internal/helper/utils"
	"github.com/victortedesco/inventory-management/internal/services"
)

func respondError(ctx *fiber.Ctx, err error) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return utils.ResponseValidation(ctx, verr.Messages)
	case errors.Is(err, services.ErrNotFound):
		return utils.ResponseError(ctx, fiber.StatusNotFound, "resource not found")
	case helper.IsUniqueViolation(err):
		return utils.ResponseError(ctx, fiber.StatusConflict, "resource already exists")
	}
	log.Printf("%s %s error: %v", ctx.Method(), ctx.Path(), err)
	return utils.ResponseError(ctx, fiber.StatusInternalServerError, "internal server error")
}

func paramID(ctx *fiber.Ctx, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Params(name))
	return id, err == nil
}

func badID(ctx *fiber.Ctx, name string) error {
	return utils.ResponseError(ctx, fiber.StatusBadRequest, name+" must be a valid UUID")
}

// list answers 204 No Content for an empty result.
func list[T any](ctx *fiber.Ctx, items []T, err error) error {
	if err != nil {
		return respondError(ctx, err)
	}
	if len(items) == 0 {
		return ctx.SendStatus(fiber.StatusNoContent)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, items)
}
