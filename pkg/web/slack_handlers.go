package web

import (
	"github.com/gofiber/fiber/v3"
	"github.com/opsdeck/opsdeck/pkg/models"
)

func (h *APIHandlers) GetSlackConfigs(c fiber.Ctx) error {
	configs, err := h.slack.List(c.Context())
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(configs)
}

func (h *APIHandlers) CreateSlackConfig(c fiber.Ctx) error {
	var config models.SlackConfig
	if err := c.Bind().JSON(&config); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	created, err := h.slack.Create(c.Context(), &config)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *APIHandlers) GetSlackConfig(c fiber.Ctx) error {
	config, err := h.slack.Fetch(c.Context(), c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(config)
}

func (h *APIHandlers) UpdateSlackConfig(c fiber.Ctx) error {
	var config models.SlackConfig
	if err := c.Bind().JSON(&config); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	updated, err := h.slack.Update(c.Context(), c.Params("id"), &config)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(updated)
}

func (h *APIHandlers) DeleteSlackConfig(c fiber.Ctx) error {
	err := h.slack.Delete(c.Context(), c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
