package web

import (
	"github.com/gofiber/fiber/v3"
	"github.com/opsdeck/opsdeck/pkg/models"
)

func (h *APIHandlers) GetTeams(c fiber.Ctx) error {
	teams, err := h.directory.ListTeams(c.Context())
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(teams)
}

func (h *APIHandlers) GetTeam(c fiber.Ctx) error {
	team, err := h.directory.FetchTeam(c.Context(), c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(team)
}

func (h *APIHandlers) CreateTeam(c fiber.Ctx) error {
	var team models.Team
	if err := c.Bind().JSON(&team); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	created, err := h.directory.CreateTeam(c.Context(), &team)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *APIHandlers) UpdateTeam(c fiber.Ctx) error {
	var team models.Team
	if err := c.Bind().JSON(&team); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	updated, err := h.directory.UpdateTeam(c.Context(), c.Params("id"), &team)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(updated)
}

func (h *APIHandlers) DeleteTeam(c fiber.Ctx) error {
	err := h.directory.DeleteTeam(c.Context(), c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetEngineers lists engineers, optionally filtered with ?team_id=.
func (h *APIHandlers) GetEngineers(c fiber.Ctx) error {
	engineers, err := h.directory.ListEngineers(c.Context(), c.Query("team_id"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(engineers)
}

func (h *APIHandlers) GetEngineer(c fiber.Ctx) error {
	engineer, err := h.directory.FetchEngineer(c.Context(), c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(engineer)
}

func (h *APIHandlers) CreateEngineer(c fiber.Ctx) error {
	var engineer models.Engineer
	if err := c.Bind().JSON(&engineer); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	created, err := h.directory.CreateEngineer(c.Context(), &engineer)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *APIHandlers) UpdateEngineer(c fiber.Ctx) error {
	var engineer models.Engineer
	if err := c.Bind().JSON(&engineer); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	updated, err := h.directory.UpdateEngineer(c.Context(), c.Params("id"), &engineer)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(updated)
}

func (h *APIHandlers) DeleteEngineer(c fiber.Ctx) error {
	err := h.directory.DeleteEngineer(c.Context(), c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
