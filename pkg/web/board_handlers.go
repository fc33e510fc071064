package web

import (
	"github.com/gofiber/fiber/v3"
	"github.com/opsdeck/opsdeck/pkg/models"
	"github.com/opsdeck/opsdeck/pkg/services"
)

// ReorderCardsRequest carries a drag-drop result: the full card order
// of every column touched by the move.
type ReorderCardsRequest struct {
	Columns []services.ColumnOrder `json:"columns"`
}

func (h *APIHandlers) GetProjects(c fiber.Ctx) error {
	projects, err := h.board.ListProjects(c.Context())
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(projects)
}

func (h *APIHandlers) GetProject(c fiber.Ctx) error {
	project, err := h.board.FetchProject(c.Context(), c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(project)
}

func (h *APIHandlers) CreateProject(c fiber.Ctx) error {
	var project models.Project
	if err := c.Bind().JSON(&project); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	created, err := h.board.CreateProject(c.Context(), &project)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *APIHandlers) UpdateProject(c fiber.Ctx) error {
	var project models.Project
	if err := c.Bind().JSON(&project); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	updated, err := h.board.UpdateProject(c.Context(), c.Params("id"), &project)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(updated)
}

func (h *APIHandlers) DeleteProject(c fiber.Ctx) error {
	err := h.board.DeleteProject(c.Context(), c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) GetColumns(c fiber.Ctx) error {
	columns, err := h.board.ListColumns(c.Context(), c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(columns)
}

func (h *APIHandlers) CreateColumn(c fiber.Ctx) error {
	var column models.Column
	if err := c.Bind().JSON(&column); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	column.ProjectID = c.Params("id")

	created, err := h.board.CreateColumn(c.Context(), &column)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *APIHandlers) UpdateColumn(c fiber.Ctx) error {
	var column models.Column
	if err := c.Bind().JSON(&column); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	updated, err := h.board.UpdateColumn(c.Context(), c.Params("id"), &column)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(updated)
}

func (h *APIHandlers) DeleteColumn(c fiber.Ctx) error {
	err := h.board.DeleteColumn(c.Context(), c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) GetCards(c fiber.Ctx) error {
	cards, err := h.board.ListCards(c.Context(), c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(cards)
}

func (h *APIHandlers) CreateCard(c fiber.Ctx) error {
	var card models.Card
	if err := c.Bind().JSON(&card); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	card.ColumnID = c.Params("id")

	created, err := h.board.CreateCard(c.Context(), &card)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *APIHandlers) UpdateCard(c fiber.Ctx) error {
	var card models.Card
	if err := c.Bind().JSON(&card); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	updated, err := h.board.UpdateCard(c.Context(), c.Params("id"), &card)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(updated)
}

func (h *APIHandlers) ReorderCards(c fiber.Ctx) error {
	var req ReorderCardsRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	err := h.board.ReorderCards(c.Context(), req.Columns)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) DeleteCard(c fiber.Ctx) error {
	err := h.board.DeleteCard(c.Context(), c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
