package web

import (
	"github.com/gofiber/fiber/v3"
	"github.com/opsdeck/opsdeck/pkg/models"
)

func (h *APIHandlers) GetRunbooks(c fiber.Ctx) error {
	runbooks, err := h.wiki.ListRunbooks(c.Context())
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(runbooks)
}

func (h *APIHandlers) GetRunbook(c fiber.Ctx) error {
	runbook, err := h.wiki.FetchRunbook(c.Context(), c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(runbook)
}

func (h *APIHandlers) CreateRunbook(c fiber.Ctx) error {
	var runbook models.Runbook
	if err := c.Bind().JSON(&runbook); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	created, err := h.wiki.CreateRunbook(c.Context(), &runbook)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *APIHandlers) UpdateRunbook(c fiber.Ctx) error {
	var runbook models.Runbook
	if err := c.Bind().JSON(&runbook); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	updated, err := h.wiki.UpdateRunbook(c.Context(), c.Params("id"), &runbook)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(updated)
}

func (h *APIHandlers) DeleteRunbook(c fiber.Ctx) error {
	err := h.wiki.DeleteRunbook(c.Context(), c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) GetFolders(c fiber.Ctx) error {
	folders, err := h.wiki.ListFolders(c.Context())
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(folders)
}

func (h *APIHandlers) CreateFolder(c fiber.Ctx) error {
	var folder models.Folder
	if err := c.Bind().JSON(&folder); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	created, err := h.wiki.CreateFolder(c.Context(), &folder)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *APIHandlers) DeleteFolder(c fiber.Ctx) error {
	err := h.wiki.DeleteFolder(c.Context(), c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) GetTags(c fiber.Ctx) error {
	tags, err := h.wiki.ListTags(c.Context())
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(tags)
}

func (h *APIHandlers) CreateTag(c fiber.Ctx) error {
	var tag models.Tag
	if err := c.Bind().JSON(&tag); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	created, err := h.wiki.CreateTag(c.Context(), &tag)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *APIHandlers) DeleteTag(c fiber.Ctx) error {
	err := h.wiki.DeleteTag(c.Context(), c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
