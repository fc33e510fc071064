package web

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/opsdeck/opsdeck/pkg/queue"
	"github.com/opsdeck/opsdeck/pkg/registry"
	"github.com/opsdeck/opsdeck/pkg/services"
	"github.com/opsdeck/opsdeck/pkg/workflow"
)

// APIHandlers bundles the services behind the REST surface.
type APIHandlers struct {
	workflows *services.Workflow
	directory *services.Directory
	wiki      *services.Wiki
	board     *services.Board
	slack     *services.SlackSettings
	executor  *workflow.Executor
	runQueue  *queue.Queue
	validator *validator.Validate
	registry  *registry.Registry
}

// NewAPIHandlers wires the handler set. runQueue may be nil when the
// deployment has no Redis; queued runs then answer 503.
func NewAPIHandlers(
	workflows *services.Workflow,
	directory *services.Directory,
	wiki *services.Wiki,
	board *services.Board,
	slack *services.SlackSettings,
	executor *workflow.Executor,
	runQueue *queue.Queue,
	reg *registry.Registry,
) *APIHandlers {
	return &APIHandlers{
		workflows: workflows,
		directory: directory,
		wiki:      wiki,
		board:     board,
		slack:     slack,
		executor:  executor,
		runQueue:  runQueue,
		validator: validator.New(),
		registry:  reg,
	}
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	registryCheck, regOk := h.registry.HealthCheck()
	repositoryCheck, repOk := h.workflows.HealthCheck(c.Context())

	status := "unhealthy"
	httpStatus := http.StatusInternalServerError

	if regOk && repOk {
		status = "healthy"
		httpStatus = http.StatusOK
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status": status,
		"checkers": fiber.Map{
			"registry":   registryCheck,
			"repository": repositoryCheck,
		},
		"timestamp": time.Now().UTC(),
	})
}

// GetNodeTypes lists the registered node types for the editor palette.
func (h *APIHandlers) GetNodeTypes(c fiber.Ctx) error {
	types := make([]NodeTypeResponse, 0)

	for _, nodeType := range h.registry.NodeTypes() {
		factory, err := h.registry.Factory(nodeType)
		if err != nil {
			continue
		}

		types = append(types, NodeTypeResponse{
			ID:          factory.ID(),
			Name:        factory.Name(),
			Description: factory.Description(),
			Schema:      factory.Schema(),
		})
	}

	return c.JSON(types)
}

func (h *APIHandlers) GetWorkflows(c fiber.Ctx) error {
	workflows, err := h.workflows.List(c.Context())
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(workflows)
}

func (h *APIHandlers) GetWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	wf, err := h.workflows.FetchByID(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(wf)
}

func (h *APIHandlers) CreateWorkflow(c fiber.Ctx) error {
	var req WorkflowRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	created, err := h.workflows.Create(c.Context(), req.ToModel())
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *APIHandlers) UpdateWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	var req WorkflowRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	updated, err := h.workflows.Update(c.Context(), id, req.ToModel())
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(updated)
}

func (h *APIHandlers) DeleteWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	err := h.workflows.Delete(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ExecuteWorkflow runs a workflow synchronously and returns the run
// result. A failed run answers 200 with status "failed": the request
// itself succeeded.
func (h *APIHandlers) ExecuteWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	var req ExecuteRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().JSON(&req); err != nil {
			return badRequest(c, "Invalid JSON format")
		}
	}

	result, err := h.executor.Execute(c.Context(), id, req.InitialData)
	if err != nil {
		if services.IsNotFoundError(err) {
			return notFound(c, "Workflow not found")
		}

		// The run record carries the failure detail.
		return c.JSON(fiber.Map{
			"status": "failed",
			"error":  err.Error(),
		})
	}

	return c.JSON(result)
}

// EnqueueRun queues a run for the worker and answers 202.
func (h *APIHandlers) EnqueueRun(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	if h.runQueue == nil {
		return serviceUnavailable(c, "Run queue is not configured")
	}

	// Reject unknown workflows before enqueueing.
	_, err := h.workflows.FetchByID(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	var req ExecuteRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().JSON(&req); err != nil {
			return badRequest(c, "Invalid JSON format")
		}
	}

	err = h.runQueue.Enqueue(c.Context(), id, req.InitialData)
	if err != nil {
		return internalError(c, err)
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"workflow_id": id,
		"queued":      true,
	})
}

func (h *APIHandlers) GetWorkflowRuns(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	runs, err := h.workflows.Runs(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(runs)
}

func (h *APIHandlers) GetRun(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Run ID is required")
	}

	run, err := h.workflows.FetchRun(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(run)
}
