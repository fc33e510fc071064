// Package main provides the opsdeck API server.
package main

import (
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"

	"github.com/opsdeck/opsdeck/pkg/eventbus"
	"github.com/opsdeck/opsdeck/pkg/persistence"
	"github.com/opsdeck/opsdeck/pkg/queue"
	"github.com/opsdeck/opsdeck/pkg/registry"
	"github.com/opsdeck/opsdeck/pkg/services"
	"github.com/opsdeck/opsdeck/pkg/web"
	"github.com/opsdeck/opsdeck/pkg/workflow"
)

type API struct {
	logger      *slog.Logger
	persistence persistence.Persistence
	registry    *registry.Registry
	eventBus    eventbus.EventBus
	runQueue    *queue.Queue
}

func NewAPI(
	logger *slog.Logger,
	store persistence.Persistence,
	reg *registry.Registry,
	eventBus eventbus.EventBus,
	runQueue *queue.Queue,
) *API {
	return &API{
		logger:      logger,
		persistence: store,
		registry:    reg,
		eventBus:    eventBus,
		runQueue:    runQueue,
	}
}

func (a *API) App() *fiber.App {
	executor := workflow.NewExecutor(
		a.persistence.WorkflowRepository(),
		a.persistence.RunRepository(),
		a.registry,
		a.eventBus,
		a.logger,
	)

	handlers := web.NewAPIHandlers(
		services.NewWorkflow(a.persistence, a.registry),
		services.NewDirectory(a.persistence),
		services.NewWiki(a.persistence),
		services.NewBoard(a.persistence),
		services.NewSlackSettings(a.persistence),
		executor,
		a.runQueue,
		a.registry,
	)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("opsdeck API")
	})

	handlers.RegisterRoutes(app)

	return app
}

func (a *API) Start(port int) error {
	return a.App().Listen(":" + strconv.Itoa(port))
}
