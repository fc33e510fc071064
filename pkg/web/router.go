package web

import (
	"github.com/gofiber/fiber/v3"
)

// RegisterRoutes mounts the full REST surface on the app.
func (h *APIHandlers) RegisterRoutes(app *fiber.App) {
	app.Get("/health", h.HealthCheck)
	app.Get("/node-types", h.GetNodeTypes)

	w := app.Group("/workflows")
	w.Get("/", h.GetWorkflows)
	w.Post("/", h.CreateWorkflow)
	w.Get("/:id", h.GetWorkflow)
	w.Put("/:id", h.UpdateWorkflow)
	w.Delete("/:id", h.DeleteWorkflow)
	w.Post("/:id/execute", h.ExecuteWorkflow)
	w.Post("/:id/runs", h.EnqueueRun)
	w.Get("/:id/runs", h.GetWorkflowRuns)

	app.Get("/runs/:id", h.GetRun)

	teams := app.Group("/teams")
	teams.Get("/", h.GetTeams)
	teams.Post("/", h.CreateTeam)
	teams.Get("/:id", h.GetTeam)
	teams.Put("/:id", h.UpdateTeam)
	teams.Delete("/:id", h.DeleteTeam)

	engineers := app.Group("/engineers")
	engineers.Get("/", h.GetEngineers)
	engineers.Post("/", h.CreateEngineer)
	engineers.Get("/:id", h.GetEngineer)
	engineers.Put("/:id", h.UpdateEngineer)
	engineers.Delete("/:id", h.DeleteEngineer)

	runbooks := app.Group("/runbooks")
	runbooks.Get("/", h.GetRunbooks)
	runbooks.Post("/", h.CreateRunbook)
	runbooks.Get("/:id", h.GetRunbook)
	runbooks.Put("/:id", h.UpdateRunbook)
	runbooks.Delete("/:id", h.DeleteRunbook)

	folders := app.Group("/folders")
	folders.Get("/", h.GetFolders)
	folders.Post("/", h.CreateFolder)
	folders.Delete("/:id", h.DeleteFolder)

	tags := app.Group("/tags")
	tags.Get("/", h.GetTags)
	tags.Post("/", h.CreateTag)
	tags.Delete("/:id", h.DeleteTag)

	projects := app.Group("/projects")
	projects.Get("/", h.GetProjects)
	projects.Post("/", h.CreateProject)
	projects.Get("/:id", h.GetProject)
	projects.Put("/:id", h.UpdateProject)
	projects.Delete("/:id", h.DeleteProject)
	projects.Get("/:id/columns", h.GetColumns)
	projects.Post("/:id/columns", h.CreateColumn)

	columns := app.Group("/columns")
	columns.Put("/:id", h.UpdateColumn)
	columns.Delete("/:id", h.DeleteColumn)
	columns.Get("/:id/cards", h.GetCards)
	columns.Post("/:id/cards", h.CreateCard)

	cards := app.Group("/cards")
	cards.Post("/reorder", h.ReorderCards)
	cards.Put("/:id", h.UpdateCard)
	cards.Delete("/:id", h.DeleteCard)

	slackConfigs := app.Group("/slack-configs")
	slackConfigs.Get("/", h.GetSlackConfigs)
	slackConfigs.Post("/", h.CreateSlackConfig)
	slackConfigs.Get("/:id", h.GetSlackConfig)
	slackConfigs.Put("/:id", h.UpdateSlackConfig)
	slackConfigs.Delete("/:id", h.DeleteSlackConfig)
}
