package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	cli "github.com/urfave/cli/v3"

	"github.com/opsdeck/opsdeck/pkg/cmd"
	"github.com/opsdeck/opsdeck/pkg/directory"
	"github.com/opsdeck/opsdeck/pkg/log"
	"github.com/opsdeck/opsdeck/pkg/otelhelper"
	"github.com/opsdeck/opsdeck/pkg/queue"
	"github.com/opsdeck/opsdeck/pkg/workflow"
)

func main() {
	command := &cli.Command{
		Name:                  "opsdeck-worker",
		Usage:                 "Consume queued workflow runs and execute them",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "worker-id",
				Aliases: []string{"id"},
				Usage:   "Custom worker ID (auto-generated if not provided)",
				Sources: cli.EnvVars("WORKER_ID"),
			},
			&cli.StringFlag{
				Name:     "database-url",
				Usage:    "Database connection URL (postgres:// or a file root)",
				Required: true,
				Sources:  cli.EnvVars("DATABASE_URL"),
			},
			&cli.StringFlag{
				Name:     "redis-addr",
				Usage:    "Redis address for the run queue",
				Required: true,
				Sources:  cli.EnvVars("REDIS_ADDR"),
			},
			&cli.StringFlag{
				Name:    "event-bus",
				Usage:   "Event bus provider (gochannel, kafka)",
				Value:   "gochannel",
				Sources: cli.EnvVars("EVENT_BUS_TYPE"),
			},
			&cli.StringFlag{
				Name:    "slack-token",
				Usage:   "Slack bot token (falls back to the stored default config)",
				Sources: cli.EnvVars("SLACK_BOT_TOKEN"),
			},
			&cli.BoolFlag{
				Name:    "tracing",
				Usage:   "Enable OpenTelemetry tracing export",
				Sources: cli.EnvVars("TRACING_ENABLED"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			workerID := command.String("worker-id")
			if workerID == "" {
				workerID = "worker-" + uuid.New().String()[:8]
			}

			logger := log.WithModule("worker").With("workerId", workerID)

			logger.InfoContext(ctx, "Initializing opsdeck worker")

			if command.Bool("tracing") {
				_, err := otelhelper.NewTracer(ctx, "opsdeck-worker")
				if err != nil {
					return err
				}
			}

			store, err := cmd.NewPersistence(ctx, logger, command.String("database-url"))
			if err != nil {
				return err
			}

			defer func() {
				err := store.Close(ctx)
				if err != nil {
					logger.ErrorContext(ctx, "Failed to close persistence", "error", err)
				}
			}()

			notifier, err := cmd.NewNotifier(ctx, logger, command.String("slack-token"), store)
			if err != nil {
				return err
			}

			lookup := directory.NewService(store.TeamRepository(), store.EngineerRepository())
			registry := cmd.NewRegistry(logger, lookup, notifier)

			eventBus, err := cmd.NewEventBus(command.String("event-bus"), logger)
			if err != nil {
				return err
			}

			defer func() {
				err := eventBus.Close()
				if err != nil {
					logger.ErrorContext(ctx, "Failed to close event bus", "error", err)
				}
			}()

			executor := workflow.NewExecutor(
				store.WorkflowRepository(),
				store.RunRepository(),
				registry,
				eventBus,
				logger,
			)

			runQueue, err := queue.New(queue.Config{Addr: command.String("redis-addr")}, logger)
			if err != nil {
				return err
			}

			err = runQueue.Connect(ctx)
			if err != nil {
				return err
			}

			worker := NewWorker(workerID, logger, runQueue, executor)

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			return worker.Run(ctx)
		},
	}

	err := command.Run(context.Background(), os.Args)
	if err != nil {
		panic(err)
	}
}
