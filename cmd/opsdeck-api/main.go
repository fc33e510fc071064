package main

import (
	"context"
	"os"

	cli "github.com/urfave/cli/v3"

	"github.com/opsdeck/opsdeck/pkg/cmd"
	"github.com/opsdeck/opsdeck/pkg/directory"
	"github.com/opsdeck/opsdeck/pkg/log"
	"github.com/opsdeck/opsdeck/pkg/otelhelper"
	"github.com/opsdeck/opsdeck/pkg/queue"
)

const defaultPort = 9090

func main() {
	logger := log.WithModule("api")

	command := &cli.Command{
		Name:                  "opsdeck-api",
		Usage:                 "Serve the opsdeck REST API",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to run the API server on",
				Value:   defaultPort,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:     "database-url",
				Usage:    "Database connection URL (postgres:// or a file root)",
				Required: true,
				Sources:  cli.EnvVars("DATABASE_URL"),
			},
			&cli.StringFlag{
				Name:    "event-bus",
				Usage:   "Event bus provider (gochannel, kafka)",
				Value:   "gochannel",
				Sources: cli.EnvVars("EVENT_BUS_TYPE"),
			},
			&cli.StringFlag{
				Name:    "redis-addr",
				Usage:   "Redis address for the run queue (queueing disabled when empty)",
				Sources: cli.EnvVars("REDIS_ADDR"),
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

			logger.InfoContext(ctx, "Initializing opsdeck API")

			if command.Bool("tracing") {
				_, err := otelhelper.NewTracer(ctx, "opsdeck-api")
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

			var runQueue *queue.Queue

			if addr := command.String("redis-addr"); addr != "" {
				runQueue, err = queue.New(queue.Config{Addr: addr}, logger)
				if err != nil {
					return err
				}

				err = runQueue.Connect(ctx)
				if err != nil {
					return err
				}

				defer func() {
					err := runQueue.Stop(ctx)
					if err != nil {
						logger.ErrorContext(ctx, "Failed to stop run queue", "error", err)
					}
				}()
			}

			api := NewAPI(logger, store, registry, eventBus, runQueue)

			return api.Start(command.Int("port"))
		},
	}

	err := command.Run(context.Background(), os.Args)
	if err != nil {
		panic(err)
	}
}
