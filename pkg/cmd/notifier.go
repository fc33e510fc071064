package cmd

import (
	"context"
	"log/slog"

	"github.com/opsdeck/opsdeck/pkg/persistence"
	"github.com/opsdeck/opsdeck/pkg/protocol"
	"github.com/opsdeck/opsdeck/pkg/services"
	"github.com/opsdeck/opsdeck/pkg/slack"
)

// NewNotifier builds the Slack notifier. An explicit token wins;
// otherwise the default stored workspace configuration is used. With
// neither, the notifier is nil and sendSlackMessage nodes fail at run
// time.
func NewNotifier(ctx context.Context, logger *slog.Logger, token string, store persistence.Persistence) (protocol.Notifier, error) {
	if token == "" {
		stored, err := services.NewSlackSettings(store).DefaultToken(ctx)
		if err != nil {
			if persistence.IsNotFound(err) {
				logger.WarnContext(ctx, "No Slack token configured, sendSlackMessage nodes will fail")

				return nil, nil
			}

			return nil, err
		}

		token = stored
	}

	client, err := slack.NewClient(token, logger)
	if err != nil {
		return nil, err
	}

	return client, nil
}
