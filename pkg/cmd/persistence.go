// Package cmd provides shared initialization for the opsdeck binaries.
package cmd

import (
	"context"
	"log/slog"
	"strings"

	"github.com/opsdeck/opsdeck/pkg/persistence"
	"github.com/opsdeck/opsdeck/pkg/persistence/file"
	"github.com/opsdeck/opsdeck/pkg/persistence/postgres"
)

// NewPersistence selects the storage backend from the database URL
// scheme. postgres:// URLs get the SQL backend; anything else is
// treated as a file root.
func NewPersistence(ctx context.Context, logger *slog.Logger, databaseURL string) (persistence.Persistence, error) {
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		store, err := postgres.NewPersistence(ctx, logger, databaseURL)
		if err != nil {
			return nil, err
		}

		return store, nil
	}

	return file.NewPersistence(databaseURL), nil
}
