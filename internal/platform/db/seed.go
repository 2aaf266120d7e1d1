package db

import (
	"context"
	"strings"

	"github.com/go-faster/errors"

	"hrrecords/internal/platform/config"
	"hrrecords/internal/platform/querier"
)

// Seed makes sure the configured positions exist. Existing names are left alone.
func Seed(ctx context.Context, db querier.Querier, cfg config.Config) (int, error) {
	inserted := 0
	for _, name := range cfg.SeedPositions {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		tag, err := db.Exec(ctx, "INSERT INTO positions (name) VALUES ($1) ON CONFLICT (name) DO NOTHING", name)
		if err != nil {
			return inserted, errors.Wrapf(err, "seed position %q", name)
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}
