package db

import (
	"context"
	"embed"
	"io/fs"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"
)

//go:embed migrations/*.sql
var embedded embed.FS

func Migrations() fs.FS {
	sub, err := fs.Sub(embedded, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

// Migrate applies pending migrations. goose needs database/sql, so the pool
// is wrapped through the pgx stdlib adapter for the duration of the run.
func Migrate(ctx context.Context, pool *pgxpool.Pool, logger logrus.FieldLogger) error {
	sqlDB := stdlib.OpenDBFromPool(pool)
	defer sqlDB.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, sqlDB, Migrations())
	if err != nil {
		return errors.Wrap(err, "goose provider")
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return errors.Wrap(err, "apply migrations")
	}
	for _, res := range results {
		logger.WithFields(logrus.Fields{
			"version":  res.Source.Version,
			"duration": res.Duration.String(),
		}).Info("migration applied")
	}
	return nil
}
