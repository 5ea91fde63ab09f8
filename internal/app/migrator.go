package app

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

// Migrator применяет SQL-миграции из каталога через goose
type Migrator struct {
	db       *sql.DB
	provider *goose.Provider
	path     string
	logger   *zap.Logger
}

// NewMigrator открывает *sql.DB поверх пула и читает миграции из migrationsPath
func NewMigrator(pool *pgxpool.Pool, migrationsPath string, logger *zap.Logger) (*Migrator, error) {
	if _, err := os.Stat(migrationsPath); err != nil {
		return nil, fmt.Errorf("open migrations dir: %w", err)
	}

	db := stdlib.OpenDBFromPool(pool)
	provider, err := goose.NewProvider(goose.DialectPostgres, db, os.DirFS(migrationsPath))
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create goose provider: %w", err)
	}

	return &Migrator{
		db:       db,
		provider: provider,
		path:     migrationsPath,
		logger:   logger,
	}, nil
}

// Run применяет все недостающие миграции по порядку
func (mg *Migrator) Run(ctx context.Context) error {
	pending, err := mg.provider.HasPending(ctx)
	if err != nil {
		return fmt.Errorf("check pending migrations: %w", err)
	}
	if !pending {
		version, err := mg.Version(ctx)
		if err != nil {
			return err
		}
		mg.logger.Info("Database schema is up to date", zap.Int64("version", version))
		return nil
	}

	mg.logger.Info("Applying database migrations", zap.String("path", mg.path))

	results, err := mg.provider.Up(ctx)
	for _, r := range results {
		mg.logger.Info("Migration applied",
			zap.Int64("version", r.Source.Version),
			zap.String("file", r.Source.Path),
			zap.Duration("duration", r.Duration),
		)
	}
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, err := mg.Version(ctx)
	if err != nil {
		return err
	}
	mg.logger.Info("Migrations applied", zap.Int("count", len(results)), zap.Int64("version", version))
	return nil
}

// Version текущая версия схемы
func (mg *Migrator) Version(ctx context.Context) (int64, error) {
	version, err := mg.provider.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("get schema version: %w", err)
	}
	return version, nil
}

// Close закрывает sql.DB мигратора; пул остаётся открытым
func (mg *Migrator) Close() error {
	return mg.provider.Close()
}
