package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"

	"github.com/pageza/recipe-share/backend/internal/logging"
	"github.com/pageza/recipe-share/backend/internal/models"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// AutoMigrate creates or updates the schema from the models. It serves SQLite
// and local development; Postgres deployments run the SQL migrations.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Recipe{},
		&models.Review{},
		&models.Reply{},
		&models.RecipeFavorite{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Migrator applies the embedded SQL migrations to a Postgres database.
type Migrator struct {
	m *migrate.Migrate
}

// NewMigrator wraps db. Closing the Migrator closes db.
func NewMigrator(db *sql.DB) (*Migrator, error) {
	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to open migrations: %w", err)
	}
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to prepare migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}
	return &Migrator{m: m}, nil
}

// Up applies every pending migration.
func (mg *Migrator) Up() error {
	if err := mg.m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logging.Info().Msg("schema is up to date")
			return nil
		}
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return mg.logVersion("migrations applied")
}

// Down rolls back the last n migrations.
func (mg *Migrator) Down(n int) error {
	if n <= 0 {
		return fmt.Errorf("rollback steps must be positive, got %d", n)
	}
	if err := mg.m.Steps(-n); err != nil {
		return fmt.Errorf("failed to roll back migrations: %w", err)
	}
	return mg.logVersion("migrations rolled back")
}

// Version returns the applied schema version, 0 when none.
func (mg *Migrator) Version() (uint, bool, error) {
	version, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

func (mg *Migrator) Close() error {
	srcErr, dbErr := mg.m.Close()
	return errors.Join(srcErr, dbErr)
}

func (mg *Migrator) logVersion(msg string) error {
	version, dirty, err := mg.Version()
	if err != nil {
		return err
	}
	logging.Info().Uint("version", version).Bool("dirty", dirty).Msg(msg)
	return nil
}
