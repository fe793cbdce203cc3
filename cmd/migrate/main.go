package main

import (
	"database/sql"
	"flag"
	"net"
	"net/url"
	"os"

	_ "github.com/lib/pq"

	"github.com/pageza/recipe-share/backend/config"
	"github.com/pageza/recipe-share/backend/internal/database"
	"github.com/pageza/recipe-share/backend/internal/logging"
)

func main() {
	rollback := flag.Int("rollback", 0, "Roll back the last N migrations instead of migrating up")
	flag.Parse()

	logging.Init(logging.Config{Level: "info", Format: "console"})

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		cfg, err := config.LoadConfig()
		if err != nil {
			logging.Fatal().Err(err).Msg("DATABASE_URL is not set and configuration could not be loaded")
		}
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(cfg.DBUser, cfg.DBPassword),
			Host:     net.JoinHostPort(cfg.DBHost, cfg.DBPort),
			Path:     cfg.DBName,
			RawQuery: "sslmode=" + cfg.DBSSLMode,
		}
		dsn = u.String()
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to open database")
	}
	if err := db.Ping(); err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to database")
	}

	mg, err := database.NewMigrator(db)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to prepare migrations")
	}
	defer mg.Close()

	if *rollback > 0 {
		err = mg.Down(*rollback)
	} else {
		err = mg.Up()
	}
	if err != nil {
		logging.Error().Err(err).Msg("migration failed")
		_ = mg.Close()
		os.Exit(1)
	}
}
