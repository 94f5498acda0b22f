package db

import (
	"log/slog"
	"os"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"smartexpiry/internal/config"
)

var DB *sqlx.DB

func InitDB(cfg *config.Config) {
	var err error
	DB, err = sqlx.Connect("postgres", cfg.ConnString())
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := DB.Ping(); err != nil {
		slog.Error("Failed to ping database", "error", err)
		os.Exit(1)
	}

	slog.Info("Successfully connected to database ...")
}
