package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	repo "github.com/vncsmyrnk/notes/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/notes/internal/logging"
)

const defaultMigrationsDir = "internal/adapters/repository/postgres/migrations"

func main() {
	logger := logging.Setup(os.Getenv("LOG_LEVEL"))

	if len(os.Args) < 2 {
		logger.Error("a migration name (or \"up\") is required")
		os.Exit(1)
	}
	target := os.Args[1]

	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found")
	}

	dir := os.Getenv("MIGRATIONS_DIR")
	if dir == "" {
		dir = defaultMigrationsDir
	}

	db, err := sql.Open("postgres", dbConnString())
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("failed to reach database", "error", err)
		os.Exit(1)
	}

	if target == "up" {
		err = repo.ApplyMigrations(db, dir)
	} else {
		err = repo.ApplyMigration(db, dir, target)
	}
	if err != nil {
		logger.Error("migration failed", "target", target, "error", err)
		os.Exit(1)
	}

	logger.Info("migration applied", "target", target)
}

func dbConnString() string {
	dbName, user, password, host, port := dbConfig()
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, dbName)
}

func dbConfig() (dbName string, user string, password string, host string, port string) {
	dbName = os.Getenv("POSTGRES_DB")
	user = os.Getenv("POSTGRES_USER")
	password = os.Getenv("POSTGRES_PASSWORD")
	host = os.Getenv("POSTGRES_HOST")
	port = os.Getenv("POSTGRES_PORT")
	return
}
