package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/vncsmyrnk/linkscore/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/linkscore/internal/config"
)

func main() {
	if len(os.Args) < 2 {
		logrus.Fatal("a migration name is required, e.g. create_records.up")
	}
	migrationName := os.Args[1]

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logrus.Fatalf("Error loading .env file: %v", err)
	}

	cfg, err := config.Load(os.Getenv("LINKSCORE_CONFIG"))
	if err != nil {
		logrus.Fatal(err)
	}

	ctx := context.Background()
	db, err := postgres.Open(ctx, cfg.Database.DSN(), postgres.PoolConfig{})
	if err != nil {
		logrus.Fatal(err)
	}
	defer db.Close()

	basePath := filepath.Join(".", "internal", "adapters", "repository", "postgres", "migrations")
	fileName, err := migrationFilePath(basePath, migrationName)
	if err != nil {
		logrus.Fatal(err)
	}

	fileContent, err := os.ReadFile(filepath.Join(basePath, fileName))
	if err != nil {
		logrus.Fatal(err)
	}

	if _, err := db.ExecContext(ctx, string(fileContent)); err != nil {
		logrus.Fatalf("Failed to execute SQL file: %v", err)
	}

	logrus.WithField("file", fileName).Info("Migration file executed successfully.")
}

func migrationFilePath(basePath string, migrationName string) (string, error) {
	regex, err := regexp.Compile(fmt.Sprintf(`^.*%s\.sql$`, regexp.QuoteMeta(migrationName)))
	if err != nil {
		return "", fmt.Errorf("invalid migration name: %w", err)
	}

	files, err := os.ReadDir(basePath)
	if err != nil {
		return "", fmt.Errorf("failed to read migrations: %w", err)
	}
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		if regex.MatchString(f.Name()) {
			return f.Name(), nil
		}
	}

	return "", fmt.Errorf("migration file %q not found", migrationName)
}
