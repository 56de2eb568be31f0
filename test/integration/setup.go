package integration

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	handler "github.com/vncsmyrnk/linkscore/internal/adapters/handler/http"
	"github.com/vncsmyrnk/linkscore/internal/app"
	"github.com/vncsmyrnk/linkscore/internal/config"
)

const adminToken = "integration-admin-token"

// fixedNow pins "today" so quota assertions do not depend on when tests run.
var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type TestApp struct {
	DB          *sql.DB
	Server      *httptest.Server
	Client      *http.Client
	DBContainer testcontainers.Container
}

func (a *TestApp) Teardown(t *testing.T) {
	t.Helper()
	a.Server.Close()
	a.DB.Close()
	if err := a.DBContainer.Terminate(context.Background()); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	dbName := "testdb"
	user := "user"
	password := "password"

	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(user),
		postgres.WithPassword(password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func applyMigrations(db *sql.DB) error {
	dirPath := "../../internal/adapters/repository/postgres/migrations"

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), "up.sql") {
			continue
		}

		content, err := os.ReadFile(filepath.Join(dirPath, entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}

		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", entry.Name(), err)
		}
	}

	return nil
}

func setupTestApp(t *testing.T) *TestApp {
	t.Helper()
	ctx := context.Background()

	container, connStr, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := sql.Open("postgres", connStr)
	require.NoError(t, err)
	require.NoError(t, db.PingContext(ctx))
	require.NoError(t, applyMigrations(db))

	cfg := config.Default()
	cfg.Server.AdminToken = adminToken
	cfg.Clock = config.ClockConfig{UseSystemTime: false, FixedTime: fixedNow.Format(time.RFC3339)}

	log, _ := logtest.NewNullLogger()
	stores := app.PostgresStores(db, cfg)
	clk, err := app.NewClock(cfg)
	require.NoError(t, err)
	svc := app.NewServices(cfg, stores, nil, clk, log)

	router := handler.NewHandler(handler.Handlers{
		Vote:     handler.NewVoteHandler(svc.Votes, log),
		Score:    handler.NewScoreHandler(svc.Scores, log),
		Settings: handler.NewSettingsHandler(svc.Settings, log),
		User:     handler.NewUserHandler(svc.Users, log),
		Health:   handler.NewHealthHandler(map[string]handler.HealthCheck{"database": stores.Ping}, log),
	}, handler.RouterOptions{AllowedOrigins: cfg.Server.AllowedOrigins, AdminToken: adminToken, Log: log})

	server := httptest.NewServer(router)

	return &TestApp{
		DB:          db,
		Server:      server,
		Client:      server.Client(),
		DBContainer: container,
	}
}
