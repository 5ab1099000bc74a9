package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadAPI_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "TASK_REPOSITORY", "CORS_ALLOWED_ORIGINS", "SHUTDOWN_TIMEOUT",
		"BLUEPRINT_DB_HOST", "BLUEPRINT_DB_PORT", "BLUEPRINT_DB_USERNAME", "BLUEPRINT_DB_PASSWORD",
		"BLUEPRINT_DB_DATABASE", "BLUEPRINT_DB_SSLMODE", "BLUEPRINT_DB_AUTOMIGRATE", "BLUEPRINT_DB_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadAPI()

	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, RepositoryGorm, cfg.Repository)
	assert.Equal(t, []string{"https://*", "http://*"}, cfg.AllowedOrigins)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, "host=localhost user=postgres password=password dbname=todo_db port=5432 sslmode=disable", cfg.Database.DSN())
}

func TestLoadAPI_Overrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("TASK_REPOSITORY", "SQL")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, ,https://example.com")
	t.Setenv("SHUTDOWN_TIMEOUT", "2s")
	t.Setenv("BLUEPRINT_DB_HOST", "db")
	t.Setenv("BLUEPRINT_DB_AUTOMIGRATE", "false")

	cfg := LoadAPI()

	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, RepositorySQL, cfg.Repository)
	assert.Equal(t, []string{"http://localhost:3000", "https://example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, 2*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.False(t, cfg.Database.AutoMigrate)
}

func TestLoadAPI_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	t.Setenv("TASK_REPOSITORY", "mongo")
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")
	t.Setenv("BLUEPRINT_DB_AUTOMIGRATE", "maybe")

	cfg := LoadAPI()

	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, RepositoryGorm, cfg.Repository)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.Database.AutoMigrate)
}

func TestLoadUI(t *testing.T) {
	t.Setenv("UI_PORT", "")
	t.Setenv("TODO_API_URL", "http://api:5000/")
	t.Setenv("UI_WRITE_STRATEGY", "refetch")
	t.Setenv("UI_REQUEST_TIMEOUT", "")

	cfg := LoadUI()

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "http://api:5000", cfg.APIURL)
	assert.Equal(t, WriteStrategyRefetch, cfg.WriteStrategy)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
}
