// Package testutil starts throwaway Postgres instances for integration tests.
package testutil

import (
	"context"
	"os/exec"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

// dockerAvailable checks the daemon up front; testcontainers panics without it.
func dockerAvailable() bool {
	return exec.Command("docker", "info").Run() == nil
}

// PostgresContainer is a running test database.
type PostgresContainer struct {
	DSN       string
	container *postgres.PostgresContainer
}

// Stop terminates the container before the test ends.
func (p *PostgresContainer) Stop(t *testing.T) {
	t.Helper()
	if err := testcontainers.TerminateContainer(p.container); err != nil {
		t.Logf("failed to terminate container: %s", err)
	}
}

// StartPostgres runs postgres:16-alpine and returns its connection string.
// The test is skipped when Docker is unavailable.
func StartPostgres(t *testing.T) *PostgresContainer {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping PostgreSQL integration test in short mode")
	}
	if !dockerAvailable() {
		t.Skip("Docker not available, skipping PostgreSQL integration tests")
	}

	ctx := context.Background()
	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("todo_db"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("password"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Skipf("failed to start PostgreSQL container: %v", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(pgContainer); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}
	return &PostgresContainer{DSN: dsn, container: pgContainer}
}
