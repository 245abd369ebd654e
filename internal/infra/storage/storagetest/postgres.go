//go:build integration

package storagetest

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/m04kA/SMC-SeatBooking/internal/infra/storage/schema"
)

// StartPostgres поднимает postgres в контейнере, применяет схему и возвращает подключение.
// Контейнер останавливается в t.Cleanup.
func StartPostgres(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("docker.io/postgres:15.2-alpine"),
		postgres.WithDatabase("seatbooking"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(ctx)
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable", "application_name=test")
	require.NoError(t, err)

	db, err := sql.Open("postgres", connStr)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})

	require.NoError(t, schema.Apply(ctx, db))
	return db
}

// SeedLocation создает локацию с местами и возвращает её ID
func SeedLocation(t *testing.T, db *sql.DB, name string, seatIDs ...string) int64 {
	t.Helper()
	ctx := context.Background()

	var id int64
	require.NoError(t, db.QueryRowContext(ctx, `INSERT INTO locations (name) VALUES ($1) RETURNING id`, name).Scan(&id))
	for _, seatID := range seatIDs {
		_, err := db.ExecContext(ctx, `INSERT INTO seats (location_id, id) VALUES ($1, $2)`, id, seatID)
		require.NoError(t, err)
	}
	return id
}
