//nolint:errcheck // testsetup
package tcpostgres

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/arjunakankipati/racing-stat-service-go/pkg/db/migrate"
	database "github.com/arjunakankipati/racing-stat-service-go/pkg/db/postgres"
)

// create a pg connection pool for the racingstat testdatabase
func SetupTestDb() *pgxpool.Pool {
	ctx := context.Background()
	port, err := nat.NewPort("tcp", "5432")
	if err != nil {
		log.Fatal(err)
	}
	container, err := SetupPostgres(ctx,
		WithPort(port.Port()),
		WithInitialDatabase("postgres", "password", "postgres"),
		WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
		WithName("racing-stat-service-test"),
	)
	if err != nil {
		log.Fatal(err)
	}
	containerPort, _ := container.MappedPort(ctx, port)
	host, _ := container.Host(ctx)
	dbURL := fmt.Sprintf("postgresql://postgres:password@%s:%s/postgres",
		host, containerPort.Port())

	return initPool(dbURL)
}

// connects to a database provided via TESTDB_URL instead of starting a
// container (CI setups)
func SetupExternalTestDb() *pgxpool.Pool {
	return initPool(os.Getenv("TESTDB_URL"))
}

func initPool(dbURL string) *pgxpool.Pool {
	if err := migrate.MigrateDB(dbURL); err != nil {
		log.Fatal(err)
	}
	return database.InitWithURL(dbURL)
}

func ClearTimingTables(pool *pgxpool.Pool) {
	pool.Exec(context.Background(), "delete from sector")
	pool.Exec(context.Background(), "delete from lap")
	pool.Exec(context.Background(), "delete from result")
}

func ClearEntryTables(pool *pgxpool.Pool) {
	pool.Exec(context.Background(), "delete from car_driver")
	pool.Exec(context.Background(), "delete from car_entry")
	pool.Exec(context.Background(), "delete from driver")
	pool.Exec(context.Background(), "delete from car_model")
	pool.Exec(context.Background(), "delete from class")
	pool.Exec(context.Background(), "delete from team")
}

func ClearCatalogTables(pool *pgxpool.Pool) {
	pool.Exec(context.Background(), "delete from session")
	pool.Exec(context.Background(), "delete from event")
	pool.Exec(context.Background(), "delete from series")
}

func ClearJobTable(pool *pgxpool.Pool) {
	pool.Exec(context.Background(), "delete from import_job")
}

// delete order respects the foreign keys
func ClearAllTables(pool *pgxpool.Pool) {
	ClearJobTable(pool)
	ClearTimingTables(pool)
	ClearEntryTables(pool)
	ClearCatalogTables(pool)
}
