package testhelpers

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Abdus2609/vizor/internal/models"
)

const (
	PostgresImage = "postgres:16-alpine"
	RedisImage    = "redis:7-alpine"

	testDatabase = "vizor_test"
	testUser     = "vizor"
	testPassword = "test_password"
)

// SampleSchema covers a basic entity, a weak entity, a one-many child and a
// many-many association.
const SampleSchema = `
CREATE TABLE store (
	store_id   int4 PRIMARY KEY,
	manager    varchar(64) NOT NULL,
	budget     numeric(12, 2)
);

CREATE TABLE store_sales (
	store_id   int4 REFERENCES store (store_id),
	month      int4,
	revenue    numeric(12, 2),
	PRIMARY KEY (store_id, month)
);

CREATE TABLE employee (
	employee_id int4 PRIMARY KEY,
	store_id    int4 NOT NULL REFERENCES store (store_id),
	salary      numeric(10, 2),
	hired       date
);

CREATE TABLE actor (
	actor_id int4 PRIMARY KEY,
	name     text
);

CREATE TABLE film (
	film_id      int4 PRIMARY KEY,
	title        varchar(128),
	length       int2,
	release_date date
);

CREATE TABLE film_actor (
	actor_id    int4 REFERENCES actor (actor_id),
	film_id     int4 REFERENCES film (film_id),
	screen_time int4,
	PRIMARY KEY (actor_id, film_id)
);

INSERT INTO store VALUES (1, 'Mike', 1000.50), (2, 'Jon', 2500.00);
INSERT INTO store_sales VALUES (1, 1, 100), (1, 2, 150), (2, 1, 90), (2, 2, NULL);
INSERT INTO employee VALUES (10, 1, 3000, '2020-01-15'), (11, 1, -200, '2021-06-01'), (12, 2, 4100, '2019-03-30');
INSERT INTO actor VALUES (1, 'Penelope'), (2, 'Nick');
INSERT INTO film VALUES (1, 'Academy Dinosaur', 86, '2006-02-15'), (2, 'Ace Goldfinger', 48, NULL);
INSERT INTO film_actor VALUES (1, 1, 20), (1, 2, 35), (2, 1, 12);
`

// TestPostgres is a shared Postgres container loaded with SampleSchema.
type TestPostgres struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	Details   models.ConnectionDetails
}

var (
	sharedPostgres     *TestPostgres
	sharedPostgresOnce sync.Once
	sharedPostgresErr  error
)

// GetTestPostgres starts the container on first use and reuses it for the
// rest of the run.
func GetTestPostgres(t *testing.T) *TestPostgres {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode (requires Docker)")
	}

	sharedPostgresOnce.Do(func() {
		sharedPostgres, sharedPostgresErr = setupPostgres()
	})
	if sharedPostgresErr != nil {
		t.Fatalf("Failed to setup test postgres: %v", sharedPostgresErr)
	}
	return sharedPostgres
}

func setupPostgres() (*TestPostgres, error) {
	ctx := context.Background()

	container, err := postgres.Run(ctx, PostgresImage,
		postgres.WithDatabase(testDatabase),
		postgres.WithUsername(testUser),
		postgres.WithPassword(testPassword),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if _, err := pool.Exec(ctx, SampleSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to load sample schema: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}

	return &TestPostgres{
		Container: container,
		Pool:      pool,
		Details: models.ConnectionDetails{
			Driver:       models.DriverPostgres,
			Host:         host,
			Port:         port.Port(),
			DatabaseName: testDatabase,
			Username:     testUser,
			Password:     testPassword,
			Schema:       "public",
		},
	}, nil
}

type TestRedis struct {
	Container testcontainers.Container
	Client    *redis.Client
}

var (
	sharedRedis     *TestRedis
	sharedRedisOnce sync.Once
	sharedRedisErr  error
)

func GetTestRedis(t *testing.T) *TestRedis {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode (requires Docker)")
	}

	sharedRedisOnce.Do(func() {
		sharedRedis, sharedRedisErr = setupRedis()
	})
	if sharedRedisErr != nil {
		t.Fatalf("Failed to setup test redis: %v", sharedRedisErr)
	}

	// Each test starts from an empty keyspace.
	if err := sharedRedis.Client.FlushDB(context.Background()).Err(); err != nil {
		t.Fatalf("Failed to flush test redis: %v", err)
	}
	return sharedRedis
}

func setupRedis() (*TestRedis, error) {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        RedisImage,
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForLog("Ready to accept connections").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start redis container: %w", err)
	}

	endpoint, err := container.Endpoint(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to get redis endpoint: %w", err)
	}

	client := redis.NewClient(&redis.Options{Addr: endpoint})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &TestRedis{Container: container, Client: client}, nil
}
