package database

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupStoreTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	if testing.Short() {
		t.Skip("skipping store test in short mode (requires Docker)")
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err, "Failed to start postgres container")

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "Failed to get connection string")

	config, err := pgxpool.ParseConfig(connStr)
	require.NoError(t, err)

	pool, err := pgxpool.NewWithConfig(ctx, config)
	require.NoError(t, err, "Failed to create connection pool")

	err = runStoreTestMigrations(ctx, pool)
	require.NoError(t, err, "Failed to run migrations")

	cleanup := func() {
		pool.Close()
		testcontainers.TerminateContainer(container)
	}

	return pool, cleanup
}

// runStoreTestMigrations creates the catalog schema for store tests.
func runStoreTestMigrations(ctx context.Context, db *pgxpool.Pool) error {
	schema := `
	CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		brand TEXT NOT NULL DEFAULT '',
		rating DOUBLE PRECISION NOT NULL DEFAULT 0,
		availability INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS offers (
		product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		store TEXT NOT NULL,
		price DOUBLE PRECISION NOT NULL,
		discount DOUBLE PRECISION NOT NULL DEFAULT 0,
		position INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (product_id, store)
	);

	CREATE TABLE IF NOT EXISTS price_history (
		product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		observed_on TIMESTAMPTZ NOT NULL,
		price DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (product_id, observed_on)
	);
	`

	_, err := db.Exec(ctx, schema)
	return err
}

func seedStoreTestData(ctx context.Context, t *testing.T, db *pgxpool.Pool) {
	t.Helper()

	_, err := db.Exec(ctx, `
		INSERT INTO products (id, name, category, brand, rating, availability) VALUES
			('milk-1l', 'Milk 1L', 'dairy', 'Mlekovita', 4.7, 120),
			('bread-500g', 'Bread 500g', 'bakery', '', 4.1, 80)
	`)
	require.NoError(t, err)

	_, err = db.Exec(ctx, `
		INSERT INTO offers (product_id, store, price, discount, position) VALUES
			('milk-1l', 'Biedronka', 3.99, 0.5, 0),
			('milk-1l', 'LIDL', 3.49, 0.7, 1),
			('bread-500g', 'LIDL', 2.89, 0, 0)
	`)
	require.NoError(t, err)

	_, err = db.Exec(ctx, `
		INSERT INTO price_history (product_id, observed_on, price)
		SELECT 'milk-1l', TIMESTAMPTZ '2025-01-01' + (i || ' days')::INTERVAL, 3.0 + 0.1 * i
		FROM generate_series(0, 13) AS i
	`)
	require.NoError(t, err)
}

func TestStoreProductLookup(t *testing.T) {
	pool, cleanup := setupStoreTestDB(t)
	defer cleanup()

	ctx := context.Background()
	seedStoreTestData(ctx, t, pool)
	store := NewStore(pool)

	product, ok, err := store.Product(ctx, "milk-1l")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Milk 1L", product.Name)
	assert.Equal(t, "dairy", product.Category)
	assert.InDelta(t, 4.7, product.Rating, 1e-9)

	// Offers come back in stored position order.
	require.Len(t, product.Offers, 2)
	assert.Equal(t, "Biedronka", product.Offers[0].Store)
	assert.Equal(t, "LIDL", product.Offers[1].Store)
	assert.InDelta(t, 0.7, product.Offers[1].Discount, 1e-9)
}

func TestStoreProductNotFound(t *testing.T) {
	pool, cleanup := setupStoreTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewStore(pool)

	_, ok, err := store.Product(ctx, "does-not-exist")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStoreProducts(t *testing.T) {
	pool, cleanup := setupStoreTestDB(t)
	defer cleanup()

	ctx := context.Background()
	seedStoreTestData(ctx, t, pool)
	store := NewStore(pool)

	products, err := store.Products(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)

	// Ordered by id.
	assert.Equal(t, "bread-500g", products[0].ID)
	assert.Equal(t, "milk-1l", products[1].ID)
	assert.NotEmpty(t, products[1].Offers)
}

func TestStoreHistory(t *testing.T) {
	pool, cleanup := setupStoreTestDB(t)
	defer cleanup()

	ctx := context.Background()
	seedStoreTestData(ctx, t, pool)
	store := NewStore(pool)

	history, ok, err := store.History(ctx, "milk-1l")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, history.Points, 14)

	// Chronological, oldest first.
	assert.InDelta(t, 3.0, history.Points[0].Price, 1e-9)
	assert.InDelta(t, 4.3, history.Points[13].Price, 1e-9)
	assert.True(t, history.Points[0].Date.Before(history.Points[13].Date))

	_, ok, err = store.History(ctx, "bread-500g")
	require.NoError(t, err)
	assert.False(t, ok, "product without history rows reports not found")
}
