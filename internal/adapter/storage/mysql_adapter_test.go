package storage

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getMySQLDB(t *testing.T) *sql.DB {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		dsn = "root:root@tcp(localhost:3306)/rocketshoes?parseTime=true"
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Skipf("MySQL not available: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Skipf("MySQL not available: %v", err)
	}

	return db
}

func setupCatalogTables(t *testing.T, db *sql.DB) {
	ctx := context.Background()
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS products (
			id INT PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			price DECIMAL(10,2) NOT NULL,
			image VARCHAR(512) NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS inventory (
			product_id INT PRIMARY KEY,
			stock INT NOT NULL,
			version INT NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	}
	for _, stmt := range stmts {
		_, err := db.ExecContext(ctx, stmt)
		require.NoError(t, err, "setup failed")
	}
}

func TestMySQLGetProduct(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()
	setupCatalogTables(t, db)

	ctx := context.Background()
	adapter := NewMySQLAdapter(db)

	_, err := db.ExecContext(ctx, `
		INSERT INTO products (id, title, price, image) VALUES (9101, 'Test Shoe', 139.90, 'shoe.jpg')
		ON DUPLICATE KEY UPDATE title = 'Test Shoe', price = 139.90, image = 'shoe.jpg'`)
	require.NoError(t, err)

	p, err := adapter.GetProduct(ctx, 9101)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Test Shoe", p.Title)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("139.90")))
}

func TestMySQLGetProduct_NotFound(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()
	setupCatalogTables(t, db)

	ctx := context.Background()
	db.ExecContext(ctx, `DELETE FROM products WHERE id = 9102`)

	p, err := NewMySQLAdapter(db).GetProduct(ctx, 9102)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestMySQLListInventory(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()
	setupCatalogTables(t, db)

	ctx := context.Background()
	_, err := db.ExecContext(ctx, `
		INSERT INTO inventory (product_id, stock, version) VALUES (9103, 4, 0)
		ON DUPLICATE KEY UPDATE stock = 4, version = 0`)
	require.NoError(t, err)

	rows, err := NewMySQLAdapter(db).ListInventory(ctx)
	require.NoError(t, err)

	found := false
	for _, inv := range rows {
		if inv.ProductID == 9103 {
			found = true
			assert.Equal(t, 4, inv.Quantity)
			assert.False(t, inv.UpdatedAt.IsZero())
		}
	}
	assert.True(t, found, "expected inventory row for product 9103")
}
