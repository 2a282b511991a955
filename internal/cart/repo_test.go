package cart

import (
	"context"
	"testing"

	"github.com/bazaarly/bazaarly-backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCartTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	carts := `
CREATE TABLE IF NOT EXISTS carts (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  checked_out INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	cartItems := `
CREATE TABLE IF NOT EXISTS cart_items (
  id TEXT PRIMARY KEY,
  cart_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  vendor_id TEXT,
  name TEXT NOT NULL,
  description TEXT,
  price NUMERIC NOT NULL,
  stock INTEGER NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	for _, stmt := range []string{carts, cartItems, products} {
		require.NoError(t, db.Exec(stmt).Error)
	}

	return db
}

func seedCartWithItem(t *testing.T, db *gorm.DB, userID uuid.UUID) models.Cart {
	t.Helper()

	product := models.Product{
		ID:    uuid.New(),
		Name:  "Ceramic Pour-Over Set",
		Price: decimal.RequireFromString("39.00"),
		Stock: 5,
	}
	require.NoError(t, db.Create(&product).Error)

	cart := models.Cart{ID: uuid.New(), UserID: userID}
	require.NoError(t, db.Create(&cart).Error)

	item := models.CartItem{
		ID:        uuid.New(),
		CartID:    cart.ID,
		ProductID: product.ID,
		Quantity:  2,
	}
	require.NoError(t, db.Create(&item).Error)

	return cart
}

func TestFindActiveByUserPreloadsItems(t *testing.T) {
	ctx := context.Background()
	db := setupCartTestDB(t)
	repo := NewRepository(db)

	userID := uuid.New()
	seeded := seedCartWithItem(t, db, userID)

	cart, err := repo.FindActiveByUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, cart.ID)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "Ceramic Pour-Over Set", cart.Items[0].Product.Name)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestFindActiveByUserSkipsCheckedOut(t *testing.T) {
	ctx := context.Background()
	db := setupCartTestDB(t)
	repo := NewRepository(db)

	userID := uuid.New()
	cart := seedCartWithItem(t, db, userID)
	require.NoError(t, repo.MarkCheckedOut(ctx, cart.ID))

	_, err := repo.FindActiveByUser(ctx, userID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteItemsClearsCart(t *testing.T) {
	ctx := context.Background()
	db := setupCartTestDB(t)
	repo := NewRepository(db)

	userID := uuid.New()
	cart := seedCartWithItem(t, db, userID)

	require.NoError(t, repo.DeleteItems(ctx, cart.ID))

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Count(&count).Error)
	assert.Zero(t, count)
}
