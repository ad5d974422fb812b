// internal/services/services_test.go
package services

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shopvelvet/backend/internal/config"
	"github.com/shopvelvet/backend/internal/database"
	"github.com/shopvelvet/backend/internal/models"
	"github.com/shopvelvet/backend/internal/utils"
)

// newTestDB opens an in-memory sqlite database with the full schema. The
// connection pool is pinned to one connection so every query sees the same
// in-memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.RunMigrations(db))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		JWT: config.JWTConfig{
			SecretKey:       "test-secret",
			AccessTokenTTL:  1,
			RefreshTokenTTL: 24,
		},
	}
}

var userSeq int

func createUser(t *testing.T, db *gorm.DB, isStaff bool) *models.User {
	t.Helper()

	userSeq++
	user := &models.User{
		Username: fmt.Sprintf("user%d", userSeq),
		Email:    fmt.Sprintf("user%d@example.com", userSeq),
		IsStaff:  isStaff,
	}
	require.NoError(t, user.SetPassword("Password123"))
	require.NoError(t, db.Create(user).Error)
	return user
}

// createCustomer provisions a full customer profile (and its cart) for a
// fresh user, the same way registration does.
func createCustomer(t *testing.T, db *gorm.DB) (*models.User, *models.Customer) {
	t.Helper()

	user := createUser(t, db, false)
	customer, err := provisionCustomer(db, user.ID)
	require.NoError(t, err)
	return user, customer
}

func createCollection(t *testing.T, db *gorm.DB, title string) *models.Collection {
	t.Helper()

	collection := &models.Collection{Title: title}
	require.NoError(t, db.Create(collection).Error)
	return collection
}

func createProduct(t *testing.T, db *gorm.DB, collection *models.Collection, title string, price string, stock int) *models.Product {
	t.Helper()

	unitPrice, err := decimal.NewFromString(price)
	require.NoError(t, err)

	product := &models.Product{
		Title:        title,
		CollectionID: collection.ID,
		UnitPrice:    unitPrice,
		Stock:        stock,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func ownCart(t *testing.T, db *gorm.DB, customer *models.Customer) *models.Cart {
	t.Helper()

	var cart models.Cart
	require.NoError(t, db.First(&cart, "customer_id = ?", customer.ID).Error)
	return &cart
}

func addLine(t *testing.T, db *gorm.DB, cart *models.Cart, product *models.Product, quantity int) *models.CartItem {
	t.Helper()

	item := &models.CartItem{
		CartID:    cart.ID,
		ProductID: product.ID,
		Quantity:  quantity,
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

func init() {
	utils.SetJWTSecret("test-secret")
}
