// internal/tests/api_test.go
package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shopvelvet/backend/internal/config"
	"github.com/shopvelvet/backend/internal/database"
	"github.com/shopvelvet/backend/internal/models"
	"github.com/shopvelvet/backend/internal/router"
)

type APITestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

func (suite *APITestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	suite.Require().NoError(err)

	sqlDB, err := db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	suite.Require().NoError(database.RunMigrations(db))

	cfg := &config.Config{
		Environment: "test",
		JWT: config.JWTConfig{
			SecretKey:       "test-secret",
			AccessTokenTTL:  1,
			RefreshTokenTTL: 24,
		},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		RateLimit: config.RateLimitConfig{Enabled: false},
	}

	suite.db = db
	suite.router = router.Initialize(db, cfg)
}

func (suite *APITestSuite) request(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func decode(suite *APITestSuite, w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

var accountSeq int

// register creates an account through the public endpoint and returns the
// access token and user id.
func (suite *APITestSuite) register() (string, string) {
	accountSeq++
	w := suite.request("POST", "/v1/auth/register", "", map[string]interface{}{
		"username": fmt.Sprintf("shopper%d", accountSeq),
		"email":    fmt.Sprintf("shopper%d@example.com", accountSeq),
		"password": "Sup3rSecret",
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	response := decode(suite, w)
	data := response["data"].(map[string]interface{})
	user := data["user"].(map[string]interface{})
	return data["access_token"].(string), user["id"].(string)
}

// staffToken promotes a registered account to staff and logs in again so the
// token carries the staff claim.
func (suite *APITestSuite) staffToken() string {
	accountSeq++
	email := fmt.Sprintf("staff%d@example.com", accountSeq)
	w := suite.request("POST", "/v1/auth/register", "", map[string]interface{}{
		"username": fmt.Sprintf("staff%d", accountSeq),
		"email":    email,
		"password": "Sup3rSecret",
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	suite.Require().NoError(suite.db.Model(&models.User{}).
		Where("email = ?", email).Update("is_staff", true).Error)

	w = suite.request("POST", "/v1/auth/login", "", map[string]interface{}{
		"email":    email,
		"password": "Sup3rSecret",
	})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	data := decode(suite, w)["data"].(map[string]interface{})
	return data["access_token"].(string)
}

// seedProduct creates a collection and product through the staff API and
// returns the product id.
func (suite *APITestSuite) seedProduct(staff string, title string, price string, stock int) string {
	w := suite.request("POST", "/v1/collections", staff, map[string]interface{}{
		"title": "catalog",
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	collection := decode(suite, w)["data"].(map[string]interface{})["collection"].(map[string]interface{})

	w = suite.request("POST", "/v1/products", staff, map[string]interface{}{
		"title":         title,
		"collection_id": collection["id"],
		"unit_price":    price,
		"stock":         stock,
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	product := decode(suite, w)["data"].(map[string]interface{})["product"].(map[string]interface{})
	return product["id"].(string)
}

func (suite *APITestSuite) TestRegisterThenProfile() {
	token, _ := suite.register()

	w := suite.request("GET", "/v1/auth/me", token, nil)
	suite.Equal(http.StatusOK, w.Code)

	response := decode(suite, w)
	suite.True(response["success"].(bool))

	// Registration also provisioned the cart.
	w = suite.request("GET", "/v1/carts/mine", token, nil)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *APITestSuite) TestCatalogWritesRequireStaff() {
	// Anyone can read.
	w := suite.request("GET", "/v1/collections", "", nil)
	suite.Equal(http.StatusOK, w.Code)

	// Anonymous and ordinary users cannot write.
	body := map[string]interface{}{"title": "shirts"}
	w = suite.request("POST", "/v1/collections", "", body)
	suite.Equal(http.StatusForbidden, w.Code)

	token, _ := suite.register()
	w = suite.request("POST", "/v1/collections", token, body)
	suite.Equal(http.StatusForbidden, w.Code)

	// Staff can.
	staff := suite.staffToken()
	w = suite.request("POST", "/v1/collections", staff, body)
	suite.Equal(http.StatusCreated, w.Code)
}

func (suite *APITestSuite) TestMergeRequiresAuthentication() {
	w := suite.request("POST", "/v1/carts", "", nil)
	suite.Require().Equal(http.StatusCreated, w.Code)
	cart := decode(suite, w)["data"].(map[string]interface{})["cart"].(map[string]interface{})

	w = suite.request("POST", fmt.Sprintf("/v1/carts/%s/merge", cart["id"]), "", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *APITestSuite) TestAnonymousCartMergeFlow() {
	staff := suite.staffToken()
	productID := suite.seedProduct(staff, "linen shirt", "25.00", 10)

	// Anonymous shopper builds a cart with no token at all.
	w := suite.request("POST", "/v1/carts", "", nil)
	suite.Require().Equal(http.StatusCreated, w.Code)
	anonCart := decode(suite, w)["data"].(map[string]interface{})["cart"].(map[string]interface{})
	anonCartID := anonCart["id"].(string)

	w = suite.request("POST", fmt.Sprintf("/v1/carts/%s/items", anonCartID), "", map[string]interface{}{
		"product_id": productID,
		"quantity":   3,
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	// The shopper signs up and puts the same product in the account cart.
	token, _ := suite.register()
	w = suite.request("GET", "/v1/carts/mine", token, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	ownCart := decode(suite, w)["data"].(map[string]interface{})["cart"].(map[string]interface{})
	ownCartID := ownCart["id"].(string)

	w = suite.request("POST", fmt.Sprintf("/v1/carts/%s/items", ownCartID), token, map[string]interface{}{
		"product_id": productID,
		"quantity":   2,
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	// Merge folds the anonymous cart into the account cart.
	w = suite.request("POST", fmt.Sprintf("/v1/carts/%s/merge", anonCartID), token, nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	merged := decode(suite, w)["data"].(map[string]interface{})["cart"].(map[string]interface{})
	suite.Equal(ownCartID, merged["id"])

	items := merged["items"].([]interface{})
	suite.Require().Len(items, 1)
	suite.Equal(float64(5), items[0].(map[string]interface{})["quantity"])

	// The anonymous cart is gone.
	w = suite.request("GET", fmt.Sprintf("/v1/carts/%s", anonCartID), token, nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *APITestSuite) TestOrderLifecycle() {
	staff := suite.staffToken()
	productID := suite.seedProduct(staff, "linen shirt", "25.00", 10)

	token, _ := suite.register()
	w := suite.request("GET", "/v1/carts/mine", token, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	cart := decode(suite, w)["data"].(map[string]interface{})["cart"].(map[string]interface{})

	w = suite.request("POST", fmt.Sprintf("/v1/carts/%s/items", cart["id"]), token, map[string]interface{}{
		"product_id": productID,
		"quantity":   2,
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	// Place the order.
	w = suite.request("POST", "/v1/orders", token, nil)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	order := decode(suite, w)["data"].(map[string]interface{})["order"].(map[string]interface{})
	suite.Equal("pending", order["status"])
	orderID := order["id"].(string)

	// Only staff may move the status.
	statusBody := map[string]interface{}{"status": "confirmed"}
	w = suite.request("PATCH", "/v1/orders/"+orderID, token, statusBody)
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.request("PATCH", "/v1/orders/"+orderID, staff, statusBody)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	updated := decode(suite, w)["data"].(map[string]interface{})["order"].(map[string]interface{})
	suite.Equal("confirmed", updated["status"])

	// Confirmed is final.
	w = suite.request("PATCH", "/v1/orders/"+orderID, staff, map[string]interface{}{"status": "failed"})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *APITestSuite) TestOrdersScopedToOwner() {
	staff := suite.staffToken()
	productID := suite.seedProduct(staff, "linen shirt", "25.00", 10)

	tokenA, _ := suite.register()
	w := suite.request("GET", "/v1/carts/mine", tokenA, nil)
	cartA := decode(suite, w)["data"].(map[string]interface{})["cart"].(map[string]interface{})
	suite.request("POST", fmt.Sprintf("/v1/carts/%s/items", cartA["id"]), tokenA, map[string]interface{}{
		"product_id": productID, "quantity": 1,
	})
	w = suite.request("POST", "/v1/orders", tokenA, nil)
	suite.Require().Equal(http.StatusCreated, w.Code)
	orderA := decode(suite, w)["data"].(map[string]interface{})["order"].(map[string]interface{})

	tokenB, _ := suite.register()
	w = suite.request("GET", "/v1/orders/"+orderA["id"].(string), tokenB, nil)
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.request("GET", "/v1/orders", tokenB, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	data := decode(suite, w)["data"]
	if data != nil {
		suite.Len(data.([]interface{}), 0)
	}
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
