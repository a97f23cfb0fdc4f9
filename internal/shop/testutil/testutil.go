package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bitfantasy/shop/internal/config"
	"github.com/bitfantasy/shop/internal/database"
	"github.com/bitfantasy/shop/internal/shop/entity"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TestEnv holds test environment resources
type TestEnv struct {
	DB     *gorm.DB
	Router *gin.Engine
	T      *testing.T
}

var dbSeq atomic.Int64

// SetupTestDB opens an isolated in-memory SQLite database with foreign keys
// enabled and migrates the shop tables. The database lives until the test ends.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, dbSeq.Add(1))

	db, err := database.Open(config.DatabaseConfig{
		Driver:   database.DriverSQLite,
		Path:     dsn,
		LogLevel: "silent",
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := entity.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test tables: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// SetupRouter creates a gin test router
func SetupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())
	return r
}

// DoRequest executes an HTTP request against the test router.
// A string body is sent verbatim, anything else is JSON encoded.
func DoRequest(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	switch b := body.(type) {
	case nil:
		reqBody = bytes.NewBuffer(nil)
	case string:
		reqBody = bytes.NewBufferString(b)
	default:
		jsonBytes, _ := json.Marshal(b)
		reqBody = bytes.NewBuffer(jsonBytes)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ParseResponse parses a JSON object response body
func ParseResponse(w *httptest.ResponseRecorder) map[string]any {
	var result map[string]any
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

// ParseList parses a JSON array response body
func ParseList(w *httptest.ResponseRecorder) []map[string]any {
	var result []map[string]any
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

// SeedCustomer creates a customer in the database
func SeedCustomer(t *testing.T, db *gorm.DB, name, email string) *entity.Customer {
	t.Helper()
	customer := &entity.Customer{Name: name, Email: email, Phone: "555-0100"}
	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("Failed to seed customer: %v", err)
	}
	return customer
}

// SeedProduct creates a product in the database
func SeedProduct(t *testing.T, db *gorm.DB, name string, price float64) *entity.Product {
	t.Helper()
	product := &entity.Product{Name: name, Price: price}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("Failed to seed product: %v", err)
	}
	return product
}

// SeedAccount creates an account with a bcrypt hashed password
func SeedAccount(t *testing.T, db *gorm.DB, customerID uint, username, password string) *entity.CustomerAccount {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	account := &entity.CustomerAccount{
		Username:     username,
		PasswordHash: string(hash),
		CustomerID:   customerID,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("Failed to seed account: %v", err)
	}
	return account
}

// SeedOrder creates an order dated orderDate (YYYY-MM-DD) linked to the given products,
// with the default 2/5 day ship/delivery offsets
func SeedOrder(t *testing.T, db *gorm.DB, customerID uint, orderDate string, productIDs ...uint) *entity.Order {
	t.Helper()
	d, err := time.Parse("2006-01-02", orderDate)
	if err != nil {
		t.Fatalf("Invalid order date %q: %v", orderDate, err)
	}
	order := &entity.Order{
		OrderDate:    datatypes.Date(d),
		ShipDate:     datatypes.Date(d.AddDate(0, 0, 2)),
		DeliveryDate: datatypes.Date(d.AddDate(0, 0, 5)),
		CustomerID:   customerID,
	}
	if err := db.Omit("Products", "Customer").Create(order).Error; err != nil {
		t.Fatalf("Failed to seed order: %v", err)
	}
	for _, pid := range productIDs {
		link := &entity.OrderProduct{OrderID: order.ID, ProductID: pid}
		if err := db.Omit("Order", "Product").Create(link).Error; err != nil {
			t.Fatalf("Failed to seed order product: %v", err)
		}
	}
	return order
}
