package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/bitfantasy/shop/internal/shop/entity"
	"github.com/bitfantasy/shop/internal/shop/shipment"
	"github.com/bitfantasy/shop/internal/shop/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedProducts(t *testing.T, env *testutil.TestEnv, n int) []*entity.Product {
	t.Helper()
	products := make([]*entity.Product, 0, n)
	for i := 1; i <= n; i++ {
		products = append(products, testutil.SeedProduct(t, env.DB, fmt.Sprintf("Product %d", i), float64(i)*10))
	}
	return products
}

func countRows(t *testing.T, env *testutil.TestEnv, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, env.DB.Model(model).Count(&n).Error)
	return n
}

func TestCreateOrder(t *testing.T) {
	env, counter := setupShopTest(t)
	customer := testutil.SeedCustomer(t, env.DB, "Alice", "")
	products := seedProducts(t, env, 6)

	w := testutil.DoRequest(env.Router, http.MethodPost, "/orders", map[string]any{
		"order_date":  "2024-01-10",
		"customer_id": customer.ID,
		"product_id":  []uint{products[4].ID, products[5].ID},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Order processed successfully", testutil.ParseResponse(w)["message"])
	orderID := uint(testutil.ParseResponse(w)["id"].(float64))

	w = testutil.DoRequest(env.Router, http.MethodGet, fmt.Sprintf("/orders/%d", orderID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{
		"order_date":    "2024-01-10",
		"ship_date":     "2024-01-12",
		"delivery_date": "2024-01-15",
	}, testutil.ParseResponse(w))

	w = testutil.DoRequest(env.Router, http.MethodGet, fmt.Sprintf("/orders/%d/products", orderID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	detail := testutil.ParseResponse(w)
	assert.Equal(t, float64(orderID), detail["order_id"])
	assert.Equal(t, float64(customer.ID), detail["customer_id"])
	assert.Equal(t, "2024-01-15", detail["delivery_date"])
	items := detail["products"].([]any)
	require.Len(t, items, 2)
	first := items[0].(map[string]any)
	assert.Equal(t, float64(products[4].ID), first["product_id"])
	assert.Equal(t, "Product 5", first["product_name"])
	assert.Equal(t, 50.0, first["price"])

	var links []entity.OrderProduct
	require.NoError(t, env.DB.Where("order_id = ?", orderID).Order("product_id").Find(&links).Error)
	require.Len(t, links, 2)
	assert.Equal(t, products[4].ID, links[0].ProductID)
	assert.Equal(t, products[5].ID, links[1].ProductID)

	assert.Equal(t, 1, counter.orders)
	assert.Equal(t, 2, counter.linked)
}

func TestCreateOrderFlexibleInput(t *testing.T) {
	env, counter := setupShopTest(t)
	customer := testutil.SeedCustomer(t, env.DB, "Bob", "")
	products := seedProducts(t, env, 2)

	// 单个商品ID、字符串客户ID、自定义天数
	w := testutil.DoRequest(env.Router, http.MethodPost, "/orders", map[string]any{
		"order_date":    "2023-12-30",
		"customer_id":   fmt.Sprint(customer.ID),
		"product_id":    products[0].ID,
		"shipment_days": 1,
		"delivery_days": 3,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	orderID := uint(testutil.ParseResponse(w)["id"].(float64))

	w = testutil.DoRequest(env.Router, http.MethodGet, fmt.Sprintf("/orders/%d", orderID), nil)
	got := testutil.ParseResponse(w)
	assert.Equal(t, "2023-12-31", got["ship_date"])
	assert.Equal(t, "2024-01-02", got["delivery_date"])

	// 重复ID只关联一次，不存在的ID跳过
	w = testutil.DoRequest(env.Router, http.MethodPost, "/orders", map[string]any{
		"order_date":  "2024-01-10",
		"customer_id": customer.ID,
		"product_id":  []any{products[1].ID, fmt.Sprint(products[1].ID), 9999},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	orderID = uint(testutil.ParseResponse(w)["id"].(float64))

	var links int64
	require.NoError(t, env.DB.Model(&entity.OrderProduct{}).Where("order_id = ?", orderID).Count(&links).Error)
	assert.EqualValues(t, 1, links)
	assert.Equal(t, 2, counter.orders)
	assert.Equal(t, 2, counter.linked)
}

func TestCreateOrderWithoutProducts(t *testing.T) {
	env, _ := setupShopTest(t)
	customer := testutil.SeedCustomer(t, env.DB, "Carol", "")

	w := testutil.DoRequest(env.Router, http.MethodPost, "/orders", map[string]any{
		"order_date":  "2024-01-10",
		"customer_id": customer.ID,
		"product_id":  []uint{},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	orderID := uint(testutil.ParseResponse(w)["id"].(float64))

	w = testutil.DoRequest(env.Router, http.MethodGet, fmt.Sprintf("/orders/%d/products", orderID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"products":[]`)
}

func TestCreateOrderSameDaySchedule(t *testing.T) {
	env, _ := setupShopTestWithSchedule(t, &shipment.Schedule{ShipmentDays: 0, DeliveryDays: 0})
	customer := testutil.SeedCustomer(t, env.DB, "Sam", "")

	w := testutil.DoRequest(env.Router, http.MethodPost, "/orders", map[string]any{
		"order_date":  "2024-01-10",
		"customer_id": customer.ID,
		"product_id":  []uint{},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	orderID := uint(testutil.ParseResponse(w)["id"].(float64))

	w = testutil.DoRequest(env.Router, http.MethodGet, fmt.Sprintf("/orders/%d", orderID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := testutil.ParseResponse(w)
	assert.Equal(t, "2024-01-10", got["order_date"])
	assert.Equal(t, "2024-01-10", got["ship_date"])
	assert.Equal(t, "2024-01-10", got["delivery_date"])
}

func TestCreateOrderValidation(t *testing.T) {
	env, _ := setupShopTest(t)
	customer := testutil.SeedCustomer(t, env.DB, "Dave", "")

	w := testutil.DoRequest(env.Router, http.MethodPost, "/orders", map[string]any{})
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := testutil.ParseResponse(w)
	assert.Contains(t, body, "order_date")
	assert.Contains(t, body, "customer_id")
	assert.Contains(t, body, "product_id")

	w = testutil.DoRequest(env.Router, http.MethodPost, "/orders", map[string]any{
		"order_date":  "10/01/2024",
		"customer_id": customer.ID,
		"product_id":  []uint{},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []any{"Not a valid date, expected YYYY-MM-DD."}, testutil.ParseResponse(w)["order_date"])

	// 日期错误与其他字段错误一并返回
	w = testutil.DoRequest(env.Router, http.MethodPost, "/orders", map[string]any{
		"order_date": "2024-02-30",
		"product_id": []uint{},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	body = testutil.ParseResponse(w)
	assert.Equal(t, []any{"Not a valid date, expected YYYY-MM-DD."}, body["order_date"])
	assert.Equal(t, []any{"Missing data for required field."}, body["customer_id"])

	w = testutil.DoRequest(env.Router, http.MethodPost, "/orders", map[string]any{
		"order_date":  "2024-01-10",
		"customer_id": "abc",
		"product_id":  []uint{},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []any{"Not a valid integer."}, testutil.ParseResponse(w)["customer_id"])

	w = testutil.DoRequest(env.Router, http.MethodPost, "/orders", map[string]any{
		"order_date":  "2024-01-10",
		"customer_id": 999,
		"product_id":  []uint{},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []any{"Customer does not exist."}, testutil.ParseResponse(w)["customer_id"])

	assert.Zero(t, countRows(t, env, &entity.Order{}))
}

func TestCreateOrderIsAtomic(t *testing.T) {
	env, counter := setupShopTest(t)
	customer := testutil.SeedCustomer(t, env.DB, "Erin", "")
	products := seedProducts(t, env, 2)

	require.NoError(t, env.DB.Callback().Create().Before("gorm:create").Register("test:fail_order_links", func(tx *gorm.DB) {
		if tx.Statement.Table == "order_products" {
			tx.AddError(errors.New("link insert failed"))
		}
	}))

	w := testutil.DoRequest(env.Router, http.MethodPost, "/orders", map[string]any{
		"order_date":  "2024-01-10",
		"customer_id": customer.ID,
		"product_id":  []uint{products[0].ID, products[1].ID},
	})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, map[string]any{"Error": "order processing failed", "code": float64(50001)}, testutil.ParseResponse(w))
	assert.NotContains(t, w.Body.String(), "link insert failed")

	assert.Zero(t, countRows(t, env, &entity.Order{}))
	assert.Zero(t, countRows(t, env, &entity.OrderProduct{}))
	assert.Zero(t, counter.orders)
}

func TestOrderNotFound(t *testing.T) {
	env, _ := setupShopTest(t)

	w := testutil.DoRequest(env.Router, http.MethodGet, "/orders/7", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Order not found", testutil.ParseResponse(w)["message"])

	w = testutil.DoRequest(env.Router, http.MethodGet, "/orders/7/products", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderHistory(t *testing.T) {
	env, _ := setupShopTest(t)
	customer := testutil.SeedCustomer(t, env.DB, "Frank", "")
	idle := testutil.SeedCustomer(t, env.DB, "Grace", "")
	products := seedProducts(t, env, 2)

	w := testutil.DoRequest(env.Router, http.MethodGet, fmt.Sprintf("/customers/%d/orders", idle.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "No orders found for that customer", testutil.ParseResponse(w)["message"])

	first := testutil.SeedOrder(t, env.DB, customer.ID, "2024-01-10", products[0].ID, products[1].ID)
	testutil.SeedOrder(t, env.DB, customer.ID, "2024-02-01")

	w = testutil.DoRequest(env.Router, http.MethodGet, fmt.Sprintf("/customers/%d/orders", customer.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	history := testutil.ParseList(w)
	require.Len(t, history, 2)

	assert.Equal(t, float64(first.ID), history[0]["id"])
	assert.Equal(t, "2024-01-10", history[0]["order_date"])
	assert.Equal(t, "2024-01-12", history[0]["ship_date"])
	assert.Equal(t, float64(customer.ID), history[0]["customer_id"])
	items := history[0]["products"].([]any)
	require.Len(t, items, 2)
	assert.Equal(t, "Product 1", items[0].(map[string]any)["name"])

	assert.Equal(t, []any{}, history[1]["products"])
}
