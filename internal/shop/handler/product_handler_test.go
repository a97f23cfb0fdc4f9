package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/bitfantasy/shop/internal/shop/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductCRUD(t *testing.T) {
	env, _ := setupShopTest(t)

	w := testutil.DoRequest(env.Router, http.MethodPost, "/products", map[string]any{"name": "Freebie", "price": 0})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Product added successfully", testutil.ParseResponse(w)["message"])
	id := uint(testutil.ParseResponse(w)["id"].(float64))
	path := fmt.Sprintf("/products/%d", id)

	w = testutil.DoRequest(env.Router, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := testutil.ParseResponse(w)
	assert.Equal(t, "Freebie", got["name"])
	assert.Equal(t, 0.0, got["price"])

	w = testutil.DoRequest(env.Router, http.MethodPut, path, map[string]any{"name": "Widget", "price": 9.99})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Product updated successfully", testutil.ParseResponse(w)["message"])

	w = testutil.DoRequest(env.Router, http.MethodGet, "/products", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := testutil.ParseList(w)
	require.Len(t, list, 1)
	assert.Equal(t, "Widget", list[0]["name"])
	assert.Equal(t, 9.99, list[0]["price"])

	w = testutil.DoRequest(env.Router, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Product removed successfully", testutil.ParseResponse(w)["message"])

	w = testutil.DoRequest(env.Router, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Product not found", testutil.ParseResponse(w)["message"])
}

func TestProductValidation(t *testing.T) {
	env, _ := setupShopTest(t)

	w := testutil.DoRequest(env.Router, http.MethodPost, "/products", map[string]any{"name": "Bad", "price": -1})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []any{"Must be greater than or equal to 0."}, testutil.ParseResponse(w)["price"])

	w = testutil.DoRequest(env.Router, http.MethodPost, "/products", map[string]any{"name": "Bad"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []any{"Missing data for required field."}, testutil.ParseResponse(w)["price"])

	w = testutil.DoRequest(env.Router, http.MethodPost, "/products", map[string]any{"name": "Bad", "price": "abc"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []any{"Not a valid number."}, testutil.ParseResponse(w)["price"])

	w = testutil.DoRequest(env.Router, http.MethodPost, "/products", map[string]any{"name": "Bad", "price": "-1"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []any{"Must be greater than or equal to 0."}, testutil.ParseResponse(w)["price"])

	product := testutil.SeedProduct(t, env.DB, "Lamp", 20)
	w = testutil.DoRequest(env.Router, http.MethodPut, fmt.Sprintf("/products/%d", product.ID),
		map[string]any{"name": "Lamp", "price": -5})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = testutil.DoRequest(env.Router, http.MethodGet, fmt.Sprintf("/products/%d", product.ID), nil)
	assert.Equal(t, 20.0, testutil.ParseResponse(w)["price"])
}

func TestProductPriceFromString(t *testing.T) {
	env, _ := setupShopTest(t)

	w := testutil.DoRequest(env.Router, http.MethodPost, "/products", map[string]any{"name": "Pen", "price": "9.99"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := uint(testutil.ParseResponse(w)["id"].(float64))

	w = testutil.DoRequest(env.Router, http.MethodGet, fmt.Sprintf("/products/%d", id), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 9.99, testutil.ParseResponse(w)["price"])

	w = testutil.DoRequest(env.Router, http.MethodPut, fmt.Sprintf("/products/%d", id), map[string]any{"name": "Pen", "price": "12"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = testutil.DoRequest(env.Router, http.MethodGet, fmt.Sprintf("/products/%d", id), nil)
	assert.Equal(t, 12.0, testutil.ParseResponse(w)["price"])
}

func TestProductMissing(t *testing.T) {
	env, _ := setupShopTest(t)

	w := testutil.DoRequest(env.Router, http.MethodPut, "/products/42", map[string]any{"name": "X", "price": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = testutil.DoRequest(env.Router, http.MethodPut, "/products/42", map[string]any{"price": "abc"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Product not found", testutil.ParseResponse(w)["message"])

	w = testutil.DoRequest(env.Router, http.MethodDelete, "/products/42", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductDeleteRestricted(t *testing.T) {
	env, _ := setupShopTest(t)

	customer := testutil.SeedCustomer(t, env.DB, "Erin", "")
	product := testutil.SeedProduct(t, env.DB, "Mug", 4.5)
	testutil.SeedOrder(t, env.DB, customer.ID, "2024-01-10", product.ID)

	w := testutil.DoRequest(env.Router, http.MethodDelete, fmt.Sprintf("/products/%d", product.ID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = testutil.DoRequest(env.Router, http.MethodGet, fmt.Sprintf("/products/%d", product.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
