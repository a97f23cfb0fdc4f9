package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bitfantasy/shop/internal/shop/repository"
	"github.com/bitfantasy/shop/internal/shop/shipment"
	"github.com/bitfantasy/shop/internal/shop/testutil"
	"github.com/bitfantasy/shop/internal/shop/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newTestServices(t *testing.T, opts Options) (*Services, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewServices(repository.NewRepositories(db), db, opts), db
}

func price(v float64) *FlexibleFloat {
	f := FlexibleFloat(v)
	return &f
}

func customerID(v uint) *FlexibleID {
	id := FlexibleID(v)
	return &id
}

func TestOrderCreateUsesDefaultSchedule(t *testing.T) {
	svc, db := newTestServices(t, Options{})
	ctx := context.Background()
	customer := testutil.SeedCustomer(t, db, "Alice", "")

	result, err := svc.Order.Create(ctx, &CreateOrderRequest{
		OrderDate:  "2024-01-30",
		CustomerID: customerID(customer.ID),
		ProductIDs: IDList{},
	})
	require.NoError(t, err)

	tracking := NewOrderTrackingResponse(result.Order)
	assert.Equal(t, "2024-01-30", tracking.OrderDate)
	assert.Equal(t, "2024-02-01", tracking.ShipDate)
	assert.Equal(t, "2024-02-04", tracking.DeliveryDate)
}

func TestOrderCreateSameDaySchedule(t *testing.T) {
	svc, db := newTestServices(t, Options{Schedule: &shipment.Schedule{}})
	customer := testutil.SeedCustomer(t, db, "Zed", "")

	result, err := svc.Order.Create(context.Background(), &CreateOrderRequest{
		OrderDate:  "2024-01-10",
		CustomerID: customerID(customer.ID),
		ProductIDs: IDList{},
	})
	require.NoError(t, err)

	tracking := NewOrderTrackingResponse(result.Order)
	assert.Equal(t, "2024-01-10", tracking.ShipDate)
	assert.Equal(t, "2024-01-10", tracking.DeliveryDate)
}

func TestOrderCreateLogsSkippedProducts(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	svc, db := newTestServices(t, Options{Logger: zap.New(core)})
	ctx := context.Background()
	customer := testutil.SeedCustomer(t, db, "Bob", "")
	product := testutil.SeedProduct(t, db, "Pen", 1)

	result, err := svc.Order.Create(ctx, &CreateOrderRequest{
		OrderDate:  "2024-01-10",
		CustomerID: customerID(customer.ID),
		ProductIDs: IDList{404, product.ID, 405},
	})
	require.NoError(t, err)
	assert.Equal(t, []uint{product.ID}, result.Linked)
	assert.Equal(t, []uint{404, 405}, result.Skipped)

	entries := logs.FilterMessage("order references unknown products").All()
	require.Len(t, entries, 1)
	assert.EqualValues(t, result.Order.ID, entries[0].ContextMap()["order_id"])

	detail, err := svc.Order.GetDetail(ctx, result.Order.ID)
	require.NoError(t, err)
	require.Len(t, detail.Products, 1)
	assert.Equal(t, "Pen", detail.Products[0].Name)
}

func TestOrderCreateNegativeOffsets(t *testing.T) {
	svc, db := newTestServices(t, Options{})
	customer := testutil.SeedCustomer(t, db, "Carol", "")
	ship, delivery := -1, 0

	result, err := svc.Order.Create(context.Background(), &CreateOrderRequest{
		OrderDate:    "2024-03-01",
		CustomerID:   customerID(customer.ID),
		ProductIDs:   IDList{},
		ShipmentDays: &ship,
		DeliveryDays: &delivery,
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", time.Time(result.Order.ShipDate).Format("2006-01-02"))
	assert.Equal(t, "2024-03-01", time.Time(result.Order.DeliveryDate).Format("2006-01-02"))
}

func TestCustomerDeleteInUse(t *testing.T) {
	svc, db := newTestServices(t, Options{})
	ctx := context.Background()
	customer := testutil.SeedCustomer(t, db, "Dan", "")
	testutil.SeedOrder(t, db, customer.ID, "2024-01-10")

	err := svc.Customer.Delete(ctx, customer.ID)
	assert.ErrorIs(t, err, ErrCustomerInUse)

	err = svc.Customer.Delete(ctx, 999)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProductServiceValidation(t *testing.T) {
	svc, _ := newTestServices(t, Options{})
	ctx := context.Background()

	_, err := svc.Product.Create(ctx, &ProductRequest{Name: "", Price: price(-2)})
	verr, ok := validation.As(err)
	require.True(t, ok)
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "price")

	product, err := svc.Product.Create(ctx, &ProductRequest{Name: "Free", Price: price(0)})
	require.NoError(t, err)
	assert.Zero(t, product.Price)
}

func TestAccountPasswordRules(t *testing.T) {
	svc, db := newTestServices(t, Options{})
	ctx := context.Background()
	customer := testutil.SeedCustomer(t, db, "Eve", "")

	long := make([]byte, maxPasswordBytes+1)
	for i := range long {
		long[i] = 'a'
	}
	_, err := svc.Account.Create(ctx, &CreateAccountRequest{
		Username:   "eve",
		Password:   string(long),
		CustomerID: customerID(customer.ID),
	})
	verr, ok := validation.As(err)
	require.True(t, ok)
	assert.Contains(t, verr.Fields, "password")

	_, err = svc.Account.Create(ctx, &CreateAccountRequest{
		Username:   "eve",
		Password:   "pw",
		CustomerID: customerID(999),
	})
	assert.True(t, errors.Is(err, ErrCustomerNotFound))
	_, ok = validation.As(err)
	assert.True(t, ok)

	account, err := svc.Account.Create(ctx, &CreateAccountRequest{
		Username:   "eve",
		Password:   "pw",
		CustomerID: customerID(customer.ID),
	})
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("pw")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("wrong")))
}
