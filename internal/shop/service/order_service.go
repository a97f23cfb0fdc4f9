package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bitfantasy/shop/internal/shop/entity"
	"github.com/bitfantasy/shop/internal/shop/repository"
	"github.com/bitfantasy/shop/internal/shop/shipment"
	"github.com/bitfantasy/shop/internal/shop/validation"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OrderService 订单服务
type OrderService struct {
	db        *gorm.DB
	orders    *repository.OrderRepository
	customers *repository.CustomerRepository
	products  *repository.ProductRepository
	schedule  shipment.Schedule
	logger    *zap.Logger
	metrics   OrderRecorder
}

func NewOrderService(
	db *gorm.DB,
	orders *repository.OrderRepository,
	customers *repository.CustomerRepository,
	products *repository.ProductRepository,
	opts Options,
) *OrderService {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	schedule := shipment.DefaultSchedule()
	if opts.Schedule != nil {
		schedule = *opts.Schedule
	}
	return &OrderService{
		db:        db,
		orders:    orders,
		customers: customers,
		products:  products,
		schedule:  schedule,
		logger:    logger,
		metrics:   opts.Metrics,
	}
}

// CreateOrderRequest 下单请求
// product_id 可为数组或单个ID；shipment_days/delivery_days 缺省时使用配置
type CreateOrderRequest struct {
	OrderDate    string      `json:"order_date" validate:"required"`
	CustomerID   *FlexibleID `json:"customer_id" validate:"required"`
	ProductIDs   IDList      `json:"product_id" validate:"required"`
	ShipmentDays *int        `json:"shipment_days"`
	DeliveryDays *int        `json:"delivery_days"`
}

// CreateResult 下单结果
type CreateResult struct {
	Order   *entity.Order
	Linked  []uint
	Skipped []uint
}

// Create 下单：订单和全部关联在同一事务中写入
func (s *OrderService) Create(ctx context.Context, req *CreateOrderRequest) (*CreateResult, error) {
	verr := &validation.ValidationError{}
	if err := validation.Struct(req); err != nil {
		fieldErrs, ok := validation.As(err)
		if !ok {
			return nil, err
		}
		verr.Merge(fieldErrs)
	}
	orderDate, err := shipment.ParseDate(req.OrderDate)
	if err != nil && req.OrderDate != "" {
		verr.Add("order_date", "Not a valid date, expected YYYY-MM-DD.")
	}
	if verr.HasErrors() {
		return nil, verr
	}

	schedule := s.schedule
	if req.ShipmentDays != nil {
		schedule.ShipmentDays = *req.ShipmentDays
	}
	if req.DeliveryDays != nil {
		schedule.DeliveryDays = *req.DeliveryDays
	}
	shipDate, deliveryDate := schedule.Apply(orderDate)

	customerID := uint(*req.CustomerID)
	result := &CreateResult{
		Order: &entity.Order{
			OrderDate:    datatypes.Date(orderDate),
			ShipDate:     datatypes.Date(shipDate),
			DeliveryDate: datatypes.Date(deliveryDate),
			CustomerID:   customerID,
		},
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		customers := s.customers.WithTx(tx)
		products := s.products.WithTx(tx)
		orders := s.orders.WithTx(tx)

		exists, err := customers.Exists(ctx, customerID)
		if err != nil {
			return fmt.Errorf("check customer %d: %w", customerID, err)
		}
		if !exists {
			return validation.New("customer_id", "Customer does not exist.")
		}

		if err := orders.Create(ctx, result.Order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		for _, productID := range req.ProductIDs.Unique() {
			product, err := products.FindByID(ctx, productID)
			if errors.Is(err, repository.ErrNotFound) {
				result.Skipped = append(result.Skipped, productID)
				continue
			}
			if err != nil {
				return fmt.Errorf("find product %d: %w", productID, err)
			}
			if err := orders.LinkProduct(ctx, result.Order.ID, product.ID); err != nil {
				return fmt.Errorf("link product %d to order: %w", product.ID, err)
			}
			result.Linked = append(result.Linked, product.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(result.Skipped) > 0 {
		s.logger.Warn("order references unknown products",
			zap.Uint("order_id", result.Order.ID),
			zap.Uints("product_ids", result.Skipped))
	}
	if s.metrics != nil {
		s.metrics.OrderCreated(len(result.Linked))
	}
	return result, nil
}

// GetTracking 获取订单日期
func (s *OrderService) GetTracking(ctx context.Context, id uint) (*entity.Order, error) {
	return s.orders.FindByID(ctx, id)
}

// GetDetail 获取订单详情（含商品）
func (s *OrderService) GetDetail(ctx context.Context, id uint) (*entity.Order, error) {
	return s.orders.FindByIDWithProducts(ctx, id)
}

// ListByCustomer 获取客户的订单历史
func (s *OrderService) ListByCustomer(ctx context.Context, customerID uint) ([]entity.Order, error) {
	orders, err := s.orders.FindByCustomerID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("list orders of customer %d: %w", customerID, err)
	}
	return orders, nil
}

