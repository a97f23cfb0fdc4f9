package repository

import (
	"context"

	"github.com/bitfantasy/shop/internal/shop/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderRepository 订单仓库
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// WithTx 返回绑定到事务的仓库
func (r *OrderRepository) WithTx(tx *gorm.DB) *OrderRepository {
	return &OrderRepository{db: tx}
}

// Create 创建订单（不含商品关联）
func (r *OrderRepository) Create(ctx context.Context, order *entity.Order) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(order).Error)
}

// LinkProduct 写入一条订单-商品关联，重复关联忽略
func (r *OrderRepository) LinkProduct(ctx context.Context, orderID, productID uint) error {
	link := &entity.OrderProduct{OrderID: orderID, ProductID: productID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Omit(clause.Associations).
		Create(link).Error
	return translate(err)
}

// FindByID 根据ID查找订单
func (r *OrderRepository) FindByID(ctx context.Context, id uint) (*entity.Order, error) {
	var order entity.Order
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

// FindByIDWithProducts 查找订单并加载关联商品
func (r *OrderRepository) FindByIDWithProducts(ctx context.Context, id uint) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).
		Preload("Products", func(db *gorm.DB) *gorm.DB { return db.Order("products.id ASC") }).
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

// FindByCustomerID 查询客户的全部订单（含商品）
func (r *OrderRepository) FindByCustomerID(ctx context.Context, customerID uint) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.db.WithContext(ctx).
		Preload("Products", func(db *gorm.DB) *gorm.DB { return db.Order("products.id ASC") }).
		Where("customer_id = ?", customerID).
		Order("id ASC").
		Find(&orders).Error
	return orders, translate(err)
}
