package repository

import (
	"context"

	"github.com/bitfantasy/shop/internal/shop/entity"
	"gorm.io/gorm"
)

// CustomerRepository 客户仓库
type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// WithTx 返回绑定到事务的仓库
func (r *CustomerRepository) WithTx(tx *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: tx}
}

// FindAll 查询全部客户
func (r *CustomerRepository) FindAll(ctx context.Context) ([]entity.Customer, error) {
	var items []entity.Customer
	err := r.db.WithContext(ctx).Order("id ASC").Find(&items).Error
	return items, translate(err)
}

// FindByID 根据ID查找客户
func (r *CustomerRepository) FindByID(ctx context.Context, id uint) (*entity.Customer, error) {
	var customer entity.Customer
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&customer).Error; err != nil {
		return nil, translate(err)
	}
	return &customer, nil
}

// Exists 客户是否存在
func (r *CustomerRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Customer{}).Where("id = ?", id).Count(&count).Error
	return count > 0, translate(err)
}

// Create 创建客户
func (r *CustomerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return translate(r.db.WithContext(ctx).Create(customer).Error)
}

// Update 更新客户
func (r *CustomerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	return translate(r.db.WithContext(ctx).Save(customer).Error)
}

// Delete 删除客户
func (r *CustomerRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entity.Customer{}, id)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountDependents 统计客户名下的订单数和账号数
func (r *CustomerRepository) CountDependents(ctx context.Context, id uint) (orders, accounts int64, err error) {
	db := r.db.WithContext(ctx)
	if err = db.Model(&entity.Order{}).Where("customer_id = ?", id).Count(&orders).Error; err != nil {
		return 0, 0, translate(err)
	}
	if err = db.Model(&entity.CustomerAccount{}).Where("customer_id = ?", id).Count(&accounts).Error; err != nil {
		return 0, 0, translate(err)
	}
	return orders, accounts, nil
}
