package repository

import (
	"context"

	"github.com/bitfantasy/shop/internal/shop/entity"
	"gorm.io/gorm"
)

// ProductRepository 商品仓库
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// WithTx 返回绑定到事务的仓库
func (r *ProductRepository) WithTx(tx *gorm.DB) *ProductRepository {
	return &ProductRepository{db: tx}
}

// FindAll 查询全部商品
func (r *ProductRepository) FindAll(ctx context.Context) ([]entity.Product, error) {
	var items []entity.Product
	err := r.db.WithContext(ctx).Order("id ASC").Find(&items).Error
	return items, translate(err)
}

// FindByID 根据ID查找商品
func (r *ProductRepository) FindByID(ctx context.Context, id uint) (*entity.Product, error) {
	var product entity.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

// Create 创建商品
func (r *ProductRepository) Create(ctx context.Context, product *entity.Product) error {
	return translate(r.db.WithContext(ctx).Create(product).Error)
}

// Update 更新商品
func (r *ProductRepository) Update(ctx context.Context, product *entity.Product) error {
	return translate(r.db.WithContext(ctx).Save(product).Error)
}

// Delete 删除商品
func (r *ProductRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entity.Product{}, id)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountOrderLinks 商品被多少订单引用
func (r *ProductRepository) CountOrderLinks(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.OrderProduct{}).Where("product_id = ?", id).Count(&count).Error
	return count, translate(err)
}
