package repository

import (
	"context"

	"github.com/bitfantasy/shop/internal/shop/entity"
	"gorm.io/gorm"
)

// AccountRepository 客户账号仓库
type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// FindByID 根据ID查找账号
func (r *AccountRepository) FindByID(ctx context.Context, id uint) (*entity.CustomerAccount, error) {
	var account entity.CustomerAccount
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&account).Error; err != nil {
		return nil, translate(err)
	}
	return &account, nil
}

// FindByCustomerID 根据客户ID查找账号，同时加载客户
func (r *AccountRepository) FindByCustomerID(ctx context.Context, customerID uint) (*entity.CustomerAccount, error) {
	var account entity.CustomerAccount
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Where("customer_id = ?", customerID).
		First(&account).Error
	if err != nil {
		return nil, translate(err)
	}
	if account.Customer == nil {
		return nil, ErrNotFound
	}
	return &account, nil
}

// FindByUsername 根据用户名查找账号
func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (*entity.CustomerAccount, error) {
	var account entity.CustomerAccount
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&account).Error; err != nil {
		return nil, translate(err)
	}
	return &account, nil
}

// Create 创建账号，用户名或客户重复时返回 ErrDuplicate
func (r *AccountRepository) Create(ctx context.Context, account *entity.CustomerAccount) error {
	return translate(r.db.WithContext(ctx).Create(account).Error)
}

// UpdateCredentials 只更新用户名和密码
func (r *AccountRepository) UpdateCredentials(ctx context.Context, account *entity.CustomerAccount) error {
	err := r.db.WithContext(ctx).
		Model(account).
		Select("username", "password_hash", "updated_at").
		Updates(account).Error
	return translate(err)
}

// Delete 删除账号
func (r *AccountRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entity.CustomerAccount{}, id)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
