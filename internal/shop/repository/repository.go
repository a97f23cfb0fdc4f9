package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrNotFound   = errors.New("record not found")
	ErrDuplicate  = errors.New("duplicate record")
	ErrForeignKey = errors.New("foreign key violation")
)

// Repositories 商城仓库集合
type Repositories struct {
	Customer *CustomerRepository
	Account  *AccountRepository
	Product  *ProductRepository
	Order    *OrderRepository
}

// NewRepositories 创建商城仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Customer: NewCustomerRepository(db),
		Account:  NewAccountRepository(db),
		Product:  NewProductRepository(db),
		Order:    NewOrderRepository(db),
	}
}

// translate 把驱动/GORM错误映射为仓库层错误
// TranslateError 未覆盖的驱动按错误文本兜底（sqlite: UNIQUE constraint failed, postgres: SQLSTATE 23505/23503）
func translate(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrForeignKey
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"),
		strings.Contains(msg, "duplicate key value"),
		strings.Contains(msg, "SQLSTATE 23505"):
		return errors.Join(ErrDuplicate, err)
	case strings.Contains(msg, "FOREIGN KEY constraint failed"),
		strings.Contains(msg, "violates foreign key constraint"),
		strings.Contains(msg, "SQLSTATE 23503"):
		return errors.Join(ErrForeignKey, err)
	}
	return err
}
