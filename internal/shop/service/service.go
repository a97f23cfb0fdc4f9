package service

import (
	"errors"

	"github.com/bitfantasy/shop/internal/shop/repository"
	"github.com/bitfantasy/shop/internal/shop/shipment"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrCustomerInUse      = errors.New("customer still has orders or an account")
	ErrProductInUse       = errors.New("product is referenced by orders")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrCustomerHasAccount = errors.New("customer already has an account")
	ErrCustomerNotFound   = errors.New("customer not found")
)

// OrderRecorder 订单指标
type OrderRecorder interface {
	OrderCreated(linkedProducts int)
}

// Options 服务依赖的可选项
// Schedule 为 nil 时使用默认发货/送达天数
type Options struct {
	Schedule *shipment.Schedule
	Logger   *zap.Logger
	Metrics  OrderRecorder
}

// Services 商城服务集合
type Services struct {
	Customer *CustomerService
	Account  *AccountService
	Product  *ProductService
	Order    *OrderService
}

// NewServices 创建商城服务集合
func NewServices(repos *repository.Repositories, db *gorm.DB, opts Options) *Services {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	return &Services{
		Customer: NewCustomerService(repos.Customer),
		Account:  NewAccountService(repos.Account, repos.Customer),
		Product:  NewProductService(repos.Product),
		Order:    NewOrderService(db, repos.Order, repos.Customer, repos.Product, opts),
	}
}
