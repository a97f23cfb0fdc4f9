package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bitfantasy/shop/internal/shop/entity"
	"github.com/bitfantasy/shop/internal/shop/repository"
	"github.com/bitfantasy/shop/internal/shop/validation"
)

// CustomerService 客户服务
type CustomerService struct {
	repo *repository.CustomerRepository
}

func NewCustomerService(repo *repository.CustomerRepository) *CustomerService {
	return &CustomerService{repo: repo}
}

// CustomerRequest 创建/更新客户请求，更新时整体替换
type CustomerRequest struct {
	Name  string `json:"name" validate:"required,max=255"`
	Email string `json:"email" validate:"omitempty,email,max=320"`
	Phone string `json:"phone" validate:"omitempty,max=15"`
}

// List 获取全部客户
func (s *CustomerService) List(ctx context.Context) ([]entity.Customer, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return items, nil
}

// Get 获取客户
func (s *CustomerService) Get(ctx context.Context, id uint) (*entity.Customer, error) {
	return s.repo.FindByID(ctx, id)
}

// Create 创建客户
func (s *CustomerService) Create(ctx context.Context, req *CustomerRequest) (*entity.Customer, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	customer := &entity.Customer{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	}
	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return customer, nil
}

// Update 更新客户
func (s *CustomerService) Update(ctx context.Context, id uint, req *CustomerRequest) (*entity.Customer, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	customer.Name = req.Name
	customer.Email = req.Email
	customer.Phone = req.Phone
	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, fmt.Errorf("update customer %d: %w", id, err)
	}
	return customer, nil
}

// Delete 删除客户，名下仍有订单或账号时拒绝
func (s *CustomerService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	orders, accounts, err := s.repo.CountDependents(ctx, id)
	if err != nil {
		return fmt.Errorf("count customer dependents: %w", err)
	}
	if orders > 0 || accounts > 0 {
		return ErrCustomerInUse
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			return ErrCustomerInUse
		}
		return fmt.Errorf("delete customer %d: %w", id, err)
	}
	return nil
}
