package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bitfantasy/shop/internal/shop/entity"
	"github.com/bitfantasy/shop/internal/shop/repository"
	"github.com/bitfantasy/shop/internal/shop/validation"
	"golang.org/x/crypto/bcrypt"
)

// bcrypt 只处理前 72 字节
const maxPasswordBytes = 72

// AccountService 客户账号服务
type AccountService struct {
	repo      *repository.AccountRepository
	customers *repository.CustomerRepository
}

func NewAccountService(repo *repository.AccountRepository, customers *repository.CustomerRepository) *AccountService {
	return &AccountService{repo: repo, customers: customers}
}

// CreateAccountRequest 创建账号请求
type CreateAccountRequest struct {
	Username   string      `json:"username" validate:"required,max=255"`
	Password   string      `json:"password" validate:"required"`
	CustomerID *FlexibleID `json:"customer_id" validate:"required"`
}

// UpdateAccountRequest 更新账号请求，只允许修改用户名和密码
type UpdateAccountRequest struct {
	Username string `json:"username" validate:"required,max=255"`
	Password string `json:"password" validate:"required"`
}

// Get 根据ID获取账号
func (s *AccountService) Get(ctx context.Context, id uint) (*entity.CustomerAccount, error) {
	return s.repo.FindByID(ctx, id)
}

// GetByCustomer 根据客户ID获取账号及客户信息
func (s *AccountService) GetByCustomer(ctx context.Context, customerID uint) (*entity.CustomerAccount, error) {
	return s.repo.FindByCustomerID(ctx, customerID)
}

// Create 创建账号并关联客户
func (s *AccountService) Create(ctx context.Context, req *CreateAccountRequest) (*entity.CustomerAccount, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if err := checkPassword(req.Password); err != nil {
		return nil, err
	}

	customerID := uint(*req.CustomerID)
	exists, err := s.customers.Exists(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("check customer %d: %w", customerID, err)
	}
	if !exists {
		return nil, errors.Join(ErrCustomerNotFound, validation.New("customer_id", "Customer does not exist."))
	}

	if _, err := s.repo.FindByCustomerID(ctx, customerID); err == nil {
		return nil, ErrCustomerHasAccount
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("find account of customer %d: %w", customerID, err)
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	account := &entity.CustomerAccount{
		Username:     req.Username,
		PasswordHash: hash,
		CustomerID:   customerID,
	}
	if err := s.repo.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %w", s.duplicateCause(ctx, req.Username), err)
		}
		return nil, fmt.Errorf("create account: %w", err)
	}
	return account, nil
}

// Update 更新用户名和密码，客户关联不变
func (s *AccountService) Update(ctx context.Context, id uint, req *UpdateAccountRequest) (*entity.CustomerAccount, error) {
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if err := checkPassword(req.Password); err != nil {
		return nil, err
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	account.Username = req.Username
	account.PasswordHash = hash
	if err := s.repo.UpdateCredentials(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %w", ErrUsernameTaken, err)
		}
		return nil, fmt.Errorf("update account %d: %w", id, err)
	}
	return account, nil
}

// Delete 删除账号
func (s *AccountService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// duplicateCause 区分用户名重复和客户已有账号（并发创建时唯一索引兜底）
func (s *AccountService) duplicateCause(ctx context.Context, username string) error {
	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return ErrUsernameTaken
	}
	return ErrCustomerHasAccount
}

func checkPassword(password string) error {
	if len(password) > maxPasswordBytes {
		return validation.New("password", fmt.Sprintf("Longer than maximum length %d.", maxPasswordBytes))
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
