package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bitfantasy/shop/internal/shop/entity"
	"github.com/bitfantasy/shop/internal/shop/repository"
	"github.com/bitfantasy/shop/internal/shop/validation"
)

// ProductService 商品服务
type ProductService struct {
	repo *repository.ProductRepository
}

func NewProductService(repo *repository.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// ProductRequest 创建/更新商品请求
type ProductRequest struct {
	Name  string         `json:"name" validate:"required,min=1,max=255"`
	Price *FlexibleFloat `json:"price" validate:"required,gte=0"`
}

// List 获取全部商品
func (s *ProductService) List(ctx context.Context) ([]entity.Product, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return items, nil
}

// Get 获取商品
func (s *ProductService) Get(ctx context.Context, id uint) (*entity.Product, error) {
	return s.repo.FindByID(ctx, id)
}

// Create 创建商品
func (s *ProductService) Create(ctx context.Context, req *ProductRequest) (*entity.Product, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	product := &entity.Product{Name: req.Name, Price: float64(*req.Price)}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

// Update 更新商品名称和价格
func (s *ProductService) Update(ctx context.Context, id uint, req *ProductRequest) (*entity.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	product.Name = req.Name
	product.Price = float64(*req.Price)
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product %d: %w", id, err)
	}
	return product, nil
}

// Delete 删除商品，被订单引用时拒绝
func (s *ProductService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	links, err := s.repo.CountOrderLinks(ctx, id)
	if err != nil {
		return fmt.Errorf("count product links: %w", err)
	}
	if links > 0 {
		return ErrProductInUse
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			return ErrProductInUse
		}
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	return nil
}
