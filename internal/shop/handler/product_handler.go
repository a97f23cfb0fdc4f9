package handler

import (
	"net/http"

	"github.com/bitfantasy/shop/internal/shop/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const msgProductNotFound = "Product not found"

// ProductHandler 商品处理器
type ProductHandler struct {
	svc    *service.ProductService
	logger *zap.Logger
}

func NewProductHandler(svc *service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{svc: svc, logger: logger}
}

// List 商品列表
// GET /products
func (h *ProductHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, msgProductNotFound)
		return
	}
	Success(c, service.NewProductResponses(items))
}

// Get 商品详情
// GET /products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := ParseID(c, "id")
	if !ok {
		return
	}
	product, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err, msgProductNotFound)
		return
	}
	Success(c, service.NewProductResponse(product))
}

// Create 创建商品
// POST /products
func (h *ProductHandler) Create(c *gin.Context) {
	var req service.ProductRequest
	if !bindJSON(c, &req) {
		return
	}
	product, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err, msgProductNotFound)
		return
	}
	Created(c, product.ID, "Product added successfully")
}

// Update 更新商品，成功返回 201
// PUT /products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := ParseID(c, "id")
	if !ok {
		return
	}
	if _, err := h.svc.Get(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err, msgProductNotFound)
		return
	}
	var req service.ProductRequest
	if !bindJSON(c, &req) {
		return
	}
	if _, err := h.svc.Update(c.Request.Context(), id, &req); err != nil {
		respondError(c, h.logger, err, msgProductNotFound)
		return
	}
	Message(c, http.StatusCreated, "Product updated successfully")
}

// Delete 删除商品，成功返回 201
// DELETE /products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err, msgProductNotFound)
		return
	}
	Message(c, http.StatusCreated, "Product removed successfully")
}
