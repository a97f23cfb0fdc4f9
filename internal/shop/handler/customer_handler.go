package handler

import (
	"net/http"

	"github.com/bitfantasy/shop/internal/shop/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const msgCustomerNotFound = "Customer not found"

// CustomerHandler 客户处理器
type CustomerHandler struct {
	svc    *service.CustomerService
	logger *zap.Logger
}

func NewCustomerHandler(svc *service.CustomerService, logger *zap.Logger) *CustomerHandler {
	return &CustomerHandler{svc: svc, logger: logger}
}

// List 客户列表
// GET /customers
func (h *CustomerHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, msgCustomerNotFound)
		return
	}
	Success(c, service.NewCustomerResponses(items))
}

// Get 客户详情
// GET /customers/:id
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := ParseID(c, "id")
	if !ok {
		return
	}
	customer, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err, msgCustomerNotFound)
		return
	}
	Success(c, service.NewCustomerResponse(customer))
}

// Create 创建客户
// POST /customers
func (h *CustomerHandler) Create(c *gin.Context) {
	var req service.CustomerRequest
	if !bindJSON(c, &req) {
		return
	}
	customer, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err, msgCustomerNotFound)
		return
	}
	Created(c, customer.ID, "New customer added successfully")
}

// Update 更新客户
// PUT /customers/:id
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := ParseID(c, "id")
	if !ok {
		return
	}
	if _, err := h.svc.Get(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err, msgCustomerNotFound)
		return
	}
	var req service.CustomerRequest
	if !bindJSON(c, &req) {
		return
	}
	if _, err := h.svc.Update(c.Request.Context(), id, &req); err != nil {
		respondError(c, h.logger, err, msgCustomerNotFound)
		return
	}
	Message(c, http.StatusOK, "Customer details updated successfully")
}

// Delete 删除客户
// DELETE /customers/:id
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err, msgCustomerNotFound)
		return
	}
	Message(c, http.StatusOK, "Customer removed successfully")
}
