package handler

import (
	"net/http"

	"github.com/bitfantasy/shop/internal/shop/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const msgAccountNotFound = "Customer account not found"

// AccountHandler 客户账号处理器
type AccountHandler struct {
	svc    *service.AccountService
	logger *zap.Logger
}

func NewAccountHandler(svc *service.AccountService, logger *zap.Logger) *AccountHandler {
	return &AccountHandler{svc: svc, logger: logger}
}

// GetByCustomer 客户账号及客户信息
// GET /customers/:id/customeraccount
func (h *AccountHandler) GetByCustomer(c *gin.Context) {
	customerID, ok := ParseID(c, "id")
	if !ok {
		return
	}
	account, err := h.svc.GetByCustomer(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, h.logger, err, msgAccountNotFound)
		return
	}
	Success(c, service.NewAccountResponse(account))
}

// Create 创建账号
// POST /customeraccount
func (h *AccountHandler) Create(c *gin.Context) {
	var req service.CreateAccountRequest
	if !bindJSON(c, &req) {
		return
	}
	account, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err, msgAccountNotFound)
		return
	}
	Created(c, account.ID, "New customer account added successfully")
}

// Update 更新用户名和密码
// PUT /customeraccount/:id
func (h *AccountHandler) Update(c *gin.Context) {
	id, ok := ParseID(c, "id")
	if !ok {
		return
	}
	if _, err := h.svc.Get(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err, msgAccountNotFound)
		return
	}
	var req service.UpdateAccountRequest
	if !bindJSON(c, &req) {
		return
	}
	if _, err := h.svc.Update(c.Request.Context(), id, &req); err != nil {
		respondError(c, h.logger, err, msgAccountNotFound)
		return
	}
	Message(c, http.StatusCreated, "Customer account updated successfully")
}

// Delete 删除账号
// DELETE /customeraccount/:id
func (h *AccountHandler) Delete(c *gin.Context) {
	id, ok := ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err, msgAccountNotFound)
		return
	}
	Message(c, http.StatusOK, "Customer account removed successfully")
}
