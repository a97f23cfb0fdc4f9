package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/bitfantasy/shop/internal/shop/repository"
	"github.com/bitfantasy/shop/internal/shop/service"
	"github.com/bitfantasy/shop/internal/shop/validation"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers 商城处理器集合
type Handlers struct {
	Customer *CustomerHandler
	Account  *AccountHandler
	Product  *ProductHandler
	Order    *OrderHandler
}

// NewHandlers 创建商城处理器集合
func NewHandlers(svc *service.Services, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		Customer: NewCustomerHandler(svc.Customer, logger),
		Account:  NewAccountHandler(svc.Account, logger),
		Product:  NewProductHandler(svc.Product, logger),
		Order:    NewOrderHandler(svc.Order, logger),
	}
}

// === 响应辅助函数 ===

const (
	CodeInternal      = 50000
	CodeOrderFailed   = 50001
	msgInternal       = "internal server error"
	msgOrderFailed    = "order processing failed"
	msgRouteNotFound  = "Resource not found"
	msgUsernameTaken  = "Username already exists"
	msgAccountExists  = "Customer already has an account"
	msgCustomerInUse  = "Customer still has orders or an account"
	msgProductInUse   = "Product is referenced by existing orders"
	msgDuplicateValue = "Duplicate value"
)

// MessageResponse 操作结果，创建时带上新记录ID
type MessageResponse struct {
	Message string `json:"message"`
	ID      uint   `json:"id,omitempty"`
}

// ErrorResponse 500 响应，不暴露内部错误
type ErrorResponse struct {
	Error string `json:"Error"`
	Code  int    `json:"code"`
}

func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func Message(c *gin.Context, status int, message string) {
	c.JSON(status, MessageResponse{Message: message})
}

func Created(c *gin.Context, id uint, message string) {
	c.JSON(http.StatusCreated, MessageResponse{Message: message, ID: id})
}

func BadRequest(c *gin.Context, verr *validation.ValidationError) {
	c.JSON(http.StatusBadRequest, verr.Fields)
}

func NotFound(c *gin.Context, message string) {
	Message(c, http.StatusNotFound, message)
}

func Conflict(c *gin.Context, message string) {
	Message(c, http.StatusConflict, message)
}

func InternalError(c *gin.Context, code int, message string) {
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: message, Code: code})
}

// ParseID 解析路径中的正整数ID，失败时直接返回 404
func ParseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		NotFound(c, msgRouteNotFound)
		return 0, false
	}
	return uint(id), true
}

// bindJSON 解码请求体，失败时返回 400
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		BadRequest(c, validation.FromBindError(err))
		return false
	}
	return true
}

// respondError 把服务层错误映射为HTTP响应
func respondError(c *gin.Context, logger *zap.Logger, err error, notFound string) {
	if verr, ok := validation.As(err); ok {
		BadRequest(c, verr)
		return
	}

	switch {
	case errors.Is(err, repository.ErrNotFound):
		NotFound(c, notFound)
	case errors.Is(err, service.ErrUsernameTaken):
		Conflict(c, msgUsernameTaken)
	case errors.Is(err, service.ErrCustomerHasAccount):
		Conflict(c, msgAccountExists)
	case errors.Is(err, service.ErrCustomerInUse):
		Conflict(c, msgCustomerInUse)
	case errors.Is(err, service.ErrProductInUse):
		Conflict(c, msgProductInUse)
	case errors.Is(err, repository.ErrDuplicate):
		Conflict(c, msgDuplicateValue)
	default:
		logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString("request_id")),
			zap.Error(err))
		InternalError(c, CodeInternal, msgInternal)
	}
}
