package handler

import (
	"net/http"

	"github.com/bitfantasy/shop/internal/shop/service"
	"github.com/bitfantasy/shop/internal/shop/validation"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const msgOrderNotFound = "Order not found"

// OrderHandler 订单处理器
type OrderHandler struct {
	svc    *service.OrderService
	logger *zap.Logger
}

func NewOrderHandler(svc *service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{svc: svc, logger: logger}
}

// Create 下单
// POST /orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req service.CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		if verr, ok := validation.As(err); ok {
			BadRequest(c, verr)
			return
		}
		h.logger.Error("order processing failed",
			zap.String("request_id", c.GetString("request_id")),
			zap.Error(err))
		InternalError(c, CodeOrderFailed, msgOrderFailed)
		return
	}
	Created(c, result.Order.ID, "Order processed successfully")
}

// GetTracking 订单日期
// GET /orders/:id
func (h *OrderHandler) GetTracking(c *gin.Context) {
	id, ok := ParseID(c, "id")
	if !ok {
		return
	}
	order, err := h.svc.GetTracking(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err, msgOrderNotFound)
		return
	}
	Success(c, service.NewOrderTrackingResponse(order))
}

// GetDetail 订单详情（含商品）
// GET /orders/:id/products
func (h *OrderHandler) GetDetail(c *gin.Context) {
	id, ok := ParseID(c, "id")
	if !ok {
		return
	}
	order, err := h.svc.GetDetail(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err, msgOrderNotFound)
		return
	}
	Success(c, service.NewOrderDetailResponse(order))
}

// ListByCustomer 客户订单历史，没有订单时返回提示信息
// GET /customers/:id/orders
func (h *OrderHandler) ListByCustomer(c *gin.Context) {
	customerID, ok := ParseID(c, "id")
	if !ok {
		return
	}
	orders, err := h.svc.ListByCustomer(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, h.logger, err, msgCustomerNotFound)
		return
	}
	if len(orders) == 0 {
		Message(c, http.StatusOK, "No orders found for that customer")
		return
	}
	Success(c, service.NewOrderResponses(orders))
}
