package service

import (
	"time"

	"github.com/bitfantasy/shop/internal/shop/entity"
	"github.com/bitfantasy/shop/internal/shop/shipment"
	"gorm.io/datatypes"
)

// CustomerResponse 客户输出字段
type CustomerResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func NewCustomerResponse(c *entity.Customer) CustomerResponse {
	return CustomerResponse{ID: c.ID, Name: c.Name, Email: c.Email, Phone: c.Phone}
}

func NewCustomerResponses(items []entity.Customer) []CustomerResponse {
	out := make([]CustomerResponse, 0, len(items))
	for i := range items {
		out = append(out, NewCustomerResponse(&items[i]))
	}
	return out
}

// ProductResponse 商品输出字段
type ProductResponse struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func NewProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{ID: p.ID, Name: p.Name, Price: p.Price}
}

func NewProductResponses(items []entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(items))
	for i := range items {
		out = append(out, NewProductResponse(&items[i]))
	}
	return out
}

// AccountResponse 账号+客户信息，不包含密码
type AccountResponse struct {
	AccountID     uint   `json:"account_id"`
	Username      string `json:"username"`
	CustomerID    uint   `json:"customer_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
}

func NewAccountResponse(a *entity.CustomerAccount) AccountResponse {
	resp := AccountResponse{
		AccountID:  a.ID,
		Username:   a.Username,
		CustomerID: a.CustomerID,
	}
	if a.Customer != nil {
		resp.CustomerName = a.Customer.Name
		resp.CustomerEmail = a.Customer.Email
		resp.CustomerPhone = a.Customer.Phone
	}
	return resp
}

// OrderTrackingResponse 订单跟踪日期
type OrderTrackingResponse struct {
	OrderDate    string `json:"order_date"`
	ShipDate     string `json:"ship_date"`
	DeliveryDate string `json:"delivery_date"`
}

func NewOrderTrackingResponse(o *entity.Order) OrderTrackingResponse {
	return OrderTrackingResponse{
		OrderDate:    formatDate(o.OrderDate),
		ShipDate:     formatDate(o.ShipDate),
		DeliveryDate: formatDate(o.DeliveryDate),
	}
}

// OrderProductResponse 订单详情中的商品
type OrderProductResponse struct {
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"`
}

// OrderDetailResponse 订单详情
type OrderDetailResponse struct {
	OrderID      uint                   `json:"order_id"`
	OrderDate    string                 `json:"order_date"`
	ShipDate     string                 `json:"ship_date"`
	DeliveryDate string                 `json:"delivery_date"`
	CustomerID   uint                   `json:"customer_id"`
	Products     []OrderProductResponse `json:"products"`
}

func NewOrderDetailResponse(o *entity.Order) OrderDetailResponse {
	products := make([]OrderProductResponse, 0, len(o.Products))
	for _, p := range o.Products {
		products = append(products, OrderProductResponse{ProductID: p.ID, ProductName: p.Name, Price: p.Price})
	}
	return OrderDetailResponse{
		OrderID:      o.ID,
		OrderDate:    formatDate(o.OrderDate),
		ShipDate:     formatDate(o.ShipDate),
		DeliveryDate: formatDate(o.DeliveryDate),
		CustomerID:   o.CustomerID,
		Products:     products,
	}
}

// OrderResponse 订单历史条目
type OrderResponse struct {
	ID           uint              `json:"id"`
	OrderDate    string            `json:"order_date"`
	ShipDate     string            `json:"ship_date"`
	DeliveryDate string            `json:"delivery_date"`
	CustomerID   uint              `json:"customer_id"`
	Products     []ProductResponse `json:"products"`
}

func NewOrderResponses(orders []entity.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		o := &orders[i]
		out = append(out, OrderResponse{
			ID:           o.ID,
			OrderDate:    formatDate(o.OrderDate),
			ShipDate:     formatDate(o.ShipDate),
			DeliveryDate: formatDate(o.DeliveryDate),
			CustomerID:   o.CustomerID,
			Products:     NewProductResponses(o.Products),
		})
	}
	return out
}

func formatDate(d datatypes.Date) string {
	return shipment.FormatDate(time.Time(d))
}
