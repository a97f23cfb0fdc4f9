package entity

import (
	"time"

	"gorm.io/datatypes"
)

// Order 订单
// ShipDate/DeliveryDate 在创建时由下单日期推算，之后不再修改
type Order struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	OrderDate    datatypes.Date `json:"order_date" gorm:"type:date;not null"`
	ShipDate     datatypes.Date `json:"ship_date" gorm:"type:date"`
	DeliveryDate datatypes.Date `json:"delivery_date" gorm:"type:date"`
	CustomerID   uint           `json:"customer_id" gorm:"not null;index"`
	CreatedAt    time.Time      `json:"created_at"`

	Customer *Customer `json:"customer,omitempty" gorm:"foreignKey:CustomerID;constraint:OnDelete:RESTRICT"`
	Products []Product `json:"products,omitempty" gorm:"many2many:order_products"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderProduct 订单-商品关联表，复合主键
type OrderProduct struct {
	OrderID   uint `json:"order_id" gorm:"primaryKey"`
	ProductID uint `json:"product_id" gorm:"primaryKey"`

	Order   *Order   `json:"-" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Product *Product `json:"-" gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
}

func (OrderProduct) TableName() string {
	return "order_products"
}
