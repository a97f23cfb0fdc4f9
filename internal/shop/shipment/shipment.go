// Package shipment 订单发货/送达日期计算
package shipment

import "time"

// DateLayout 订单日期格式 YYYY-MM-DD
const DateLayout = "2006-01-02"

const (
	DefaultShipmentDays = 2
	DefaultDeliveryDays = 5
)

// ShipDate 发货日期 = 下单日期 + shipmentDays 天
// 负数天数原样参与计算，不做校验
func ShipDate(orderDate time.Time, shipmentDays int) time.Time {
	return orderDate.AddDate(0, 0, shipmentDays)
}

// DeliveryDate 送达日期 = 下单日期 + deliveryDays 天
func DeliveryDate(orderDate time.Time, deliveryDays int) time.Time {
	return orderDate.AddDate(0, 0, deliveryDays)
}

// Schedule 发货/送达天数配置
type Schedule struct {
	ShipmentDays int
	DeliveryDays int
}

// DefaultSchedule 默认 2 天发货、5 天送达
func DefaultSchedule() Schedule {
	return Schedule{ShipmentDays: DefaultShipmentDays, DeliveryDays: DefaultDeliveryDays}
}

// Apply 计算发货和送达日期。送达早于发货的组合同样放行。
func (s Schedule) Apply(orderDate time.Time) (ship, delivery time.Time) {
	return ShipDate(orderDate, s.ShipmentDays), DeliveryDate(orderDate, s.DeliveryDays)
}

// ParseDate 解析 YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// FormatDate 格式化为 YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
