// Package metrics 商城服务的 Prometheus 指标
package metrics

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics HTTP 与订单指标
type Metrics struct {
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	ordersCreated       prometheus.Counter
	orderProductsLinked prometheus.Counter
}

// New 在默认 Registerer 上注册指标
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer 在指定 Registerer 上注册指标，重复注册时复用已有采集器
func NewWithRegisterer(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &Metrics{
		httpRequests: register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shop_http_requests_total",
			Help: "Total number of HTTP requests by method, route and status",
		}, []string{"method", "route", "status"})),
		httpDuration: register(registerer, prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "shop_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"})),
		ordersCreated: register(registerer, prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shop_orders_created_total",
			Help: "Total number of orders created",
		})),
		orderProductsLinked: register(registerer, prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shop_order_products_linked_total",
			Help: "Total number of order-product links written",
		})),
	}
}

func register[T prometheus.Collector](registerer prometheus.Registerer, collector T) T {
	if err := registerer.Register(collector); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			existing, ok := already.ExistingCollector.(T)
			if !ok {
				panic(fmt.Sprintf("collector already registered with unexpected type %T", already.ExistingCollector))
			}
			return existing
		}
		panic(fmt.Sprintf("register collector: %v", err))
	}
	return collector
}

// ObserveRequest 记录一次 HTTP 请求
func (m *Metrics) ObserveRequest(method, route string, status int, latency time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(latency.Seconds())
}

// OrderCreated 记录一个新订单及其关联商品数
func (m *Metrics) OrderCreated(linkedProducts int) {
	if m == nil {
		return
	}
	m.ordersCreated.Inc()
	m.orderProductsLinked.Add(float64(linkedProducts))
}
