package handler

import "github.com/gin-gonic/gin"

// RegisterRoutes 注册商城路由，挂载在根路径
func RegisterRoutes(r gin.IRouter, h *Handlers) {
	customers := r.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
		customers.GET("/:id/customeraccount", h.Account.GetByCustomer)
		customers.GET("/:id/orders", h.Order.ListByCustomer)
	}

	accounts := r.Group("/customeraccount")
	{
		accounts.POST("", h.Account.Create)
		accounts.PUT("/:id", h.Account.Update)
		accounts.DELETE("/:id", h.Account.Delete)
	}

	products := r.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
	}

	orders := r.Group("/orders")
	{
		orders.POST("", h.Order.Create)
		orders.GET("/:id", h.Order.GetTracking)
		orders.GET("/:id/products", h.Order.GetDetail)
	}
}
