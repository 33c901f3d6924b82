package httpapi

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// NewRouter wires the middleware chain and routes. /internal/coupon-service
// is the in-process deployment of the coupon service the order path calls
// over HTTP; in a split deployment it moves behind its own listener.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(h.serviceName))
	r.Use(loggingMiddleware(h.serviceName))
	r.Use(metricsMiddleware())
	r.Use(identityMiddleware())

	r.GET("/health", h.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/products", h.listProducts)
	r.POST("/orders", h.createOrder)
	r.GET("/orders", h.listOrders)
	r.GET("/orders/:order_id", h.getOrder)
	r.POST("/coupons/validate", h.validateCoupon)
	r.POST("/internal/coupon-service", h.couponService)

	return r
}
