package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nikolayk812/shopping/internal/metrics"
	"go.uber.org/zap"
)

// HealthCheck reports whether dependencies such as the database are reachable.
type HealthCheck func(ctx context.Context) error

func NewRouter(h *Handler, tokens TokenParser, health HealthCheck, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(
		RequestID(),
		RequestLogger(logger),
		Recovery(logger),
		metrics.Middleware(),
	)

	router.GET("/healthz", func(c *gin.Context) {
		if health != nil {
			if err := health(c.Request.Context()); err != nil {
				logger.Warn("health check failed", zap.Error(err))
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	router.POST("/users", h.Signup)
	router.POST("/login", h.Login)
	router.GET("/products", h.ListProducts)

	authorized := router.Group("/", Authenticate(tokens, logger))
	{
		authorized.POST("/cart-items", h.AddCartItem)
		authorized.GET("/cart-items", h.ListCartItems)
		authorized.PATCH("/cart-items/:id", h.UpdateCartItem)
		authorized.DELETE("/cart-items/:id", h.DeleteCartItem)

		authorized.POST("/orders", h.PlaceOrder)
		authorized.GET("/orders", h.ListOrders)
		authorized.GET("/orders/:id", h.GetOrder)
	}

	return router
}
