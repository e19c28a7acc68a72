package http

import (
	"log/slog"
	"time"

	"github.com/MUHMMADSALEH/E-Commeerce-app/internal/adapter/http/middleware"
	"github.com/MUHMMADSALEH/E-Commeerce-app/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Accounts *AccountHandler
	Catalog  *CatalogHandler
	Orders   *OrderHandler
}

func NewRouter(h Handlers, authz *middleware.Authz, l *slog.Logger, requestTimeout time.Duration) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Metrics())
	if l == nil {
		l = logging.New("http")
	}
	r.Use(middleware.Logging(l), middleware.Timeout(requestTimeout))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	// Prometheus endpoint (scraped by Prometheus)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := authz.Require()
	admin := authz.RequireAdmin()

	accounts := r.Group("/accounts")
	{
		accounts.POST("/register", h.Accounts.Register)
		accounts.POST("/login", h.Accounts.Login)
		accounts.POST("/logout", h.Accounts.Logout)
		accounts.GET("/me", auth, h.Accounts.Me)
		accounts.GET("", auth, admin, h.Accounts.List)
		accounts.GET("/:id", auth, admin, h.Accounts.Get)
		accounts.PUT("/:id/role", auth, admin, h.Accounts.UpdateRole)
		accounts.DELETE("/:id", auth, admin, h.Accounts.Delete)
	}

	catalog := r.Group("/catalog")
	{
		catalog.GET("", h.Catalog.List)
		catalog.GET("/categories", h.Catalog.Categories)
		catalog.GET("/:id", h.Catalog.Get)
		catalog.POST("", auth, admin, h.Catalog.Create)
		catalog.PUT("/:id", auth, admin, h.Catalog.Update)
		catalog.DELETE("/:id", auth, admin, h.Catalog.Delete)
	}

	orders := r.Group("/orders", auth)
	{
		orders.POST("", h.Orders.Create)
		orders.GET("", admin, h.Orders.ListAll)
		orders.GET("/my-orders", h.Orders.ListMine)
		orders.GET("/:id", h.Orders.Get)
		orders.GET("/:id/status", h.Orders.Status)
		orders.PUT("/:id/status", admin, h.Orders.UpdateStatus)
	}

	return r
}
