package httpserver

import (
	"context"
	_ "embed"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/cart_api/internal/logging"
	"github.com/Skotchmaster/cart_api/internal/middleware/auth"
)

//go:embed openapi.yaml
var openAPIDoc []byte

type Deps struct {
	DB          *gorm.DB
	CartHandler *CartHTTP
	UserHandler *UserHTTP
	JWTSecret   []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.HTTPErrorHandler = ErrorHandler

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "Ok"})
	})
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", d.ready)
	e.GET("/api/docs/openapi.yaml", func(c echo.Context) error {
		return c.Blob(http.StatusOK, "application/yaml", openAPIDoc)
	})

	users := e.Group("/api/users")
	users.GET("", d.UserHandler.ListUsers)
	users.POST("", d.UserHandler.CreateUser)
	users.GET("/:id", d.UserHandler.GetUser)
	users.PATCH("/:id", d.UserHandler.UpdateUser)
	users.DELETE("/:id", d.UserHandler.DeleteUser)

	identity := auth.NewIdentity(d.JWTSecret)

	cart := e.Group("/api/cart")
	cart.Use(identity.RequireUser)

	cart.GET("", withUser(d.CartHandler.GetCart))
	cart.DELETE("", withUser(d.CartHandler.ClearCart))
	cart.POST("/items", withUser(d.CartHandler.AddItem))
	cart.PUT("/items/:productId", withUser(d.CartHandler.UpdateItem))
	cart.DELETE("/items/:productId", withUser(d.CartHandler.RemoveItem))
}

func (d *Deps) ready(c echo.Context) error {
	if d.DB == nil {
		return c.NoContent(http.StatusServiceUnavailable)
	}

	sqlDB, err := d.DB.DB()
	if err != nil {
		return c.NoContent(http.StatusServiceUnavailable)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		logging.FromContext(ctx).Warn("readiness_probe_failed", "error", err)
		return c.NoContent(http.StatusServiceUnavailable)
	}
	return c.NoContent(http.StatusOK)
}
