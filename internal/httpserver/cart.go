package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/cart_api/internal/logging"
	"github.com/Skotchmaster/cart_api/internal/middleware/auth"
	"github.com/Skotchmaster/cart_api/internal/service"
	"github.com/Skotchmaster/cart_api/internal/transport"
)

const msgInvalidProductID = "Invalid product id"

type CartHTTP struct {
	Svc *service.CartService
}

// userHandler is a cart handler that runs with a resolved caller id.
type userHandler func(c echo.Context, userID int64) error

// withUser hands the id set by auth.Identity to h.
func withUser(h userHandler) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, ok := auth.UserID(c)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, auth.MsgAuthRequired)
		}
		return h(c, userID)
	}
}

func (h *CartHTTP) GetCart(c echo.Context, userID int64) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get.cart")

	cart, err := h.Svc.GetCart(ctx, userID)
	if err != nil {
		return respondError(c, l, "get_cart", err)
	}

	l.Info("cart successfully got", "cart_id", cart.CartID, "item_count", cart.ItemCount)
	return c.JSON(http.StatusOK, transport.Success(cart))
}

func (h *CartHTTP) AddItem(c echo.Context, userID int64) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "add.item")

	var req transport.AddItemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, l, "add_item", msgInvalidBody, err)
	}

	quantity := int64(1)
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	cart, err := h.Svc.AddItem(ctx, userID, req.ProductID, quantity)
	if err != nil {
		return respondError(c, l, "add_item", err)
	}

	l.Info("item added successfully to cart", "product_id", req.ProductID, "quantity", quantity)
	return c.JSON(http.StatusOK, transport.Success(cart))
}

func (h *CartHTTP) UpdateItem(c echo.Context, userID int64) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "update.item")

	productID, err := parseID(c, "productId")
	if err != nil {
		return badRequest(c, l, "update_item", msgInvalidProductID, err)
	}

	var req transport.UpdateItemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, l, "update_item", msgInvalidBody, err)
	}

	cart, err := h.Svc.UpdateItem(ctx, userID, productID, req.Quantity)
	if err != nil {
		return respondError(c, l, "update_item", err)
	}

	l.Info("cart item successfully updated", "product_id", productID)
	return c.JSON(http.StatusOK, transport.Success(cart))
}

func (h *CartHTTP) RemoveItem(c echo.Context, userID int64) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "remove.item")

	productID, err := parseID(c, "productId")
	if err != nil {
		return badRequest(c, l, "remove_item", msgInvalidProductID, err)
	}

	cart, err := h.Svc.RemoveItem(ctx, userID, productID)
	if err != nil {
		return respondError(c, l, "remove_item", err)
	}

	l.Info("cart item successfully removed", "product_id", productID)
	return c.JSON(http.StatusOK, transport.Success(cart))
}

func (h *CartHTTP) ClearCart(c echo.Context, userID int64) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "clear.cart")

	if err := h.Svc.ClearCart(ctx, userID); err != nil {
		return respondError(c, l, "clear_cart", err)
	}

	l.Info("cart successfully cleared")
	return c.NoContent(http.StatusNoContent)
}
