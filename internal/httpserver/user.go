package httpserver

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/cart_api/internal/logging"
	"github.com/Skotchmaster/cart_api/internal/service"
	"github.com/Skotchmaster/cart_api/internal/transport"
	"github.com/Skotchmaster/cart_api/internal/util"
)

const (
	msgInvalidUserID     = "Invalid user id"
	msgInvalidPagination = "page and size must be non-negative integers"
)

type UserHTTP struct {
	Svc *service.UserService
}

func (h *UserHTTP) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "list.users")

	var offset, limit int
	if c.QueryParam("page") != "" || c.QueryParam("size") != "" {
		page, err := queryInt(c, "page")
		if err != nil {
			return badRequest(c, l, "list_users", msgInvalidPagination, err)
		}
		size, err := queryInt(c, "size")
		if err != nil {
			return badRequest(c, l, "list_users", msgInvalidPagination, err)
		}
		offset, limit = util.Calculate(page, size)
	}

	users, err := h.Svc.ListUsers(ctx, offset, limit)
	if err != nil {
		return respondError(c, l, "list_users", err)
	}
	return c.JSON(http.StatusOK, transport.Success(users))
}

func (h *UserHTTP) GetUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get.user")

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, l, "get_user", msgInvalidUserID, err)
	}

	user, err := h.Svc.GetUser(ctx, id)
	if err != nil {
		return respondError(c, l, "get_user", err)
	}
	return c.JSON(http.StatusOK, transport.Success(user))
}

func (h *UserHTTP) CreateUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "create.user")

	var req transport.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, l, "create_user", msgInvalidBody, err)
	}

	user, err := h.Svc.CreateUser(ctx, req.Name, req.Email)
	if err != nil {
		return respondError(c, l, "create_user", err)
	}

	l.Info("user successfully created", "user_id", user.ID)
	return c.JSON(http.StatusCreated, transport.Success(user))
}

func (h *UserHTTP) UpdateUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "update.user")

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, l, "update_user", msgInvalidUserID, err)
	}

	var req transport.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, l, "update_user", msgInvalidBody, err)
	}

	user, err := h.Svc.UpdateUser(ctx, id, req.Name, req.Email)
	if err != nil {
		return respondError(c, l, "update_user", err)
	}

	l.Info("user successfully updated", "user_id", id)
	return c.JSON(http.StatusOK, transport.Success(user))
}

func (h *UserHTTP) DeleteUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "delete.user")

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, l, "delete_user", msgInvalidUserID, err)
	}

	changes, err := h.Svc.DeleteUser(ctx, id)
	if err != nil {
		return respondError(c, l, "delete_user", err)
	}

	l.Info("user successfully deleted", "user_id", id)
	return c.JSON(http.StatusOK, transport.DeleteResponse{Message: "deleted", Changes: changes})
}

// queryInt reads an optional non-negative integer; absent means 0.
func queryInt(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("%s must be non-negative", name)
	}
	return n, nil
}
