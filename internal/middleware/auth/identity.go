package auth

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/cart_api/internal/logging"
	"github.com/Skotchmaster/cart_api/internal/tokens"
)

const (
	HeaderUserID = "x-user-id"
	ContextKey   = "user_id"

	MsgAuthRequired = "Authentication required. Please provide x-user-id header."
	MsgInvalidToken = "Invalid or expired token"
)

type Identity struct {
	// JWTSecret enables bearer tokens when non-empty.
	JWTSecret []byte
}

func NewIdentity(secret []byte) *Identity {
	return &Identity{JWTSecret: secret}
}

// RequireUser resolves the caller's user id and stores it under ContextKey.
func (m *Identity) RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if raw := c.Request().Header.Get(HeaderUserID); raw != "" {
			id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
			if err != nil || id <= 0 {
				return echo.NewHTTPError(http.StatusUnauthorized, MsgAuthRequired)
			}
			return m.serve(c, next, id)
		}

		if len(m.JWTSecret) > 0 {
			if bearer, ok := bearerToken(c.Request()); ok {
				claims, err := tokens.AccessClaimsFromToken(bearer, m.JWTSecret)
				if err != nil {
					logging.FromContext(c.Request().Context()).Warn("bearer_token_rejected", "error", err)
					return echo.NewHTTPError(http.StatusUnauthorized, MsgInvalidToken)
				}
				id, err := claims.UserID()
				if err != nil {
					return echo.NewHTTPError(http.StatusUnauthorized, MsgInvalidToken)
				}
				return m.serve(c, next, id)
			}
		}

		return echo.NewHTTPError(http.StatusUnauthorized, MsgAuthRequired)
	}
}

func (m *Identity) serve(c echo.Context, next echo.HandlerFunc, id int64) error {
	c.Set(ContextKey, id)
	l := logging.FromContext(c.Request().Context()).With("user_id", id)
	c.SetRequest(c.Request().WithContext(logging.IntoContext(c.Request().Context(), l)))
	return next(c)
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get(echo.HeaderAuthorization)
	const prefix = "Bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(h[len(prefix):]), true
}

// UserID returns the id stored by RequireUser.
func UserID(c echo.Context) (int64, bool) {
	id, ok := c.Get(ContextKey).(int64)
	return id, ok && id > 0
}
