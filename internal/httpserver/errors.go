package httpserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/cart_api/internal/logging"
	"github.com/Skotchmaster/cart_api/internal/service"
	"github.com/Skotchmaster/cart_api/internal/transport"
)

const (
	msgInternal         = "internal server error"
	msgEndpointNotFound = "Endpoint not found"
	msgInvalidBody      = "Invalid request body"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the mapped status; 5xx messages never leak to the client.
func respondError(c echo.Context, l *slog.Logger, op string, err error) error {
	status := statusFor(err)
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		l.Error(op+"_error", "status", status, "error", err)
		msg = msgInternal
	} else {
		l.Warn(op+"_error", "status", status, "error", err)
	}
	return c.JSON(status, transport.ErrorResponse{Error: msg})
}

func badRequest(c echo.Context, l *slog.Logger, op, msg string, err error) error {
	l.Warn(op+"_error", "status", http.StatusBadRequest, "error", err)
	return c.JSON(http.StatusBadRequest, transport.ErrorResponse{Error: msg})
}

func parseID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, errors.New(name + " must be positive")
	}
	return id, nil
}

// ErrorHandler renders framework errors as {"error": msg}.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	msg := msgInternal

	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		} else if status < http.StatusInternalServerError {
			msg = http.StatusText(status)
		}
		if errors.Is(err, echo.ErrNotFound) || errors.Is(err, echo.ErrMethodNotAllowed) {
			status = http.StatusNotFound
			msg = msgEndpointNotFound
		}
	}

	if status >= http.StatusInternalServerError {
		logging.FromContext(c.Request().Context()).Error("unhandled_error", "status", status, "error", err)
		msg = msgInternal
	}

	var werr error
	if c.Request().Method == http.MethodHead {
		werr = c.NoContent(status)
	} else {
		werr = c.JSON(status, transport.ErrorResponse{Error: msg})
	}
	if werr != nil {
		logging.FromContext(c.Request().Context()).Error("write_error_response", "error", werr)
	}
}
