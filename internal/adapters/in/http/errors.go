package http

import (
	"errors"
	"net/http"
	"net/url"

	"hawkerflow/internal/core/application/usecases/commands"
	"hawkerflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// fail writes the error response for err. Unclassified errors are logged and
// answered with a generic 500 so internals never reach the client.
func (s *Server) fail(ctx echo.Context, err error) error {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err,
		)
		return ctx.JSON(status, Error{Code: status, Message: "Internal server error"})
	}

	return ctx.JSON(status, Error{Code: status, Message: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, commands.ErrOrderNotFound),
		errors.Is(err, commands.ErrDishNotFound),
		errors.Is(err, commands.ErrStallNotFound),
		errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, commands.ErrInvalidOrder),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// pathParam returns the path parameter decoded exactly once. Echo routes on
// URL.RawPath when the request has one, leaving params escaped; otherwise
// params come from the already decoded URL.Path.
func pathParam(ctx echo.Context, name string) (string, error) {
	value := ctx.Param(name)
	if ctx.Request().URL.RawPath == "" {
		return value, nil
	}

	value, err := url.PathUnescape(value)
	if err != nil {
		return "", errs.NewValueIsInvalidError(name)
	}
	return value, nil
}

func stallParams(ctx echo.Context) (string, string, error) {
	hawkerCenter, err := pathParam(ctx, "hawkerCenter")
	if err != nil {
		return "", "", err
	}
	stallName, err := pathParam(ctx, "stall")
	if err != nil {
		return "", "", err
	}
	return hawkerCenter, stallName, nil
}
