package echoapi

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/MSTC-DAU/mstc/core/user"
	"github.com/MSTC-DAU/mstc/services/metrics"
)

// adminMiddleware refuses requests unless the acting user currently holds an
// admin role. The role is read fresh from storage, never from the token.
func adminMiddleware(svc *user.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			usr, err := getContextUser(ctx, svc)
			if err != nil {
				return errors.Wrap(err, "getting context user")
			}
			if !usr.IsAdmin() {
				return errHttpForbidden
			}
			return next(ctx)
		}
	}
}

func metricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			err := next(ctx)
			metrics.HTTPRequests.WithLabelValues(
				ctx.Request().Method,
				strconv.Itoa(ctx.Response().Status),
			).Inc()
			return err
		}
	}
}
