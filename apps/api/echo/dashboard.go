package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/MSTC-DAU/mstc/core/dashboard"
	"github.com/MSTC-DAU/mstc/core/user"
)

type dashboardApi struct {
	svc     *dashboard.Service
	userSvc *user.Service
}

func registerDashboardAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *dashboard.Service, userSvc *user.Service) {
	api := dashboardApi{svc: svc, userSvc: userSvc}
	g.GET("/dashboard", api.overview, jwt)
}

func (api *dashboardApi) overview(ctx echo.Context) error {
	actor, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	return ctx.JSON(http.StatusOK, api.svc.Overview(ctx.Request().Context(), actor))
}
