package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/MSTC-DAU/mstc/core/setting"
	"github.com/MSTC-DAU/mstc/core/user"
)

type userApi struct {
	svc      *user.Service
	settings *setting.Service
}

func registerUserAPI(g *echo.Group, jwt, admin echo.MiddlewareFunc, svc *user.Service, settings *setting.Service) {
	api := userApi{svc: svc, settings: settings}

	// public team directory
	g.GET("/team", api.teamPage)

	ug := g.Group("/users", jwt)
	ug.GET("/me", api.me)
	ug.GET("", api.query, admin)
	ug.PUT("/:id/role", api.updateRole, admin)
	ug.DELETE("/:id", api.destroy, admin)
}

// Handlers

func (api *userApi) teamPage(ctx echo.Context) error {
	rctx := ctx.Request().Context()
	page, err := api.svc.TeamPage(rctx)
	if err != nil {
		return errors.Wrap(err, "building team page")
	}
	page.PhotoURL = api.settings.Get(rctx, setting.KeyTeamPhotoURL)
	return ctx.JSON(http.StatusOK, page)
}

func (api *userApi) me(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.svc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *userApi) query(ctx echo.Context) error {
	users, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying users")
	}
	return ctx.JSON(http.StatusOK, users)
}

func (api *userApi) updateRole(ctx echo.Context) error {
	var data user.UpdateRoleRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateRoleRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	actor, err := getContextUser(ctx, api.svc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	usr, err := api.svc.UpdateRole(ctx.Request().Context(), actor, ctx.Param("id"), data.Role)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *userApi) destroy(ctx echo.Context) error {
	actor, err := getContextUser(ctx, api.svc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	if err := api.svc.Remove(ctx.Request().Context(), actor, ctx.Param("id")); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, actionResponse{Success: true, Message: "user deleted"})
}
