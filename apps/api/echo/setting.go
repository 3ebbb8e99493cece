package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/MSTC-DAU/mstc/core/setting"
	"github.com/MSTC-DAU/mstc/core/user"
)

type settingApi struct {
	svc     *setting.Service
	userSvc *user.Service
}

func registerSettingAPI(g *echo.Group, jwt, admin echo.MiddlewareFunc, svc *setting.Service, userSvc *user.Service) {
	api := settingApi{svc: svc, userSvc: userSvc}

	g.GET("/settings/:key", api.retrieve)

	ag := g.Group("/settings", jwt, admin)
	ag.GET("", api.query)
	ag.PUT("/:key", api.update)
}

// Handlers

// retrieve is public; missing keys degrade to an empty value.
func (api *settingApi) retrieve(ctx echo.Context) error {
	key := ctx.Param("key")
	value := api.svc.Get(ctx.Request().Context(), key)
	return ctx.JSON(http.StatusOK, setting.SystemSetting{Key: key, Value: value})
}

func (api *settingApi) query(ctx echo.Context) error {
	actor, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	settings, err := api.svc.QueryAll(ctx.Request().Context(), actor)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, settings)
}

type updateSettingRequest struct {
	Value       string `json:"value"`
	Description string `json:"description"`
}

func (api *settingApi) update(ctx echo.Context) error {
	var data updateSettingRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to updateSettingRequest")
	}

	actor, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	s, err := api.svc.Update(ctx.Request().Context(), actor, ctx.Param("key"), data.Value, data.Description)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, s)
}
