package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/MSTC-DAU/mstc/core/roadmap"
	"github.com/MSTC-DAU/mstc/core/user"
	"github.com/MSTC-DAU/mstc/services/metrics"
)

type roadmapApi struct {
	svc     *roadmap.Service
	userSvc *user.Service
}

func registerRoadmapAPI(g *echo.Group, jwt, admin echo.MiddlewareFunc, svc *roadmap.Service, userSvc *user.Service) {
	api := roadmapApi{svc: svc, userSvc: userSvc}

	rg := g.Group("/roadmaps")
	rg.GET("", api.query)
	rg.POST("", api.create, jwt, admin)

	ag := g.Group("", jwt)
	ag.GET("/events/:slug/roadmap", api.resolve)
	ag.POST("/events/:id/checkpoints", api.submitCheckpoint)
	ag.PUT("/checkpoints/:id/review", api.reviewCheckpoint, admin)
}

// Handlers

func (api *roadmapApi) query(ctx echo.Context) error {
	roadmaps, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying roadmaps")
	}
	return ctx.JSON(http.StatusOK, roadmaps)
}

func (api *roadmapApi) create(ctx echo.Context) error {
	var data roadmap.NewRoadmap
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewRoadmap")
	}

	actor, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	rm, err := api.svc.Create(ctx.Request().Context(), actor, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, rm)
}

func (api *roadmapApi) resolve(ctx echo.Context) error {
	actor, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	view, err := api.svc.Resolve(ctx.Request().Context(), actor, ctx.Param("slug"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, view)
}

type newCheckpointRequest struct {
	WeekNumber int    `json:"week_number"`
	Content    string `json:"content"`
}

func (api *roadmapApi) submitCheckpoint(ctx echo.Context) error {
	var data newCheckpointRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to newCheckpointRequest")
	}

	actor, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	cp, err := api.svc.SubmitCheckpoint(ctx.Request().Context(), actor, ctx.Param("id"), data.WeekNumber, data.Content)
	if err != nil {
		return err
	}
	metrics.CheckpointSubmissions.Inc()
	return ctx.JSON(http.StatusCreated, cp)
}

type reviewCheckpointRequest struct {
	Feedback string `json:"feedback"`
	Approved *bool  `json:"approved"`
}

func (api *roadmapApi) reviewCheckpoint(ctx echo.Context) error {
	var data reviewCheckpointRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to reviewCheckpointRequest")
	}

	actor, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	rc, err := api.svc.ReviewCheckpoint(ctx.Request().Context(), actor, ctx.Param("id"), data.Feedback, data.Approved)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, rc)
}
