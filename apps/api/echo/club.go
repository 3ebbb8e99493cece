package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/MSTC-DAU/mstc/core/club"
	"github.com/MSTC-DAU/mstc/core/user"
)

type clubApi struct {
	svc     *club.Service
	userSvc *user.Service
}

func registerClubAPI(g *echo.Group, jwt, admin echo.MiddlewareFunc, svc *club.Service, userSvc *user.Service) {
	api := clubApi{svc: svc, userSvc: userSvc}

	// public team page data
	g.GET("/team/mentors", api.mentors)
	g.GET("/team/photo", api.headerPhoto)
	g.GET("/team/legacy-notes", api.legacyNotes)

	ag := g.Group("/team", jwt, admin)
	ag.POST("/mentors", api.createMentor)
	ag.DELETE("/mentors/:id", api.destroyMentor)
	ag.POST("/legacy-notes", api.createLegacyNote)
	ag.PUT("/photo", api.setHeaderPhoto)
	ag.DELETE("/photo", api.removeHeaderPhoto)
}

// Handlers

func (api *clubApi) mentors(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.Mentors(ctx.Request().Context()))
}

func (api *clubApi) headerPhoto(ctx echo.Context) error {
	photo, err := api.svc.HeaderPhoto(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, photo)
}

func (api *clubApi) legacyNotes(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.LegacyNotes(ctx.Request().Context()))
}

func (api *clubApi) createMentor(ctx echo.Context) error {
	var data club.NewMentor
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewMentor")
	}

	actor, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	m, err := api.svc.AddMentor(ctx.Request().Context(), actor, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, m)
}

func (api *clubApi) destroyMentor(ctx echo.Context) error {
	actor, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	if err := api.svc.DeleteMentor(ctx.Request().Context(), actor, ctx.Param("id")); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, actionResponse{Success: true, Message: "mentor deleted"})
}

func (api *clubApi) createLegacyNote(ctx echo.Context) error {
	var data club.NewLegacyNote
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewLegacyNote")
	}

	actor, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	note, err := api.svc.AddLegacyNote(ctx.Request().Context(), actor, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, note)
}

type headerPhotoRequest struct {
	URL string `json:"url"`
}

func (api *clubApi) setHeaderPhoto(ctx echo.Context) error {
	var data headerPhotoRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to headerPhotoRequest")
	}

	actor, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	photo, err := api.svc.SetHeaderPhoto(ctx.Request().Context(), actor, data.URL)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, photo)
}

func (api *clubApi) removeHeaderPhoto(ctx echo.Context) error {
	actor, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	if err := api.svc.RemoveHeaderPhoto(ctx.Request().Context(), actor); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, actionResponse{Success: true, Message: "header photo removed"})
}
