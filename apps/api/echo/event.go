package echoapi

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/MSTC-DAU/mstc/core/event"
	"github.com/MSTC-DAU/mstc/core/user"
	"github.com/MSTC-DAU/mstc/services/metrics"
)

type eventApi struct {
	svc     *event.Service
	userSvc *user.Service
}

func registerEventAPI(g *echo.Group, jwt, admin echo.MiddlewareFunc, svc *event.Service, userSvc *user.Service) {
	api := eventApi{svc: svc, userSvc: userSvc}

	eg := g.Group("/events")

	// public endpoints
	eg.GET("", api.query)
	eg.GET("/live", api.live)
	eg.GET("/:slug", api.retrieve)
	eg.GET("/:id/awards", api.awards)

	// authed endpoints
	ag := eg.Group("", jwt)
	ag.POST("", api.create, admin)
	ag.PUT("/:id/status", api.setStatus, admin)
	ag.POST("/:id/register", api.register)
	ag.GET("/:id/registration", api.myRegistration)
	ag.GET("/:id/registrants", api.registrants, admin)
	ag.POST("/:id/roster-preview", api.previewRoster, admin)
	ag.POST("/:id/assign-domains", api.bulkAssignDomain, admin)
	ag.POST("/:id/awards", api.createAward, admin)
	ag.POST("/:id/teams", api.createTeam)
	ag.POST("/:id/teams/join", api.joinTeam)

	rg := g.Group("/registrations", jwt, admin)
	rg.PUT("/:id/domain", api.assignDomain)
	rg.DELETE("/:id", api.destroyRegistration)
}

// Handlers

func (api *eventApi) query(ctx echo.Context) error {
	events, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying events")
	}
	return ctx.JSON(http.StatusOK, events)
}

func (api *eventApi) live(ctx echo.Context) error {
	ev, err := api.svc.LiveEvent(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, ev)
}

func (api *eventApi) retrieve(ctx echo.Context) error {
	ev, err := api.svc.GetBySlug(ctx.Request().Context(), ctx.Param("slug"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, ev)
}

func (api *eventApi) awards(ctx echo.Context) error {
	awards, err := api.svc.Awards(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying awards")
	}
	return ctx.JSON(http.StatusOK, awards)
}

func (api *eventApi) createAward(ctx echo.Context) error {
	var data event.NewAward
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAward")
	}

	actor, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	award, err := api.svc.AddAward(ctx.Request().Context(), actor, ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, award)
}

func (api *eventApi) create(ctx echo.Context) error {
	var data event.NewEvent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEvent")
	}

	actor, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	ev, err := api.svc.Create(ctx.Request().Context(), actor, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, ev)
}

type setStatusRequest struct {
	Status event.Status `json:"status"`
}

func (api *eventApi) setStatus(ctx echo.Context) error {
	var data setStatusRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to setStatusRequest")
	}

	actor, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	ev, err := api.svc.SetStatus(ctx.Request().Context(), actor, ctx.Param("id"), data.Status)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, ev)
}

func (api *eventApi) register(ctx echo.Context) error {
	var data event.NewRegistration
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewRegistration")
	}

	actor, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	reg, err := api.svc.Register(ctx.Request().Context(), actor, ctx.Param("id"), data)
	if err != nil {
		return err
	}
	metrics.Registrations.Inc()
	return ctx.JSON(http.StatusCreated, reg)
}

func (api *eventApi) myRegistration(ctx echo.Context) error {
	actor, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	reg, err := api.svc.RegistrationFor(ctx.Request().Context(), actor.ID, ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, reg)
}

func (api *eventApi) registrants(ctx echo.Context) error {
	actor, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	registrants, err := api.svc.Registrants(ctx.Request().Context(), actor, ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, registrants)
}

// previewRoster accepts a multipart spreadsheet upload and reports which rows
// match the event's registrations, without committing anything.
func (api *eventApi) previewRoster(ctx echo.Context) error {
	fh, err := ctx.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing 'file' upload")
	}
	f, err := fh.Open()
	if err != nil {
		return errors.Wrap(err, "opening upload")
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return errors.Wrap(err, "reading upload")
	}

	actor, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	preview, err := api.svc.PreviewRoster(ctx.Request().Context(), actor, ctx.Param("id"), fh.Filename, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, preview)
}

type bulkAssignRequest struct {
	Domain          string   `json:"domain"`
	RegistrationIDs []string `json:"registration_ids"`
}

type bulkAssignResponse struct {
	Success  bool `json:"success"`
	Assigned int  `json:"assigned"`
}

func (api *eventApi) bulkAssignDomain(ctx echo.Context) error {
	var data bulkAssignRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to bulkAssignRequest")
	}

	actor, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	n, err := api.svc.BulkAssignDomain(ctx.Request().Context(), actor, ctx.Param("id"), data.Domain, data.RegistrationIDs)
	if err != nil {
		return err
	}
	metrics.DomainAssignments.Add(float64(n))
	return ctx.JSON(http.StatusOK, bulkAssignResponse{Success: true, Assigned: n})
}

type assignDomainRequest struct {
	Domain string `json:"domain"`
}

func (api *eventApi) assignDomain(ctx echo.Context) error {
	var data assignDomainRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to assignDomainRequest")
	}

	actor, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	if err := api.svc.AssignDomain(ctx.Request().Context(), actor, ctx.Param("id"), data.Domain); err != nil {
		return err
	}
	metrics.DomainAssignments.Inc()
	return ctx.JSON(http.StatusOK, actionResponse{Success: true, Message: "domain assigned"})
}

func (api *eventApi) destroyRegistration(ctx echo.Context) error {
	actor, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	if err := api.svc.RemoveRegistration(ctx.Request().Context(), actor, ctx.Param("id")); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, actionResponse{Success: true, Message: "registration deleted"})
}

type newTeamRequest struct {
	Name string `json:"name"`
}

func (api *eventApi) createTeam(ctx echo.Context) error {
	var data newTeamRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to newTeamRequest")
	}

	actor, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	team, err := api.svc.CreateTeam(ctx.Request().Context(), actor, ctx.Param("id"), data.Name)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, team)
}

type joinTeamRequest struct {
	JoinCode string `json:"join_code"`
}

func (api *eventApi) joinTeam(ctx echo.Context) error {
	var data joinTeamRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to joinTeamRequest")
	}

	actor, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	team, err := api.svc.JoinTeam(ctx.Request().Context(), actor, ctx.Param("id"), data.JoinCode)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, team)
}
