package echoapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MSTC-DAU/mstc/core"
	"github.com/MSTC-DAU/mstc/core/club"
	"github.com/MSTC-DAU/mstc/core/dashboard"
	"github.com/MSTC-DAU/mstc/core/event"
	"github.com/MSTC-DAU/mstc/core/roadmap"
	"github.com/MSTC-DAU/mstc/core/setting"
	"github.com/MSTC-DAU/mstc/core/user"
)

type (
	Options struct {
		Address        string
		DisableReqLogs bool

		Conf   *core.Config
		Logger core.Logger
		// SignalShutdown is called when a shutdown error bubbles up.
		SignalShutdown func()

		UserSvc      *user.Service
		EventSvc     *event.Service
		RoadmapSvc   *roadmap.Service
		ClubSvc      *club.Service
		SettingSvc   *setting.Service
		DashboardSvc *dashboard.Service
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.opts.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	s.app.Use(metricsMiddleware())
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.opts.SignalShutdown)
	s.app.Debug = conf.Debug

	s.app.GET("/", home)
	s.app.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(newAppJWTConfig(conf))
	admin := adminMiddleware(s.opts.UserSvc)

	registerAuthAPI(v1, conf, s.opts.UserSvc)
	registerUserAPI(v1, jwt, admin, s.opts.UserSvc, s.opts.SettingSvc)
	registerEventAPI(v1, jwt, admin, s.opts.EventSvc, s.opts.UserSvc)
	registerRoadmapAPI(v1, jwt, admin, s.opts.RoadmapSvc, s.opts.UserSvc)
	registerClubAPI(v1, jwt, admin, s.opts.ClubSvc, s.opts.UserSvc)
	registerSettingAPI(v1, jwt, admin, s.opts.SettingSvc, s.opts.UserSvc)
	registerDashboardAPI(v1, jwt, s.opts.DashboardSvc, s.opts.UserSvc)
}

func (s *server) Start() {
	s.app.Logger.Fatal(s.app.Start(s.opts.Address))
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to the MSTC API!")
}
