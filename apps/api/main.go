package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MSTC-DAU/mstc/apps/api/echo"
	"github.com/MSTC-DAU/mstc/core"
	"github.com/MSTC-DAU/mstc/core/club"
	"github.com/MSTC-DAU/mstc/core/dashboard"
	"github.com/MSTC-DAU/mstc/core/event"
	"github.com/MSTC-DAU/mstc/core/roadmap"
	"github.com/MSTC-DAU/mstc/core/setting"
	"github.com/MSTC-DAU/mstc/core/user"
	"github.com/MSTC-DAU/mstc/services/email"
	"github.com/MSTC-DAU/mstc/services/logger"
	"github.com/MSTC-DAU/mstc/services/metrics"
	"github.com/MSTC-DAU/mstc/storage/database"
	"github.com/MSTC-DAU/mstc/storage/database/bundb"
)

const shutdownTimeout = 20 * time.Second

func main() {
	conf := core.NewConfig()

	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	var appLogger core.Logger
	if conf.RollbarToken != "" {
		appLogger = logsvc.NewRollbarLogger(stdLogger, conf)
	} else {
		appLogger = logsvc.NewStdLogger(stdLogger)
	}

	// set up DB
	db := database.Open(conf)
	defer func() { _ = db.Close() }()
	if err := database.Ping(db); err != nil {
		appLogger.Fatal("pinging database", err)
	}

	metrics.Register()

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, appLogger)
	}
	reval := core.LogRevalidator{Logger: appLogger}

	usrSvc := user.NewService(bunrepos.NewUserRepository(db), appLogger, reval)
	evtSvc := event.NewService(bunrepos.NewEventRepository(db), appLogger, reval)
	rmSvc := roadmap.NewService(bunrepos.NewRoadmapRepository(db), evtSvc, mailSvc, appLogger, reval)
	clubSvc := club.NewService(bunrepos.NewClubRepository(db), appLogger, reval)
	settingSvc := setting.NewService(bunrepos.NewSettingRepository(db), appLogger, reval)
	dashSvc := dashboard.NewService(bunrepos.NewDashboardRepository(db), evtSvc, appLogger)

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	app := echoapi.NewServer(&echoapi.Options{
		Address:        conf.Server.Address(),
		Conf:           conf,
		Logger:         appLogger,
		SignalShutdown: func() { shutdown <- syscall.SIGTERM },
		UserSvc:        usrSvc,
		EventSvc:       evtSvc,
		RoadmapSvc:     rmSvc,
		ClubSvc:        clubSvc,
		SettingSvc:     settingSvc,
		DashboardSvc:   dashSvc,
	})

	go app.Start()
	appLogger.Info("API server started on " + conf.Server.Address())

	<-shutdown
	appLogger.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.Stop(ctx); err != nil {
		appLogger.Error("graceful shutdown failed", err)
	}
}
