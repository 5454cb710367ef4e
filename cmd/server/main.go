package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/herdtrack/internal/config"
	"github.com/mamadbah2/herdtrack/internal/geo"
	"github.com/mamadbah2/herdtrack/internal/repository/memory"
	"github.com/mamadbah2/herdtrack/internal/repository/mongodb"
	"github.com/mamadbah2/herdtrack/internal/repository/sheets"
	"github.com/mamadbah2/herdtrack/internal/scheduler"
	"github.com/mamadbah2/herdtrack/internal/server/handlers"
	"github.com/mamadbah2/herdtrack/internal/server/router"
	animalsvc "github.com/mamadbah2/herdtrack/internal/service/animals"
	branchsvc "github.com/mamadbah2/herdtrack/internal/service/branches"
	dashboardsvc "github.com/mamadbah2/herdtrack/internal/service/dashboard"
	feedbacksvc "github.com/mamadbah2/herdtrack/internal/service/feedback"
	"github.com/mamadbah2/herdtrack/internal/service/mapview"
	reportingsvc "github.com/mamadbah2/herdtrack/internal/service/reporting"
	"github.com/mamadbah2/herdtrack/internal/service/session"
	"github.com/mamadbah2/herdtrack/pkg/clients/mapbox"
	"github.com/mamadbah2/herdtrack/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	seed := cfg.Store.JitterSeed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	jitter := geo.NewJitter(geo.DefaultCenter, geo.DefaultSpread, seed)

	store := memory.NewStore()
	if cfg.Store.SeedDemoData {
		memory.SeedDemo(store, jitter.Next)
		baseLogger.Info("demo data loaded")
	}

	var (
		sinks   []reportingsvc.Sink
		archive handlers.ReportArchive
	)

	if cfg.MongoDB.Enabled() {
		mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		sinks = append(sinks, mongoRepo)
		archive = mongoRepo
	} else {
		baseLogger.Warn("mongodb uri missing, herd report archive disabled")
	}

	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		sinks = append(sinks, sheets.NewReportSink(sheetsRepo))
	} else {
		baseLogger.Warn("google sheets not configured, herd reports will not be appended to a sheet")
	}

	reportingSvc := reportingsvc.NewService(store, sinks, baseLogger.Named("svc.reporting"))
	animalSvc := animalsvc.NewService(store, jitter.Next, baseLogger.Named("svc.animals"))
	branchSvc := branchsvc.NewService(store, baseLogger.Named("svc.branches"))
	feedbackSvc := feedbacksvc.NewService(store, baseLogger.Named("svc.feedback"))
	sessions := session.NewManager(baseLogger.Named("svc.session"))

	mapClient := mapbox.NewClient(cfg.Mapbox)
	views := mapview.NewManager(mapClient, store, mapview.Options{
		Center:   geo.DefaultCenter,
		Zoom:     geo.DefaultZoom,
		Strategy: mapview.Strategy(cfg.Map.ReconcileStrategy),
	}, baseLogger.Named("svc.mapview"))
	store.Subscribe(views.HandleChange)

	sessionHandler := handlers.NewSessionHandler(sessions, baseLogger.Named("handlers.session"))
	engine := router.New(router.Handlers{
		Session:   sessionHandler,
		Dashboard: handlers.NewDashboardHandler(dashboardsvc.NewService(reportingSvc)),
		Branches:  handlers.NewBranchHandler(branchSvc, baseLogger.Named("handlers.branches")),
		Animals:   handlers.NewAnimalHandler(animalSvc, reportingSvc, baseLogger.Named("handlers.animals")),
		Feedback:  handlers.NewFeedbackHandler(feedbackSvc, baseLogger.Named("handlers.feedback")),
		Map:       handlers.NewMapHandler(views, baseLogger.Named("handlers.map")),
		Reports:   handlers.NewReportHandler(reportingSvc, archive, baseLogger.Named("handlers.reports")),
	}, baseLogger.Named("router"))

	sched, err := scheduler.NewScheduler(cfg.Reporting, reportingSvc, baseLogger.Named("scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
	views.Shutdown(shutdownCtx)
}
