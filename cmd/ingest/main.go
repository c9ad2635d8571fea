// Package main provides the entry point for the dataset ingest tool.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/match-point/internal/config"
	"github.com/yourusername/match-point/internal/database"
	"github.com/yourusername/match-point/internal/dataset"
	"github.com/yourusername/match-point/internal/health"
	"github.com/yourusername/match-point/internal/logger"
	"github.com/yourusername/match-point/internal/metrics"
	"github.com/yourusername/match-point/internal/repository"
	"github.com/yourusername/match-point/internal/scheduler"
	"github.com/yourusername/match-point/internal/service"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to config file")
		cronExpr   = flag.String("cron", "", "Cron expression for recurring refresh; empty runs once and exits")
		noArchive  = flag.Bool("no-archive", false, "Skip the database archive, only populate the data directory")
	)
	flag.Parse()

	bootLog := logrus.New()
	cfg, err := config.LoadWithDefaults(*configPath)
	if err != nil {
		bootLog.Fatalf("Failed to load config: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		bootLog.Fatalf("Invalid configuration: %v", err)
	}
	log := logger.NewLogger(cfg.App.LogLevel)
	metrics.InitRegistry()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, db := buildService(ctx, cfg, log, *noArchive)
	if db != nil {
		defer db.Close()
	}

	if *cronExpr == "" {
		if _, err := svc.Ingest(ctx, cfg.Data.StartYear, cfg.Data.EndYear); err != nil {
			log.WithError(err).Fatal("Ingest failed")
		}
		return
	}

	healthSrv := startHealthServer(ctx, cfg, log, db)

	sched := scheduler.NewScheduler(svc, log)
	if err := sched.ScheduleRefresh(*cronExpr, cfg.Data.StartYear); err != nil {
		log.WithError(err).Fatal("Failed to schedule refresh")
	}
	if err := sched.Start(); err != nil {
		log.WithError(err).Fatal("Failed to start scheduler")
	}
	healthSrv.SetReady(true)
	log.WithField("next_run", sched.GetNextRun()).Info("Refresh scheduler running")

	<-ctx.Done()
	if err := sched.Stop(); err != nil {
		log.WithError(err).Error("Scheduler shutdown failed")
	}
}

func startHealthServer(ctx context.Context, cfg *config.Config, log *logrus.Logger, db *database.DB) *health.Server {
	port := ""
	if cfg.Server.HealthPort != 0 {
		port = strconv.Itoa(cfg.Server.HealthPort)
	}

	deps := map[string]health.Pinger{}
	if db != nil {
		deps["database"] = database.HealthPinger{DB: db}
	}

	healthSrv := health.NewServer(health.Config{
		ServiceName:  cfg.App.Name + "-ingest",
		Port:         port,
		Logger:       log,
		Dependencies: deps,
	})
	if err := healthSrv.Start(ctx); err != nil {
		log.WithError(err).Fatal("Failed to start health server")
	}
	return healthSrv
}

func buildService(ctx context.Context, cfg *config.Config, log *logrus.Logger, noArchive bool) (*service.IngestionService, *database.DB) {
	var downloader *dataset.Downloader
	if cfg.Data.DownloadBaseURL != "" {
		dlCfg := dataset.DefaultDownloaderConfig()
		dlCfg.BaseURL = cfg.Data.DownloadBaseURL
		dlCfg.Dir = cfg.Data.Dir
		if cfg.Data.RequestsPerSec > 0 {
			dlCfg.RequestsPerSec = cfg.Data.RequestsPerSec
		}
		downloader = dataset.NewDownloader(dlCfg, log)
	} else {
		log.Info("No download base URL configured, using local files only")
	}

	var db *database.DB
	var repos *repository.Repositories
	if !noArchive && cfg.Database.Host != "" {
		var err error
		db, err = database.Initialize(ctx, cfg)
		if err != nil {
			log.WithError(err).Fatal("Failed to initialize archive database")
		}
		repos, err = repository.NewRepositories(db)
		if err != nil {
			log.WithError(err).Fatal("Failed to initialize repositories")
		}
	} else {
		log.Info("Archive database disabled")
	}

	if _, err := os.Stat(cfg.Data.Dir); os.IsNotExist(err) && downloader == nil {
		log.WithField("dir", cfg.Data.Dir).Fatal("Data directory does not exist and no download URL configured")
	}

	return service.NewIngestionService(downloader, dataset.NewReader(log), repos, cfg.Data.Dir, log), db
}
