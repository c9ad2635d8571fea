// Package main provides the entry point for the prediction API server.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/match-point/internal/config"
	"github.com/yourusername/match-point/internal/dataset"
	"github.com/yourusername/match-point/internal/health"
	"github.com/yourusername/match-point/internal/logger"
	"github.com/yourusername/match-point/internal/metrics"
	"github.com/yourusername/match-point/internal/ml"
	"github.com/yourusername/match-point/internal/server"
	"github.com/yourusername/match-point/internal/snapshot"
)

var version = "dev"

func main() {
	var (
		configPath   = flag.String("config", "config/config.yaml", "Path to config file")
		featuresPath = flag.String("features", "", "Override path to the engineered features CSV")
		playersPath  = flag.String("players", "", "Override path to the player names CSV")
	)
	flag.Parse()

	cfg := loadConfigWithSecrets(*configPath)
	log := logger.NewLogger(cfg.App.LogLevel)
	metrics.InitRegistry()
	metrics.RegisterCollectors(ml.Collectors()...)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tables := loadSnapshot(cfg, log, *featuresPath, *playersPath)
	model := buildModel(ctx, cfg, log)
	predictor := server.NewPredictor(tables, model, cfg, log)

	healthSrv := startHealthServer(ctx, cfg, log, model)
	handler := server.NewHandler(predictor, log)
	router := server.NewRouter(handler, cfg.Server, cfg.Metrics.Enabled)

	healthSrv.SetReady(true)
	srv := server.New(cfg.Server.Port, router, log)
	if err := srv.Start(ctx); err != nil {
		log.WithError(err).Fatal("API server failed")
	}
}

func loadConfigWithSecrets(path string) *config.Config {
	bootLog := logrus.New()

	cfg, err := config.LoadWithDefaults(path)
	if err != nil {
		bootLog.Fatalf("Failed to load config: %v", err)
	}
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			bootLog.Fatal("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			bootLog.Fatalf("Failed to load secrets: %v", err)
		}
	}
	if err := config.Validate(cfg); err != nil {
		bootLog.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

func loadSnapshot(cfg *config.Config, log *logrus.Logger, featuresOverride, playersOverride string) *snapshot.Tables {
	featuresPath := featuresOverride
	if featuresPath == "" {
		featuresPath = filepath.Join(cfg.Pipeline.OutputDir, "features.csv")
	}
	playersPath := playersOverride
	if playersPath == "" {
		playersPath = filepath.Join(cfg.Pipeline.OutputDir, "players.csv")
	}

	frame, err := dataset.ReadFrameFile(featuresPath)
	if err != nil {
		log.WithError(err).Fatal("Failed to load engineered features")
	}

	tables, err := snapshot.NewBuilder(log).Build(frame)
	if err != nil {
		log.WithError(err).Fatal("Failed to build snapshot tables")
	}

	names, err := dataset.ReadPlayerNames(playersPath)
	if err != nil {
		log.WithError(err).Warn("Player names unavailable, statistics will omit names")
	} else {
		tables.ApplyNames(names)
	}

	metrics.UpdateSnapshot(len(tables.Players), len(tables.PredictionColumns))
	return tables
}

func buildModel(ctx context.Context, cfg *config.Config, log *logrus.Logger) *ml.CachedClassifier {
	client := ml.NewHTTPClient(&cfg.ModelService, log)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx); err != nil {
		log.WithError(err).WithField("url", cfg.ModelService.URL).Fatal("Model service unreachable")
	}

	ttl := time.Duration(cfg.ModelService.CacheTTLSeconds) * time.Second
	return ml.NewCachedClassifier(client, ttl, cfg.ModelService.CacheMaxSize, log)
}

func startHealthServer(ctx context.Context, cfg *config.Config, log *logrus.Logger, model *ml.CachedClassifier) *health.Server {
	port := ""
	if cfg.Server.HealthPort != 0 {
		port = strconv.Itoa(cfg.Server.HealthPort)
	}

	healthSrv := health.NewServer(health.Config{
		ServiceName: cfg.App.Name,
		Version:     version,
		Port:        port,
		Logger:      log,
		Dependencies: map[string]health.Pinger{
			"model_service": model,
		},
	})
	if err := healthSrv.Start(ctx); err != nil {
		log.WithError(err).Fatal("Failed to start health server")
	}
	return healthSrv
}
