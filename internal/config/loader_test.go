package config

import (
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	t.Setenv("TEST_MODEL_SERVICE_KEY", "expanded-key")

	cfg, err := Load("testdata/config.yaml")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.App.Name != "match-point" || cfg.App.LogLevel != "debug" {
		t.Fatalf("app section %+v", cfg.App)
	}
	if cfg.Data.StartYear != 2018 || cfg.Data.EndYear != 2020 {
		t.Fatalf("data years %d-%d", cfg.Data.StartYear, cfg.Data.EndYear)
	}
	if cfg.Pipeline.Variant != "random_forest" || cfg.Pipeline.Seed != 42 {
		t.Fatalf("pipeline section %+v", cfg.Pipeline)
	}
	if cfg.Server.Port != 8090 || cfg.Server.HealthPort != 8081 {
		t.Fatalf("server section %+v", cfg.Server)
	}
	if cfg.Prediction.TourneyYear != 2024 || cfg.Prediction.TourneyMonth != 12 {
		t.Fatalf("prediction section %+v", cfg.Prediction)
	}
	// ${VAR} placeholders are expanded from the environment.
	if cfg.ModelService.APIKey != "expanded-key" {
		t.Fatalf("api key %q, want expanded value", cfg.ModelService.APIKey)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("testdata/does-not-exist.yaml"); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := LoadWithDefaults("testdata/does-not-exist.yaml")
	if err != nil {
		t.Fatalf("load with defaults failed: %v", err)
	}
	if cfg.App.Environment != "development" || cfg.App.LogLevel != "info" {
		t.Fatalf("app defaults %+v", cfg.App)
	}
	if cfg.Pipeline.Variant != "boosting" {
		t.Fatalf("pipeline variant default %q", cfg.Pipeline.Variant)
	}
	if cfg.ModelService.CacheTTLSeconds != 300 || cfg.ModelService.CacheMaxSize != 10000 {
		t.Fatalf("model service defaults %+v", cfg.ModelService)
	}
	if cfg.Prediction.TourneyYear != 2024 {
		t.Fatalf("prediction default year %d", cfg.Prediction.TourneyYear)
	}
}

func TestLoadWithDefaultsFileOverrides(t *testing.T) {
	cfg, err := LoadWithDefaults("testdata/config.yaml")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.ModelService.CacheTTLSeconds != 60 {
		t.Fatalf("file value should override default, got %d", cfg.ModelService.CacheTTLSeconds)
	}
}

func TestValidate(t *testing.T) {
	t.Setenv("TEST_MODEL_SERVICE_KEY", "k")
	cfg, err := Load("testdata/config.yaml")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	bad := *cfg
	bad.App.Environment = "sandbox"
	if err := Validate(&bad); err == nil || !strings.Contains(err.Error(), "environment") {
		t.Fatalf("expected environment validation error, got %v", err)
	}

	bad = *cfg
	bad.Pipeline.Variant = "linear"
	if err := Validate(&bad); err == nil {
		t.Fatalf("expected variant validation error")
	}

	bad = *cfg
	bad.Data.EndYear = 2010
	if err := Validate(&bad); err == nil {
		t.Fatalf("expected cross-field year validation error")
	}
}
