// Package config provides configuration management for the Match Point application.
package config

// Config represents the complete application configuration
type Config struct {
	App          AppConfig          `mapstructure:"app" validate:"required"`
	Data         DataConfig         `mapstructure:"data" validate:"required"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Pipeline     PipelineConfig     `mapstructure:"pipeline" validate:"required"`
	ModelService ModelServiceConfig `mapstructure:"model_service" validate:"required"`
	Server       ServerConfig       `mapstructure:"server" validate:"required"`
	Prediction   PredictionConfig   `mapstructure:"prediction" validate:"required"`
	Metrics      MetricsConfig      `mapstructure:"metrics"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DataConfig represents the raw dataset location and download source
type DataConfig struct {
	Dir             string  `mapstructure:"dir" validate:"required"`
	StartYear       int     `mapstructure:"start_year" validate:"required,gte=1968"`
	EndYear         int     `mapstructure:"end_year" validate:"required,gte=1968"`
	DownloadBaseURL string  `mapstructure:"download_base_url" validate:"omitempty,url"`
	RequestsPerSec  float64 `mapstructure:"requests_per_sec" validate:"omitempty,gt=0"`
}

// DatabaseConfig represents the optional Postgres raw-match store
type DatabaseConfig struct {
	Host               string `mapstructure:"host"`
	Port               int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Name               string `mapstructure:"name"`
	User               string `mapstructure:"user"`
	Password           string `mapstructure:"password"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"omitempty,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"omitempty,gt=0"`
}

// PipelineConfig represents the batch feature engineering configuration
type PipelineConfig struct {
	Variant   string `mapstructure:"variant" validate:"required,cleanvariant"`
	ModelName string `mapstructure:"model_name" validate:"required"`
	OutputDir string `mapstructure:"output_dir" validate:"required"`
	Seed      int64  `mapstructure:"seed"`
}

// ModelServiceConfig represents the external classifier service configuration
type ModelServiceConfig struct {
	URL                   string `mapstructure:"url" validate:"required,url"`
	Model                 string `mapstructure:"model" validate:"required"`
	APIKey                string `mapstructure:"api_key"`
	RequestTimeoutSeconds int    `mapstructure:"request_timeout_seconds" validate:"required,gt=0"`
	CacheTTLSeconds       int    `mapstructure:"cache_ttl_seconds" validate:"required,gt=0"`
	CacheMaxSize          int    `mapstructure:"cache_max_size" validate:"required,gt=0"`
}

// ServerConfig represents the HTTP API configuration
type ServerConfig struct {
	Port           int      `mapstructure:"port" validate:"required,min=1,max=65535"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	HealthPort     int      `mapstructure:"health_port" validate:"omitempty,min=1,max=65535"`
}

// PredictionConfig fixes the tournament date context used when assembling
// prediction feature vectors
type PredictionConfig struct {
	TourneyYear  int `mapstructure:"tourney_year" validate:"required"`
	TourneyMonth int `mapstructure:"tourney_month" validate:"required,min=1,max=12"`
	TourneyDay   int `mapstructure:"tourney_day" validate:"required,min=1,max=31"`
}

// MetricsConfig represents Prometheus metrics configuration
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}
