package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MohdMoinuddin-mma/OlymPIX/internal/genai"
	"github.com/MohdMoinuddin-mma/OlymPIX/internal/service"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Assistant AssistantConfig
	Media     MediaConfig
	Dashboard DashboardConfig
	Logging   LoggingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            string
	Environment     string
	ShutdownTimeout time.Duration
}

// AssistantConfig holds the generative assistant configuration
type AssistantConfig struct {
	Provider       string
	Endpoint       string
	APIKey         string
	APIVersion     string
	ChatModel      string
	AnalysisModel  string
	MaxAttempts    int
	RequestTimeout time.Duration
}

// MediaConfig holds upload limits
type MediaConfig struct {
	MaxUploadBytes int64
}

// DashboardConfig holds the baseline dashboard metrics
type DashboardConfig struct {
	Performance int
	Exercise    int
	Diet        int
	Recovery    int
	Streak      int
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string // json or console
}

// Load reads configuration from defaults, an optional config.yaml and environment variables
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.olympix")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.shutdowntimeout", 30*time.Second)

	// Assistant defaults
	v.SetDefault("assistant.provider", genai.ProviderAzure)
	v.SetDefault("assistant.apiversion", "2024-08-01-preview")
	v.SetDefault("assistant.maxattempts", 1)
	v.SetDefault("assistant.requesttimeout", 60*time.Second)

	v.SetDefault("media.maxuploadbytes", 20<<20)

	// Dashboard baselines
	v.SetDefault("dashboard.performance", 85)
	v.SetDefault("dashboard.exercise", 92)
	v.SetDefault("dashboard.diet", 78)
	v.SetDefault("dashboard.recovery", 95)
	v.SetDefault("dashboard.streak", 15)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// bindEnvVars binds environment variables to config keys
func bindEnvVars(v *viper.Viper) {
	// Server
	v.BindEnv("server.port", "PORT")
	v.BindEnv("server.environment", "ENV", "ENVIRONMENT")

	// Assistant
	v.BindEnv("assistant.provider", "ASSISTANT_PROVIDER")
	v.BindEnv("assistant.endpoint", "AZURE_OPENAI_ENDPOINT", "OPENAI_BASE_URL")
	v.BindEnv("assistant.apikey", "AZURE_OPENAI_API_KEY", "OPENAI_API_KEY")
	v.BindEnv("assistant.chatmodel", "AZURE_OPENAI_DEPLOYMENT", "OPENAI_MODEL")
	v.BindEnv("assistant.analysismodel", "ASSISTANT_ANALYSIS_MODEL")

	// Logging
	v.BindEnv("logging.level", "LOG_LEVEL")
	v.BindEnv("logging.format", "LOG_FORMAT")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Assistant.Provider {
	case genai.ProviderAzure:
		if c.Assistant.Endpoint == "" {
			return fmt.Errorf("assistant.endpoint is required for the azure provider")
		}
	case genai.ProviderOpenAI:
	default:
		return fmt.Errorf("assistant.provider must be %q or %q", genai.ProviderAzure, genai.ProviderOpenAI)
	}

	if c.Assistant.APIKey == "" {
		return fmt.Errorf("assistant.apikey is required")
	}

	if c.Assistant.ChatModel == "" {
		return fmt.Errorf("assistant.chatmodel is required")
	}

	if c.Assistant.MaxAttempts < 1 {
		return fmt.Errorf("assistant.maxattempts must be at least 1")
	}

	if c.Media.MaxUploadBytes <= 0 {
		return fmt.Errorf("media.maxuploadbytes must be positive")
	}

	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("logging.format must be json or console")
	}

	return nil
}

// GenAI returns the assistant client configuration
func (c *Config) GenAI() genai.Config {
	return genai.Config{
		Provider:      c.Assistant.Provider,
		Endpoint:      c.Assistant.Endpoint,
		APIKey:        c.Assistant.APIKey,
		APIVersion:    c.Assistant.APIVersion,
		ChatModel:     c.Assistant.ChatModel,
		AnalysisModel: c.Assistant.AnalysisModel,
		MaxAttempts:   c.Assistant.MaxAttempts,
	}
}

// Baseline returns the dashboard baseline metrics
func (c *Config) Baseline() service.DashboardBaseline {
	return service.DashboardBaseline{
		Performance: c.Dashboard.Performance,
		Exercise:    c.Dashboard.Exercise,
		Diet:        c.Dashboard.Diet,
		Recovery:    c.Dashboard.Recovery,
		Streak:      c.Dashboard.Streak,
	}
}
