package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Generator   GeneratorConfig
	RabbitMQ    RabbitMQConfig
	SeedOnStart bool
}

type ServerConfig struct {
	Port string
	Env  string
}

// Addr is the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return ":" + s.Port
}

type DatabaseConfig struct {
	Driver string // postgres | sqlite | memory
	DSN    string
}

type GeneratorConfig struct {
	Provider         string // openai | gemini
	OpenAIAPIKey     string
	OpenAIEndpoint   string
	OpenAIAPIVersion string
	OpenAIAuth       string // api-key | bearer
	OpenAIModel      string
	GeminiAPIKey     string
	GeminiModel      string
	Timeout          time.Duration
}

// APIKey returns the credential of the selected provider.
func (g GeneratorConfig) APIKey() string {
	if g.Provider == "gemini" {
		return g.GeminiAPIKey
	}
	return g.OpenAIAPIKey
}

type RabbitMQConfig struct {
	URL   string // empty disables product events
	Queue string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "3000")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DATABASE_DSN", "host=localhost user=postgres password=mysecretpassword dbname=copilot-nestjs port=5432 sslmode=disable")
	v.SetDefault("GENERATOR_PROVIDER", "openai")
	v.SetDefault("OPENAI_ENDPOINT", "https://clever-dev-openai.openai.azure.com/openai/deployments/chat/chat/completions")
	v.SetDefault("OPENAI_API_VERSION", "2024-02-15-preview")
	v.SetDefault("OPENAI_AUTH", "api-key")
	v.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	v.SetDefault("GENERATOR_TIMEOUT", "30s")
	v.SetDefault("RABBITMQ_QUEUE", "product_events")
	v.SetDefault("SEED_ON_START", true)
}

// Load reads configuration from the environment, with an optional .env file in the
// working directory.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read .env: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: v.GetString("PORT"),
			Env:  v.GetString("APP_ENV"),
		},
		Database: DatabaseConfig{
			Driver: v.GetString("DB_DRIVER"),
			DSN:    v.GetString("DATABASE_DSN"),
		},
		Generator: GeneratorConfig{
			Provider:         v.GetString("GENERATOR_PROVIDER"),
			OpenAIAPIKey:     v.GetString("OPENAI_API_KEY"),
			OpenAIEndpoint:   v.GetString("OPENAI_ENDPOINT"),
			OpenAIAPIVersion: v.GetString("OPENAI_API_VERSION"),
			OpenAIAuth:       v.GetString("OPENAI_AUTH"),
			OpenAIModel:      v.GetString("OPENAI_MODEL"),
			GeminiAPIKey:     v.GetString("GEMINI_API_KEY"),
			GeminiModel:      v.GetString("GEMINI_MODEL"),
			Timeout:          v.GetDuration("GENERATOR_TIMEOUT"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:   v.GetString("RABBITMQ_URL"),
			Queue: v.GetString("RABBITMQ_QUEUE"),
		},
		SeedOnStart: v.GetBool("SEED_ON_START"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port == "" {
		return errors.New("PORT must not be empty")
	}
	switch c.Database.Driver {
	case "postgres", "sqlite", "memory":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	switch c.Generator.Provider {
	case "openai", "gemini":
	default:
		return fmt.Errorf("unsupported GENERATOR_PROVIDER %q", c.Generator.Provider)
	}
	switch c.Generator.OpenAIAuth {
	case "api-key", "bearer":
	default:
		return fmt.Errorf("unsupported OPENAI_AUTH %q", c.Generator.OpenAIAuth)
	}
	if c.Generator.Timeout <= 0 {
		return fmt.Errorf("GENERATOR_TIMEOUT must be positive, got %s", c.Generator.Timeout)
	}
	return nil
}
