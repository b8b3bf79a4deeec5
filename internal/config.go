package internal

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	Server        ServerConfig        `mapstructure:"http_server"`
	Roster        RosterConfig        `mapstructure:"roster"`
	Session       SessionConfig       `mapstructure:"session"`
	Suggestion    SuggestionConfig    `mapstructure:"suggestion"`
	Observability ObservabilityConfig `mapstructure:"observability"`
	Catalog       []SystemConfig      `mapstructure:"catalog" validate:"dive"`
}

type ServerConfig struct {
	Port              int           `mapstructure:"port" validate:"min=1,max=65535"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	OpenAPIPath       string        `mapstructure:"openapi_path"`
}

type RosterConfig struct {
	Backend string `mapstructure:"backend" validate:"oneof=memory sqlite"`
	Seed    bool   `mapstructure:"seed"`
}

type SessionConfig struct {
	MaxOpen int           `mapstructure:"max_open" validate:"min=1"`
	IdleTTL time.Duration `mapstructure:"idle_ttl" validate:"min=1m"`
}

type SuggestionConfig struct {
	Provider   string        `mapstructure:"provider" validate:"oneof=google openai ollama offline"`
	Model      string        `mapstructure:"model"`
	APIKey     string        `mapstructure:"api_key"`
	BaseURL    string        `mapstructure:"base_url" validate:"omitempty,url"`
	Timeout    time.Duration `mapstructure:"timeout" validate:"min=0"`
	ApplyEmpty bool          `mapstructure:"apply_empty"`
}

type ObservabilityConfig struct {
	Logging LoggingConfig `mapstructure:"logging"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json text"`
}

type SystemConfig struct {
	ID          string `mapstructure:"id" validate:"required"`
	Name        string `mapstructure:"name" validate:"required"`
	Description string `mapstructure:"description"`
}

// DefaultConfig is the baseline every loader starts from.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:              8080,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		Roster: RosterConfig{
			Backend: "memory",
			Seed:    true,
		},
		Session: SessionConfig{
			MaxOpen: 256,
			IdleTTL: 30 * time.Minute,
		},
		Suggestion: SuggestionConfig{
			Provider: "google",
			Timeout:  30 * time.Second,
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{Level: "info", Format: "text"},
		},
	}
}

// LoadConfigFromEnv builds the configuration from plain environment
// variables, used for container deployments.
func LoadConfigFromEnv() *Config {
	cfg := DefaultConfig()

	cfg.Server.Port = getEnvAsInt("HTTP_PORT", cfg.Server.Port)
	cfg.Server.ReadTimeout = getEnvAsDuration("HTTP_READ_TIMEOUT", cfg.Server.ReadTimeout)
	cfg.Server.WriteTimeout = getEnvAsDuration("HTTP_WRITE_TIMEOUT", cfg.Server.WriteTimeout)
	cfg.Server.OpenAPIPath = getEnv("HTTP_OPENAPI_PATH", cfg.Server.OpenAPIPath)

	cfg.Roster.Backend = getEnv("ROSTER_BACKEND", cfg.Roster.Backend)
	cfg.Roster.Seed = getEnvAsBool("ROSTER_SEED", cfg.Roster.Seed)

	cfg.Session.MaxOpen = getEnvAsInt("SESSION_MAX_OPEN", cfg.Session.MaxOpen)
	cfg.Session.IdleTTL = getEnvAsDuration("SESSION_IDLE_TTL", cfg.Session.IdleTTL)

	cfg.Suggestion.Provider = getEnv("SUGGESTION_PROVIDER", cfg.Suggestion.Provider)
	cfg.Suggestion.Model = getEnv("SUGGESTION_MODEL", cfg.Suggestion.Model)
	cfg.Suggestion.APIKey = getEnv("API_KEY", cfg.Suggestion.APIKey)
	cfg.Suggestion.BaseURL = getEnv("SUGGESTION_BASE_URL", cfg.Suggestion.BaseURL)
	cfg.Suggestion.Timeout = getEnvAsDuration("SUGGESTION_TIMEOUT", cfg.Suggestion.Timeout)
	cfg.Suggestion.ApplyEmpty = getEnvAsBool("SUGGESTION_APPLY_EMPTY", cfg.Suggestion.ApplyEmpty)

	cfg.Observability.Logging.Level = getEnv("LOG_LEVEL", "info")
	cfg.Observability.Logging.Format = getEnv("LOG_FORMAT", "json")

	return cfg
}

// ----------------- HELPERS -----------------

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultVal
}

// ----------------- VALIDATION -----------------

var configValidator = validator.New(validator.WithRequiredStructEnabled())

func (c *Config) Validate() error {
	var errs []string

	if err := configValidator.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				errs = append(errs, fmt.Sprintf("%s: failed on %q", fe.Namespace(), fe.Tag()))
			}
		} else {
			errs = append(errs, err.Error())
		}
	}

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("server config: %v", err))
	}

	if err := c.Suggestion.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("suggestion config: %v", err))
	}

	if err := validateCatalog(c.Catalog); err != nil {
		errs = append(errs, fmt.Sprintf("catalog config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *ServerConfig) Validate() error {
	if c.ReadTimeout < c.ReadHeaderTimeout {
		return errors.New("read_timeout must be >= read_header_timeout")
	}
	return nil
}

func (c *SuggestionConfig) Validate() error {
	switch c.Provider {
	case "google", "openai":
		if c.APIKey == "" {
			return fmt.Errorf("api_key is required for provider %s", c.Provider)
		}
	case "ollama":
		if c.Model == "" {
			return errors.New("model is required for provider ollama")
		}
	}
	return nil
}

func validateCatalog(systems []SystemConfig) error {
	seen := make(map[string]struct{}, len(systems))
	for _, s := range systems {
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("duplicate system id %q", s.ID)
		}
		seen[s.ID] = struct{}{}
	}
	return nil
}
