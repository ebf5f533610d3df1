package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	BackendGemini = "gemini"

	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

const (
	DefaultModel   = "gemini-3-flash-preview"
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// DefaultAPIKeyEnv is consulted first, then FallbackAPIKeyEnv
	DefaultAPIKeyEnv  = "API_KEY"
	FallbackAPIKeyEnv = "GEMINI_API_KEY"
)

// DefaultSystemInstruction is sent once when a chat session is created
const DefaultSystemInstruction = `You are a friendly and helpful AI assistant for Stratowave Solutions, a company specializing in telecom, aviation, and digital infrastructure. Your goal is to answer user questions about the company's services and capabilities based on the information available on their website. Keep your answers concise, professional, and helpful. Do not invent services or capabilities. If you don't know the answer, politely say so. Format your answers with markdown where appropriate.`

// Config holds application configuration
type Config struct {
	Listen    string          `yaml:"listen"`
	LogDir    string          `yaml:"log_dir"`
	Debug     bool            `yaml:"debug"`
	Assistant AssistantConfig `yaml:"assistant"`
	Store     StoreConfig     `yaml:"store"`
	Widgets   WidgetsConfig   `yaml:"widgets"`
	Site      SiteConfig      `yaml:"site"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// APIKey is never read from the file; ApplyEnv fills it in
	APIKey string `yaml:"-"`
}

// AssistantConfig selects the generative-language backend
type AssistantConfig struct {
	Backend           string  `yaml:"backend"`
	Model             string  `yaml:"model"`
	BaseURL           string  `yaml:"base_url"`
	APIKeyEnv         string  `yaml:"api_key_env"`
	SystemInstruction string  `yaml:"system_instruction"`
	Temperature       float32 `yaml:"temperature"`
	MaxOutputTokens   int     `yaml:"max_output_tokens"`
}

// StoreConfig selects where uploaded images are kept
type StoreConfig struct {
	Driver     string `yaml:"driver"`
	SQLitePath string `yaml:"sqlite_path"`
	RedisURL   string `yaml:"redis_url"`
}

// WidgetsConfig bounds the lifetime of chat widgets
type WidgetsConfig struct {
	IdleTTL      time.Duration `yaml:"idle_ttl"`
	ReapInterval time.Duration `yaml:"reap_interval"`
}

// TelemetryConfig tunes the trace and metric exporters
type TelemetryConfig struct {
	MetricsInterval  time.Duration `yaml:"metrics_interval"`
	TraceSampleRatio float64       `yaml:"trace_sample_ratio"`
	PrettyPrint      bool          `yaml:"pretty_print"`
}

// SiteConfig holds contact details shown on the contact page
type SiteConfig struct {
	Company string   `yaml:"company"`
	Emails  []string `yaml:"emails"`
	Phones  []string `yaml:"phones"`
	Address []string `yaml:"address"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Listen: ":8080",
		LogDir: "logs",
		Assistant: AssistantConfig{
			Backend:           BackendGemini,
			Model:             DefaultModel,
			BaseURL:           DefaultBaseURL,
			APIKeyEnv:         DefaultAPIKeyEnv,
			SystemInstruction: DefaultSystemInstruction,
		},
		Store: StoreConfig{
			Driver:     StoreSQLite,
			SQLitePath: "stratowave.db",
		},
		Widgets: WidgetsConfig{
			IdleTTL:      30 * time.Minute,
			ReapInterval: time.Minute,
		},
		Site: SiteConfig{
			Company: "Stratowave Solutions LLP",
			Address: []string{"Visakhapatnam, Andhra Pradesh, India"},
		},
		Telemetry: TelemetryConfig{
			MetricsInterval:  10 * time.Second,
			TraceSampleRatio: 1,
			PrettyPrint:      true,
		},
	}
}

// Load reads a YAML file on top of the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv loads .env files (when present) and reads the credential.
// A missing credential is not an error here: it surfaces per widget on open.
func (c *Config) ApplyEnv(envFiles ...string) error {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	for _, name := range []string{c.Assistant.APIKeyEnv, FallbackAPIKeyEnv} {
		if name == "" {
			continue
		}
		if v := os.Getenv(name); v != "" {
			c.APIKey = v
			return nil
		}
	}
	return nil
}

// Validate checks the settings that must be right at boot
func (c Config) Validate() error {
	if strings.TrimSpace(c.Listen) == "" {
		return errors.New("listen address must not be empty")
	}
	if c.Assistant.Backend != BackendGemini {
		return fmt.Errorf("unknown backend: %s", c.Assistant.Backend)
	}
	if c.Assistant.Model == "" {
		return errors.New("assistant model must not be empty")
	}
	switch c.Store.Driver {
	case StoreSQLite:
		if c.Store.SQLitePath == "" {
			return errors.New("sqlite store requires sqlite_path")
		}
	case StoreRedis:
		if c.Store.RedisURL == "" {
			return errors.New("redis store requires redis_url")
		}
	default:
		return fmt.Errorf("unknown store driver: %s", c.Store.Driver)
	}
	if c.Widgets.IdleTTL <= 0 {
		return errors.New("widgets idle_ttl must be positive")
	}
	if c.Widgets.ReapInterval <= 0 {
		return errors.New("widgets reap_interval must be positive")
	}
	if c.Assistant.Temperature < 0 || c.Assistant.Temperature > 2 {
		return errors.New("assistant temperature must be between 0 and 2")
	}
	if c.Assistant.MaxOutputTokens < 0 {
		return errors.New("assistant max_output_tokens must not be negative")
	}
	if c.Telemetry.MetricsInterval <= 0 {
		return errors.New("telemetry metrics_interval must be positive")
	}
	if c.Telemetry.TraceSampleRatio < 0 || c.Telemetry.TraceSampleRatio > 1 {
		return errors.New("telemetry trace_sample_ratio must be between 0 and 1")
	}
	return nil
}
