package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the service configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	DeepSeek DeepSeekConfig `yaml:"deepseek"`
	Auth     AuthConfig     `yaml:"auth"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Addr    string `yaml:"addr"`     // HTTP listen address, e.g. ":8000"
	GinMode string `yaml:"gin_mode"` // debug | release | test
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"` // sqlite DSN, e.g. "rumor.db?_foreign_keys=on"
}

type DeepSeekConfig struct {
	APIKey         string        `yaml:"api_key"`
	BaseURL        string        `yaml:"base_url"`
	Model          string        `yaml:"model"`
	Timeout        time.Duration `yaml:"timeout"`
	BatchTimeout   time.Duration `yaml:"batch_timeout"`
	MaxTokens      int           `yaml:"max_tokens"`
	BatchMaxTokens int           `yaml:"batch_max_tokens"`
	Temperature    float32       `yaml:"temperature"`
	BatchItemRunes int           `yaml:"batch_item_runes"`
}

type AuthConfig struct {
	JWTSecret  string        `yaml:"jwt_secret"`
	AccessTTL  time.Duration `yaml:"access_ttl"`
	RefreshTTL time.Duration `yaml:"refresh_ttl"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // json | text
}

const minSecretLen = 32

// Load reads configuration from a YAML file, then a .env file, then the
// process environment. A missing YAML or .env file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	_ = godotenv.Load()
	applyEnv(cfg)
	applyDefaults(cfg)

	return cfg, nil
}

// Default returns a configuration with every field populated.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:    ":8000",
			GinMode: "release",
		},
		Database: DatabaseConfig{
			DSN: "rumor.db?_foreign_keys=on",
		},
		DeepSeek: DeepSeekConfig{
			BaseURL:        "https://api.deepseek.com/v1",
			Model:          "deepseek-chat",
			Timeout:        60 * time.Second,
			BatchTimeout:   120 * time.Second,
			MaxTokens:      2000,
			BatchMaxTokens: 4000,
			Temperature:    0.1,
			BatchItemRunes: 500,
		},
		Auth: AuthConfig{
			AccessTTL:  30 * time.Minute,
			RefreshTTL: 7 * 24 * time.Hour,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

func applyEnv(cfg *Config) {
	set := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	set(&cfg.Server.Addr, "SERVER_ADDR")
	set(&cfg.Server.GinMode, "GIN_MODE")
	set(&cfg.Database.DSN, "DATABASE_DSN")
	set(&cfg.DeepSeek.APIKey, "DEEPSEEK_API_KEY")
	set(&cfg.DeepSeek.BaseURL, "DEEPSEEK_API_BASE")
	set(&cfg.DeepSeek.Model, "DEEPSEEK_MODEL")
	set(&cfg.Auth.JWTSecret, "JWT_SECRET")
	set(&cfg.Logging.Level, "LOG_LEVEL")
}

func applyDefaults(cfg *Config) {
	def := Default()

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = def.Server.Addr
	}
	if cfg.Server.GinMode == "" {
		cfg.Server.GinMode = def.Server.GinMode
	}
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = def.Database.DSN
	}
	if cfg.DeepSeek.BaseURL == "" {
		cfg.DeepSeek.BaseURL = def.DeepSeek.BaseURL
	}
	if cfg.DeepSeek.Model == "" {
		cfg.DeepSeek.Model = def.DeepSeek.Model
	}
	if cfg.DeepSeek.MaxTokens <= 0 {
		cfg.DeepSeek.MaxTokens = def.DeepSeek.MaxTokens
	}
	if cfg.DeepSeek.BatchMaxTokens <= 0 {
		cfg.DeepSeek.BatchMaxTokens = def.DeepSeek.BatchMaxTokens
	}
	if cfg.DeepSeek.BatchItemRunes <= 0 {
		cfg.DeepSeek.BatchItemRunes = def.DeepSeek.BatchItemRunes
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = def.Logging.Level
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = def.Logging.Format
	}
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if len(c.Auth.JWTSecret) < minSecretLen {
		errs = append(errs, fmt.Errorf("auth.jwt_secret must be at least %d bytes", minSecretLen))
	}
	if c.DeepSeek.Timeout <= 0 || c.DeepSeek.BatchTimeout <= 0 {
		errs = append(errs, errors.New("deepseek timeouts must be positive"))
	}
	if c.Auth.AccessTTL <= 0 || c.Auth.RefreshTTL <= 0 {
		errs = append(errs, errors.New("auth token lifetimes must be positive"))
	}
	return errors.Join(errs...)
}
