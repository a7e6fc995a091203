package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	yaml "gopkg.in/yaml.v3"
)

type AppConfig struct {
	Addr        string `yaml:"addr"`
	Templates   string `yaml:"templates"`
	StaticDir   string `yaml:"static"`
	Locale      string `yaml:"locale"`
	MessagesDir string `yaml:"messages_dir"`

	SessionTTL  time.Duration `yaml:"session_ttl"`
	MaxSessions int           `yaml:"max_sessions"`

	Log LogConfig `yaml:"log"`
}

type LogConfig struct {
	Level     string `yaml:"level"`
	Format    string `yaml:"format"`
	ToConsole bool   `yaml:"to_console"`
	File      string `yaml:"file"`
	Caller    bool   `yaml:"caller"`
}

func Default() *AppConfig {
	return &AppConfig{
		Addr:        ":8080",
		Templates:   "templates/*",
		StaticDir:   "./static",
		Locale:      "ru",
		SessionTTL:  2 * time.Hour,
		MaxSessions: 200,
		Log: LogConfig{
			Level:     "info",
			Format:    "legacy",
			ToConsole: true,
		},
	}
}

// Load reads defaults, then .env, then the YAML file named by SHASHKI_CONFIG,
// then the environment. Later sources win.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	if path := strings.TrimSpace(os.Getenv("SHASHKI_CONFIG")); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) loadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *AppConfig) applyEnv() error {
	if v := strings.TrimSpace(os.Getenv("SHASHKI_ADDR")); v != "" {
		c.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv("SHASHKI_TEMPLATES")); v != "" {
		c.Templates = v
	}
	if v := strings.TrimSpace(os.Getenv("SHASHKI_STATIC")); v != "" {
		c.StaticDir = v
	}
	if v := strings.TrimSpace(os.Getenv("SHASHKI_LOCALE")); v != "" {
		c.Locale = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("SHASHKI_MESSAGES_DIR")); v != "" {
		c.MessagesDir = v
	}
	if v := strings.TrimSpace(os.Getenv("SHASHKI_SESSION_TTL")); v != "" {
		d, err := parseTTL(v)
		if err != nil {
			return fmt.Errorf("SHASHKI_SESSION_TTL: %w", err)
		}
		c.SessionTTL = d
	}
	if v := strings.TrimSpace(os.Getenv("SHASHKI_MAX_SESSIONS")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SHASHKI_MAX_SESSIONS: %w", err)
		}
		c.MaxSessions = n
	}

	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		c.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_FORMAT")); v != "" {
		c.Log.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("LOG_TO_CONSOLE")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Log.ToConsole = b
		}
	}
	if v, ok := os.LookupEnv("LOG_FILE"); ok {
		c.Log.File = strings.TrimSpace(v)
	}
	if v := strings.TrimSpace(os.Getenv("LOG_CALLER")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Log.Caller = b
		}
	}
	return nil
}

// parseTTL accepts Go durations ("90m") or plain seconds ("3600").
func parseTTL(v string) (time.Duration, error) {
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(v)
}

func (c *AppConfig) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return errors.New("addr is required")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session ttl must be positive, got %s", c.SessionTTL)
	}
	if c.MaxSessions <= 0 {
		return fmt.Errorf("max sessions must be positive, got %d", c.MaxSessions)
	}
	switch c.Log.Format {
	case "legacy", "console", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}
