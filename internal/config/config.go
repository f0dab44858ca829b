// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/codr1/yeardots/internal/themes"
	"github.com/codr1/yeardots/internal/wallpaper"
)

const DefaultCacheControl = "public, max-age=3600"

type ThemeConfig struct {
	Name       string `yaml:"name"`
	Background string `yaml:"background"`
	Past       string `yaml:"past"`
	Future     string `yaml:"future"`
	Today      string `yaml:"today"`
	TextStroke string `yaml:"text_stroke"`
	TextFill   string `yaml:"text_fill"`
}

func (tc ThemeConfig) Theme() (themes.Theme, error) {
	theme := themes.Theme{Name: strings.TrimSpace(tc.Name)}
	fields := []struct {
		name  string
		value string
		dst   *color.RGBA
	}{
		{"background", tc.Background, &theme.Background},
		{"past", tc.Past, &theme.Past},
		{"future", tc.Future, &theme.Future},
		{"today", tc.Today, &theme.Today},
		{"text_stroke", tc.TextStroke, &theme.TextStroke},
		{"text_fill", tc.TextFill, &theme.TextFill},
	}
	for _, field := range fields {
		c, err := themes.ParseHexColor(field.value)
		if err != nil {
			return themes.Theme{}, fmt.Errorf("theme %q %s: %w", tc.Name, field.name, err)
		}
		*field.dst = c
	}
	if err := theme.Validate(); err != nil {
		return themes.Theme{}, fmt.Errorf("theme %q: %w", tc.Name, err)
	}
	return theme, nil
}

type Config struct {
	App struct {
		Name        string `yaml:"name"`
		Environment string `yaml:"environment"`
		Port        int    `yaml:"port"`
		Timezone    string `yaml:"timezone"`
		Path        string `yaml:"path"`
	} `yaml:"app"`

	Render struct {
		Layout       wallpaper.Layout `yaml:"layout"`
		CacheControl string           `yaml:"cache_control"`
	} `yaml:"render"`

	Fonts struct {
		Path string `yaml:"path"`
	} `yaml:"fonts"`

	Themes struct {
		Default string        `yaml:"default"`
		Custom  []ThemeConfig `yaml:"custom"`
	} `yaml:"themes"`

	Server struct {
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
		// Renders per client IP per minute; 0 disables limiting.
		RateLimit  int  `yaml:"rate_limit"`
		TrustProxy bool `yaml:"trust_proxy"`
	} `yaml:"server"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	var cfg Config
	cfg.App.Name = "yeardots"
	cfg.App.Environment = "development"
	cfg.App.Port = 8080
	cfg.App.Path = "/wallpaper"
	cfg.Render.Layout = wallpaper.DefaultLayout()
	cfg.Render.CacheControl = DefaultCacheControl
	cfg.Server.ShutdownTimeout = 30 * time.Second
	return &cfg
}

// ErrNotFound reports a missing config file; callers may fall back to
// Default().
var ErrNotFound = errors.New("config file not found")

// Load loads both .env and yaml configuration. Values absent from the
// YAML keep their defaults.
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, configPath)
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overrides file values with PORT, ENVIRONMENT, TZ_NAME and
// FONT_PATH when they are set.
func (c *Config) ApplyEnv() {
	if value, ok := os.LookupEnv("PORT"); ok {
		if port, err := strconv.Atoi(value); err == nil {
			c.App.Port = port
		}
	}
	if value, ok := os.LookupEnv("ENVIRONMENT"); ok && value != "" {
		c.App.Environment = value
	}
	if value, ok := os.LookupEnv("TZ_NAME"); ok && value != "" {
		c.App.Timezone = value
	}
	if value, ok := os.LookupEnv("FONT_PATH"); ok {
		c.Fonts.Path = value
	}
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("app port must be between 1 and 65535")
	}
	if !strings.HasPrefix(c.App.Path, "/") {
		return fmt.Errorf("app path must start with /")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if err := c.Render.Layout.Validate(); err != nil {
		return fmt.Errorf("render layout: %w", err)
	}
	if c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("shutdown timeout must not be negative")
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("rate limit must not be negative")
	}
	if _, err := c.CustomThemes(); err != nil {
		return err
	}
	return nil
}

// Location resolves app.timezone; empty means the process local zone.
func (c *Config) Location() (*time.Location, error) {
	if c.App.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", c.App.Timezone, err)
	}
	return loc, nil
}

func (c *Config) CustomThemes() ([]themes.Theme, error) {
	out := make([]themes.Theme, 0, len(c.Themes.Custom))
	for _, tc := range c.Themes.Custom {
		theme, err := tc.Theme()
		if err != nil {
			return nil, err
		}
		out = append(out, theme)
	}
	return out, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}
