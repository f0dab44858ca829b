// Package app wires configuration into the wallpaper service and sets up
// process-wide logging. Every binary under cmd/ starts here.
package app

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/codr1/yeardots/internal/config"
	"github.com/codr1/yeardots/internal/fonts"
	"github.com/codr1/yeardots/internal/themes"
	"github.com/codr1/yeardots/internal/wallpaper"
)

const DefaultConfigPath = "config/app.yaml"

func SetupLogger(environment string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// LoadConfig reads the YAML config at path. A missing file is not fatal:
// defaults plus environment overrides are used instead.
func LoadConfig(path string) (*config.Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}
	cfg, err := config.Load(path)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, config.ErrNotFound) {
		return nil, err
	}

	log.Warn().Str("path", path).Msg("No config file found, using defaults")
	cfg = config.Default()
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// NewService registers the font, builds the theme registry and returns a
// ready wallpaper service.
func NewService(cfg *config.Config) (*wallpaper.Service, error) {
	location, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	custom, err := cfg.CustomThemes()
	if err != nil {
		return nil, err
	}
	registry, err := themes.Load(custom, cfg.Themes.Default)
	if err != nil {
		return nil, fmt.Errorf("load themes: %w", err)
	}

	renderer, err := wallpaper.NewRenderer(cfg.Render.Layout, fonts.Register(cfg.Fonts.Path))
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("default_theme", registry.DefaultName()).
		Int("themes", len(registry.Names())).
		Str("timezone", location.String()).
		Msg("Wallpaper service ready")

	return wallpaper.NewService(wallpaper.ServiceConfig{
		Renderer: renderer,
		Themes:   registry,
		Location: location,
	})
}
