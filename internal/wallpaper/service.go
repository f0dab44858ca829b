// internal/wallpaper/service.go
package wallpaper

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/yeardots/internal/calendar"
	"github.com/codr1/yeardots/internal/themes"
)

// Params are the raw, unvalidated inputs of one wallpaper request.
type Params struct {
	Day   string
	Theme string
}

type Result struct {
	PNG     []byte
	Request RenderRequest
	Theme   string
	Year    int
}

type ServiceConfig struct {
	Renderer *Renderer
	Themes   *themes.Registry

	// Location used to read the wall clock (nil uses time.Local)
	Location *time.Location

	// Clock for testing (nil uses real time)
	Clock calendar.Clock
}

// Service turns request parameters into a rendered wallpaper. It holds no
// mutable state and is safe for concurrent use.
type Service struct {
	renderer *Renderer
	themes   *themes.Registry
	location *time.Location
	clock    calendar.Clock
}

func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Renderer == nil {
		return nil, fmt.Errorf("renderer is required")
	}
	if cfg.Themes == nil {
		return nil, fmt.Errorf("theme registry is required")
	}
	location := cfg.Location
	if location == nil {
		location = time.Local
	}
	clock := cfg.Clock
	if clock == nil {
		clock = calendar.SystemClock()
	}
	return &Service{
		renderer: cfg.Renderer,
		themes:   cfg.Themes,
		location: location,
		clock:    clock,
	}, nil
}

func (s *Service) Themes() *themes.Registry {
	return s.themes
}

// Resolve clamps the day override into the current year and picks the
// theme, falling back to the clock and the default theme respectively.
func (s *Service) Resolve(p Params) (RenderRequest, themes.Theme, int) {
	now := s.clock.Now().In(s.location)
	year := now.Year()
	req := RenderRequest{
		Today:     calendar.ResolveDay(p.Day, now),
		TotalDays: calendar.DaysInYear(year),
	}
	return req, s.themes.Lookup(p.Theme), year
}

// Generate resolves p and renders the PNG. A panic while drawing or
// encoding is returned as an error so no partial image escapes.
func (s *Service) Generate(ctx context.Context, p Params) (result *Result, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req, theme, year := s.Resolve(p)

	defer func() {
		if rec := recover(); rec != nil {
			result = nil
			err = fmt.Errorf("render wallpaper: %v", rec)
		}
	}()

	data, err := s.renderer.RenderPNG(req, theme)
	if err != nil {
		return nil, fmt.Errorf("render wallpaper: %w", err)
	}

	log.Ctx(ctx).Debug().
		Int("today", req.Today).
		Int("total_days", req.TotalDays).
		Str("theme", theme.Name).
		Int("bytes", len(data)).
		Msg("Wallpaper rendered")

	return &Result{
		PNG:     data,
		Request: req,
		Theme:   theme.Name,
		Year:    year,
	}, nil
}
