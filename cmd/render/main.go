// cmd/render/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/codr1/yeardots/internal/app"
	"github.com/codr1/yeardots/internal/wallpaper"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("Render failed")
	}
}

// run parses args and writes either the theme list or a PNG. With -o -
// the image goes to stdout.
func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	var (
		day        = fs.String("day", "", "Day of year to render (defaults to today)")
		theme      = fs.String("theme", "", "Theme name (defaults to the configured default)")
		output     = fs.String("o", "wallpaper.png", "Output file, or - for stdout")
		configPath = fs.String("config", app.DefaultConfigPath, "Path to the YAML configuration")
		listThemes = fs.Bool("themes", false, "List available themes and exit")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := app.LoadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	app.SetupLogger(cfg.App.Environment)

	service, err := app.NewService(cfg)
	if err != nil {
		return fmt.Errorf("initialize wallpaper service: %w", err)
	}

	if *listThemes {
		registry := service.Themes()
		for _, name := range registry.Names() {
			suffix := ""
			if name == registry.DefaultName() {
				suffix = " (default)"
			}
			if _, err := fmt.Fprintf(stdout, "%s%s\n", name, suffix); err != nil {
				return err
			}
		}
		return nil
	}

	result, err := service.Generate(context.Background(), wallpaper.Params{Day: *day, Theme: *theme})
	if err != nil {
		return err
	}

	if *output == "-" {
		if _, err := stdout.Write(result.PNG); err != nil {
			return fmt.Errorf("write wallpaper: %w", err)
		}
		return nil
	}
	if err := os.WriteFile(*output, result.PNG, 0o644); err != nil {
		return fmt.Errorf("write wallpaper %s: %w", *output, err)
	}
	log.Info().
		Str("path", *output).
		Int("day", result.Request.Today).
		Int("total_days", result.Request.TotalDays).
		Str("theme", result.Theme).
		Msg("Wallpaper written")
	return nil
}
