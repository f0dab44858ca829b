// internal/wallpaper/layout.go
package wallpaper

import (
	"fmt"
	"image"
)

// Enough cells for a leap year.
const minGridCells = 366

// Layout holds every pixel-placement constant of the wallpaper.
type Layout struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	Columns int `yaml:"columns"`
	Rows    int `yaml:"rows"`
	Pitch   int `yaml:"pitch"`
	OriginX int `yaml:"origin_x"`
	OriginY int `yaml:"origin_y"`
	Radius  int `yaml:"radius"`

	TextBaseline int     `yaml:"text_baseline"`
	FontSize     float64 `yaml:"font_size"`
	StrokeWidth  int     `yaml:"stroke_width"`
}

// DefaultLayout is sized for a 1179x2556 phone screen.
func DefaultLayout() Layout {
	return Layout{
		Width:        1179,
		Height:       2556,
		Columns:      17,
		Rows:         22,
		Pitch:        60,
		OriginX:      100,
		OriginY:      800,
		Radius:       20,
		TextBaseline: 2200,
		FontSize:     32,
		StrokeWidth:  2,
	}
}

func (l Layout) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("canvas size must be positive, got %dx%d", l.Width, l.Height)
	}
	if l.Columns <= 0 || l.Rows <= 0 {
		return fmt.Errorf("grid must have positive dimensions, got %dx%d", l.Columns, l.Rows)
	}
	if l.Cells() < minGridCells {
		return fmt.Errorf("grid of %d cells cannot hold %d days", l.Cells(), minGridCells)
	}
	if l.Radius <= 0 {
		return fmt.Errorf("radius must be positive")
	}
	if l.Pitch < 2*l.Radius {
		return fmt.Errorf("pitch %d is smaller than the dot diameter %d", l.Pitch, 2*l.Radius)
	}
	if l.FontSize <= 0 {
		return fmt.Errorf("font size must be positive")
	}
	if l.StrokeWidth < 0 {
		return fmt.Errorf("stroke width must not be negative")
	}
	return nil
}

func (l Layout) Cells() int {
	return l.Columns * l.Rows
}

// Center returns the pixel center of the dot for 1-based index idx.
func (l Layout) Center(idx int) image.Point {
	i := (idx - 1) / l.Columns
	j := (idx - 1) % l.Columns
	return image.Pt(j*l.Pitch+l.OriginX, l.OriginY+i*l.Pitch)
}
