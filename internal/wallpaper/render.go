// internal/wallpaper/render.go
package wallpaper

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/codr1/yeardots/internal/fonts"
	"github.com/codr1/yeardots/internal/themes"
)

const textDPI = 72

// Bezier control distance for a quarter circle of radius 1.
const circleKappa = 0.5522847498

type CellClass int

const (
	OutOfRange CellClass = iota
	Past
	Future
	Today
)

func (c CellClass) String() string {
	switch c {
	case OutOfRange:
		return "out-of-range"
	case Past:
		return "past"
	case Future:
		return "future"
	case Today:
		return "today"
	default:
		return fmt.Sprintf("CellClass(%d)", int(c))
	}
}

// RenderRequest is the resolved input of one render.
type RenderRequest struct {
	Today     int
	TotalDays int
}

func (r RenderRequest) Validate() error {
	if r.TotalDays < 1 {
		return fmt.Errorf("total days must be positive, got %d", r.TotalDays)
	}
	if r.Today < 1 || r.Today > r.TotalDays {
		return fmt.Errorf("today must be within [1, %d], got %d", r.TotalDays, r.Today)
	}
	return nil
}

// Classify maps a 1-based cell index to its class. Cells past the end of
// the year are out of range whatever today is.
func Classify(idx, today, totalDays int) CellClass {
	switch {
	case idx > totalDays:
		return OutOfRange
	case idx < today:
		return Past
	case idx > today:
		return Future
	default:
		return Today
	}
}

func classColor(class CellClass, theme themes.Theme) color.RGBA {
	switch class {
	case Past:
		return theme.Past
	case Future:
		return theme.Future
	case Today:
		return theme.Today
	default:
		return theme.Background
	}
}

// Percent is today's share of the year rounded half away from zero.
func Percent(today, totalDays int) int {
	return int(math.Round(float64(today) / float64(totalDays) * 100))
}

// StatusText is the "days left • percent" line under the grid.
func StatusText(today, totalDays int) string {
	return fmt.Sprintf("%d • %d%%", totalDays-today, Percent(today, totalDays))
}

type Renderer struct {
	layout Layout
	font   *fonts.Font
}

// NewRenderer validates layout. A nil font selects the embedded fallback.
func NewRenderer(layout Layout, f *fonts.Font) (*Renderer, error) {
	if err := layout.Validate(); err != nil {
		return nil, fmt.Errorf("invalid layout: %w", err)
	}
	if f == nil {
		f = fonts.Fallback()
	}
	return &Renderer{layout: layout, font: f}, nil
}

func (r *Renderer) Layout() Layout {
	return r.layout
}

// Render paints the background, the dot grid and the status line.
func (r *Renderer) Render(req RenderRequest, theme themes.Theme) *image.RGBA {
	l := r.layout
	canvas := image.NewRGBA(image.Rect(0, 0, l.Width, l.Height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(theme.Background), image.Point{}, draw.Src)

	for i := 0; i < l.Rows; i++ {
		for j := 0; j < l.Columns; j++ {
			idx := j + i*l.Columns + 1
			class := Classify(idx, req.Today, req.TotalDays)
			fillCircle(canvas, l.Center(idx), l.Radius, classColor(class, theme))
		}
	}

	r.drawStatus(canvas, StatusText(req.Today, req.TotalDays), theme)
	return canvas
}

// RenderPNG renders req and encodes the canvas as PNG.
func (r *Renderer) RenderPNG(req RenderRequest, theme themes.Theme) ([]byte, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	canvas := r.Render(req, theme)

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) drawStatus(dst *image.RGBA, text string, theme themes.Theme) {
	l := r.layout
	face := r.font.NewFace(l.FontSize, textDPI)
	defer face.Close()

	// Center the ink, not the advance: shift by the left bearing.
	bounds, _ := font.BoundString(face, text)
	inkWidth := bounds.Max.X - bounds.Min.X
	dot := fixed.Point26_6{
		X: (fixed.I(l.Width)-inkWidth)/2 - bounds.Min.X,
		Y: fixed.I(l.TextBaseline),
	}

	ink := image.Rect(
		(dot.X + bounds.Min.X).Floor(),
		(dot.Y + bounds.Min.Y).Floor(),
		(dot.X + bounds.Max.X).Ceil(),
		(dot.Y + bounds.Max.Y).Ceil(),
	)
	box := ink.Inset(-(l.StrokeWidth + 1))
	if box.Empty() {
		return
	}

	mask := image.NewAlpha(box)
	d := font.Drawer{Dst: mask, Src: image.Opaque, Face: face, Dot: dot}
	d.DrawString(text)

	sw := l.StrokeWidth
	if sw > 0 {
		stroke := image.NewUniform(theme.TextStroke)
		for dy := -sw; dy <= sw; dy++ {
			for dx := -sw; dx <= sw; dx++ {
				if dx*dx+dy*dy > sw*sw {
					continue
				}
				draw.DrawMask(dst, box.Add(image.Pt(dx, dy)), stroke, image.Point{}, mask, box.Min, draw.Over)
			}
		}
	}
	draw.DrawMask(dst, box, image.NewUniform(theme.TextFill), image.Point{}, mask, box.Min, draw.Over)
}

// fillCircle draws an antialiased disc. The coverage is rasterized into a
// local mask first so dots near the canvas edge are clipped by DrawMask.
func fillCircle(dst *image.RGBA, center image.Point, radius int, c color.RGBA) {
	size := 2*radius + 2
	box := image.Rect(0, 0, size, size).Add(center.Sub(image.Pt(radius+1, radius+1)))

	z := vector.NewRasterizer(size, size)
	cx, cy := float32(radius+1), float32(radius+1)
	rad := float32(radius)
	k := rad * circleKappa
	z.MoveTo(cx+rad, cy)
	z.CubeTo(cx+rad, cy+k, cx+k, cy+rad, cx, cy+rad)
	z.CubeTo(cx-k, cy+rad, cx-rad, cy+k, cx-rad, cy)
	z.CubeTo(cx-rad, cy-k, cx-k, cy-rad, cx, cy-rad)
	z.CubeTo(cx+k, cy-rad, cx+rad, cy-k, cx+rad, cy)
	z.ClosePath()

	mask := image.NewAlpha(image.Rect(0, 0, size, size))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	draw.DrawMask(dst, box, image.NewUniform(c), image.Point{}, mask, image.Point{}, draw.Over)
}
