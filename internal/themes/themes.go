// internal/themes/themes.go
package themes

import (
	"fmt"
	"image/color"
	"regexp"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

const maxThemeNameLength = 100

var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
var themeNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 _()-]*$`)

func IsHexColor(value string) bool {
	return hexColorRegex.MatchString(strings.TrimSpace(value))
}

// ParseHexColor converts a #RRGGBB string into an opaque color.
func ParseHexColor(value string) (color.RGBA, error) {
	trimmed := strings.TrimSpace(value)
	if !IsHexColor(trimmed) {
		return color.RGBA{}, fmt.Errorf("invalid hex color: %q", value)
	}
	c, err := colorful.Hex(trimmed)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color: %q: %w", value, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// Hex formats an opaque color as #rrggbb.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Theme is the palette used to paint one wallpaper.
type Theme struct {
	Name       string
	Background color.RGBA
	Past       color.RGBA
	Future     color.RGBA
	Today      color.RGBA
	TextStroke color.RGBA
	TextFill   color.RGBA
}

// Reference palette; used when no themes file is available.
func DefaultTheme() Theme {
	return Theme{
		Name:       "Dark",
		Background: color.RGBA{0, 0, 0, 255},
		Past:       color.RGBA{204, 204, 204, 255},
		Future:     color.RGBA{51, 51, 51, 255},
		Today:      color.RGBA{204, 0, 0, 255},
		TextStroke: color.RGBA{0, 0, 0, 255},
		TextFill:   color.RGBA{102, 102, 102, 255},
	}
}

func (t Theme) Validate() error {
	trimmedName := strings.TrimSpace(t.Name)
	if trimmedName == "" {
		return fmt.Errorf("name is required")
	}
	if trimmedName != t.Name {
		return fmt.Errorf("name must not have leading or trailing whitespace")
	}
	if len(trimmedName) > maxThemeNameLength {
		return fmt.Errorf("name must be %d characters or fewer", maxThemeNameLength)
	}
	if !themeNameRegex.MatchString(trimmedName) {
		return fmt.Errorf("name may only contain letters, numbers, spaces, underscores, hyphens, and parentheses")
	}

	colorFields := map[string]color.RGBA{
		"background":  t.Background,
		"past":        t.Past,
		"future":      t.Future,
		"today":       t.Today,
		"text_stroke": t.TextStroke,
		"text_fill":   t.TextFill,
	}
	for name, value := range colorFields {
		if value.A != 255 {
			return fmt.Errorf("%s must be an opaque color", name)
		}
	}
	return nil
}

// Registry is an immutable lookup table of themes keyed by lower-cased name.
type Registry struct {
	byName      map[string]Theme
	names       []string
	defaultName string
}

// NewRegistry indexes themes by name. defaultName must match one of them
// (case-insensitive); later duplicates replace earlier ones.
func NewRegistry(themes []Theme, defaultName string) (*Registry, error) {
	if len(themes) == 0 {
		return nil, fmt.Errorf("at least one theme is required")
	}

	byName := make(map[string]Theme, len(themes))
	for _, theme := range themes {
		if err := theme.Validate(); err != nil {
			return nil, fmt.Errorf("invalid theme %q: %w", theme.Name, err)
		}
		byName[normalizeName(theme.Name)] = theme
	}

	names := make([]string, 0, len(byName))
	for _, theme := range byName {
		names = append(names, theme.Name)
	}
	sort.Strings(names)

	def, ok := byName[normalizeName(defaultName)]
	if !ok {
		return nil, fmt.Errorf("default theme %q is not defined", defaultName)
	}

	return &Registry{
		byName:      byName,
		names:       names,
		defaultName: def.Name,
	}, nil
}

// Lookup resolves name case-insensitively. Unknown or empty names get the
// default theme, so the result is always a complete palette.
func (r *Registry) Lookup(name string) Theme {
	if theme, ok := r.Find(name); ok {
		return theme
	}
	return r.Default()
}

func (r *Registry) Find(name string) (Theme, bool) {
	theme, ok := r.byName[normalizeName(name)]
	return theme, ok
}

func (r *Registry) Default() Theme {
	return r.byName[normalizeName(r.defaultName)]
}

func (r *Registry) DefaultName() string {
	return r.defaultName
}

// Names returns the registered theme names sorted alphabetically.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Load builds the registry from the embedded themes file plus extra
// themes. Extra themes replace built-ins of the same name. An empty
// defaultName keeps the file's DEFAULT entry.
func Load(extra []Theme, defaultName string) (*Registry, error) {
	builtin, fileDefault, err := ParseThemesFile()
	if err != nil {
		return nil, err
	}
	if defaultName == "" {
		defaultName = fileDefault
	}
	all := make([]Theme, 0, len(builtin)+len(extra))
	all = append(all, builtin...)
	all = append(all, extra...)
	return NewRegistry(all, defaultName)
}
