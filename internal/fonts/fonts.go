// Package fonts registers the typeface used for the status line.
package fonts

import (
	"fmt"
	"os"
	"sync"

	"github.com/golang/freetype/truetype"
	"github.com/rs/zerolog/log"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomonobold"
)

// FallbackName identifies the embedded face used when no font file loads.
const FallbackName = "Go Mono Bold"

var fallback = sync.OnceValues(func() (*truetype.Font, error) {
	return truetype.Parse(gomonobold.TTF)
})

// Font is a parsed TrueType font. It is safe to share between goroutines;
// faces created from it are not.
type Font struct {
	Name   string
	Source string
	ttf    *truetype.Font
}

// NewFace returns a fresh face at size points and dpi. Faces keep a glyph
// cache, so callers create one per render.
func (f *Font) NewFace(size, dpi float64) font.Face {
	return truetype.NewFace(f.ttf, &truetype.Options{
		Size:    size,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
}

// Parse reads a TrueType font from data.
func Parse(name string, data []byte) (*Font, error) {
	ttf, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", name, err)
	}
	return &Font{Name: ttf.Name(truetype.NameIDFontFullName), Source: name, ttf: ttf}, nil
}

// LoadFile reads and parses the font at path.
func LoadFile(path string) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font file: %w", err)
	}
	return Parse(path, data)
}

// Fallback returns the embedded bold monospace face.
func Fallback() *Font {
	ttf, err := fallback()
	if err != nil {
		// gomonobold ships with x/image and always parses.
		panic(fmt.Sprintf("parse embedded %s: %v", FallbackName, err))
	}
	return &Font{Name: FallbackName, Source: "embedded", ttf: ttf}
}

var (
	registerOnce sync.Once
	registered   *Font
)

// Register loads the font at path once per process. Later calls return
// the first result regardless of path. Any failure is logged and the
// embedded fallback is used instead.
func Register(path string) *Font {
	registerOnce.Do(func() {
		registered = load(path)
	})
	return registered
}

func load(path string) *Font {
	if path == "" {
		log.Info().Str("font", FallbackName).Msg("No font path configured, using embedded font")
		return Fallback()
	}

	f, err := LoadFile(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Str("fallback", FallbackName).Msg("Failed to register font")
		return Fallback()
	}

	log.Info().Str("path", path).Str("font", f.Name).Msg("Registered font")
	return f
}
