// internal/api/wallpaper/handlers.go
package wallpaper

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/codr1/yeardots/internal/api/apiutil"
	"github.com/codr1/yeardots/internal/themes"
	core "github.com/codr1/yeardots/internal/wallpaper"
)

const (
	dayParam   = "day"
	themeParam = "theme"
)

type Handlers struct {
	service      *core.Service
	cacheControl string
}

func NewHandlers(service *core.Service, cacheControl string) *Handlers {
	return &Handlers{service: service, cacheControl: cacheControl}
}

// ParamsFromRequest reads the optional day and theme query parameters.
func ParamsFromRequest(r *http.Request) core.Params {
	query := r.URL.Query()
	return core.Params{
		Day:   query.Get(dayParam),
		Theme: query.Get(themeParam),
	}
}

// HandleWallpaper serves the PNG for any method. Failures are reported as
// {"error": ...} with status 500 and no image bytes.
func (h *Handlers) HandleWallpaper(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	params := ParamsFromRequest(r)

	result, err := h.service.Generate(r.Context(), params)
	if err != nil {
		logger.Error().
			Err(err).
			Str("day", params.Day).
			Str("theme", params.Theme).
			Msg("Failed to render wallpaper")
		apiutil.WriteHandlerError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if h.cacheControl != "" {
		w.Header().Set("Cache-Control", h.cacheControl)
	}
	w.Header().Set("Content-Length", strconv.Itoa(len(result.PNG)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.PNG); err != nil {
		logger.Warn().Err(err).Msg("Failed to write wallpaper response")
		return
	}

	logger.Debug().
		Int("today", result.Request.Today).
		Int("total_days", result.Request.TotalDays).
		Str("theme", result.Theme).
		Msg("Wallpaper served")
}

type ThemesResponse struct {
	Default  string         `json:"default"`
	Themes   []string       `json:"themes"`
	Palettes []ThemePalette `json:"palettes"`
}

// ThemePalette is a theme's colors as #rrggbb strings.
type ThemePalette struct {
	Name       string `json:"name"`
	Background string `json:"background"`
	Past       string `json:"past"`
	Future     string `json:"future"`
	Today      string `json:"today"`
	TextStroke string `json:"text_stroke"`
	TextFill   string `json:"text_fill"`
}

func paletteOf(theme themes.Theme) ThemePalette {
	return ThemePalette{
		Name:       theme.Name,
		Background: themes.Hex(theme.Background),
		Past:       themes.Hex(theme.Past),
		Future:     themes.Hex(theme.Future),
		Today:      themes.Hex(theme.Today),
		TextStroke: themes.Hex(theme.TextStroke),
		TextFill:   themes.Hex(theme.TextFill),
	}
}

// HandleThemes lists the registered theme names.
func (h *Handlers) HandleThemes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		apiutil.WriteHandlerError(w, apiutil.HandlerError{
			Status:  http.StatusMethodNotAllowed,
			Message: "method not allowed",
		})
		return
	}

	registry := h.service.Themes()
	names := registry.Names()
	resp := ThemesResponse{
		Default:  registry.DefaultName(),
		Themes:   names,
		Palettes: make([]ThemePalette, 0, len(names)),
	}
	for _, name := range names {
		resp.Palettes = append(resp.Palettes, paletteOf(registry.Lookup(name)))
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, resp); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write themes response")
	}
}
