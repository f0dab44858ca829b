// internal/themes/parser.go
package themes

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/codr1/yeardots/assets"
)

const defaultThemeSuffix = " DEFAULT"

// linesPerTheme is the name line followed by the six palette colors.
const linesPerTheme = 7

// ParseThemesFile reads the embedded assets/themes file.
func ParseThemesFile() ([]Theme, string, error) {
	file, err := assets.ThemesFS.Open(assets.ThemesPath)
	if err != nil {
		return nil, "", fmt.Errorf("open embedded themes file: %w", err)
	}
	defer file.Close()

	return ParseThemes(file)
}

// ParseThemes reads blocks of seven non-empty lines: a name (optionally
// suffixed with DEFAULT) and the background, past, future, today, text
// stroke and text fill colors. It returns the themes in file order and
// the name of the default theme.
func ParseThemes(r io.Reader) ([]Theme, string, error) {
	lines, err := readNonEmptyLines(r)
	if err != nil {
		return nil, "", err
	}
	if len(lines)%linesPerTheme != 0 {
		return nil, "", fmt.Errorf("themes file has %d non-empty lines, expected multiples of %d", len(lines), linesPerTheme)
	}

	themes := make([]Theme, 0, len(lines)/linesPerTheme)
	defaultName := ""
	for i := 0; i < len(lines); i += linesPerTheme {
		name := lines[i]

		if strings.HasSuffix(name, defaultThemeSuffix) {
			name = strings.TrimSpace(strings.TrimSuffix(name, defaultThemeSuffix))
			if name == "" {
				return nil, "", fmt.Errorf("theme name missing before DEFAULT at line %d", i+1)
			}
			if defaultName != "" {
				return nil, "", fmt.Errorf("multiple DEFAULT themes: %q and %q", defaultName, name)
			}
			defaultName = name
		}

		colors := make([]color.RGBA, 0, linesPerTheme-1)
		for j := 1; j < linesPerTheme; j++ {
			c, err := ParseHexColor(lines[i+j])
			if err != nil {
				return nil, "", fmt.Errorf("theme %q line %d: %w", name, i+j+1, err)
			}
			colors = append(colors, c)
		}

		theme := Theme{
			Name:       name,
			Background: colors[0],
			Past:       colors[1],
			Future:     colors[2],
			Today:      colors[3],
			TextStroke: colors[4],
			TextFill:   colors[5],
		}
		if err := theme.Validate(); err != nil {
			return nil, "", fmt.Errorf("invalid theme %q: %w", name, err)
		}

		themes = append(themes, theme)
	}

	if len(themes) > 0 && defaultName == "" {
		defaultName = themes[0].Name
	}
	return themes, defaultName, nil
}

func readNonEmptyLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	lines := []string{}
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read themes file: %w", err)
	}
	return lines, nil
}
