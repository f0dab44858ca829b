// assets/embed.go
package assets

import "embed"

// ThemesPath is the location of the built-in palettes inside ThemesFS.
const ThemesPath = "themes"

//go:embed themes
var ThemesFS embed.FS
