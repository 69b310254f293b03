package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Theme is the panel palette. The grid itself always shows species colours.
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
}

// hueTheme derives a palette from one base hue: the accent sits opposite
// it on the wheel, and success and warning keep their usual green and amber.
func hueTheme(name string, hue, sat float64) Theme {
	c := func(h, s, l float64) lipgloss.Color {
		return lipgloss.Color(colorful.Hsl(math.Mod(h+360, 360), s, l).Clamped().Hex())
	}
	return Theme{
		Name:    name,
		Primary: c(hue, sat, 0.62),
		Accent:  c(hue+180, sat, 0.58),
		Text:    c(hue, 0.15, 0.93),
		Muted:   c(hue, 0.10, 0.45),
		Success: c(130, 0.55, 0.55),
		Warning: c(38, 0.9, 0.58),
	}
}

var (
	ThemeBorder = hueTheme("border", 200, 0.75)
	ThemeEmber  = hueTheme("ember", 12, 0.8)
	ThemeMoss   = hueTheme("moss", 95, 0.45)
	ThemeMono   = hueTheme("mono", 0, 0)

	Themes = []Theme{ThemeBorder, ThemeEmber, ThemeMoss, ThemeMono}

	CurrentTheme = ThemeBorder
)

// GetTheme looks a theme up by case-insensitive name.
func GetTheme(name string) (Theme, bool) {
	for _, t := range Themes {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return Theme{}, false
}

func SetTheme(name string) error {
	t, ok := GetTheme(name)
	if !ok {
		return fmt.Errorf("unknown theme %q (have %s)", name, strings.Join(ThemeNames(), ", "))
	}
	CurrentTheme = t
	return nil
}

// NextTheme switches to the theme after the current one.
func NextTheme() {
	for i, t := range Themes {
		if t.Name == CurrentTheme.Name {
			CurrentTheme = Themes[(i+1)%len(Themes)]
			return
		}
	}
	CurrentTheme = Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
