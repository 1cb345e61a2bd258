package viz

import "github.com/charmbracelet/lipgloss"

// Theme colours the two populations and the chrome around them.
type Theme struct {
	Name     string
	Predator lipgloss.Color
	Prey     lipgloss.Color
	Accent   lipgloss.Color
	Muted    lipgloss.Color
	Finished lipgloss.Color
}

var (
	ThemeSavanna = Theme{
		Name:     "savanna",
		Predator: lipgloss.Color("#ff6b6b"),
		Prey:     lipgloss.Color("#5fd068"),
		Accent:   lipgloss.Color("#feca57"),
		Muted:    lipgloss.Color("#8b6b8c"),
		Finished: lipgloss.Color("#ff9ff3"),
	}

	ThemeOcean = Theme{
		Name:     "ocean",
		Predator: lipgloss.Color("#ffd700"),
		Prey:     lipgloss.Color("#00a8cc"),
		Accent:   lipgloss.Color("#0077be"),
		Muted:    lipgloss.Color("#4488aa"),
		Finished: lipgloss.Color("#00ff88"),
	}

	ThemeMinimal = Theme{
		Name:     "minimal",
		Predator: lipgloss.Color("#ffffff"),
		Prey:     lipgloss.Color("#888888"),
		Accent:   lipgloss.Color("#0088ff"),
		Muted:    lipgloss.Color("#666666"),
		Finished: lipgloss.Color("#ffaa00"),
	}

	Themes = []Theme{
		ThemeSavanna,
		ThemeOcean,
		ThemeMinimal,
	}
)

// GetTheme returns a theme by name, falling back to the first one.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

func nextTheme(current Theme) Theme {
	for i, t := range Themes {
		if t.Name == current.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}
