package ui

import (
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a set of ANSI escape sequences for terminal output.
type Theme struct {
	Name string
	// Primary highlights method names and headings.
	Primary string
	// Secondary is used for labels and dimmed values.
	Secondary string
	Success   string
	Warning   string
	Error     string
	// Info highlights numeric values such as roots and errors.
	Info      string
	Bold      string
	Underline string
	Reset     string
}

const (
	ansiBold      = "\033[1m"
	ansiUnderline = "\033[4m"
	ansiReset     = "\033[0m"
)

func ansi256(code string) string { return "\033[38;5;" + code + "m" }

var (
	// DarkTheme suits dark terminal backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   ansi256("39"),
		Secondary: ansi256("245"),
		Success:   ansi256("82"),
		Warning:   ansi256("220"),
		Error:     ansi256("196"),
		Info:      ansi256("141"),
		Bold:      ansiBold,
		Underline: ansiUnderline,
		Reset:     ansiReset,
	}

	// LightTheme suits light terminal backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   ansi256("27"),
		Secondary: ansi256("240"),
		Success:   ansi256("28"),
		Warning:   ansi256("130"),
		Error:     ansi256("124"),
		Info:      ansi256("54"),
		Bold:      ansiBold,
		Underline: ansiUnderline,
		Reset:     ansiReset,
	}

	// FeltTheme is the card-table palette shared with the dashboard.
	FeltTheme = Theme{
		Name:      "felt",
		Primary:   ansi256("34"),
		Secondary: ansi256("245"),
		Success:   ansi256("82"),
		Warning:   ansi256("178"),
		Error:     ansi256("160"),
		Info:      ansi256("222"),
		Bold:      ansiBold,
		Underline: ansiUnderline,
		Reset:     ansiReset,
	}

	// NoColorTheme disables every escape sequence. It is selected by
	// -no-color or the NO_COLOR environment variable.
	NoColorTheme = Theme{Name: "none"}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// TUITheme holds lipgloss colors for the dashboard.
type TUITheme struct {
	Bg      lipgloss.TerminalColor
	Text    lipgloss.TerminalColor
	Border  lipgloss.TerminalColor
	Accent  lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Warning lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Dim     lipgloss.TerminalColor
	Info    lipgloss.TerminalColor
}

var (
	// FeltTUITheme is the green-and-gold dashboard palette.
	FeltTUITheme = TUITheme{
		Bg:      lipgloss.Color("#0B2E1A"),
		Text:    lipgloss.Color("#E8E8E0"),
		Border:  lipgloss.Color("#2E8B57"),
		Accent:  lipgloss.Color("#D4AF37"),
		Success: lipgloss.Color("#9ECE6A"),
		Warning: lipgloss.Color("#FFB347"),
		Error:   lipgloss.Color("#FF4444"),
		Dim:     lipgloss.Color("#6B7F70"),
		Info:    lipgloss.Color("#7AA2F7"),
	}

	// NoColorTUITheme renders with the terminal's default colors.
	NoColorTUITheme = TUITheme{
		Bg:      lipgloss.NoColor{},
		Text:    lipgloss.NoColor{},
		Border:  lipgloss.NoColor{},
		Accent:  lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Warning: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Dim:     lipgloss.NoColor{},
		Info:    lipgloss.NoColor{},
	}
)

// GetCurrentTUITheme returns the dashboard palette matching the active theme.
func GetCurrentTUITheme() TUITheme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()

	if currentTheme.Name == NoColorTheme.Name {
		return NoColorTUITheme
	}
	return FeltTUITheme
}

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme replaces the active theme. Tests use it to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme activates a theme by name ("dark", "light", "felt", "none").
// Unknown names select the dark theme.
func SetTheme(name string) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = themeByName(name)
}

func themeByName(name string) Theme {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "light":
		return LightTheme
	case "felt":
		return FeltTheme
	case "none":
		return NoColorTheme
	default:
		return DarkTheme
	}
}

// InitTheme selects the startup theme. noColor and a set NO_COLOR variable
// (https://no-color.org/) both disable colors; otherwise ROOTCALC_THEME
// picks the theme, dark by default.
func InitTheme(noColor bool) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	if noColor {
		currentTheme = NoColorTheme
		return
	}
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		currentTheme = NoColorTheme
		return
	}
	currentTheme = themeByName(os.Getenv("ROOTCALC_THEME"))
}
