package ui

// Color accessors read the active theme on every call so that InitTheme
// and SetTheme take effect immediately.

func ColorRed() string       { return GetCurrentTheme().Error }
func ColorGreen() string     { return GetCurrentTheme().Success }
func ColorYellow() string    { return GetCurrentTheme().Warning }
func ColorBlue() string      { return GetCurrentTheme().Primary }
func ColorMagenta() string   { return GetCurrentTheme().Info }
func ColorCyan() string      { return GetCurrentTheme().Primary }
func ColorGrey() string      { return GetCurrentTheme().Secondary }
func ColorBold() string      { return GetCurrentTheme().Bold }
func ColorUnderline() string { return GetCurrentTheme().Underline }
func ColorReset() string     { return GetCurrentTheme().Reset }

// Colorize wraps s in color and a reset, or returns s unchanged when the
// active theme has no colors.
func Colorize(color, s string) string {
	if color == "" {
		return s
	}
	return color + s + ColorReset()
}

// ColorProvider exposes the active theme to packages that take colors as
// an interface, such as apperrors.
type ColorProvider struct{}

func (ColorProvider) Red() string    { return ColorRed() }
func (ColorProvider) Yellow() string { return ColorYellow() }
func (ColorProvider) Reset() string  { return ColorReset() }
