package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

// Theme tests mutate package state and therefore do not run in parallel.

func TestSetTheme(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	tests := []struct {
		name string
		want string
	}{
		{"dark", "dark"},
		{"light", "light"},
		{"FELT", "felt"},
		{"none", "none"},
		{"neon", "dark"},
	}
	for _, tt := range tests {
		SetTheme(tt.name)
		if got := GetCurrentTheme().Name; got != tt.want {
			t.Errorf("SetTheme(%q) -> %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestInitTheme(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	InitTheme(true)
	if GetCurrentTheme().Name != "none" {
		t.Errorf("InitTheme(true) should disable colors")
	}
	if ColorRed() != "" || ColorReset() != "" {
		t.Errorf("no-color theme must not emit escapes")
	}

	t.Setenv("ROOTCALC_THEME", "felt")
	InitTheme(false)
	if GetCurrentTheme().Name != "felt" {
		t.Errorf("ROOTCALC_THEME should select felt, got %q", GetCurrentTheme().Name)
	}

	t.Setenv("NO_COLOR", "1")
	InitTheme(false)
	if GetCurrentTheme().Name != "none" {
		t.Errorf("NO_COLOR should disable colors, got %q", GetCurrentTheme().Name)
	}
}

func TestColorAccessors(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	SetCurrentTheme(DarkTheme)
	if ColorRed() != DarkTheme.Error || ColorGreen() != DarkTheme.Success || ColorBold() != ansiBold {
		t.Error("accessors should follow the dark theme")
	}
	if got := Colorize(ColorGreen(), "ok"); got != DarkTheme.Success+"ok"+ansiReset {
		t.Errorf("Colorize = %q", got)
	}

	var p ColorProvider
	if p.Red() != DarkTheme.Error || p.Yellow() != DarkTheme.Warning || p.Reset() != ansiReset {
		t.Error("ColorProvider should follow the dark theme")
	}

	SetCurrentTheme(NoColorTheme)
	if got := Colorize(ColorGreen(), "ok"); got != "ok" {
		t.Errorf("Colorize without colors = %q", got)
	}
}

func TestGetCurrentTUITheme(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	SetCurrentTheme(NoColorTheme)
	if _, ok := GetCurrentTUITheme().Accent.(lipgloss.NoColor); !ok {
		t.Error("no-color theme should map to NoColorTUITheme")
	}
	SetCurrentTheme(LightTheme)
	if GetCurrentTUITheme() != FeltTUITheme {
		t.Error("colored themes should map to FeltTUITheme")
	}
}
