package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// The TUI must remain readable on both light and dark terminal backgrounds,
// so colors are lipgloss.AdaptiveColor and "faint" styling is only applied on
// dark backgrounds.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted lipgloss.TerminalColor = ac("240", "243")

	colorSelectedBg lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg lipgloss.TerminalColor = ac("235", "255")

	colorSurfaceFg lipgloss.TerminalColor = ac("235", "252")
	colorControlBg lipgloss.TerminalColor = ac("252", "235")

	colorAccent  lipgloss.TerminalColor = ac("27", "62") // blue
	colorError   lipgloss.TerminalColor = ac("160", "196")
	colorSuccess lipgloss.TerminalColor = ac("28", "40")

	colorModalHeaderBg lipgloss.TerminalColor = colorControlBg
	colorCardBorder    lipgloss.TerminalColor = ac("250", "243")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleError() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorError)
}

func styleSuccess() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorSuccess)
}

func styleSelected() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg)
}

func styleAccent() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
}

// applyColorProfilePreference sets the lipgloss color profile for the TUI.
// Only NO_COLOR is honored; otherwise the terminal's capabilities decide.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	profile := termenv.ColorProfile()
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	}
	lipgloss.SetColorProfile(profile)
}

// applyThemePreference configures background detection. Some terminals don't
// report their background reliably, which makes AdaptiveColor pick the wrong
// variant, so DOCSLM_TUI_THEME=light|dark wins over detection.
func applyThemePreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("DOCSLM_TUI_THEME"))) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return
	}
	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		bg := strings.TrimSpace(parts[len(parts)-1])
		switch bg {
		case "0", "1", "2", "3", "4", "5", "6":
			lipgloss.SetHasDarkBackground(true)
		default:
			lipgloss.SetHasDarkBackground(false)
		}
	}
}
