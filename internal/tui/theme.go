package tui

import "github.com/charmbracelet/lipgloss"

// ---------------------------------------------------------------------------
// Catppuccin Mocha palette, true-color hex values.
// https://catppuccin.com/palette
// ---------------------------------------------------------------------------

const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
)

const (
	colorBrand   = colorPink
	colorFocus   = colorLavender
	colorSuccess = colorGreen
	colorError   = colorRed
	colorWarning = colorPeach
	colorInfo    = colorTeal
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(colorBrand).Bold(true)

	sectionStyle = lipgloss.NewStyle().
			Foreground(colorInfo).
			Bold(true).
			MarginTop(1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface1).
			Foreground(colorText).
			Padding(0, 1).
			Width(22)

	focusedPanelStyle = panelStyle.
				BorderForeground(colorFocus)

	panelTitleStyle = lipgloss.NewStyle().Foreground(colorSubtext0)
	countStyle      = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	missingStyle    = lipgloss.NewStyle().Foreground(colorWarning).Italic(true)

	statusStyle = lipgloss.NewStyle().Foreground(colorSubtext0)
	errorStyle  = lipgloss.NewStyle().Foreground(colorError)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorSurface0).
			Padding(0, 2)

	helpKeyStyle  = lipgloss.NewStyle().Foreground(colorBrand).Bold(true)
	helpDescStyle = lipgloss.NewStyle().Foreground(colorOverlay1)
)
