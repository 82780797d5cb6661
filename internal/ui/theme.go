package ui

import "github.com/charmbracelet/lipgloss"

// Field-log palette.
var (
	colorBorder    = lipgloss.Color("#2E3A40")
	colorText      = lipgloss.Color("#E8E2D8")
	colorSecondary = lipgloss.Color("#A6ADB1")
	colorMuted     = lipgloss.Color("#7D858A")
	colorEmber     = lipgloss.Color("#D46A1E")
	colorForest    = lipgloss.Color("#2F5D42")
	colorAmber     = lipgloss.Color("#C18B2F")
	colorDanger    = lipgloss.Color("#B84A3A")
)

var (
	textStyle    = lipgloss.NewStyle().Foreground(colorText)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
	playerStyle  = lipgloss.NewStyle().Foreground(colorText).Background(lipgloss.Color("#212A31")).Bold(true).PaddingLeft(1)
	dangerStyle  = lipgloss.NewStyle().Foreground(colorDanger).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(colorAmber)
	findStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6FAF7F"))
	victoryStyle = lipgloss.NewStyle().Foreground(colorEmber).Bold(true)
	titleStyle   = lipgloss.NewStyle().Foreground(colorEmber).Bold(true).Underline(true)
	labelStyle   = lipgloss.NewStyle().Foreground(colorSecondary)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(colorBorder).
			PaddingLeft(2).
			Foreground(colorSecondary)

	barFull  = lipgloss.NewStyle().Foreground(colorForest)
	barLow   = lipgloss.NewStyle().Foreground(colorDanger)
	barEmpty = lipgloss.NewStyle().Foreground(colorBorder)
)
