package tui

import (
	"github.com/MKhiriev/fx-desk/internal/notify"
	"github.com/charmbracelet/lipgloss"
)

var (
	appStyle        = lipgloss.NewStyle().Padding(1, 2)
	titleStyle      = lipgloss.NewStyle().Bold(true)
	helpStyle       = lipgloss.NewStyle().Faint(true)
	errorStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	overlayBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)

	toastStyles = map[notify.Level]lipgloss.Style{
		notify.LevelInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		notify.LevelSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		notify.LevelWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		notify.LevelError:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
)
