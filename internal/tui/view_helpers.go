package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/fx-desk/internal/notify"
	"github.com/MKhiriev/fx-desk/models"
)

const uiDivider = "──────────────────────────────────────────────────────"

func renderPage(title, data, hotKeys string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n\n")

	if strings.TrimSpace(data) != "" {
		for _, line := range strings.Split(data, "\n") {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	} else {
		b.WriteString("  -\n")
	}

	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n")

	if strings.TrimSpace(hotKeys) != "" {
		b.WriteString("  ")
		b.WriteString(helpStyle.Render(hotKeys))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("  ctrl+c: quit │ ctrl+b: version"))

	return b.String()
}

func renderToast(n notify.Notice) string {
	text := n.Message
	if n.Title != "" {
		text = n.Title + ": " + text
	}
	style, ok := toastStyles[n.Level]
	if !ok {
		style = toastStyles[notify.LevelInfo]
	}
	return style.Render(fmt.Sprintf("[%s] %s", n.Level, text))
}

// renderSyncLine is the status line under a polled resource: what is
// happening now, the error if any and when the next refresh runs.
func renderSyncLine(state models.SyncState, secondsToRefresh int, spin string) string {
	var parts []string
	switch {
	case state.Loading:
		parts = append(parts, spin+" loading")
	case state.Refreshing:
		parts = append(parts, spin+" refreshing")
	case !state.LastUpdated.IsZero():
		parts = append(parts, "updated "+state.LastUpdated.Local().Format(time.TimeOnly))
	}
	if state.HasError() {
		msg := "error: " + state.Error
		if state.RetryCount > 0 {
			msg += fmt.Sprintf(" (retry %d)", state.RetryCount)
		}
		parts = append(parts, errorStyle.Render(msg))
	}
	if secondsToRefresh > 0 {
		parts = append(parts, fmt.Sprintf("next refresh in %ds", secondsToRefresh))
	}
	return strings.Join(parts, " · ")
}

func money(amount float64, currency string) string {
	return fmt.Sprintf("%.2f %s", amount, currency)
}

func fitText(v string, max int) string {
	r := []rune(v)
	if max <= 0 || len(r) <= max {
		return v
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
