package update

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskboard/internal/views"
)

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}

func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	m.Notifications = append(m.Notifications, Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    m.cfg.Now().UTC(),
	})
	if len(m.Notifications) > 40 {
		m.Notifications = m.Notifications[len(m.Notifications)-40:]
	}
}

// toast shows body until ToastTTL passes or another toast replaces it.
func (m *Model) toast(body string) tea.Cmd {
	m.toastSeq++
	m.Toast = body
	m.notify("Task", body, "info")
	seq := m.toastSeq
	return tea.Tick(m.cfg.ToastTTL, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}

func (m *Model) setError(err error) {
	m.LastError = err
	if err == nil {
		return
	}
	m.Status = StatusBar{Text: err.Error(), IsError: true}
	m.notify("Error", err.Error(), "error")
}

func levelFromError(isErr bool) string {
	if isErr {
		return "error"
	}
	return "info"
}
