package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const toastLifetime = 4 * time.Second

type toastLevel int

const (
	toastInfo toastLevel = iota
	toastSuccess
	toastError
)

// toast is one transient notification line. Fetch and mutation failures
// surface here; the caches themselves stay quiet.
type toast struct {
	seq   int
	level toastLevel
	text  string
}

// pushToast queues a notification and returns the expiry command for it.
func (m *Model) pushToast(level toastLevel, text string) tea.Cmd {
	m.toastSeq++
	m.toasts = append(m.toasts, toast{seq: m.toastSeq, level: level, text: text})
	return toastExpireCmd(m.toastSeq, toastLifetime)
}

// expireToast drops the toast with the given sequence number.
func (m *Model) expireToast(seq int) {
	for i, t := range m.toasts {
		if t.seq == seq {
			m.toasts = append(m.toasts[:i], m.toasts[i+1:]...)
			return
		}
	}
}

// renderToast renders the most recent active toast, or an empty string.
func (m *Model) renderToast() string {
	if len(m.toasts) == 0 {
		return ""
	}
	styles := m.theme.Styles()
	t := m.toasts[len(m.toasts)-1]
	switch t.level {
	case toastError:
		return styles.DangerText.Render("✗ " + t.text)
	case toastSuccess:
		return styles.SuccessText.Render("✓ " + t.text)
	default:
		return styles.AccentText.Render("• " + t.text)
	}
}
