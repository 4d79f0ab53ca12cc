package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/stanza-tui/stanza/internal/api"
	"github.com/stanza-tui/stanza/internal/cache"
)

// detailPoem returns the poem shown on the detail screen, if loaded.
func (m Model) detailPoem() (api.Poem, bool) {
	c := m.reg.Get(cache.ViewDetail)
	if m.detailID == "" {
		return api.Poem{}, false
	}
	p, ok := c.Find(m.detailID)
	if !ok {
		return api.Poem{}, false
	}
	return p, true
}

// handleDetailKey processes keys while the detail screen is active.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Refresh):
		return m, m.fetchDetail(m.detailID)

	case key.Matches(msg, m.keys.Like):
		if p, ok := m.detailPoem(); ok {
			if p.OwnerID == m.userID {
				return m, m.pushToast(toastInfo, "You cannot like your own poem")
			}
			return m, m.likeCmd(p.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		if p, ok := m.detailPoem(); ok {
			if p.OwnerID != m.userID && !m.admin {
				return m, m.pushToast(toastInfo, "You can only edit your own poems")
			}
			m.session.Resolve(p.ID, nil, m.reg)
			m.openEditor()
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if p, ok := m.detailPoem(); ok {
			if p.OwnerID != m.userID && !m.admin {
				return m, m.pushToast(toastInfo, "You can only delete your own poems")
			}
			m.confirmDeleteID = p.ID
		}
		return m, nil
	}
	return m, nil
}

func (m Model) renderDetail() string {
	c := m.reg.Get(cache.ViewDetail)
	styles := m.theme.Styles()

	var b strings.Builder
	p, ok := m.detailPoem()
	switch {
	case !ok && c.Status() == cache.StatusFetching:
		b.WriteString(styles.MutedText.Render("Loading poem..."))
	case !ok && c.Status() == cache.StatusError:
		b.WriteString(styles.DangerText.Render("Could not load poem: " + errText(c.LastError())))
	case !ok:
		b.WriteString(styles.MutedText.Render("Poem not found."))
	default:
		likes := fmt.Sprintf("♥ %d", len(p.Likes))
		if p.LikedBy(m.userID) {
			likes += " (liked)"
		}
		b.WriteString(styles.TitleText.Render(p.Title) + "\n")
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("%s · by %s · %s", p.Genre, p.Author, likes)) + "\n\n")

		width := m.width - 4
		if width < 20 {
			width = 20
		}
		body := lipgloss.NewStyle().Width(width).Render(p.Content)
		b.WriteString(styles.Text.Render(body))
	}

	return lipgloss.NewStyle().Height(m.contentHeight()).Render(b.String())
}
