package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/stanza-tui/stanza/internal/cache"
	"github.com/stanza-tui/stanza/internal/rank"
)

// standings aggregates the leaderboard cache into ranked poet rows.
func (m Model) standings() []rank.Entry {
	return rank.Standings(m.reg.Get(cache.ViewLeaderboard).Items())
}

func (m Model) renderLeaderboard() string {
	c := m.reg.Get(cache.ViewLeaderboard)
	styles := m.theme.Styles()

	var b strings.Builder

	if c.Status() == cache.StatusError && c.Len() > 0 {
		b.WriteString(styles.WarningText.Render("Showing cached standings, refresh failed: "+errText(c.LastError())) + "\n\n")
	}

	entries := m.standings()
	switch {
	case len(entries) == 0 && c.Status() == cache.StatusFetching:
		b.WriteString(styles.MutedText.Render("Tallying likes..."))
	case len(entries) == 0 && c.Status() == cache.StatusError:
		b.WriteString(styles.DangerText.Render("Could not load standings: " + errText(c.LastError())))
	case len(entries) == 0:
		b.WriteString(styles.MutedText.Render("No poets on the board yet."))
	default:
		sel := m.selected[cache.ViewLeaderboard]
		for i, e := range entries {
			b.WriteString(m.renderStandingRow(i, e, i == sel))
			b.WriteString("\n")
		}
	}

	return lipgloss.NewStyle().Height(m.contentHeight()).Render(b.String())
}

func (m Model) renderStandingRow(i int, e rank.Entry, selected bool) string {
	styles := m.theme.Styles()

	name := e.Author
	if e.OwnerID == m.userID {
		name += " (you)"
	}
	rankStyle := styles.MutedText
	if i < 3 {
		rankStyle = styles.AccentText
	}

	line := fmt.Sprintf("%s  %s  %s  %s",
		rankStyle.Render(fmt.Sprintf("#%d", i+1)),
		styles.TitleText.Render(truncate(name, 28)),
		styles.MutedText.Render(fmt.Sprintf("%d poems", e.Poems)),
		styles.DangerText.Render(fmt.Sprintf("♥ %d", e.Points())),
	)
	if selected {
		return styles.Selected.Render("> ") + line
	}
	return "  " + line
}
