package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/stanza-tui/stanza/internal/api"
)

func screenTitle(s Screen) string {
	switch s {
	case ScreenGlobal:
		return "Feed"
	case ScreenGenre:
		return "Genres"
	case ScreenLeaderboard:
		return "Leaderboard"
	case ScreenMine:
		return "My Poems"
	case ScreenLiked:
		return "Liked"
	case ScreenDetail:
		return "Poem"
	case ScreenEdit:
		return "Editor"
	}
	return ""
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	tabs := make([]string, 0, len(feedScreens))
	for i, s := range feedScreens {
		label := fmt.Sprintf("%d %s", i+1, screenTitle(s))
		if s == m.screen {
			tabs = append(tabs, styles.Selected.Render(label))
		} else {
			tabs = append(tabs, styles.MutedText.Render(label))
		}
	}

	who := m.userName
	if who == "" {
		who = m.userID
	}
	if m.admin {
		who += " ★"
	}

	left := styles.TitleText.Render("stanza") + "  " + strings.Join(tabs, "  ")
	right := styles.MutedText.Render(who)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return styles.Header.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderFooter() string {
	styles := m.theme.Styles()

	if m.confirmDeleteID != "" {
		return styles.Footer.Width(m.width).Render(
			styles.DangerText.Render("Delete this poem? y to confirm, any other key to cancel"))
	}
	if t := m.renderToast(); t != "" {
		return styles.Footer.Width(m.width).Render(t)
	}

	var hints string
	switch m.screen {
	case ScreenEdit:
		hints = "tab fields · ctrl+s save · esc cancel"
	case ScreenDetail:
		hints = "l like · e edit · d delete · r refresh · esc back"
	case ScreenLeaderboard:
		hints = "j/k move · r refresh · tab views · ? help · q quit"
	default:
		hints = "j/k move · enter open · l like · n new · g genre · ? help · q quit"
	}
	return styles.Footer.Width(m.width).Render(hints)
}

// contentHeight is the rows available between header and footer.
func (m Model) contentHeight() int {
	h := m.height - 4
	if h < 3 {
		h = 3
	}
	return h
}

func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	rows := []struct{ key, what string }{
		{"1-5 / tab", "Switch views"},
		{"j/k or arrows", "Move cursor"},
		{"enter", "Open poem"},
		{"l or space", "Like / unlike"},
		{"g", "Cycle genre filter (genre view)"},
		{"n", "New poem"},
		{"e", "Edit poem"},
		{"d", "Delete poem"},
		{"r", "Refresh view"},
		{"T", "Cycle theme (" + strings.Join(ThemeNames(), ", ") + ")"},
		{"q / ctrl+c", "Quit"},
	}

	var b strings.Builder
	b.WriteString(styles.TitleText.Render("stanza") + "\n")
	b.WriteString(styles.MutedText.Render("Genres: "+strings.Join(api.Genres(), ", ")) + "\n\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("%s  %s\n",
			styles.AccentText.Render(fmt.Sprintf("%-14s", r.key)),
			styles.Text.Render(r.what)))
	}
	b.WriteString("\n" + styles.MutedText.Render("Press any key to close"))
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func mutationErrText(kind mutationKind, err error) string {
	verb := "update"
	switch kind {
	case mutLike:
		verb = "like"
	case mutDelete:
		verb = "delete"
	case mutCreate:
		verb = "publish"
	case mutSave:
		verb = "save"
	}
	return fmt.Sprintf("Could not %s poem: %s", verb, errText(err))
}

func errText(err error) string {
	if err == nil {
		return "unknown error"
	}
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
