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

// genreFilters are the values "g" cycles through on the genre feed. The
// empty string means no filter.
func genreFilters() []string {
	return append([]string{""}, api.Genres()...)
}

// handleFeedKey processes keys while a list screen is active.
func (m Model) handleFeedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v, ok := screenView(m.screen)
	if !ok {
		return m, nil
	}
	c := m.reg.Get(v)

	switch {
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(v, 1)
		return m, m.drainQueues()

	case key.Matches(msg, m.keys.Up):
		m.moveSelection(v, -1)
		return m, m.drainQueues()

	case key.Matches(msg, m.keys.Top):
		m.selected[v] = 0
		m.observeSentinel(v)
		return m, m.drainQueues()

	case key.Matches(msg, m.keys.Bottom):
		if n := m.rowCount(v); n > 0 {
			m.selected[v] = n - 1
		}
		m.observeSentinel(v)
		return m, m.drainQueues()

	case key.Matches(msg, m.keys.Refresh):
		c.Reset()
		return m, m.fetchList(v, 1)

	case key.Matches(msg, m.keys.CycleGenre):
		if m.screen != ScreenGenre {
			return m, nil
		}
		return m.cycleGenre()

	case key.Matches(msg, m.keys.Like):
		if m.screen == ScreenLeaderboard {
			return m, nil
		}
		if p, ok := m.selectedPoem(); ok {
			if p.OwnerID == m.userID {
				return m, m.pushToast(toastInfo, "You cannot like your own poem")
			}
			return m, m.likeCmd(p.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Open):
		if m.screen == ScreenLeaderboard {
			return m, nil
		}
		if p, ok := m.selectedPoem(); ok {
			m.prevScreen = m.screen
			m.screen = ScreenDetail
			m.detailID = p.ID
			return m, m.fetchDetail(p.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		if m.screen == ScreenLeaderboard {
			return m, nil
		}
		if p, ok := m.selectedPoem(); ok {
			if p.OwnerID != m.userID && !m.admin {
				return m, m.pushToast(toastInfo, "You can only edit your own poems")
			}
			nav := p
			m.session.Resolve(p.ID, &nav, m.reg)
			m.openEditor()
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if m.screen == ScreenLeaderboard {
			return m, nil
		}
		if p, ok := m.selectedPoem(); ok {
			if p.OwnerID != m.userID && !m.admin {
				return m, m.pushToast(toastInfo, "You can only delete your own poems")
			}
			m.confirmDeleteID = p.ID
		}
		return m, nil
	}

	return m, nil
}

// cycleGenre advances the genre filter and restarts the genre feed under
// the new filter. The cache is reset before the request so a slow response
// for the old filter can never land in the new one.
func (m Model) cycleGenre() (tea.Model, tea.Cmd) {
	filters := genreFilters()
	m.genreIdx = (m.genreIdx + 1) % len(filters)
	m.reg.SetGenre(filters[m.genreIdx])
	m.selected[cache.ViewGenre] = 0
	m.savePrefs()

	c := m.reg.Get(cache.ViewGenre)
	c.Reset()
	return m, m.fetchList(cache.ViewGenre, 1)
}

// rowCount is the number of selectable rows for a view. The leaderboard
// shows one row per poet, not per poem.
func (m Model) rowCount(v cache.View) int {
	if v == cache.ViewLeaderboard {
		return len(m.standings())
	}
	return m.reg.Get(v).Len()
}

// moveSelection moves the cursor and reports sentinel visibility.
func (m *Model) moveSelection(v cache.View, dir int) {
	n := m.rowCount(v)
	if n == 0 {
		return
	}
	i := m.selected[v] + dir
	if i < 0 {
		i = 0
	}
	if i > n-1 {
		i = n - 1
	}
	m.selected[v] = i
	m.observeSentinel(v)
}

// clampSelection keeps the cursor inside the list after items are removed.
func (m *Model) clampSelection(v cache.View) {
	n := m.rowCount(v)
	if n == 0 {
		m.selected[v] = 0
		return
	}
	if m.selected[v] > n-1 {
		m.selected[v] = n - 1
	}
}

// observeSentinel tells the view's scroll controller whether the cursor
// has reached the end-of-list sentinel row.
func (m *Model) observeSentinel(v cache.View) {
	if v == cache.ViewLeaderboard || v == cache.ViewDetail {
		return
	}
	ctl := m.scrollers[v]
	n := m.reg.Get(v).Len()
	ctl.Visible(n > 0 && m.selected[v] >= n-1)
}

// selectedPoem returns the poem under the cursor on the active feed.
func (m Model) selectedPoem() (api.Poem, bool) {
	v, ok := screenView(m.screen)
	if !ok {
		return api.Poem{}, false
	}
	items := m.reg.Get(v).Items()
	i := m.selected[v]
	if i < 0 || i >= len(items) {
		return api.Poem{}, false
	}
	return items[i], true
}

// renderFeed renders the active list screen.
func (m Model) renderFeed() string {
	v, ok := screenView(m.screen)
	if !ok {
		return ""
	}
	c := m.reg.Get(v)
	styles := m.theme.Styles()

	var b strings.Builder

	if m.screen == ScreenGenre {
		filter := m.reg.Genre()
		if filter == "" {
			filter = "all genres"
		}
		b.WriteString(styles.AccentText.Render("Filter: "+filter) + "\n\n")
	}

	if c.Status() == cache.StatusError && c.Len() > 0 {
		b.WriteString(styles.WarningText.Render("Showing cached poems, refresh failed: "+errText(c.LastError())) + "\n\n")
	}

	items := c.Items()
	switch {
	case len(items) == 0 && c.Status() == cache.StatusFetching:
		b.WriteString(styles.MutedText.Render("Loading poems..."))
	case len(items) == 0 && c.Status() == cache.StatusError:
		b.WriteString(styles.DangerText.Render("Could not load poems: " + errText(c.LastError())))
	case len(items) == 0:
		b.WriteString(styles.MutedText.Render(m.emptyFeedText(v)))
	default:
		rows := m.visibleRows(len(items))
		for _, i := range rows {
			b.WriteString(m.renderFeedRow(items[i], i == m.selected[v]))
			b.WriteString("\n")
		}
		b.WriteString(m.renderFeedTail(c))
	}

	return lipgloss.NewStyle().Height(m.contentHeight()).Render(b.String())
}

func (m Model) emptyFeedText(v cache.View) string {
	switch v {
	case cache.ViewMine:
		return "You have not published any poems yet. Press n to write one."
	case cache.ViewLiked:
		return "You have not liked any poems yet."
	default:
		return "No poems here yet."
	}
}

// visibleRows returns the index window of rows that fit on screen, keeping
// the cursor inside the window.
func (m Model) visibleRows(n int) []int {
	v, _ := screenView(m.screen)
	rows := m.contentHeight() - 3
	if rows < 1 {
		rows = 1
	}
	start := 0
	if sel := m.selected[v]; sel >= rows {
		start = sel - rows + 1
	}
	end := start + rows
	if end > n {
		end = n
	}
	out := make([]int, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, i)
	}
	return out
}

func (m Model) renderFeedRow(p api.Poem, selected bool) string {
	styles := m.theme.Styles()

	likes := fmt.Sprintf("♥ %d", len(p.Likes))
	if p.LikedBy(m.userID) {
		likes = styles.DangerText.Render(likes)
	} else {
		likes = styles.MutedText.Render(likes)
	}

	line := fmt.Sprintf("%s  %s  %s  %s",
		styles.TitleText.Render(truncate(p.Title, 32)),
		styles.MutedText.Render(p.Genre),
		styles.Text.Render("by "+p.Author),
		likes,
	)
	if selected {
		return styles.Selected.Render("> ") + line
	}
	return "  " + line
}

// renderFeedTail renders the sentinel row below the last poem.
func (m Model) renderFeedTail(c *cache.Cache) string {
	styles := m.theme.Styles()
	switch {
	case c.Status() == cache.StatusFetching:
		return styles.MutedText.Render("  Loading more...")
	case c.HasMore():
		return styles.MutedText.Render("  ↓ scroll for more")
	default:
		return styles.MutedText.Render(fmt.Sprintf("  %d poems", c.Len()))
	}
}
