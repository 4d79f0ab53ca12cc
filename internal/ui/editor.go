package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/stanza-tui/stanza/internal/api"
	"github.com/stanza-tui/stanza/internal/edit"
)

// Editor field focus order. Admin fields come after the ordinary ones and
// are skipped for non-admin users.
const (
	focusTitle = iota
	focusContent
	focusGenre
	focusOwner
	focusLikes
	focusOrigin
	focusCount
)

// editorState holds the form widgets for the edit screen. The authoritative
// form values live in the edit session; the widgets mirror them.
type editorState struct {
	title   textinput.Model
	content textarea.Model
	owner   textinput.Model
	likes   textinput.Model
	genre   string
	origin  string
	focus   int
}

func newEditorState() editorState {
	title := textinput.New()
	title.Placeholder = "Title"
	title.CharLimit = 120

	content := textarea.New()
	content.Placeholder = "Write your poem..."
	content.CharLimit = 4000
	content.SetHeight(8)

	owner := textinput.New()
	owner.Placeholder = "Owner ID"

	likes := textinput.New()
	likes.Placeholder = "Like IDs, comma separated"

	return editorState{
		title:   title,
		content: content,
		owner:   owner,
		likes:   likes,
	}
}

func (e *editorState) resize(width int) {
	w := width - 6
	if w < 24 {
		w = 24
	}
	e.title.Width = w
	e.owner.Width = w
	e.likes.Width = w
	e.content.SetWidth(w)
}

// load fills the widgets from the session's resolved field values.
func (e *editorState) load(f edit.Fields) {
	e.title.SetValue(f.Title)
	e.content.SetValue(f.Content)
	e.genre = f.Genre
	e.owner.SetValue(f.OwnerID)
	e.likes.SetValue(strings.Join(f.Likes, ", "))
	e.origin = f.Origin
	e.setFocus(focusTitle)
}

func (e *editorState) setFocus(f int) {
	e.focus = f
	e.title.Blur()
	e.content.Blur()
	e.owner.Blur()
	e.likes.Blur()
	switch f {
	case focusTitle:
		e.title.Focus()
	case focusContent:
		e.content.Focus()
	case focusOwner:
		e.owner.Focus()
	case focusLikes:
		e.likes.Focus()
	}
}

func (e *editorState) nextFocus(admin bool) {
	limit := focusGenre + 1
	if admin {
		limit = focusCount
	}
	e.setFocus((e.focus + 1) % limit)
}

// cycleGenre advances the genre picker.
func (e *editorState) cycleGenre() {
	genres := api.Genres()
	for i, g := range genres {
		if g == e.genre {
			e.genre = genres[(i+1)%len(genres)]
			return
		}
	}
	e.genre = genres[0]
}

func (e *editorState) cycleOrigin() {
	if e.origin == api.OriginFamous {
		e.origin = api.OriginUser
	} else {
		e.origin = api.OriginFamous
	}
}

// likeIDs parses the admin likes field.
func (e *editorState) likeIDs() []string {
	raw := strings.Split(e.likes.Value(), ",")
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// openEditor activates the edit screen for the already-resolved session.
func (m *Model) openEditor() {
	if m.screen != ScreenEdit {
		m.prevScreen = m.screen
	}
	m.screen = ScreenEdit
	m.editor = newEditorState()
	m.editor.resize(m.width)
	m.editor.load(m.session.Fields)
}

// handleEditorKey processes keys while the edit screen is active.
func (m Model) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit

	case key.Matches(msg, m.keys.Escape):
		m.session.Clear()
		m.screen = m.prevScreen
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		m.editor.nextFocus(m.admin)
		return m, nil

	case key.Matches(msg, m.keys.Save):
		return m.submitEditor()
	}

	switch m.editor.focus {
	case focusGenre:
		if msg.String() == " " || msg.String() == "enter" {
			m.editor.cycleGenre()
			m.session.Fields.Genre = m.editor.genre
		}
		return m, nil
	case focusOrigin:
		if msg.String() == " " || msg.String() == "enter" {
			m.editor.cycleOrigin()
			m.session.Fields.Origin = m.editor.origin
		}
		return m, nil
	}

	// Forward the keystroke to the focused widget and mirror the new value
	// into the session so a mid-edit delete or resolve never loses input.
	var cmd tea.Cmd
	switch m.editor.focus {
	case focusTitle:
		m.editor.title, cmd = m.editor.title.Update(msg)
		m.session.Fields.Title = m.editor.title.Value()
	case focusContent:
		m.editor.content, cmd = m.editor.content.Update(msg)
		m.session.Fields.Content = m.editor.content.Value()
	case focusOwner:
		m.editor.owner, cmd = m.editor.owner.Update(msg)
		m.session.Fields.OwnerID = m.editor.owner.Value()
	case focusLikes:
		m.editor.likes, cmd = m.editor.likes.Update(msg)
		m.session.Fields.Likes = m.editor.likeIDs()
	}
	return m, cmd
}

// submitEditor validates the form and issues the create or save command.
func (m Model) submitEditor() (tea.Model, tea.Cmd) {
	title := strings.TrimSpace(m.session.Fields.Title)
	content := strings.TrimSpace(m.session.Fields.Content)
	switch {
	case title == "":
		return m, m.pushToast(toastError, "Title is required")
	case content == "":
		return m, m.pushToast(toastError, "A poem needs some verses")
	case !api.ValidGenre(m.session.Fields.Genre):
		return m, m.pushToast(toastError, "Pick a genre first")
	}

	draft := m.session.Draft(m.admin)
	if m.session.Active() {
		return m, m.saveCmd(m.session.TargetID, draft)
	}
	return m, m.createCmd(draft)
}

func (m Model) renderEditor() string {
	styles := m.theme.Styles()

	heading := "New poem"
	if m.session.Active() {
		heading = "Edit poem"
		if m.session.Provenance.String() != "none" {
			heading += styles.MutedText.Render("  (from " + m.session.Provenance.String() + ")")
		}
	}

	genre := m.editor.genre
	if genre == "" {
		genre = "(press space to pick)"
	}

	var b strings.Builder
	b.WriteString(styles.TitleText.Render(heading) + "\n\n")
	b.WriteString(m.fieldLabel("Title", focusTitle) + "\n")
	b.WriteString(m.editor.title.View() + "\n\n")
	b.WriteString(m.fieldLabel("Poem", focusContent) + "\n")
	b.WriteString(m.editor.content.View() + "\n\n")
	b.WriteString(m.fieldLabel("Genre", focusGenre) + " " + styles.AccentText.Render(genre) + "\n")

	if m.admin {
		origin := m.editor.origin
		if origin == "" {
			origin = api.OriginUser
		}
		b.WriteString("\n" + styles.WarningText.Render("Admin overrides") + "\n")
		b.WriteString(m.fieldLabel("Owner", focusOwner) + "\n")
		b.WriteString(m.editor.owner.View() + "\n")
		b.WriteString(m.fieldLabel("Likes", focusLikes) + "\n")
		b.WriteString(m.editor.likes.View() + "\n")
		b.WriteString(m.fieldLabel("Origin", focusOrigin) + " " + styles.AccentText.Render(origin) + "\n")
	}

	b.WriteString("\n" + styles.MutedText.Render("tab next field · ctrl+s save · esc cancel"))
	return lipgloss.NewStyle().Height(m.contentHeight()).Render(b.String())
}

func (m Model) fieldLabel(name string, focus int) string {
	styles := m.theme.Styles()
	if m.editor.focus == focus {
		return styles.AccentText.Render("▸ " + name)
	}
	return styles.MutedText.Render("  " + name)
}
