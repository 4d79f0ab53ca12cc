package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stanza-tui/stanza/internal/api"
	"github.com/stanza-tui/stanza/internal/cache"
)

// Messages

// listResultMsg carries a completed list fetch back to the update loop.
type listResultMsg struct {
	view   cache.View
	ticket cache.Ticket
	resp   api.ListResponse
	err    error
}

// poemResultMsg carries a completed single-poem fetch (the detail view).
type poemResultMsg struct {
	ticket cache.Ticket
	poem   *api.Poem
	err    error
}

type mutationKind int

const (
	mutLike mutationKind = iota
	mutDelete
	mutCreate
	mutSave
)

// mutationDoneMsg reports a server-confirmed mutation. For deletes only the
// id is known; the other kinds carry the confirmed record.
type mutationDoneMsg struct {
	kind mutationKind
	id   string
	poem *api.Poem
}

// mutationErrMsg reports a rejected mutation. No cache is patched; the
// update loop surfaces the failure and the user may retry.
type mutationErrMsg struct {
	kind mutationKind
	id   string
	err  error
}

type toastExpiredMsg struct {
	seq int
}

// viewQueue collects views that need a fetch issued on their behalf. The
// synchronizer's refetch hook and the scroll controllers both run while the
// update loop is mid-pass; queues are drained into fetch commands at the end
// of that same pass.
type viewQueue struct {
	views []cache.View
}

func (q *viewQueue) push(v cache.View) {
	q.views = append(q.views, v)
}

func (q *viewQueue) drain() []cache.View {
	views := q.views
	q.views = nil
	return views
}

// Commands

// fetchList begins a fetch for a list-backed view and returns the command
// that performs it. The Begin guard makes overlapping fetches and
// past-exhaustion load-mores no-ops, so callers fire freely.
func (m *Model) fetchList(v cache.View, page int) tea.Cmd {
	c := m.reg.Get(v)
	ticket, ok := c.Begin(page)
	if !ok {
		return nil
	}
	ctx, cancel := context.WithCancel(m.ctx)
	c.AbortWith(cancel)

	query := cache.ViewQuery(v, page, cache.QueryScope{
		PageSize: m.pageSize,
		Genre:    m.reg.Genre(),
		UserID:   m.userID,
	})
	client := m.client
	return func() tea.Msg {
		resp, err := client.List(ctx, query)
		return listResultMsg{view: v, ticket: ticket, resp: resp, err: err}
	}
}

// fetchDetail begins the single-poem fetch.
func (m *Model) fetchDetail(id string) tea.Cmd {
	c := m.reg.Get(cache.ViewDetail)
	c.Reset()
	ticket, ok := c.Begin(1)
	if !ok {
		return nil
	}
	ctx, cancel := context.WithCancel(m.ctx)
	c.AbortWith(cancel)

	client := m.client
	return func() tea.Msg {
		poem, err := client.Get(ctx, id)
		return poemResultMsg{ticket: ticket, poem: poem, err: err}
	}
}

func (m *Model) likeCmd(id string) tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		poem, err := client.ToggleLike(ctx, id)
		if err != nil {
			return mutationErrMsg{kind: mutLike, id: id, err: err}
		}
		return mutationDoneMsg{kind: mutLike, id: id, poem: poem}
	}
}

func (m *Model) deleteCmd(id string) tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		if err := client.Delete(ctx, id); err != nil {
			return mutationErrMsg{kind: mutDelete, id: id, err: err}
		}
		return mutationDoneMsg{kind: mutDelete, id: id}
	}
}

func (m *Model) createCmd(draft api.Draft) tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		poem, err := client.Create(ctx, draft)
		if err != nil {
			return mutationErrMsg{kind: mutCreate, err: err}
		}
		return mutationDoneMsg{kind: mutCreate, id: poem.ID, poem: poem}
	}
}

func (m *Model) saveCmd(id string, draft api.Draft) tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		poem, err := client.Update(ctx, id, draft)
		if err != nil {
			return mutationErrMsg{kind: mutSave, id: id, err: err}
		}
		return mutationDoneMsg{kind: mutSave, id: id, poem: poem}
	}
}

func toastExpireCmd(seq int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}
