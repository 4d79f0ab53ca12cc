package scroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stanza-tui/stanza/internal/api"
	"github.com/stanza-tui/stanza/internal/cache"
)

// readyCache returns a cache holding one fulfilled page with more available.
func readyCache(t *testing.T, hasMore bool) *cache.Cache {
	t.Helper()
	c := cache.New("feed")
	ticket, ok := c.Begin(1)
	require.True(t, ok)
	totalPages := 1
	if hasMore {
		totalPages = 2
	}
	c.Fulfill(ticket, []api.Poem{{ID: "p1"}}, cache.PageInfo{Page: 1, TotalPages: totalPages})
	return c
}

func TestController_FiresOnBecomingVisible(t *testing.T) {
	c := readyCache(t, true)
	fired := 0
	ctl := New(c, func() { fired++ })

	ctl.Visible(true)
	assert.Equal(t, 1, fired)
}

func TestController_RepeatedVisibleIsNoOp(t *testing.T) {
	c := readyCache(t, true)
	fired := 0
	ctl := New(c, func() { fired++ })

	ctl.Visible(true)
	ctl.Visible(true)
	ctl.Visible(true)
	assert.Equal(t, 1, fired)

	// Scrolling away and back re-arms the trigger.
	ctl.Visible(false)
	ctl.Visible(true)
	assert.Equal(t, 2, fired)
}

func TestController_GuardsExhaustionAndInFlight(t *testing.T) {
	exhausted := readyCache(t, false)
	fired := 0
	ctl := New(exhausted, func() { fired++ })
	ctl.Visible(true)
	assert.Zero(t, fired, "fired with no more pages")

	inFlight := readyCache(t, true)
	_, ok := inFlight.Begin(2)
	require.True(t, ok)
	ctl = New(inFlight, func() { fired++ })
	ctl.Visible(true)
	assert.Zero(t, fired, "fired while a fetch is in flight")
}

func TestController_GuardReEvaluatedPerEvent(t *testing.T) {
	c := readyCache(t, true)
	fired := 0
	ctl := New(c, func() {
		fired++
		ticket, ok := c.Begin(2)
		require.True(t, ok)
		c.Fulfill(ticket, []api.Poem{{ID: "p2"}}, cache.PageInfo{Page: 2, TotalPages: 2})
	})

	ctl.Visible(true)
	require.Equal(t, 1, fired)

	// The cache is now exhausted; a fresh transition must not fire.
	ctl.Visible(false)
	ctl.Visible(true)
	assert.Equal(t, 1, fired)
}

func TestController_CloseReleases(t *testing.T) {
	c := readyCache(t, true)
	fired := 0
	ctl := New(c, func() { fired++ })

	ctl.Close()
	ctl.Visible(true)
	assert.Zero(t, fired)

	// Close and events on a nil controller do not panic.
	var nilCtl *Controller
	nilCtl.Visible(true)
	nilCtl.Close()
}
