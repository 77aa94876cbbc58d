package remote

import (
	"context"
	"errors"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFetcher answers from fixed tables and counts calls per key.
type fakeFetcher struct {
	mu    sync.Mutex
	data  map[string][]string
	errs  map[string]error
	calls map[string]int
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		data:  make(map[string][]string),
		errs:  make(map[string]error),
		calls: make(map[string]int),
	}
}

func (f *fakeFetcher) Fetch(_ context.Context, key string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[key]++
	if err, ok := f.errs[key]; ok {
		return nil, err
	}
	return f.data[key], nil
}

func (f *fakeFetcher) callCount(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[key]
}

// run executes a command synchronously, as the Bubble Tea runtime would off the loop.
func run(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd, "expected a command")
	return cmd()
}

func TestLoader_InitialStateIsLoading(t *testing.T) {
	l := New[[]string](newFakeFetcher())

	assert.True(t, l.State().IsLoading())
	assert.False(t, l.Active())
	_, ok := l.State().Data()
	assert.False(t, ok)
	assert.Empty(t, l.State().Err())
}

func TestLoader_ActivateLoads(t *testing.T) {
	f := newFakeFetcher()
	f.data["/api/events"] = []string{"hack night"}
	l := New[[]string](f)

	cmd := l.Activate("/api/events")
	assert.True(t, l.State().IsLoading(), "state resets to Loading synchronously")

	applied := l.Update(run(t, cmd))
	require.True(t, applied)

	data, ok := l.State().Data()
	require.True(t, ok)
	assert.Equal(t, []string{"hack night"}, data)
	assert.Equal(t, PhaseLoaded, l.State().Phase())
	assert.Empty(t, l.State().Err())
}

func TestLoader_EmptyArrayIsLoadedNotFailed(t *testing.T) {
	f := newFakeFetcher()
	f.data["/api/events"] = []string{}
	l := New[[]string](f)

	l.Update(run(t, l.Activate("/api/events")))

	data, ok := l.State().Data()
	require.True(t, ok)
	assert.Empty(t, data)
	assert.Equal(t, PhaseLoaded, l.State().Phase())
}

func TestLoader_FailureCarriesMessage(t *testing.T) {
	f := newFakeFetcher()
	f.errs["/api/team"] = errors.New("Request failed: 500")
	l := New[[]string](f)

	l.Update(run(t, l.Activate("/api/team")))

	assert.Equal(t, PhaseFailed, l.State().Phase())
	assert.Equal(t, "Request failed: 500", l.State().Err())
	_, ok := l.State().Data()
	assert.False(t, ok, "data and error are never both present")
}

func TestLoader_SupersededResponseIsDiscarded(t *testing.T) {
	f := newFakeFetcher()
	f.data["/api/a"] = []string{"a"}
	f.data["/api/b"] = []string{"b"}
	l := New[[]string](f)

	cmdA := l.Activate("/api/a")
	cmdB := l.Activate("/api/b")

	// B settles first, then the stale A response arrives.
	require.True(t, l.Update(run(t, cmdB)))
	assert.False(t, l.Update(run(t, cmdA)), "stale response must not apply")

	data, ok := l.State().Data()
	require.True(t, ok)
	assert.Equal(t, []string{"b"}, data)
	assert.Equal(t, "/api/b", l.Key())
}

func TestLoader_SupersededResponseBeforeCurrentSettles(t *testing.T) {
	f := newFakeFetcher()
	f.data["/api/a"] = []string{"a"}
	f.errs["/api/b"] = errors.New("Request failed: 404")
	l := New[[]string](f)

	cmdA := l.Activate("/api/a")
	cmdB := l.Activate("/api/b")

	// A arrives while B is still pending: nothing changes.
	assert.False(t, l.Update(run(t, cmdA)))
	assert.True(t, l.State().IsLoading())

	require.True(t, l.Update(run(t, cmdB)))
	assert.Equal(t, "Request failed: 404", l.State().Err())
}

func TestLoader_SameKeyIsIdempotent(t *testing.T) {
	f := newFakeFetcher()
	l := New[[]string](f)

	cmd := l.Activate("/api/club")
	require.NotNil(t, cmd)
	gen := l.Generation()

	assert.Nil(t, l.Activate("/api/club"))
	assert.Nil(t, l.Activate("/api/club"))
	assert.Equal(t, gen, l.Generation())

	l.Update(run(t, cmd))
	assert.Nil(t, l.Activate("/api/club"), "settled loader does not refetch unchanged key")
	assert.Equal(t, 1, f.callCount("/api/club"))
}

func TestLoader_DeactivateDropsPendingSettlement(t *testing.T) {
	f := newFakeFetcher()
	f.data["/api/team"] = []string{"alex"}
	l := New[[]string](f)

	cmd := l.Activate("/api/team")
	l.Deactivate()
	assert.False(t, l.Active())

	assert.False(t, l.Update(run(t, cmd)), "no mutation after teardown")
	assert.True(t, l.State().IsLoading())
}

func TestLoader_ReactivateAfterTeardownRefetches(t *testing.T) {
	f := newFakeFetcher()
	f.data["/api/team"] = []string{"alex"}
	l := New[[]string](f)

	l.Update(run(t, l.Activate("/api/team")))
	l.Deactivate()
	assert.True(t, l.State().IsLoading(), "state is discarded on teardown")

	cmd := l.Activate("/api/team")
	require.NotNil(t, cmd, "explicit re-activation triggers a new fetch")
	require.True(t, l.Update(run(t, cmd)))
	assert.Equal(t, 2, f.callCount("/api/team"))
}

func TestLoader_SettlesExactlyOncePerGeneration(t *testing.T) {
	f := newFakeFetcher()
	f.data["/api/events"] = []string{"x"}
	l := New[[]string](f)

	msg := run(t, l.Activate("/api/events"))
	assert.True(t, l.Update(msg))
	assert.False(t, l.Update(msg), "duplicate settlement is ignored")
}

func TestLoader_Pending(t *testing.T) {
	l := New[[]string](newFakeFetcher())
	assert.False(t, l.Pending(), "inactive loaders have nothing pending")

	cmd := l.Activate("/api/team")
	assert.True(t, l.Pending())

	l.Update(run(t, cmd))
	assert.False(t, l.Pending())

	l.Reload()
	assert.True(t, l.Pending())
	l.Deactivate()
	assert.False(t, l.Pending())
}

func TestLoader_Reload(t *testing.T) {
	f := newFakeFetcher()
	f.data["/api/socials"] = []string{"instagram"}
	l := New[[]string](f)

	assert.Nil(t, l.Reload(), "inactive loader has nothing to reload")

	first := l.Activate("/api/socials")
	l.Update(run(t, first))
	gen := l.Generation()

	reload := l.Reload()
	require.NotNil(t, reload)
	assert.Greater(t, l.Generation(), gen)
	assert.True(t, l.State().IsLoading())

	f.data["/api/socials"] = []string{"instagram", "linkedin"}
	require.True(t, l.Update(run(t, reload)))
	data, _ := l.State().Data()
	assert.Equal(t, []string{"instagram", "linkedin"}, data)
}

func TestLoader_IgnoresOtherLoadersAndMessages(t *testing.T) {
	f := newFakeFetcher()
	f.data["/api/events"] = []string{"x"}
	a := New[[]string](f)
	b := New[[]string](f)

	msgA := run(t, a.Activate("/api/events"))
	b.Activate("/api/events")

	assert.False(t, b.Update(msgA))
	assert.False(t, b.Update(tea.KeyMsg{}))
	assert.True(t, b.State().IsLoading())
	assert.True(t, a.Update(msgA))
}

func TestSettledMsg_Accessors(t *testing.T) {
	f := newFakeFetcher()
	f.errs["/api/x"] = errors.New("boom")
	l := New[[]string](f)

	msg, ok := run(t, l.Activate("/api/x")).(SettledMsg)
	require.True(t, ok)
	assert.Equal(t, "/api/x", msg.Key())
	assert.Equal(t, l.Generation(), msg.Generation())
	assert.EqualError(t, msg.Err(), "boom")
}

func TestLoad(t *testing.T) {
	f := newFakeFetcher()
	f.data["/api/events"] = []string{"a", "b"}
	f.errs["/api/team"] = errors.New("dial tcp: connection refused")

	ok := Load[[]string](context.Background(), f, "/api/events")
	data, loaded := ok.Data()
	require.True(t, loaded)
	assert.Len(t, data, 2)

	bad := Load[[]string](context.Background(), f, "/api/team")
	assert.Equal(t, "dial tcp: connection refused", bad.Err())
}

func TestFetcherFunc(t *testing.T) {
	var got string
	f := FetcherFunc[int](func(_ context.Context, key string) (int, error) {
		got = key
		return 7, nil
	})
	l := New[int](f, WithName("answer"))
	l.Update(run(t, l.Activate("/k")))

	v, ok := l.State().Data()
	require.True(t, ok)
	assert.Equal(t, 7, v)
	assert.Equal(t, "/k", got)
	assert.Equal(t, "answer", l.Name())
}
