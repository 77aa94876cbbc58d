package remote

import (
	"context"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

// Generation distinguishes one request attempt from the ones it superseded.
type Generation uint64

// Fetcher retrieves the resource identified by key.
type Fetcher[T any] interface {
	Fetch(ctx context.Context, key string) (T, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc[T any] func(ctx context.Context, key string) (T, error)

// Fetch implements Fetcher.
func (f FetcherFunc[T]) Fetch(ctx context.Context, key string) (T, error) {
	return f(ctx, key)
}

// SettledMsg is emitted by the command returned from Activate or Reload once
// the request completes. Route it to Loader.Update.
type SettledMsg struct {
	loader uint64
	gen    Generation
	key    string
	value  any
	err    error
}

// Key returns the resource key the settled request was issued for.
func (m SettledMsg) Key() string { return m.key }

// Generation returns the generation the request was issued under.
func (m SettledMsg) Generation() Generation { return m.gen }

// Err returns the request error, if any.
func (m SettledMsg) Err() error { return m.err }

var loaderIDs atomic.Uint64

// Loader keeps a State consistent with the latest request for its key.
// It is not safe for concurrent use; call it from a single event loop.
type Loader[T any] struct {
	id      uint64
	name    string
	fetcher Fetcher[T]
	ctx     context.Context
	logger  zerolog.Logger

	key     string
	gen     Generation
	active  bool
	settled bool
	state   State[T]
}

// Option configures a Loader.
type Option func(*options)

type options struct {
	name   string
	ctx    context.Context
	logger zerolog.Logger
}

// WithName sets the name used in log lines.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithContext sets the context passed to the fetcher. Defaults to context.Background().
func WithContext(ctx context.Context) Option {
	return func(o *options) { o.ctx = ctx }
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// New creates an inactive loader. Nothing is fetched until Activate.
func New[T any](fetcher Fetcher[T], opts ...Option) *Loader[T] {
	o := options{ctx: context.Background(), logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Loader[T]{
		id:      loaderIDs.Add(1),
		name:    o.name,
		fetcher: fetcher,
		ctx:     o.ctx,
		logger:  o.logger.With().Str("loader", o.name).Logger(),
		state:   Loading[T](),
	}
}

// Activate points the loader at key. If the loader is already active on the
// same key it returns nil and no request is issued. Otherwise the state is
// reset to Loading, the generation advances, and the returned command
// performs the fetch.
func (l *Loader[T]) Activate(key string) tea.Cmd {
	if l.active && key == l.key {
		return nil
	}
	return l.start(key)
}

// Reload re-issues the request for the current key, superseding any request
// still in flight. It returns nil when the loader is not active.
func (l *Loader[T]) Reload() tea.Cmd {
	if !l.active {
		return nil
	}
	return l.start(l.key)
}

// Deactivate tears the loader down. Pending settlements are discarded and the
// state returns to Loading; the next Activate issues a fresh request even for
// the same key.
func (l *Loader[T]) Deactivate() {
	if !l.active {
		return
	}
	l.active = false
	l.gen++
	l.settled = false
	l.state = Loading[T]()
	l.logger.Debug().Str("key", l.key).Uint64("generation", uint64(l.gen)).Msg("deactivated")
}

func (l *Loader[T]) start(key string) tea.Cmd {
	l.gen++
	l.key = key
	l.active = true
	l.settled = false
	l.state = Loading[T]()

	id, gen, ctx, fetcher := l.id, l.gen, l.ctx, l.fetcher
	l.logger.Debug().Str("key", key).Uint64("generation", uint64(gen)).Msg("request issued")
	return func() tea.Msg {
		v, err := fetcher.Fetch(ctx, key)
		return SettledMsg{loader: id, gen: gen, key: key, value: v, err: err}
	}
}

// Update applies msg if it is the settlement of this loader's active request.
// It reports whether the state changed. Settlements from other loaders are
// ignored; superseded or repeated settlements are dropped silently.
func (l *Loader[T]) Update(msg tea.Msg) bool {
	m, ok := msg.(SettledMsg)
	if !ok || m.loader != l.id {
		return false
	}
	if !l.active || m.gen != l.gen || l.settled {
		l.logger.Debug().
			Str("key", m.key).
			Uint64("generation", uint64(m.gen)).
			Uint64("active_generation", uint64(l.gen)).
			Msg("discarding superseded response")
		return false
	}
	l.settled = true
	if m.err != nil {
		l.state = Failed[T](m.err.Error())
		l.logger.Warn().Err(m.err).Str("key", m.key).Msg("request failed")
		return true
	}
	data, _ := m.value.(T)
	l.state = Loaded(data)
	l.logger.Debug().Str("key", m.key).Msg("request loaded")
	return true
}

// State returns the current state.
func (l *Loader[T]) State() State[T] { return l.state }

// Key returns the key of the most recent activation.
func (l *Loader[T]) Key() string { return l.key }

// Generation returns the current generation token.
func (l *Loader[T]) Generation() Generation { return l.gen }

// Active reports whether the loader has been activated and not torn down.
func (l *Loader[T]) Active() bool { return l.active }

// Pending reports whether the loader is active and waiting for a settlement.
func (l *Loader[T]) Pending() bool { return l.active && !l.settled }

// Name returns the name given with WithName.
func (l *Loader[T]) Name() string { return l.name }

// Load fetches key once and returns the settled state. It is the synchronous
// counterpart of Activate for consumers without an event loop.
func Load[T any](ctx context.Context, fetcher Fetcher[T], key string) State[T] {
	v, err := fetcher.Fetch(ctx, key)
	if err != nil {
		return Failed[T](err.Error())
	}
	return Loaded(v)
}
