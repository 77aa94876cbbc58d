// Package remote loads a single remote resource by key and tracks its
// loading/loaded/failed state.
//
// A Loader is driven by the Bubble Tea event loop: Activate returns a tea.Cmd
// that performs the fetch off the loop, and the resulting SettledMsg is fed
// back through Update. Every activation advances a generation token; a
// settlement carrying an older generation is dropped, so only the most
// recently issued request can change state.
package remote

// Phase identifies which of the three shapes a State has.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseLoaded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseLoaded:
		return "loaded"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is the observable state of a resource. Exactly one of the following holds:
// Loading (no data, no error), Loaded (data), Failed (error message).
// The zero value is Loading.
type State[T any] struct {
	phase Phase
	data  T
	err   string
}

// Loading returns the initial / in-flight state.
func Loading[T any]() State[T] {
	return State[T]{phase: PhaseLoading}
}

// Loaded returns a settled state carrying data.
func Loaded[T any](data T) State[T] {
	return State[T]{phase: PhaseLoaded, data: data}
}

// Failed returns a settled state carrying an error message.
func Failed[T any](msg string) State[T] {
	return State[T]{phase: PhaseFailed, err: msg}
}

// Phase returns the current phase.
func (s State[T]) Phase() Phase { return s.phase }

// IsLoading is true until the active request settles.
func (s State[T]) IsLoading() bool { return s.phase == PhaseLoading }

// Data returns the loaded data. ok is false unless the state is Loaded.
func (s State[T]) Data() (data T, ok bool) {
	if s.phase != PhaseLoaded {
		var zero T
		return zero, false
	}
	return s.data, true
}

// Err returns the failure message, or "" unless the state is Failed.
func (s State[T]) Err() string {
	if s.phase != PhaseFailed {
		return ""
	}
	return s.err
}

func (s State[T]) String() string {
	if s.phase == PhaseFailed {
		return "failed: " + s.err
	}
	return s.phase.String()
}
