package club

import (
	"regexp"

	"clubsite/internal/remote"
)

// Origin tells where resolved content came from.
type Origin int

const (
	OriginFallback Origin = iota
	OriginRemote
)

func (o Origin) String() string {
	if o == OriginRemote {
		return "remote"
	}
	return "fallback"
}

// Reasons recorded when defaults are used without a failure message.
const (
	ReasonLoading = "loading"
	ReasonEmpty   = "empty"
)

// Resolved is the content a page renders plus how it was chosen.
type Resolved[T any] struct {
	Items  []T
	Origin Origin
	// Reason is empty for remote content; otherwise ReasonLoading,
	// ReasonEmpty, or the failure message.
	Reason string
}

// Fallback reports whether the defaults are in use.
func (r Resolved[T]) Fallback() bool { return r.Origin == OriginFallback }

// Resolve applies the fallback policy to a list resource. Remote items are
// used only when the state is Loaded with at least one element. Loading,
// Failed and Loaded-but-empty all yield defaults: an empty list from the
// backend means "nothing configured", not "nothing to show".
func Resolve[T any](state remote.State[[]T], defaults []T) Resolved[T] {
	switch state.Phase() {
	case remote.PhaseFailed:
		return Resolved[T]{Items: defaults, Origin: OriginFallback, Reason: state.Err()}
	case remote.PhaseLoaded:
		items, _ := state.Data()
		if len(items) == 0 {
			return Resolved[T]{Items: defaults, Origin: OriginFallback, Reason: ReasonEmpty}
		}
		return Resolved[T]{Items: items, Origin: OriginRemote}
	default:
		return Resolved[T]{Items: defaults, Origin: OriginFallback, Reason: ReasonLoading}
	}
}

// ResolvedProfile is the profile a page renders plus how it was chosen.
type ResolvedProfile struct {
	Profile Profile
	Colors  Colors
	Origin  Origin
	Reason  string
}

// ResolveProfile picks the first profile of /api/club or DefaultProfile, then
// derives the palette. Blank or malformed colors fall back individually.
func ResolveProfile(state remote.State[[]Profile]) ResolvedProfile {
	r := Resolve(state, []Profile{DefaultProfile()})
	p := r.Items[0]
	return ResolvedProfile{
		Profile: p,
		Colors:  PaletteOf(p),
		Origin:  r.Origin,
		Reason:  r.Reason,
	}
}

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// PaletteOf returns p's colors with defaults substituted for blank or invalid values.
func PaletteOf(p Profile) Colors {
	c := Colors{Primary: DefaultPrimaryColor, Secondary: DefaultSecondaryColor}
	if hexColor.MatchString(p.PrimaryColor) {
		c.Primary = p.PrimaryColor
	}
	if hexColor.MatchString(p.SecondaryColor) {
		c.Secondary = p.SecondaryColor
	}
	return c
}
