// Package club holds the club site's payload types, the endpoint keys they are
// served from, the built-in default content and the policy deciding when a
// page shows remote data and when it shows the defaults.
package club

// Endpoint keys, relative to the configured backend prefix.
const (
	PathClub    = "/api/club"
	PathEvents  = "/api/events"
	PathTeam    = "/api/team"
	PathSocials = "/api/socials"
)

// MaxVisibleTags is the number of event tags shown on a card.
const MaxVisibleTags = 4

// Profile describes the club. /api/club returns a list whose first element is the profile.
type Profile struct {
	Name           string `json:"name" yaml:"name"`
	Tagline        string `json:"tagline" yaml:"tagline"`
	About          string `json:"about" yaml:"about"`
	Vision         string `json:"vision" yaml:"vision"`
	Mission        string `json:"mission" yaml:"mission"`
	PrimaryColor   string `json:"primary_color" yaml:"primary_color"`
	SecondaryColor string `json:"secondary_color" yaml:"secondary_color"`
}

// Event is one entry of the events gallery.
type Event struct {
	Title       string   `json:"title" yaml:"title"`
	Date        string   `json:"date" yaml:"date"`
	Location    string   `json:"location,omitempty" yaml:"location,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	CoverImage  string   `json:"cover_image,omitempty" yaml:"cover_image,omitempty"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// VisibleTags returns at most MaxVisibleTags tags.
func (e Event) VisibleTags() []string {
	if len(e.Tags) <= MaxVisibleTags {
		return e.Tags
	}
	return e.Tags[:MaxVisibleTags]
}

// Member is one entry of the team roster.
type Member struct {
	Name   string `json:"name" yaml:"name"`
	Role   string `json:"role" yaml:"role"`
	Avatar string `json:"avatar,omitempty" yaml:"avatar,omitempty"`
	Bio    string `json:"bio,omitempty" yaml:"bio,omitempty"`
}

// Social is a link to one of the club's social accounts.
type Social struct {
	Platform string `json:"platform" yaml:"platform"`
	URL      string `json:"url" yaml:"url"`
}

// Colors is the club's palette as hex strings.
type Colors struct {
	Primary   string `json:"primary" yaml:"primary"`
	Secondary string `json:"secondary" yaml:"secondary"`
}
